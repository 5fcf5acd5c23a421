package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dachabook/dacha-booking-backend/internal/api"
	"github.com/dachabook/dacha-booking-backend/internal/auth"
	"github.com/dachabook/dacha-booking-backend/internal/booking"
	"github.com/dachabook/dacha-booking-backend/internal/dacha"
	"github.com/dachabook/dacha-booking-backend/internal/notify"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/logger"
	"github.com/dachabook/dacha-booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Notifier     notify.Notifier
	Logger       *logger.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Noop{}
	}

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Dacha Module
	dachaRepo := dacha.NewPgxRepository(cfg.DBPool)
	dachaService := dacha.NewService(dachaRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, dachaService, notifier, cfg.Logger)

	// API Router Config
	routerParams := api.Config{
		IsProduction:   cfg.IsProduction,
		ProdOrigins:    cfg.ProdOrigins,
		UserService:    userService,
		DachaService:   dachaService,
		BookingService: bookingService,
		JWTManager:     jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
