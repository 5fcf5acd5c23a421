package booking

import (
	"net/http"
	"time"

	"github.com/dachabook/dacha-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "booking not found")
	ErrForbidden     = apperror.New(http.StatusForbidden, "dacha does not belong to you")
	ErrInvalidRange  = apperror.New(http.StatusBadRequest, "start date must not be after end date")
	ErrDayOutOfRange = apperror.New(http.StatusBadRequest, "day is outside the booking range")
	ErrInvalidDate   = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrConflict      = apperror.New(http.StatusConflict, "dacha is already booked for these dates")
)

// Booking is a reservation of a dacha for an inclusive range of calendar
// days. StartDate and EndDate are canonical days (see Day); StartDate ==
// EndDate is a single-day reservation. Active bookings of the same dacha
// never overlap.
type Booking struct {
	ID             string // UUID
	DachaID        string
	StartDate      time.Time
	EndDate        time.Time
	TotalPrice     float64
	AdvancePayment float64
	OrderedBy      string
	Phone1         string
	Phone2         string
	CreatedBy      string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Filter defines options for listing bookings.
type Filter struct {
	DachaIDs   []string
	ActiveOnly bool
	OrderBy    string // e.g. "start_date ASC"
}
