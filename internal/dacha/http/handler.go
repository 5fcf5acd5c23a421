package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dachabook/dacha-booking-backend/internal/auth"
	"github.com/dachabook/dacha-booking-backend/internal/dacha"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/request"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/response"
)

type Handler struct {
	service dacha.Service
	now     func() time.Time
}

func NewHandler(service dacha.Service) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

// Create registers a new dacha, optionally pre-assigned to an admin.
// Access Control: superadmin only.
func (h *Handler) Create(c *gin.Context) {
	var req CreateDachaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	d, err := h.service.Create(c.Request.Context(), dacha.CreateRequest{
		Name:    req.Name,
		AdminID: req.AdminID,
	})
	if err != nil {
		if errors.Is(err, dacha.ErrInvalidName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create dacha"})
		return
	}

	c.JSON(http.StatusCreated, NewDachaResponse(d))
}

// Update changes a dacha's name, assigned admin, or active flag.
// Access Control: superadmin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateDachaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := h.service.Update(c.Request.Context(), uri.ID, dacha.UpdateRequest{
		Name:     req.Name,
		AdminID:  req.AdminID,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, dacha.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "dacha not found"})
		case errors.Is(err, dacha.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update dacha"})
		}
		return
	}

	c.JSON(http.StatusOK, NewDachaResponse(d))
}

// Delete removes a dacha outright.
// Access Control: superadmin only.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		if errors.Is(err, dacha.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dacha not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete dacha"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMine returns the authenticated admin's active dachas, newest first.
func (h *Handler) ListMine(c *gin.Context) {
	adminID := auth.GetUserID(c)
	if adminID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	dachas, err := h.service.ListMine(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dachas"})
		return
	}

	items := make([]DachaResponse, len(dachas))
	for i, d := range dachas {
		items[i] = NewDachaResponse(d)
	}

	c.JSON(http.StatusOK, response.NewListResponse(items))
}

// ListAll returns every dacha with its admin and upcoming bookings.
// Access Control: superadmin only.
func (h *Handler) ListAll(c *gin.Context) {
	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	overviews, err := h.service.ListOverview(c.Request.Context(), today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list dachas"})
		return
	}

	items := make([]OverviewResponse, len(overviews))
	for i, o := range overviews {
		items[i] = NewOverviewResponse(o)
	}

	c.JSON(http.StatusOK, response.NewListResponse(items))
}
