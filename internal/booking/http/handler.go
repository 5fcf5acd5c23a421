package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dachabook/dacha-booking-backend/internal/auth"
	"github.com/dachabook/dacha-booking-backend/internal/booking"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/request"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create books a dacha for an inclusive date range.
func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	start, err := booking.ParseDay(req.StartDate)
	if err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}
	end, err := booking.ParseDay(req.EndDate)
	if err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	b, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), booking.CreateRequest{
		DachaID:        req.DachaID,
		StartDate:      start,
		EndDate:        end,
		TotalPrice:     req.TotalPrice,
		AdvancePayment: req.AdvancePayment,
		OrderedBy:      req.OrderedBy,
		Phone1:         req.Phone1,
		Phone2:         req.Phone2,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// Update reschedules a booking and/or updates its opaque fields.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	svcReq := booking.RescheduleRequest{
		TotalPrice:     req.TotalPrice,
		AdvancePayment: req.AdvancePayment,
		OrderedBy:      req.OrderedBy,
		Phone1:         req.Phone1,
		Phone2:         req.Phone2,
	}

	if req.StartDate != nil {
		start, err := booking.ParseDay(*req.StartDate)
		if err != nil {
			response.Error(c, booking.ErrInvalidDate)
			return
		}
		svcReq.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := booking.ParseDay(*req.EndDate)
		if err != nil {
			response.Error(c, booking.ErrInvalidDate)
			return
		}
		svcReq.EndDate = &end
	}

	b, err := h.service.Reschedule(c.Request.Context(), auth.GetUserID(c), uri.ID, svcReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Cancel soft-deletes a booking: the record stays for history but no
// longer takes part in conflict checks. Cancelling twice is a no-op.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CancelResponse{ID: b.ID, IsActive: b.IsActive})
}

// RemoveDay removes a single day from a booking's range. Unlike Cancel,
// a single-day booking is hard-deleted here, since no valid range remains.
func (h *Handler) RemoveDay(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req RemoveDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	day, err := booking.ParseDay(req.Day)
	if err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	res, err := h.service.RemoveDay(c.Request.Context(), auth.GetUserID(c), uri.ID, day)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := RemoveDayResponse{Result: string(res.Kind)}
	if res.Booking != nil {
		b := NewBookingResponse(res.Booking)
		resp.Booking = &b
	}
	if res.Split != nil {
		b := NewBookingResponse(res.Split)
		resp.SplitBooking = &b
	}

	c.JSON(http.StatusOK, resp)
}

// ListCurrent returns the actor's active bookings ordered by start date.
func (h *Handler) ListCurrent(c *gin.Context) {
	h.list(c, h.service.ListCurrent)
}

// ListHistory returns all of the actor's bookings, newest end date first.
func (h *Handler) ListHistory(c *gin.Context) {
	h.list(c, h.service.ListHistory)
}

func (h *Handler) list(c *gin.Context, fetch func(ctx context.Context, actorID string) ([]*booking.Booking, error)) {
	actorID := auth.GetUserID(c)
	if actorID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	bookings, err := fetch(c.Request.Context(), actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewListResponse(items))
}
