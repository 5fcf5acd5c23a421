package http

import (
	"time"

	"github.com/dachabook/dacha-booking-backend/internal/booking"
)

// BookingResponse is the shape of booking data returned in API responses.
// Dates are rendered as YYYY-MM-DD, matching the request format.
type BookingResponse struct {
	ID             string    `json:"id"`
	DachaID        string    `json:"dacha_id"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date"`
	TotalPrice     float64   `json:"total_price"`
	AdvancePayment float64   `json:"advance_payment"`
	OrderedBy      string    `json:"ordered_by"`
	Phone1         string    `json:"phone1"`
	Phone2         string    `json:"phone2"`
	CreatedBy      string    `json:"created_by"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:             b.ID,
		DachaID:        b.DachaID,
		StartDate:      b.StartDate.Format(booking.DateLayout),
		EndDate:        b.EndDate.Format(booking.DateLayout),
		TotalPrice:     b.TotalPrice,
		AdvancePayment: b.AdvancePayment,
		OrderedBy:      b.OrderedBy,
		Phone1:         b.Phone1,
		Phone2:         b.Phone2,
		CreatedBy:      b.CreatedBy,
		IsActive:       b.IsActive,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

// CreateBookingRequest defines the payload for creating a booking.
// Dates are YYYY-MM-DD strings; numeric and contact fields default to
// zero and empty when omitted.
type CreateBookingRequest struct {
	DachaID        string  `json:"dacha_id" binding:"required,uuid"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	TotalPrice     float64 `json:"total_price" binding:"omitempty,gte=0"`
	AdvancePayment float64 `json:"advance_payment" binding:"omitempty,gte=0"`
	OrderedBy      string  `json:"ordered_by"`
	Phone1         string  `json:"phone1"`
	Phone2         string  `json:"phone2"`
}

// UpdateBookingRequest defines fields allowed to be updated via PUT /bookings/:id.
// Omitted fields keep their current values.
type UpdateBookingRequest struct {
	StartDate      *string  `json:"start_date"`
	EndDate        *string  `json:"end_date"`
	TotalPrice     *float64 `json:"total_price" binding:"omitempty,gte=0"`
	AdvancePayment *float64 `json:"advance_payment" binding:"omitempty,gte=0"`
	OrderedBy      *string  `json:"ordered_by"`
	Phone1         *string  `json:"phone1"`
	Phone2         *string  `json:"phone2"`
}

// RemoveDayRequest names the day to remove from the booking's range.
type RemoveDayRequest struct {
	Day string `json:"day" binding:"required"`
}

// CancelResponse reports the cancelled booking's state.
type CancelResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"is_active"`
}

// RemoveDayResponse reports the outcome of removing a day.
// Booking is null when the whole booking was deleted; SplitBooking is set
// only when an interior day split the range in two.
type RemoveDayResponse struct {
	Result       string           `json:"result"` // deleted, shrunk, or split
	Booking      *BookingResponse `json:"booking,omitempty"`
	SplitBooking *BookingResponse `json:"split_booking,omitempty"`
}
