package http

import (
	"time"

	"github.com/dachabook/dacha-booking-backend/internal/dacha"
)

// DachaResponse is the shape of dacha data returned in API responses.
type DachaResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	AdminID   *string   `json:"admin_id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewDachaResponse(d *dacha.Dacha) DachaResponse {
	return DachaResponse{
		ID:        d.ID,
		Name:      d.Name,
		AdminID:   d.AdminID,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// AdminTagResponse mirrors the assigned admin in the overview.
type AdminTagResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// BookingBriefResponse is a compact upcoming booking entry.
type BookingBriefResponse struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	OrderedBy string `json:"ordered_by"`
}

// OverviewResponse is the superadmin listing: dacha + admin + upcoming bookings.
type OverviewResponse struct {
	DachaResponse
	Admin    *AdminTagResponse      `json:"admin"`
	Upcoming []BookingBriefResponse `json:"upcoming_bookings"`
}

func NewOverviewResponse(o *dacha.Overview) OverviewResponse {
	resp := OverviewResponse{
		DachaResponse: NewDachaResponse(&o.Dacha),
		Upcoming:      make([]BookingBriefResponse, 0, len(o.Upcoming)),
	}

	if o.Admin != nil {
		resp.Admin = &AdminTagResponse{
			ID:       o.Admin.ID,
			Username: o.Admin.Username,
			Role:     o.Admin.Role,
		}
	}

	for _, b := range o.Upcoming {
		resp.Upcoming = append(resp.Upcoming, BookingBriefResponse{
			ID:        b.ID,
			StartDate: b.StartDate.Format("2006-01-02"),
			EndDate:   b.EndDate.Format("2006-01-02"),
			OrderedBy: b.OrderedBy,
		})
	}

	return resp
}

// CreateDachaRequest defines the payload for creating a dacha.
type CreateDachaRequest struct {
	Name    string  `json:"name" binding:"required,min=2"`
	AdminID *string `json:"admin_id" binding:"omitempty,uuid"`
}

// UpdateDachaRequest defines fields allowed to be updated via PATCH /dachas/:id.
type UpdateDachaRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2"`
	AdminID  *string `json:"admin_id" binding:"omitempty,uuid"`
	IsActive *bool   `json:"is_active"`
}
