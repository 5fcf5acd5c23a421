package dacha

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("dacha not found")
	ErrInvalidName = errors.New("dacha name must be at least 2 characters")
)

// Dacha is a rentable unit assigned to at most one admin.
type Dacha struct {
	ID        string // UUID
	Name      string
	AdminID   *string // nil until a superadmin assigns an admin
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AdminTag is a brief representation of the assigned admin.
type AdminTag struct {
	ID       string
	Username string
	Role     string
}

// BookingBrief is a compact view of an upcoming booking, embedded in
// the superadmin overview.
type BookingBrief struct {
	ID        string
	StartDate time.Time
	EndDate   time.Time
	OrderedBy string
}

// Overview is the superadmin view: a dacha joined with its admin and
// its upcoming active bookings.
type Overview struct {
	Dacha
	Admin    *AdminTag
	Upcoming []BookingBrief
}
