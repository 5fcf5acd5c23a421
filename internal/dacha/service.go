package dacha

import (
	"context"
	"strings"
	"time"
)

// CreateRequest defines fields for creating a dacha.
type CreateRequest struct {
	Name    string
	AdminID *string
}

// UpdateRequest defines the fields that can be updated.
// Use pointers to distinguish between "field not sent" and zero values.
type UpdateRequest struct {
	Name     *string
	AdminID  *string
	IsActive *bool
}

// Service defines business logic for dachas.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Dacha, error)
	GetByID(ctx context.Context, id string) (*Dacha, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Dacha, error)
	Delete(ctx context.Context, id string) error
	ListMine(ctx context.Context, adminID string) ([]*Dacha, error)
	ListOverview(ctx context.Context, today time.Time) ([]*Overview, error)

	// Ownership checks used by the booking engine. GetActiveOwned is for
	// creating bookings; existing bookings only require ownership, so a
	// deactivated dacha can still be managed.
	GetOwned(ctx context.Context, id, adminID string) (*Dacha, error)
	GetActiveOwned(ctx context.Context, id, adminID string) (*Dacha, error)
	ListOwnedIDs(ctx context.Context, adminID string) ([]string, error)
}

type service struct {
	repo Repository
}

// NewService creates a new dacha Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Dacha, error) {
	name := strings.TrimSpace(req.Name)
	if len([]rune(name)) < 2 {
		return nil, ErrInvalidName
	}

	d := &Dacha{
		Name:     name,
		AdminID:  req.AdminID,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Dacha, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Dacha, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len([]rune(name)) < 2 {
			return nil, ErrInvalidName
		}
		d.Name = name
	}
	if req.AdminID != nil {
		d.AdminID = req.AdminID
	}
	if req.IsActive != nil {
		d.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	return d, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListMine(ctx context.Context, adminID string) ([]*Dacha, error) {
	return s.repo.ListByAdmin(ctx, adminID)
}

func (s *service) ListOverview(ctx context.Context, today time.Time) ([]*Overview, error) {
	return s.repo.ListOverview(ctx, today)
}

func (s *service) GetOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	return s.repo.GetOwned(ctx, id, adminID)
}

func (s *service) GetActiveOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	return s.repo.GetActiveOwned(ctx, id, adminID)
}

func (s *service) ListOwnedIDs(ctx context.Context, adminID string) ([]string, error) {
	return s.repo.ListIDsByAdmin(ctx, adminID)
}
