package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dachabook/dacha-booking-backend/internal/auth"
)

// UpdateAdminRequest defines the fields a superadmin can change on an admin account.
// Use pointers to distinguish between "field not sent" and "field sent as false/empty".
type UpdateAdminRequest struct {
	Password *string
	IsActive *bool
}

// Service defines business logic related to panel accounts.
type Service interface {
	Login(ctx context.Context, username, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	CreateAdmin(ctx context.Context, username, password string) (*User, error)
	ListAdmins(ctx context.Context) ([]*User, error)
	UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*User, error)
	DeleteAdmin(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	cleanUsername := normalizeUsername(username)
	if cleanUsername == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, cleanUsername)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by username: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateAdmin registers a new admin account. Superadmins are seeded
// directly in the database, never created through the API.
func (s *service) CreateAdmin(ctx context.Context, username, password string) (*User, error) {
	cleanUsername := normalizeUsername(username)
	if cleanUsername == "" {
		return nil, ErrUsernameRequired
	}

	if len(password) < s.minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     cleanUsername,
		PasswordHash: hash,
		Role:         RoleAdmin,
		IsActive:     true,
	}

	// Uniqueness is enforced by the repository so concurrent creates
	// cannot both slip past a read check.
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) ListAdmins(ctx context.Context) ([]*User, error) {
	return s.repo.ListByRole(ctx, RoleAdmin)
}

func (s *service) UpdateAdmin(ctx context.Context, id string, req UpdateAdminRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != RoleAdmin {
		// Superadmin accounts are not editable through this endpoint.
		return nil, ErrNotFound
	}

	if req.Password != nil {
		if len(*req.Password) < s.minPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) DeleteAdmin(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role != RoleAdmin {
		return ErrNotFound
	}

	return s.repo.Delete(ctx, id)
}

// normalizeUsername trims spaces and lowercases the username.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
