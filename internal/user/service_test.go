package user

import (
	"context"
	"fmt"
	"sync"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dachabook/dacha-booking-backend/internal/auth"
)

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*User)}
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}

	r.seq++
	u.ID = fmt.Sprintf("user-%03d", r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) ListByRole(ctx context.Context, role string) ([]*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memUserRepo) Update(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// bcrypt's minimum cost keeps the test suite fast.
func newTestService() (Service, *memUserRepo) {
	repo := newMemUserRepo()
	return NewService(repo, auth.NewBcryptPasswordHasher(bcrypt.MinCost)), repo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateAdmin(ctx, "Manager", "swordfish42")
	require.NoError(t, err)
	assert.Equal(t, "manager", created.Username, "usernames are normalized on create")

	u, err := svc.Login(ctx, "  MANAGER ", "swordfish42")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.Equal(t, RoleAdmin, u.Role)

	_, err = svc.Login(ctx, "manager", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "swordfish42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateAdmin(ctx, "manager", "swordfish42")
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateAdmin(ctx, created.ID, UpdateAdminRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "manager", "swordfish42")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestCreateAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	u, err := svc.CreateAdmin(ctx, "manager", "swordfish42")
	require.NoError(t, err)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "swordfish42", u.PasswordHash, "password is never stored in the clear")

	_, err = svc.CreateAdmin(ctx, "MANAGER", "another-pass")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.CreateAdmin(ctx, "   ", "swordfish42")
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.CreateAdmin(ctx, "short", "1234567")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestUpdateAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateAdmin(ctx, "manager", "swordfish42")
	require.NoError(t, err)

	newPass := "hunter2hunter2"
	updated, err := svc.UpdateAdmin(ctx, created.ID, UpdateAdminRequest{Password: &newPass})
	require.NoError(t, err)
	assert.NotEqual(t, created.PasswordHash, updated.PasswordHash)

	_, err = svc.Login(ctx, "manager", newPass)
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "manager", "swordfish42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	tooShort := "short"
	_, err = svc.UpdateAdmin(ctx, created.ID, UpdateAdminRequest{Password: &tooShort})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.UpdateAdmin(ctx, "missing", UpdateAdminRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAdminRefusesSuperadmin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	boss := &User{Username: "boss", PasswordHash: "x", Role: RoleSuperadmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, boss))

	inactive := false
	_, err := svc.UpdateAdmin(ctx, boss.ID, UpdateAdminRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteAdmin(ctx, boss.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	created, err := svc.CreateAdmin(ctx, "manager", "swordfish42")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAdmin(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.DeleteAdmin(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAdmins(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService()

	_, err := svc.CreateAdmin(ctx, "first", "swordfish42")
	require.NoError(t, err)
	_, err = svc.CreateAdmin(ctx, "second", "swordfish42")
	require.NoError(t, err)

	boss := &User{Username: "boss", PasswordHash: "x", Role: RoleSuperadmin, IsActive: true}
	require.NoError(t, repo.Create(ctx, boss))

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 2, "superadmins never show up in the admin list")
}
