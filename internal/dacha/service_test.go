package dacha

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memDachaRepo struct {
	mu     sync.Mutex
	seq    int
	dachas map[string]*Dacha
}

func newMemDachaRepo() *memDachaRepo {
	return &memDachaRepo{dachas: make(map[string]*Dacha)}
}

func (r *memDachaRepo) Create(ctx context.Context, d *Dacha) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	d.ID = fmt.Sprintf("dacha-%03d", r.seq)
	cp := *d
	r.dachas[d.ID] = &cp
	return nil
}

func (r *memDachaRepo) GetByID(ctx context.Context, id string) (*Dacha, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dachas[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDachaRepo) GetOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.dachas[id]
	if !ok || d.AdminID == nil || *d.AdminID != adminID {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *memDachaRepo) GetActiveOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	d, err := r.GetOwned(ctx, id, adminID)
	if err != nil {
		return nil, err
	}
	if !d.IsActive {
		return nil, ErrNotFound
	}
	return d, nil
}

func (r *memDachaRepo) ListByAdmin(ctx context.Context, adminID string) ([]*Dacha, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Dacha
	for _, d := range r.dachas {
		if d.AdminID != nil && *d.AdminID == adminID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDachaRepo) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	owned, err := r.ListByAdmin(ctx, adminID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(owned))
	for i, d := range owned {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *memDachaRepo) ListOverview(ctx context.Context, today time.Time) ([]*Overview, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*Overview
	for _, d := range r.dachas {
		cp := *d
		out = append(out, &Overview{Dacha: cp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memDachaRepo) Update(ctx context.Context, d *Dacha) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.dachas[d.ID]; !ok {
		return ErrNotFound
	}
	cp := *d
	r.dachas[d.ID] = &cp
	return nil
}

func (r *memDachaRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.dachas[id]; !ok {
		return ErrNotFound
	}
	delete(r.dachas, id)
	return nil
}

func strptr(s string) *string { return &s }

func TestCreateDacha(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemDachaRepo())

	d, err := svc.Create(ctx, CreateRequest{Name: "  Lakeside  ", AdminID: strptr("admin-1")})
	require.NoError(t, err)
	assert.Equal(t, "Lakeside", d.Name, "names are trimmed")
	assert.True(t, d.IsActive)
	assert.NotEmpty(t, d.ID)

	// A dacha may start unassigned.
	d, err = svc.Create(ctx, CreateRequest{Name: "Hilltop"})
	require.NoError(t, err)
	assert.Nil(t, d.AdminID)
}

func TestCreateDachaRejectsShortName(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemDachaRepo())

	for _, name := range []string{"", "   ", "x", " x "} {
		_, err := svc.Create(ctx, CreateRequest{Name: name})
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	// Two non-ASCII runes are enough.
	_, err := svc.Create(ctx, CreateRequest{Name: "Оқ"})
	assert.NoError(t, err)
}

func TestUpdateDachaPartial(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemDachaRepo())

	d, err := svc.Create(ctx, CreateRequest{Name: "Lakeside", AdminID: strptr("admin-1")})
	require.NoError(t, err)

	inactive := false
	updated, err := svc.Update(ctx, d.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Lakeside", updated.Name, "omitted fields keep their values")
	require.NotNil(t, updated.AdminID)
	assert.Equal(t, "admin-1", *updated.AdminID)

	updated, err = svc.Update(ctx, d.ID, UpdateRequest{
		Name:    strptr("  Riverside  "),
		AdminID: strptr("admin-2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Riverside", updated.Name)
	assert.Equal(t, "admin-2", *updated.AdminID)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, d.ID, UpdateRequest{Name: strptr(" ")})
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = svc.Update(ctx, "missing", UpdateRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOwnershipLookups(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemDachaRepo())

	mine, err := svc.Create(ctx, CreateRequest{Name: "Lakeside", AdminID: strptr("admin-1")})
	require.NoError(t, err)
	theirs, err := svc.Create(ctx, CreateRequest{Name: "Hilltop", AdminID: strptr("admin-2")})
	require.NoError(t, err)

	got, err := svc.GetOwned(ctx, mine.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = svc.GetOwned(ctx, theirs.ID, "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deactivation hides a dacha from GetActiveOwned but not GetOwned.
	inactive := false
	_, err = svc.Update(ctx, mine.ID, UpdateRequest{IsActive: &inactive})
	require.NoError(t, err)

	_, err = svc.GetOwned(ctx, mine.ID, "admin-1")
	assert.NoError(t, err)
	_, err = svc.GetActiveOwned(ctx, mine.ID, "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)

	ids, err := svc.ListOwnedIDs(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, []string{mine.ID}, ids)
}

func TestListMine(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemDachaRepo())

	_, err := svc.Create(ctx, CreateRequest{Name: "Lakeside", AdminID: strptr("admin-1")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Hilltop", AdminID: strptr("admin-1")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Name: "Meadow", AdminID: strptr("admin-2")})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, "admin-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
