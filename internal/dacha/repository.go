package dacha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines methods for accessing dacha data from storage.
type Repository interface {
	Create(ctx context.Context, d *Dacha) error
	GetByID(ctx context.Context, id string) (*Dacha, error)
	// GetOwned returns the dacha only if it is assigned to the given admin.
	GetOwned(ctx context.Context, id, adminID string) (*Dacha, error)
	// GetActiveOwned additionally requires the dacha itself to be active.
	GetActiveOwned(ctx context.Context, id, adminID string) (*Dacha, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*Dacha, error)
	ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error)
	// ListOverview returns every dacha with its admin and upcoming active
	// bookings (end date on or after the given day), newest dacha first.
	ListOverview(ctx context.Context, today time.Time) ([]*Overview, error)
	Update(ctx context.Context, d *Dacha) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRepository creates a new Repository implementation using pgxpool.
func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var dachaColumns = []string{"id", "name", "admin_id", "is_active", "created_at", "updated_at"}

func (r *pgxRepository) Create(ctx context.Context, d *Dacha) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.dachas").
		Columns("name", "admin_id", "is_active").
		Values(d.Name, d.AdminID, d.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create dacha query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *pgxRepository) getWhere(ctx context.Context, conds ...squirrel.Sqlizer) (*Dacha, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Select(dachaColumns...).From("public.dachas")
	for _, cond := range conds {
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get dacha query failed: %w", err)
	}

	var d Dacha
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&d.ID, &d.Name, &d.AdminID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get dacha failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Dacha, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id})
}

func (r *pgxRepository) GetOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id, "admin_id": adminID})
}

func (r *pgxRepository) GetActiveOwned(ctx context.Context, id, adminID string) (*Dacha, error) {
	return r.getWhere(ctx, squirrel.Eq{"id": id, "admin_id": adminID, "is_active": true})
}

func (r *pgxRepository) ListByAdmin(ctx context.Context, adminID string) ([]*Dacha, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(dachaColumns...).
		From("public.dachas").
		Where(squirrel.Eq{"admin_id": adminID, "is_active": true}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list dachas query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dachas failed: %w", err)
	}
	defer rows.Close()

	var dachas []*Dacha
	for rows.Next() {
		var d Dacha
		if err := rows.Scan(
			&d.ID, &d.Name, &d.AdminID, &d.IsActive, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan dacha failed: %w", err)
		}
		dachas = append(dachas, &d)
	}

	return dachas, rows.Err()
}

func (r *pgxRepository) ListIDsByAdmin(ctx context.Context, adminID string) ([]string, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id").
		From("public.dachas").
		Where(squirrel.Eq{"admin_id": adminID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list dacha ids query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list dacha ids failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan dacha id failed: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *pgxRepository) ListOverview(ctx context.Context, today time.Time) ([]*Overview, error) {
	// Upcoming bookings are fetched as a JSON array per dacha so the
	// overview stays a single round trip.
	const query = `
		SELECT
			d.id,
			d.name,
			d.admin_id,
			d.is_active,
			d.created_at,
			d.updated_at,
			u.id,
			u.username,
			u.role,
			COALESCE(
				(
					SELECT json_agg(json_build_object(
						'id', b.id,
						'start_date', b.start_date,
						'end_date', b.end_date,
						'ordered_by', b.ordered_by
					) ORDER BY b.start_date)
					FROM public.bookings b
					WHERE b.dacha_id = d.id
					  AND b.is_active = true
					  AND b.end_date >= $1
				),
				'[]'::json
			) AS upcoming
		FROM public.dachas d
		LEFT JOIN public.users u ON d.admin_id = u.id
		ORDER BY d.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, today)
	if err != nil {
		return nil, fmt.Errorf("list dacha overview failed: %w", err)
	}
	defer rows.Close()

	var overviews []*Overview
	for rows.Next() {
		var o Overview
		var adminID, adminUsername, adminRole *string
		var upcomingJSON []byte

		if err := rows.Scan(
			&o.ID, &o.Name, &o.AdminID, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
			&adminID, &adminUsername, &adminRole, &upcomingJSON,
		); err != nil {
			return nil, fmt.Errorf("scan dacha overview failed: %w", err)
		}

		if adminID != nil {
			o.Admin = &AdminTag{ID: *adminID, Username: *adminUsername, Role: *adminRole}
		}

		if err := unmarshalBriefs(upcomingJSON, &o.Upcoming); err != nil {
			return nil, fmt.Errorf("decode upcoming bookings failed: %w", err)
		}

		overviews = append(overviews, &o)
	}

	return overviews, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, d *Dacha) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.dachas").
		Set("name", d.Name).
		Set("admin_id", d.AdminID).
		Set("is_active", d.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update dacha query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update dacha failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.dachas").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete dacha query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete dacha failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// json_build_object renders date columns as bare "2006-01-02" strings,
// so the dates are parsed by hand rather than through time.Time.
func unmarshalBriefs(data []byte, out *[]BookingBrief) error {
	var raw []struct {
		ID        string `json:"id"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		OrderedBy string `json:"ordered_by"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	briefs := make([]BookingBrief, len(raw))
	for i, b := range raw {
		start, err := time.ParseInLocation("2006-01-02", b.StartDate, time.UTC)
		if err != nil {
			return err
		}
		end, err := time.ParseInLocation("2006-01-02", b.EndDate, time.UTC)
		if err != nil {
			return err
		}
		briefs[i] = BookingBrief{
			ID:        b.ID,
			StartDate: start,
			EndDate:   end,
			OrderedBy: b.OrderedBy,
		}
	}
	*out = briefs
	return nil
}
