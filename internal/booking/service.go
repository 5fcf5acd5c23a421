package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dachabook/dacha-booking-backend/internal/dacha"
	"github.com/dachabook/dacha-booking-backend/internal/notify"
	"github.com/dachabook/dacha-booking-backend/internal/pkg/logger"
)

// CreateRequest carries the fields for a new booking. Dates must already
// be parsed; the service normalizes them to canonical days.
type CreateRequest struct {
	DachaID        string
	StartDate      time.Time
	EndDate        time.Time
	TotalPrice     float64
	AdvancePayment float64
	OrderedBy      string
	Phone1         string
	Phone2         string
}

// RescheduleRequest carries partial updates for an existing booking.
// Nil fields keep their current value.
type RescheduleRequest struct {
	StartDate      *time.Time
	EndDate        *time.Time
	TotalPrice     *float64
	AdvancePayment *float64
	OrderedBy      *string
	Phone1         *string
	Phone2         *string
}

// RemoveDayKind describes what removing a day did to the booking.
type RemoveDayKind string

const (
	// RemoveDeleted: the booking covered only that day and was hard-deleted.
	// This is the one path that bypasses the usual soft-delete policy.
	RemoveDeleted RemoveDayKind = "deleted"
	// RemoveShrunk: the day was at a boundary and the range contracted.
	RemoveShrunk RemoveDayKind = "shrunk"
	// RemoveSplit: the day was interior and the booking split in two.
	RemoveSplit RemoveDayKind = "split"
)

// RemoveDayResult reports the outcome of a remove-day operation.
// Booking is nil for RemoveDeleted; Split is set only for RemoveSplit and
// holds the newly created second half.
type RemoveDayResult struct {
	Kind    RemoveDayKind
	Booking *Booking
	Split   *Booking
}

type Service interface {
	Create(ctx context.Context, actorID string, req CreateRequest) (*Booking, error)
	Reschedule(ctx context.Context, actorID, id string, req RescheduleRequest) (*Booking, error)
	Cancel(ctx context.Context, actorID, id string) (*Booking, error)
	RemoveDay(ctx context.Context, actorID, id string, day time.Time) (*RemoveDayResult, error)
	ListCurrent(ctx context.Context, actorID string) ([]*Booking, error)
	ListHistory(ctx context.Context, actorID string) ([]*Booking, error)
}

// DachaDirectory is the slice of the dacha service the engine needs:
// ownership checks and the actor's dacha ids.
type DachaDirectory interface {
	GetOwned(ctx context.Context, id, adminID string) (*dacha.Dacha, error)
	GetActiveOwned(ctx context.Context, id, adminID string) (*dacha.Dacha, error)
	ListOwnedIDs(ctx context.Context, adminID string) ([]string, error)
}

type service struct {
	repo     Repository
	dachas   DachaDirectory
	notifier notify.Notifier
	log      *logger.Logger

	// now supplies "today" for the expiry sweep; injectable for tests.
	now func() time.Time
}

func NewService(repo Repository, dachas DachaDirectory, notifier notify.Notifier, log *logger.Logger) Service {
	return &service{
		repo:     repo,
		dachas:   dachas,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// conflictError attaches the conflicting booking's id so callers can
// show which reservation is in the way.
func conflictError(b *Booking) error {
	return ErrConflict.WithDetails(map[string]any{
		"conflict_booking_id": b.ID,
	})
}

func (s *service) Create(ctx context.Context, actorID string, req CreateRequest) (*Booking, error) {
	// Creating requires an active dacha owned by the actor. Missing and
	// unowned dachas both report forbidden so ids cannot be probed.
	d, err := s.dachas.GetActiveOwned(ctx, req.DachaID, actorID)
	if err != nil {
		if errors.Is(err, dacha.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	start := Day(req.StartDate)
	end := Day(req.EndDate)
	if start.After(end) {
		return nil, ErrInvalidRange
	}

	conflict, err := s.repo.FindOverlapping(ctx, req.DachaID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictError(conflict)
	}

	b := &Booking{
		DachaID:        req.DachaID,
		StartDate:      start,
		EndDate:        end,
		TotalPrice:     req.TotalPrice,
		AdvancePayment: req.AdvancePayment,
		OrderedBy:      req.OrderedBy,
		Phone1:         req.Phone1,
		Phone2:         req.Phone2,
		CreatedBy:      actorID,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// Fire-and-forget: the notification must never block the response or
	// turn a successful creation into an error.
	go s.notifyCreated(d, b)

	return b, nil
}

func (s *service) notifyCreated(d *dacha.Dacha, b *Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.notifier.BookingCreated(ctx, renderSummary(d, b)); err != nil {
		s.log.Warn("booking notification failed",
			"booking_id", b.ID,
			"error", err,
		)
	}
}

func renderSummary(d *dacha.Dacha, b *Booking) string {
	return fmt.Sprintf(
		"<b>New booking</b>\n"+
			"Dacha: %s\n"+
			"Dates: %s — %s\n"+
			"Total: %.2f (advance %.2f)\n"+
			"Ordered by: %s\n"+
			"Phones: %s %s\n"+
			"ID: %s",
		d.Name,
		b.StartDate.Format(DateLayout), b.EndDate.Format(DateLayout),
		b.TotalPrice, b.AdvancePayment,
		b.OrderedBy,
		b.Phone1, b.Phone2,
		b.ID,
	)
}

func (s *service) Reschedule(ctx context.Context, actorID, id string, req RescheduleRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Managing an existing booking only requires ownership; the dacha
	// itself may have been deactivated since.
	if _, err := s.dachas.GetOwned(ctx, b.DachaID, actorID); err != nil {
		if errors.Is(err, dacha.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	newStart := b.StartDate
	newEnd := b.EndDate
	if req.StartDate != nil {
		newStart = Day(*req.StartDate)
	}
	if req.EndDate != nil {
		newEnd = Day(*req.EndDate)
	}

	if newStart.After(newEnd) {
		return nil, ErrInvalidRange
	}

	// Exclude the booking itself so a no-op reschedule never self-conflicts.
	conflict, err := s.repo.FindOverlapping(ctx, b.DachaID, newStart, newEnd, b.ID)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		return nil, conflictError(conflict)
	}

	b.StartDate = newStart
	b.EndDate = newEnd
	if req.TotalPrice != nil {
		b.TotalPrice = *req.TotalPrice
	}
	if req.AdvancePayment != nil {
		b.AdvancePayment = *req.AdvancePayment
	}
	if req.OrderedBy != nil {
		b.OrderedBy = *req.OrderedBy
	}
	if req.Phone1 != nil {
		b.Phone1 = *req.Phone1
	}
	if req.Phone2 != nil {
		b.Phone2 = *req.Phone2
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.dachas.GetOwned(ctx, b.DachaID, actorID); err != nil {
		if errors.Is(err, dacha.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	// Idempotent: cancelling an already-inactive booking succeeds as a no-op.
	if !b.IsActive {
		return b, nil
	}

	b.IsActive = false
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) RemoveDay(ctx context.Context, actorID, id string, day time.Time) (*RemoveDayResult, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.dachas.GetOwned(ctx, b.DachaID, actorID); err != nil {
		if errors.Is(err, dacha.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	target := Day(day)
	start := Day(b.StartDate)
	end := Day(b.EndDate)

	if target.Before(start) || target.After(end) {
		return nil, ErrDayOutOfRange
	}

	// Single-day booking: nothing valid remains, so the record is removed
	// outright. This intentionally bypasses the soft-delete used by Cancel.
	if start.Equal(end) {
		if err := s.repo.Delete(ctx, b.ID); err != nil {
			return nil, err
		}
		return &RemoveDayResult{Kind: RemoveDeleted}, nil
	}

	// Boundary cases shrink the range by one day. No conflict re-check is
	// needed: the result is a strict subset of an already-conflict-free range.
	if target.Equal(start) {
		b.StartDate = NextDay(start)
		if err := s.repo.Update(ctx, b); err != nil {
			return nil, err
		}
		return &RemoveDayResult{Kind: RemoveShrunk, Booking: b}, nil
	}

	if target.Equal(end) {
		b.EndDate = PrevDay(end)
		if err := s.repo.Update(ctx, b); err != nil {
			return nil, err
		}
		return &RemoveDayResult{Kind: RemoveShrunk, Booking: b}, nil
	}

	// Interior day: split into [start, day-1] and [day+1, end]. Both halves
	// are non-empty because the day is strictly inside the range.
	b.EndDate = PrevDay(target)
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	second := &Booking{
		DachaID:        b.DachaID,
		StartDate:      NextDay(target),
		EndDate:        end,
		TotalPrice:     b.TotalPrice,
		AdvancePayment: b.AdvancePayment,
		OrderedBy:      b.OrderedBy,
		Phone1:         b.Phone1,
		Phone2:         b.Phone2,
		CreatedBy:      b.CreatedBy,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, second); err != nil {
		return nil, err
	}

	return &RemoveDayResult{Kind: RemoveSplit, Booking: b, Split: second}, nil
}

// expireStale runs the lazy expiry sweep: any active booking across the
// whole system whose end date is strictly before today goes inactive.
func (s *service) expireStale(ctx context.Context) error {
	today := Day(s.now())
	n, err := s.repo.DeactivateExpired(ctx, today)
	if err != nil {
		return err
	}
	if n > 0 {
		s.log.Info("expired stale bookings", "count", n)
	}
	return nil
}

func (s *service) ListCurrent(ctx context.Context, actorID string) ([]*Booking, error) {
	if err := s.expireStale(ctx); err != nil {
		return nil, err
	}

	ids, err := s.dachas.ListOwnedIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, Filter{
		DachaIDs:   ids,
		ActiveOnly: true,
		OrderBy:    "start_date ASC",
	})
}

func (s *service) ListHistory(ctx context.Context, actorID string) ([]*Booking, error) {
	if err := s.expireStale(ctx); err != nil {
		return nil, err
	}

	ids, err := s.dachas.ListOwnedIDs(ctx, actorID)
	if err != nil {
		return nil, err
	}

	return s.repo.List(ctx, Filter{
		DachaIDs: ids,
		OrderBy:  "end_date DESC",
	})
}
