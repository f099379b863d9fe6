package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type eventService struct {
	events   flatfile.EventRepository
	bookings flatfile.BookingRepository
	sessions SessionService
	l        logger.Logger
}

func NewEventService(
	events flatfile.EventRepository,
	bookings flatfile.BookingRepository,
	sessions SessionService,
	l logger.Logger,
) EventService {
	return &eventService{
		events:   events,
		bookings: bookings,
		sessions: sessions,
		l:        l,
	}
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.List(ctx)
}

func (s *eventService) GetEvent(ctx context.Context, id models.EventID) (models.Event, error) {
	e, err := s.events.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return models.Event{}, ErrEventNotFound
		}
		return models.Event{}, err
	}
	return e, nil
}

func (s *eventService) AddEvent(ctx context.Context, ss *models.Session, e models.Event) error {
	if err := s.sessions.Authorize(ctx, ss, models.RoleAdmin); err != nil {
		return err
	}

	for _, f := range []string{e.Name, e.Venue, e.Date, e.Time} {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: all fields are required", ErrInvalidEvent)
		}
	}
	if err := checkFields(e.Name, e.Venue, e.Date, e.Time); err != nil {
		return err
	}
	if e.SeatCapacity <= 0 {
		return fmt.Errorf("%w: seat capacity must be positive", ErrInvalidEvent)
	}

	return s.events.Add(ctx, e)
}

func (s *eventService) UpdateEvent(ctx context.Context, ss *models.Session, id models.EventID, patch models.EventPatch) (models.Event, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleAdmin); err != nil {
		return models.Event{}, err
	}
	if err := checkFields(patch.Name, patch.Venue, patch.Date, patch.Time); err != nil {
		return models.Event{}, err
	}

	updated, err := s.events.UpdateAt(ctx, id, patch)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return models.Event{}, ErrEventNotFound
		}
		s.l.Errorf(ctx, "eventService.UpdateEvent: %v", err)
		return models.Event{}, err
	}
	return updated, nil
}

// DeleteEvent removes the event at id. Bookings refer to events by position,
// so bookings for id and every later position silently point at another
// event afterwards. They are counted and logged, not repaired.
func (s *eventService) DeleteEvent(ctx context.Context, ss *models.Session, id models.EventID) (*DeleteEventOutput, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleAdmin); err != nil {
		return nil, err
	}

	removed, err := s.events.DeleteAt(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		s.l.Errorf(ctx, "eventService.DeleteEvent: %v", err)
		return nil, err
	}

	out := &DeleteEventOutput{Removed: removed}

	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		s.l.Warnf(ctx, "eventService.DeleteEvent: counting affected bookings: %v", err)
		return out, nil
	}
	for _, b := range bookings {
		if b.EventID >= id {
			out.AffectedBookings++
		}
	}
	if out.AffectedBookings > 0 {
		s.l.Warnf(ctx, "Event %d deleted; %d bookings now reference a different event", id, out.AffectedBookings)
	}

	return out, nil
}

// checkFields rejects values that would break the one-line, |-separated
// record layout.
func checkFields(fields ...string) error {
	for _, f := range fields {
		if strings.ContainsAny(f, "|\r\n") {
			return fmt.Errorf("%w: fields must not contain '|' or line breaks", ErrInvalidEvent)
		}
	}
	return nil
}
