package service

import (
	"context"

	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type bookingService struct {
	bookings flatfile.BookingRepository
	events   EventService
	sessions SessionService
	l        logger.Logger
}

func NewBookingService(
	bookings flatfile.BookingRepository,
	events EventService,
	sessions SessionService,
	l logger.Logger,
) BookingService {
	return &bookingService{
		bookings: bookings,
		events:   events,
		sessions: sessions,
		l:        l,
	}
}

// Book reserves a seat at id for the session's user. Seat capacity is not
// enforced.
func (s *bookingService) Book(ctx context.Context, ss *models.Session, id models.EventID) (*BookingView, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleUser); err != nil {
		return nil, err
	}

	e, err := s.events.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Append(ctx, id, ss.UserName); err != nil {
		s.l.Errorf(ctx, "bookingService.Book: %v", err)
		return nil, err
	}

	return &BookingView{EventID: id, EventName: e.Name, UserName: ss.UserName}, nil
}

func (s *bookingService) Cancel(ctx context.Context, ss *models.Session, id models.EventID) error {
	if err := s.sessions.Authorize(ctx, ss, models.RoleUser); err != nil {
		return err
	}

	found, err := s.bookings.Remove(ctx, id, ss.UserName)
	if err != nil {
		s.l.Errorf(ctx, "bookingService.Cancel: %v", err)
		return err
	}
	if !found {
		return ErrBookingNotFound
	}
	return nil
}

func (s *bookingService) ListAll(ctx context.Context, ss *models.Session) ([]BookingView, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleAdmin); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bookings), nil
}

func (s *bookingService) ListMine(ctx context.Context, ss *models.Session) ([]BookingView, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleUser); err != nil {
		return nil, err
	}

	bookings, err := s.bookings.ListFor(ctx, ss.UserName)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, bookings), nil
}

func (s *bookingService) CountFor(ctx context.Context, id models.EventID) (int, error) {
	bookings, err := s.bookings.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range bookings {
		if b.EventID == id {
			n++
		}
	}
	return n, nil
}

func (s *bookingService) ResolveEventName(ctx context.Context, id models.EventID) string {
	return s.bookings.ResolveEventName(ctx, id)
}

func (s *bookingService) views(ctx context.Context, bookings []models.Booking) []BookingView {
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, BookingView{
			EventID:   b.EventID,
			EventName: s.bookings.ResolveEventName(ctx, b.EventID),
			UserName:  b.UserName,
		})
	}
	return out
}
