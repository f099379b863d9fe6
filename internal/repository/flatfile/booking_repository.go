package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type flatfileBookingRepository struct {
	path   string
	events EventRepository
	l      logger.Logger
}

func NewBookingRepository(path string, events EventRepository, l logger.Logger) BookingRepository {
	return &flatfileBookingRepository{
		path:   path,
		events: events,
		l:      l,
	}
}

func (r *flatfileBookingRepository) Append(ctx context.Context, id models.EventID, userName string) error {
	if err := appendLine(r.path, formatBooking(id, userName)); err != nil {
		r.l.Errorf(ctx, "flatfileBookingRepository.Append: %v", err)
		return fmt.Errorf("saving booking: %w", err)
	}

	r.l.Infof(ctx, "Booking saved for event %d", id)
	return nil
}

func (r *flatfileBookingRepository) ListAll(ctx context.Context) ([]models.Booking, error) {
	return r.list(ctx, func(models.Booking) bool { return true })
}

// ListFor returns the bookings whose name equals userName exactly.
func (r *flatfileBookingRepository) ListFor(ctx context.Context, userName string) ([]models.Booking, error) {
	return r.list(ctx, func(b models.Booking) bool { return b.UserName == userName })
}

func (r *flatfileBookingRepository) list(ctx context.Context, keep func(models.Booking) bool) ([]models.Booking, error) {
	var bookings []models.Booking
	err := scanLines(r.path, func(lineNo int, line string) bool {
		if line == "" {
			return false
		}
		b, ok := parseBooking(line)
		if !ok {
			r.l.Debugf(ctx, "flatfileBookingRepository.list: %v at %s:%d", errs.ErrMalformedInput, r.path, lineNo)
			return false
		}
		if keep(b) {
			bookings = append(bookings, b)
		}
		return false
	})
	if err != nil {
		r.l.Errorf(ctx, "flatfileBookingRepository.list: %v", err)
		return nil, err
	}
	return bookings, nil
}

// Remove cancels one booking: the first line matching (id, userName)
// exactly. Later duplicates and every other line, including ones that do
// not parse, are kept byte for byte. It reports whether a line was removed;
// when none was, the file is not touched.
func (r *flatfileBookingRepository) Remove(ctx context.Context, id models.EventID, userName string) (bool, error) {
	src, err := os.Open(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		err = fmt.Errorf("%w: opening %s: %w", errs.ErrStoreUnavailable, r.path, err)
		r.l.Errorf(ctx, "flatfileBookingRepository.Remove: %v", err)
		return false, err
	}
	defer src.Close()

	removed, err := rewriteFile(r.path, func(w *bufio.Writer) (bool, error) {
		found := false
		scanner := newLineScanner(src)
		for scanner.Scan() {
			raw := scanner.Text()
			if !found {
				if b, ok := parseBooking(trimLine(raw)); ok && b.Matches(id, userName) {
					found = true
					continue
				}
			}
			if _, err := w.WriteString(raw + "\n"); err != nil {
				return false, err
			}
		}
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("reading %s: %w", r.path, err)
		}
		return found, nil
	})
	if err != nil {
		r.l.Errorf(ctx, "flatfileBookingRepository.Remove: %v", err)
		return false, err
	}

	if removed {
		r.l.Infof(ctx, "Booking removed for event %d", id)
	}
	return removed, nil
}

// ResolveEventName never fails; anything that does not resolve to an event
// yields UnknownEventName.
func (r *flatfileBookingRepository) ResolveEventName(ctx context.Context, id models.EventID) string {
	e, err := r.events.Get(ctx, id)
	if err != nil {
		return UnknownEventName
	}
	return e.Name
}

// Reset deletes every booking.
func (r *flatfileBookingRepository) Reset(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.l.Errorf(ctx, "flatfileBookingRepository.Reset: %v", err)
		return fmt.Errorf("%w: removing %s: %w", errs.ErrStoreUnavailable, r.path, err)
	}

	r.l.Warnf(ctx, "All bookings cleared")
	return nil
}
