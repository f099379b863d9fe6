package flatfile

import (
	"context"
	"fmt"

	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type flatfileEventRepository struct {
	path string
	l    logger.Logger
}

func NewEventRepository(path string, l logger.Logger) EventRepository {
	return &flatfileEventRepository{
		path: path,
		l:    l,
	}
}

// List returns the well-formed events in file order. Malformed lines are
// dropped and do not take up a position.
func (r *flatfileEventRepository) List(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := scanLines(r.path, func(lineNo int, line string) bool {
		if line == "" {
			return false
		}
		e, ok := parseEvent(line)
		if !ok {
			r.l.Debugf(ctx, "flatfileEventRepository.List: %v at %s:%d", errs.ErrMalformedInput, r.path, lineNo)
			return false
		}
		events = append(events, e)
		return false
	})
	if err != nil {
		r.l.Errorf(ctx, "flatfileEventRepository.List: %v", err)
		return nil, err
	}
	return events, nil
}

func (r *flatfileEventRepository) Get(ctx context.Context, id models.EventID) (models.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return models.Event{}, err
	}
	if !inRange(id, len(events)) {
		return models.Event{}, fmt.Errorf("event %d: %w", id, errs.ErrNotFound)
	}
	return events[id.Index()], nil
}

func (r *flatfileEventRepository) Add(ctx context.Context, e models.Event) error {
	if err := appendLine(r.path, formatEvent(e)); err != nil {
		r.l.Errorf(ctx, "flatfileEventRepository.Add: %v", err)
		return fmt.Errorf("adding event: %w", err)
	}

	r.l.Infof(ctx, "Event added: %s", e.Name)
	return nil
}

func (r *flatfileEventRepository) UpdateAt(ctx context.Context, id models.EventID, patch models.EventPatch) (models.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return models.Event{}, err
	}
	if !inRange(id, len(events)) {
		return models.Event{}, fmt.Errorf("event %d: %w", id, errs.ErrNotFound)
	}

	updated := events[id.Index()].Apply(patch)
	events[id.Index()] = updated

	if err := r.store(events); err != nil {
		r.l.Errorf(ctx, "flatfileEventRepository.UpdateAt: %v", err)
		return models.Event{}, fmt.Errorf("updating event %d: %w", id, err)
	}

	r.l.Infof(ctx, "Event %d updated", id)
	return updated, nil
}

// DeleteAt removes the event at id. Every later event moves down one
// position.
func (r *flatfileEventRepository) DeleteAt(ctx context.Context, id models.EventID) (models.Event, error) {
	events, err := r.List(ctx)
	if err != nil {
		return models.Event{}, err
	}
	if !inRange(id, len(events)) {
		return models.Event{}, fmt.Errorf("event %d: %w", id, errs.ErrNotFound)
	}

	removed := events[id.Index()]
	events = append(events[:id.Index()], events[id.Index()+1:]...)

	if err := r.store(events); err != nil {
		r.l.Errorf(ctx, "flatfileEventRepository.DeleteAt: %v", err)
		return models.Event{}, fmt.Errorf("deleting event %d: %w", id, err)
	}

	r.l.Infof(ctx, "Event %d deleted: %s", id, removed.Name)
	return removed, nil
}

func (r *flatfileEventRepository) store(events []models.Event) error {
	lines := make([]string, len(events))
	for i, e := range events {
		lines[i] = formatEvent(e)
	}
	return writeAll(r.path, lines)
}

func inRange(id models.EventID, n int) bool {
	return id >= 1 && int(id) <= n
}
