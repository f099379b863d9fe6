// Package flatfile stores users, events and bookings in line-oriented text
// files. Every call opens the file, scans or rewrites it completely and
// closes it again; nothing is cached between calls.
//
// Destructive rewrites go through a temporary file in the same directory
// that is renamed over the original, so a crash leaves either the old or
// the new content on disk.
package flatfile

import (
	"context"

	"github.com/vogiaan1904/eventease/internal/models"
)

// UnknownEventName is returned by ResolveEventName for positions that do not
// refer to an event.
const UnknownEventName = "Unknown Event"

type UserRepository interface {
	ExistsTicket(ctx context.Context, code int) (bool, error)
	ExistsName(ctx context.Context, name string) (bool, error)
	GenerateUniqueTicket(ctx context.Context) (int, error)
	Save(ctx context.Context, code int, name string) error
	ValidateLogin(ctx context.Context, name string, code int) (bool, error)
	List(ctx context.Context) ([]models.User, error)
}

type EventRepository interface {
	List(ctx context.Context) ([]models.Event, error)
	Get(ctx context.Context, id models.EventID) (models.Event, error)
	Add(ctx context.Context, e models.Event) error
	UpdateAt(ctx context.Context, id models.EventID, patch models.EventPatch) (models.Event, error)
	DeleteAt(ctx context.Context, id models.EventID) (models.Event, error)
}

type BookingRepository interface {
	Append(ctx context.Context, id models.EventID, userName string) error
	ListAll(ctx context.Context) ([]models.Booking, error)
	ListFor(ctx context.Context, userName string) ([]models.Booking, error)
	Remove(ctx context.Context, id models.EventID, userName string) (bool, error)
	ResolveEventName(ctx context.Context, id models.EventID) string
	Reset(ctx context.Context) error
}
