package service

import (
	"context"

	"github.com/vogiaan1904/eventease/internal/models"
)

type UserService interface {
	Register(ctx context.Context, name string) (*models.User, error)
	Login(ctx context.Context, name string, ticket int) (*models.Session, error)
	AdminLogin(ctx context.Context, username, password string) (*models.Session, error)
	ListUsers(ctx context.Context, ss *models.Session) ([]models.User, error)
}

type SessionService interface {
	Issue(ctx context.Context, role models.Role, userName string, ticket int) (*models.Session, error)
	Validate(ctx context.Context, ss *models.Session) error
	Authorize(ctx context.Context, ss *models.Session, role models.Role) error
}

type EventService interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id models.EventID) (models.Event, error)
	AddEvent(ctx context.Context, ss *models.Session, e models.Event) error
	UpdateEvent(ctx context.Context, ss *models.Session, id models.EventID, patch models.EventPatch) (models.Event, error)
	DeleteEvent(ctx context.Context, ss *models.Session, id models.EventID) (*DeleteEventOutput, error)
}

type BookingService interface {
	Book(ctx context.Context, ss *models.Session, id models.EventID) (*BookingView, error)
	Cancel(ctx context.Context, ss *models.Session, id models.EventID) error
	ListAll(ctx context.Context, ss *models.Session) ([]BookingView, error)
	ListMine(ctx context.Context, ss *models.Session) ([]BookingView, error)
	CountFor(ctx context.Context, id models.EventID) (int, error)
	ResolveEventName(ctx context.Context, id models.EventID) string
}
