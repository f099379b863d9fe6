package service

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vogiaan1904/eventease/config"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type testEnv struct {
	users    UserService
	sessions SessionService
	events   EventService
	bookings BookingService

	userRepo    flatfile.UserRepository
	eventRepo   flatfile.EventRepository
	bookingRepo flatfile.BookingRepository
}

func newTestEnv(t *testing.T, login config.LoginConfig) *testEnv {
	t.Helper()
	dir := t.TempDir()
	l := logger.InitializeNopLogger()

	userRepo := flatfile.NewUserRepository(filepath.Join(dir, "user_info.txt"),
		flatfile.UserRepositoryOptions{Rand: rand.New(rand.NewPCG(7, 7))}, l)
	eventRepo := flatfile.NewEventRepository(filepath.Join(dir, "events.txt"), l)
	bookingRepo := flatfile.NewBookingRepository(filepath.Join(dir, "bookings.txt"), eventRepo, l)

	sessions := NewSessionService(config.SessionConfig{Secret: "test-secret", TTL: time.Hour}, l)
	users, err := NewUserService(userRepo, sessions, config.AdminConfig{
		Username:   "admin",
		Password:   "password",
		BcryptCost: bcrypt.MinCost,
	}, login, l)
	if err != nil {
		t.Fatalf("NewUserService: %v", err)
	}
	events := NewEventService(eventRepo, bookingRepo, sessions, l)

	return &testEnv{
		users:       users,
		sessions:    sessions,
		events:      events,
		bookings:    NewBookingService(bookingRepo, events, sessions, l),
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
	}
}

func relaxedLogin() config.LoginConfig {
	return config.LoginConfig{RateInterval: time.Millisecond, RateBurst: 100}
}

func (e *testEnv) admin(t *testing.T) *models.Session {
	t.Helper()
	ss, err := e.users.AdminLogin(context.Background(), "admin", "password")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	return ss
}

func (e *testEnv) user(t *testing.T, name string) *models.Session {
	t.Helper()
	ctx := context.Background()
	u, err := e.users.Register(ctx, name)
	if err != nil {
		t.Fatalf("Register(%q): %v", name, err)
	}
	ss, err := e.users.Login(ctx, name, u.TicketCode)
	if err != nil {
		t.Fatalf("Login(%q): %v", name, err)
	}
	return ss
}

var concert = models.Event{Name: "Concert", Venue: "Hall", Date: "01-01-2030", Time: "19:00", SeatCapacity: 100}
