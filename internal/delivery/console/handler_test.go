package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/vogiaan1904/eventease/config"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/internal/service"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type testApp struct {
	users    service.UserService
	events   service.EventService
	bookings service.BookingService
	sessions service.SessionService

	userRepo    flatfile.UserRepository
	eventRepo   flatfile.EventRepository
	bookingRepo flatfile.BookingRepository
}

func newTestApp(t *testing.T, ttl time.Duration) *testApp {
	t.Helper()
	return newTestAppWithLogin(t, ttl, config.LoginConfig{RateInterval: time.Millisecond, RateBurst: 100})
}

func newTestAppWithLogin(t *testing.T, ttl time.Duration, login config.LoginConfig) *testApp {
	t.Helper()
	dir := t.TempDir()
	l := logger.InitializeNopLogger()

	userRepo := flatfile.NewUserRepository(filepath.Join(dir, "user_info.txt"),
		flatfile.UserRepositoryOptions{Rand: rand.New(rand.NewPCG(1, 2))}, l)
	eventRepo := flatfile.NewEventRepository(filepath.Join(dir, "events.txt"), l)
	bookingRepo := flatfile.NewBookingRepository(filepath.Join(dir, "bookings.txt"), eventRepo, l)

	sessions := service.NewSessionService(config.SessionConfig{Secret: "test", TTL: ttl}, l)
	users, err := service.NewUserService(userRepo, sessions,
		config.AdminConfig{Username: "admin", Password: "password", BcryptCost: bcrypt.MinCost},
		login, l)
	if err != nil {
		t.Fatalf("NewUserService: %v", err)
	}
	events := service.NewEventService(eventRepo, bookingRepo, sessions, l)

	return &testApp{
		users:       users,
		events:      events,
		bookings:    service.NewBookingService(bookingRepo, events, sessions, l),
		sessions:    sessions,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		bookingRepo: bookingRepo,
	}
}

// run feeds input to a fresh handler and returns everything it printed.
func (a *testApp) run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	ui := pkgConsole.New(strings.NewReader(input), &out, pkgConsole.Options{Width: 100})
	h := NewHandler(ui, a.users, a.sessions, a.events, a.bookings, logger.InitializeNopLogger())

	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\noutput:\n%s", err, out.String())
	}
	return out.String()
}

func (a *testApp) addEvents(t *testing.T, names ...string) {
	t.Helper()
	ctx := context.Background()
	admin, err := a.users.AdminLogin(ctx, "admin", "password")
	if err != nil {
		t.Fatalf("AdminLogin: %v", err)
	}
	for _, name := range names {
		e := models.Event{Name: name, Venue: "Hall", Date: "01-01-2030", Time: "19:00", SeatCapacity: 100}
		if err := a.events.AddEvent(ctx, admin, e); err != nil {
			t.Fatalf("AddEvent(%q): %v", name, err)
		}
	}
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q\noutput:\n%s", want, out)
		}
	}
}

func TestRegisterBookAndCancel(t *testing.T) {
	app := newTestApp(t, time.Hour)
	app.addEvents(t, "Concert")

	out := app.run(t, strings.Join([]string{
		"1", "Alice", "", // register, continue to dashboard
		"2", "1", "", // book event 1
		"4", "", // my bookings
		"3", "1", "", // cancel event 1
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"Your ticket code is: ",
		"Seat booked successfully for Alice at event ID 1.",
		"       1 | Concert",
		"Booking successfully canceled.",
		"Thank you for using Event-Ease!",
	)

	all, err := app.bookingRepo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("bookings left after cancel: %+v", all)
	}
}

func TestRegisterRetriesRejectedNames(t *testing.T) {
	app := newTestApp(t, time.Hour)
	if _, err := app.users.Register(context.Background(), "Alice"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	out := app.run(t, strings.Join([]string{
		"1",
		"ALICE", "",
		"   ", "",
		"Bob", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"This name is already registered!",
		"Name cannot be empty.",
		"Registration Successful!",
		"Logged in as Bob",
	)

	exists, err := app.userRepo.ExistsName(context.Background(), "bob")
	if err != nil || !exists {
		t.Errorf("ExistsName(bob) = (%v, %v), want (true, nil)", exists, err)
	}
}

func TestInvalidMenuInput(t *testing.T) {
	app := newTestApp(t, time.Hour)

	out := app.run(t, "x\n\n9\n\n0\n")

	assertContains(t, out,
		"Invalid input. Please enter a number.",
		"Invalid choice. Please select again.",
		"Goodbye!",
	)
}

func TestLoginAndLogout(t *testing.T) {
	app := newTestApp(t, time.Hour)
	if err := app.userRepo.Save(context.Background(), 42, "Alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := app.run(t, "2\nAlice\n0042\n\n5\n0\n")
	assertContains(t, out,
		"Login successful!",
		"Logged in as Alice (ticket 0042)",
		"Logging out...",
	)
}

func TestLoginFailures(t *testing.T) {
	app := newTestApp(t, time.Hour)
	if err := app.userRepo.Save(context.Background(), 42, "Alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := app.run(t, strings.Join([]string{
		"2", "alice", "42", "",
		"2", "Alice", "abcd", "",
		"2", "Alice", "12345", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"Invalid credentials. Name or ticket code does not match.",
		"Invalid ticket code format. Please enter a 4-digit number.",
		"Invalid ticket code. Must be between 0000-9999.",
	)
	if strings.Contains(out, "Login successful!") {
		t.Errorf("a failed login reported success:\n%s", out)
	}
}

func TestAdminAddAndEditEvent(t *testing.T) {
	app := newTestApp(t, time.Hour)

	out := app.run(t, strings.Join([]string{
		"3", "admin", "password", "",
		"2", "Concert", "Hall", "1st Jan", "19:00", "100", "",
		"3", "1", "1", "", "Arena", "", "", "", "",
		"4", "",
		"1", "",
		"5",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"Admin login successful!",
		`Warning: date "1st Jan" is not in DD-MM-YYYY format.`,
		"Event added successfully!",
		"Event updated successfully!",
		"No users found.",
		"No bookings found.",
		"Logging out of admin panel...",
	)

	e, err := app.eventRepo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := models.Event{Name: "Concert", Venue: "Arena", Date: "1st Jan", Time: "19:00", SeatCapacity: 100}
	if e != want {
		t.Errorf("event = %+v, want %+v", e, want)
	}
}

func TestAdminRejectsInvalidEvent(t *testing.T) {
	app := newTestApp(t, time.Hour)

	out := app.run(t, strings.Join([]string{
		"3", "admin", "password", "",
		"2", "A|B", "Hall", "01-01-2030", "19:00", "10", "",
		"2", "Show", "Hall", "01-01-2030", "19:00", "many", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"Invalid event details",
		"Invalid input for seat capacity.",
	)

	events, err := app.eventRepo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("invalid events were stored: %+v", events)
	}
}

func TestAdminDeleteEventReportsShiftedBookings(t *testing.T) {
	app := newTestApp(t, time.Hour)
	app.addEvents(t, "One", "Two")
	if err := app.bookingRepo.Append(context.Background(), 2, "Alice"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	out := app.run(t, strings.Join([]string{
		"3", "admin", "password", "",
		"3", "1", "2", "",
		"1", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		`Event "One" deleted successfully!`,
		"1 booking(s) now refer to a different event.",
		"       2 | Alice | Unknown Event",
	)

	events, err := app.eventRepo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 1 || events[0].Name != "Two" {
		t.Errorf("events after delete = %+v", events)
	}
}

func TestAdminLoginRejected(t *testing.T) {
	app := newTestApp(t, time.Hour)

	out := app.run(t, "3\nadmin\nwrong\n\n0\n")
	assertContains(t, out, "Invalid admin credentials.", "Access denied.")
}

func TestExpiredSessionReturnsToLanding(t *testing.T) {
	app := newTestApp(t, -time.Minute)
	if err := app.userRepo.Save(context.Background(), 42, "Alice"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out := app.run(t, "2\nAlice\n42\n\n\n0\n")
	assertContains(t, out, "Your session has expired. Please log in again.")
	if strings.Contains(out, "User Dashboard") {
		t.Errorf("dashboard shown for an expired session:\n%s", out)
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	app := newTestApp(t, time.Hour)

	out := app.run(t, "1\n")
	assertContains(t, out, "New User Registration", "Goodbye!")
}

func TestRunCancelled(t *testing.T) {
	app := newTestApp(t, time.Hour)
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	ui := pkgConsole.New(pr, &out, pkgConsole.Options{Width: 100})
	h := NewHandler(ui, app.users, app.sessions, app.events, app.bookings, logger.InitializeNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := h.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestEditKeepsCapacityOnNonNumericAnswer(t *testing.T) {
	app := newTestApp(t, time.Hour)
	app.addEvents(t, "Concert")

	out := app.run(t, strings.Join([]string{
		"3", "admin", "password", "",
		"3", "1", "1", "", "Arena", "", "", "lots", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		`Seat capacity "lots" is not a number, keeping 100.`,
		"Event updated successfully!",
	)

	e, err := app.eventRepo.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if e.Venue != "Arena" || e.SeatCapacity != 100 {
		t.Errorf("event = %+v, want venue Arena and capacity 100", e)
	}
}

func TestRegisterLogsInWhenLoginsAreThrottled(t *testing.T) {
	app := newTestAppWithLogin(t, time.Hour, config.LoginConfig{RateInterval: time.Hour, RateBurst: 1})

	out := app.run(t, strings.Join([]string{
		"2", "Nobody", "1", "", // spends the only login attempt
		"1", "Bob", "",
		"0",
	}, "\n")+"\n")

	assertContains(t, out,
		"Invalid credentials.",
		"Registration Successful!",
		"Logged in as Bob",
	)
}
