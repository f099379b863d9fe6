package console

import (
	"context"
	"errors"

	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/service"
	"github.com/vogiaan1904/eventease/pkg/logger"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
)

type Handler struct {
	ui       *pkgConsole.UI
	users    service.UserService
	sessions service.SessionService
	events   service.EventService
	bookings service.BookingService
	l        logger.Logger
}

func NewHandler(
	ui *pkgConsole.UI,
	users service.UserService,
	sessions service.SessionService,
	events service.EventService,
	bookings service.BookingService,
	l logger.Logger,
) *Handler {
	return &Handler{
		ui:       ui,
		users:    users,
		sessions: sessions,
		events:   events,
		bookings: bookings,
		l:        l,
	}
}

// Run drives the menus until the user exits, the input ends or ctx is
// cancelled. Only the latter is reported as an error.
func (h *Handler) Run(ctx context.Context) error {
	h.l.Info(ctx, "Console session started")

	err := h.landing(ctx)
	switch {
	case err == nil, errors.Is(err, errExit), errors.Is(err, pkgConsole.ErrInputClosed):
		h.ui.Blank()
		h.ui.Centered("Thank you for using Event-Ease!", "Goodbye!")
		h.l.Info(ctx, "Console session ended")
		return nil
	default:
		return err
	}
}

func (h *Handler) landing(ctx context.Context) error {
	for {
		h.ui.Clear()
		h.ui.Title("Welcome to Event-Ease!")
		h.ui.Block(
			"1. Register",
			"2. Login",
			"3. Admin Login",
			"0. Exit",
		)
		h.ui.Blank()

		choice, ok, err := h.readChoice(ctx)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		var ss *models.Session
		switch choice {
		case 1:
			ss, err = h.register(ctx)
		case 2:
			ss, err = h.login(ctx)
		case 3:
			ss, err = h.adminLogin(ctx)
		case 0:
			return errExit
		default:
			err = h.invalidChoice(ctx)
		}
		if err == nil && ss != nil {
			err = h.dashboard(ctx, ss)
		}
		if err != nil {
			return err
		}
	}
}

// dashboard opens the menu that matches the session's role.
func (h *Handler) dashboard(ctx context.Context, ss *models.Session) error {
	if ss.IsAdmin() {
		return h.adminDashboard(ctx, ss)
	}
	return h.userDashboard(ctx, ss)
}

// readChoice prompts for a menu option. ok is false when the answer was not
// a number; the user has been told so already.
func (h *Handler) readChoice(ctx context.Context) (choice int, ok bool, err error) {
	choice, err = h.ui.PromptInt(ctx, "Select an option: ")
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input. Please enter a number.")
		return 0, false, h.ui.Pause(ctx)
	}
	if err != nil {
		return 0, false, err
	}
	return choice, true, nil
}

func (h *Handler) invalidChoice(ctx context.Context) error {
	h.ui.Error("Invalid choice. Please select again.")
	return h.ui.Pause(ctx)
}

// showError prints the user-facing form of err and waits for Enter.
func (h *Handler) showError(ctx context.Context, err error) error {
	be := h.mapError(ctx, err)
	h.ui.Error(be.Message)
	return h.ui.Pause(ctx)
}
