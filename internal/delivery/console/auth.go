package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/service"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
)

// register asks for a name until one is accepted, then logs the new user in.
// A nil session without error sends the user back to the landing menu.
func (h *Handler) register(ctx context.Context) (*models.Session, error) {
	for {
		h.ui.Clear()
		h.ui.Title("New User Registration")

		name, err := h.ui.Prompt(ctx, "Enter your name: ")
		if err != nil {
			return nil, err
		}

		u, err := h.users.Register(ctx, name)
		if errors.Is(err, service.ErrInvalidName) || errors.Is(err, service.ErrNameTaken) {
			h.ui.Error(h.mapError(ctx, err).Message)
			if _, err := h.ui.Prompt(ctx, "Press Enter to try again..."); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, h.showError(ctx, err)
		}

		h.l.Infof(ctx, "User registered - ticket: %s", u.Ticket())

		h.ui.Clear()
		h.ui.Title("Registration Successful!")
		h.ui.Success(
			fmt.Sprintf("Your ticket code is: %s", u.Ticket()),
			"Please remember your ticket code for future logins.",
		)
		h.ui.Blank()
		if _, err := h.ui.Prompt(ctx, "Press Enter to continue to your dashboard..."); err != nil {
			return nil, err
		}

		// The user just proved who they are, so no login attempt is spent.
		ss, err := h.sessions.Issue(ctx, models.RoleUser, u.Name, u.TicketCode)
		if err != nil {
			return nil, h.showError(ctx, err)
		}
		return ss, nil
	}
}

func (h *Handler) login(ctx context.Context) (*models.Session, error) {
	h.ui.Clear()
	h.ui.Title("User Login")

	name, err := h.ui.Prompt(ctx, "Enter your name: ")
	if err != nil {
		return nil, err
	}
	code, err := h.ui.PromptInt(ctx, "Enter your 4-digit ticket code: ")
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid ticket code format. Please enter a 4-digit number.")
		return nil, h.ui.Pause(ctx)
	}
	if err != nil {
		return nil, err
	}

	ss, err := h.users.Login(ctx, name, code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.ui.Error(errInvalidCredentials.Message, "Please check your information and try again.")
			return nil, h.ui.Pause(ctx)
		}
		return nil, h.showError(ctx, err)
	}

	h.ui.Success("Login successful!", "Welcome back!")
	if _, err := h.ui.Prompt(ctx, "Press Enter to continue to your dashboard..."); err != nil {
		return nil, err
	}
	return ss, nil
}

func (h *Handler) adminLogin(ctx context.Context) (*models.Session, error) {
	h.ui.Clear()
	h.ui.Title("Admin Login")

	username, err := h.ui.Prompt(ctx, "Username: ")
	if err != nil {
		return nil, err
	}
	password, err := h.ui.Prompt(ctx, "Password: ")
	if err != nil {
		return nil, err
	}

	ss, err := h.users.AdminLogin(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.ui.Error("Invalid admin credentials.", "Access denied.")
			return nil, h.ui.Pause(ctx)
		}
		return nil, h.showError(ctx, err)
	}

	h.ui.Success("Admin login successful!", "Access granted to admin panel.")
	if err := h.ui.Pause(ctx); err != nil {
		return nil, err
	}
	return ss, nil
}

// sessionValid re-checks ss before a dashboard iteration. When it no longer
// holds, the user is told and must log in again.
func (h *Handler) sessionValid(ctx context.Context, ss *models.Session) (bool, error) {
	err := h.sessions.Validate(ctx, ss)
	if err == nil {
		return true, nil
	}
	h.ui.Clear()
	h.ui.Warn(h.mapError(ctx, err).Message)
	return false, h.ui.Pause(ctx)
}
