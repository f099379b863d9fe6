package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vogiaan1904/eventease/internal/models"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
	"github.com/vogiaan1904/eventease/pkg/util"
)

func (h *Handler) adminDashboard(ctx context.Context, ss *models.Session) error {
	for {
		ok, err := h.sessionValid(ctx, ss)
		if !ok {
			return err
		}

		h.ui.Clear()
		h.ui.Title("Admin Dashboard")
		h.ui.Centered(fmt.Sprintf("Session valid until %s", util.FormatDateTime(ss.ExpiresAt)))
		h.ui.Blank()
		h.ui.Block(
			"1. View all bookings",
			"2. Add Event",
			"3. View All Events",
			"4. View All Users",
			"5. Logout",
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

		switch choice {
		case 1:
			err = h.allBookings(ctx, ss)
		case 2:
			err = h.addEvent(ctx, ss)
		case 3:
			err = h.manageEvents(ctx, ss)
		case 4:
			err = h.allUsers(ctx, ss)
		case 5:
			h.ui.Centered("Logging out of admin panel...")
			h.l.Infof(ctx, "Admin logged out - session_id: %s", ss.ID)
			return nil
		case 0:
			return errExit
		default:
			err = h.invalidChoice(ctx)
		}
		if err != nil {
			return err
		}
	}
}

func (h *Handler) allBookings(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("All Bookings")

	all, err := h.bookings.ListAll(ctx, ss)
	if err != nil {
		return h.showError(ctx, err)
	}
	if len(all) == 0 {
		h.ui.Centered("No bookings found.")
		return h.ui.Pause(ctx)
	}

	h.ui.Block(bookingRows(all, true)...)
	h.ui.Blank()
	h.ui.Centered(fmt.Sprintf("Total bookings: %d", len(all)))
	return h.ui.Pause(ctx)
}

func (h *Handler) addEvent(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("Add Event")

	var e models.Event
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Event Name: ", &e.Name},
		{"Venue: ", &e.Venue},
		{"Date (DD-MM-YYYY): ", &e.Date},
		{"Time (HH:MM): ", &e.Time},
	} {
		v, err := h.ui.Prompt(ctx, f.label)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(v)
	}

	capacity, err := h.ui.PromptInt(ctx, "Seat Capacity: ")
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input for seat capacity.")
		return h.ui.Pause(ctx)
	}
	if err != nil {
		return err
	}
	e.SeatCapacity = capacity

	h.warnSchedule(e.Date, e.Time)

	if err := h.events.AddEvent(ctx, ss, e); err != nil {
		return h.showError(ctx, err)
	}

	h.l.Infof(ctx, "Event added - session_id: %s", ss.ID)
	h.ui.Success("Event added successfully!")
	return h.ui.Pause(ctx)
}

// warnSchedule points out dates and times that do not follow the usual
// layout. They are stored anyway.
func (h *Handler) warnSchedule(date, clock string) {
	if date != "" && !util.IsEventDate(date) {
		h.ui.Warn(fmt.Sprintf("Warning: date %q is not in DD-MM-YYYY format.", date))
	}
	if clock != "" && !util.IsEventTime(clock) {
		h.ui.Warn(fmt.Sprintf("Warning: time %q is not in HH:MM format.", clock))
	}
}

func (h *Handler) manageEvents(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("All Events")

	events, ok, err := h.listEvents(ctx)
	if !ok {
		return err
	}

	id, err := h.eventMenu(ctx, events, "Return to admin menu", "Select an event to view/edit/delete or %d to return: ")
	if err != nil || id == 0 {
		return err
	}
	e := events[id.Index()]

	h.ui.Clear()
	h.ui.Title("Event Details")
	h.eventDetails(ctx, id, e)
	h.ui.Block(
		"1. Edit Event",
		"2. Delete Event",
		"3. Return",
	)
	h.ui.Blank()

	action, err := h.ui.PromptInt(ctx, "Select an option: ")
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input.")
		return h.ui.Pause(ctx)
	}
	if err != nil {
		return err
	}

	switch action {
	case 1:
		return h.editEvent(ctx, ss, id, e)
	case 2:
		return h.deleteEvent(ctx, ss, id)
	default:
		return nil
	}
}

func (h *Handler) editEvent(ctx context.Context, ss *models.Session, id models.EventID, e models.Event) error {
	var patch models.EventPatch
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{fmt.Sprintf("Enter new event name (or press Enter to keep '%s'): ", e.Name), &patch.Name},
		{fmt.Sprintf("Enter new venue (or press Enter to keep '%s'): ", e.Venue), &patch.Venue},
		{fmt.Sprintf("Enter new date (DD-MM-YYYY) (or press Enter to keep '%s'): ", e.Date), &patch.Date},
		{fmt.Sprintf("Enter new time (or press Enter to keep '%s'): ", e.Time), &patch.Time},
	} {
		v, err := h.ui.Prompt(ctx, f.label)
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(v)
	}

	v, err := h.ui.Prompt(ctx, fmt.Sprintf("Enter new seat capacity (or 0 to keep %d): ", e.SeatCapacity))
	if err != nil {
		return err
	}
	if v = strings.TrimSpace(v); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			h.ui.Warn(fmt.Sprintf("Seat capacity %q is not a number, keeping %d.", v, e.SeatCapacity))
		}
		patch.SeatCapacity = n
	}

	if patch.IsEmpty() {
		h.ui.Centered("Nothing changed.")
		return h.ui.Pause(ctx)
	}

	h.warnSchedule(patch.Date, patch.Time)

	if _, err := h.events.UpdateEvent(ctx, ss, id, patch); err != nil {
		return h.showError(ctx, err)
	}

	h.l.Infof(ctx, "Event %d updated - session_id: %s", id, ss.ID)
	h.ui.Success("Event updated successfully!")
	return h.ui.Pause(ctx)
}

func (h *Handler) deleteEvent(ctx context.Context, ss *models.Session, id models.EventID) error {
	out, err := h.events.DeleteEvent(ctx, ss, id)
	if err != nil {
		return h.showError(ctx, err)
	}

	h.ui.Success(fmt.Sprintf("Event %q deleted successfully!", out.Removed.Name))
	if out.AffectedBookings > 0 {
		h.ui.Warn(fmt.Sprintf("%d booking(s) now refer to a different event.", out.AffectedBookings))
	}
	return h.ui.Pause(ctx)
}

func (h *Handler) allUsers(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("Registered Users")

	users, err := h.users.ListUsers(ctx, ss)
	if err != nil {
		return h.showError(ctx, err)
	}
	if len(users) == 0 {
		h.ui.Centered("No users found.")
		return h.ui.Pause(ctx)
	}

	rows := []string{"Ticket Code | Name", "------------+-----"}
	for _, u := range users {
		rows = append(rows, fmt.Sprintf("    %s    | %s", u.Ticket(), u.Name))
	}
	h.ui.Block(rows...)
	h.ui.Blank()
	h.ui.Centered(fmt.Sprintf("Total registered users: %d", len(users)))
	return h.ui.Pause(ctx)
}
