package console

import (
	"context"
	"errors"
	"fmt"

	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/service"
	pkgConsole "github.com/vogiaan1904/eventease/pkg/console"
	"github.com/vogiaan1904/eventease/pkg/util"
)

func (h *Handler) userDashboard(ctx context.Context, ss *models.Session) error {
	for {
		ok, err := h.sessionValid(ctx, ss)
		if !ok {
			return err
		}

		h.ui.Clear()
		h.ui.Title("User Dashboard")
		h.ui.Centered(
			fmt.Sprintf("Logged in as %s (ticket %s)", ss.UserName, models.FormatTicket(ss.TicketCode)),
			fmt.Sprintf("Session valid until %s", util.FormatDateTime(ss.ExpiresAt)),
		)
		h.ui.Blank()
		h.ui.Block(
			"1. View Events",
			"2. Book Seat",
			"3. Cancel Booking",
			"4. My Bookings",
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
			err = h.viewEvents(ctx)
		case 2:
			err = h.bookSeat(ctx, ss)
		case 3:
			err = h.cancelBooking(ctx, ss)
		case 4:
			err = h.myBookings(ctx, ss)
		case 5:
			h.ui.Centered("Logging out...")
			h.l.Infof(ctx, "User logged out - session_id: %s", ss.ID)
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

// eventMenu lists events numbered by position followed by a return entry,
// and asks for one. A zero id means return; the user has been told about
// invalid answers already.
func (h *Handler) eventMenu(ctx context.Context, events []models.Event, back, prompt string) (models.EventID, error) {
	lines := make([]string, 0, len(events)+1)
	for i, e := range events {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, e.Name))
	}
	lines = append(lines, fmt.Sprintf("%d. %s", len(events)+1, back))
	h.ui.Block(lines...)
	h.ui.Blank()

	choice, err := h.ui.PromptInt(ctx, fmt.Sprintf(prompt, len(events)+1))
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input.")
		return 0, h.ui.Pause(ctx)
	}
	if err != nil {
		return 0, err
	}
	if choice == len(events)+1 {
		return 0, nil
	}
	if choice < 1 || choice > len(events) {
		h.ui.Error("Invalid choice.")
		return 0, h.ui.Pause(ctx)
	}
	return models.EventID(choice), nil
}

// listEvents loads the events and reports whether there are any to show.
func (h *Handler) listEvents(ctx context.Context) ([]models.Event, bool, error) {
	events, err := h.events.ListEvents(ctx)
	if err != nil {
		return nil, false, h.showError(ctx, err)
	}
	if len(events) == 0 {
		h.ui.Centered("No events found.")
		return nil, false, h.ui.Pause(ctx)
	}
	return events, true, nil
}

func (h *Handler) eventDetails(ctx context.Context, id models.EventID, e models.Event) {
	lines := []string{
		fmt.Sprintf("Name: %s", e.Name),
		fmt.Sprintf("Venue: %s", e.Venue),
		fmt.Sprintf("Date (DD-MM-YYYY): %s", e.Date),
		fmt.Sprintf("Time: %s", e.Time),
		fmt.Sprintf("Seat Capacity: %d", e.SeatCapacity),
	}
	if n, err := h.bookings.CountFor(ctx, id); err == nil {
		lines = append(lines, fmt.Sprintf("Seats booked: %d", n))
	}
	h.ui.Block(lines...)
	h.ui.Blank()
}

func (h *Handler) viewEvents(ctx context.Context) error {
	h.ui.Clear()
	h.ui.Title("Upcoming Events")

	events, ok, err := h.listEvents(ctx)
	if !ok {
		return err
	}

	id, err := h.eventMenu(ctx, events, "Return to main menu", "Select an event to view details or %d to return: ")
	if err != nil || id == 0 {
		return err
	}

	h.ui.Clear()
	h.ui.Title("Event Details")
	h.eventDetails(ctx, id, events[id.Index()])
	return h.ui.Pause(ctx)
}

func (h *Handler) bookSeat(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("Book a Seat")

	events, ok, err := h.listEvents(ctx)
	if !ok {
		return err
	}

	lines := make([]string, 0, len(events))
	for i, e := range events {
		lines = append(lines, fmt.Sprintf("%d. %s (%s, %s %s)", i+1, e.Name, e.Venue, e.Date, e.Time))
	}
	h.ui.Block(lines...)
	h.ui.Blank()

	n, err := h.ui.PromptInt(ctx, fmt.Sprintf("Enter Event ID to book (1-%d): ", len(events)))
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input for Event ID.")
		return h.ui.Pause(ctx)
	}
	if err != nil {
		return err
	}

	view, err := h.bookings.Book(ctx, ss, models.EventID(n))
	if err != nil {
		return h.showError(ctx, err)
	}

	h.l.Infof(ctx, "Seat booked - session_id: %s, event: %d", ss.ID, view.EventID)
	h.ui.Success(
		fmt.Sprintf("Seat booked successfully for %s at event ID %d.", view.UserName, view.EventID),
		fmt.Sprintf("Event: %s", view.EventName),
	)
	return h.ui.Pause(ctx)
}

func (h *Handler) cancelBooking(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("Cancel Booking")

	mine, err := h.bookings.ListMine(ctx, ss)
	if err != nil {
		return h.showError(ctx, err)
	}
	if len(mine) == 0 {
		h.ui.Centered("You have no bookings.")
		return h.ui.Pause(ctx)
	}
	h.ui.Block(bookingRows(mine, false)...)
	h.ui.Blank()

	n, err := h.ui.PromptInt(ctx, "Enter Event ID to cancel: ")
	if errors.Is(err, pkgConsole.ErrNotANumber) {
		h.ui.Error("Invalid input for Event ID.")
		return h.ui.Pause(ctx)
	}
	if err != nil {
		return err
	}

	err = h.bookings.Cancel(ctx, ss, models.EventID(n))
	if errors.Is(err, service.ErrBookingNotFound) {
		h.ui.Error(fmt.Sprintf("No booking found for %s at event ID %d.", ss.UserName, n))
		return h.ui.Pause(ctx)
	}
	if err != nil {
		return h.showError(ctx, err)
	}

	h.l.Infof(ctx, "Booking canceled - session_id: %s, event: %d", ss.ID, n)
	h.ui.Success("Booking successfully canceled.")
	return h.ui.Pause(ctx)
}

func (h *Handler) myBookings(ctx context.Context, ss *models.Session) error {
	h.ui.Clear()
	h.ui.Title("My Bookings")

	mine, err := h.bookings.ListMine(ctx, ss)
	if err != nil {
		return h.showError(ctx, err)
	}
	if len(mine) == 0 {
		h.ui.Centered("No bookings found.")
		return h.ui.Pause(ctx)
	}

	h.ui.Block(bookingRows(mine, false)...)
	h.ui.Blank()
	return h.ui.Pause(ctx)
}

// bookingRows formats bookings as a table, with the booker's name when
// withName is set.
func bookingRows(views []service.BookingView, withName bool) []string {
	var rows []string
	if withName {
		rows = append(rows, "Event ID | Name | Event", "---------+------+------")
	} else {
		rows = append(rows, "Event ID | Event", "---------+------")
	}
	for _, v := range views {
		if withName {
			rows = append(rows, fmt.Sprintf("%8d | %s | %s", v.EventID, v.UserName, v.EventName))
		} else {
			rows = append(rows, fmt.Sprintf("%8d | %s", v.EventID, v.EventName))
		}
	}
	return rows
}
