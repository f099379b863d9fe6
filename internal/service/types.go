package service

import "github.com/vogiaan1904/eventease/internal/models"

type BookingView struct {
	EventID   models.EventID `json:"event_id"`
	EventName string         `json:"event_name"`
	UserName  string         `json:"user_name"`
}

type DeleteEventOutput struct {
	Removed models.Event `json:"removed"`
	// AffectedBookings counts bookings that pointed at the deleted position
	// or a later one. Those now refer to a different event.
	AffectedBookings int `json:"affected_bookings"`
}
