package models

// EventID refers to an event by its 1-based position in the event store
// at the time of the call. It is not stable: deleting an event renumbers
// every event after it.
type EventID int

func (id EventID) Index() int {
	return int(id) - 1
}

type Event struct {
	Name         string `json:"name"`
	Venue        string `json:"venue"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	SeatCapacity int    `json:"seat_capacity"`
}

// EventPatch carries an edit of an event. Empty strings and a
// non-positive capacity leave the existing value untouched.
type EventPatch struct {
	Name         string
	Venue        string
	Date         string
	Time         string
	SeatCapacity int
}

func (e Event) Apply(p EventPatch) Event {
	if p.Name != "" {
		e.Name = p.Name
	}
	if p.Venue != "" {
		e.Venue = p.Venue
	}
	if p.Date != "" {
		e.Date = p.Date
	}
	if p.Time != "" {
		e.Time = p.Time
	}
	if p.SeatCapacity > 0 {
		e.SeatCapacity = p.SeatCapacity
	}
	return e
}

// IsEmpty reports whether applying p would change nothing.
func (p EventPatch) IsEmpty() bool {
	return p.Name == "" && p.Venue == "" && p.Date == "" && p.Time == "" && p.SeatCapacity <= 0
}
