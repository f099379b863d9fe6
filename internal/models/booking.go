package models

type Booking struct {
	EventID  EventID `json:"event_id"`
	UserName string  `json:"user_name"`
}

func (b Booking) Matches(id EventID, userName string) bool {
	return b.EventID == id && b.UserName == userName
}
