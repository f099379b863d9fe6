package models

import "fmt"

const (
	MinTicketCode = 0
	MaxTicketCode = 9999
)

// User is a registrant. TicketCode and Name together are the login
// credential.
type User struct {
	TicketCode int    `json:"ticket_code"`
	Name       string `json:"name"`
}

// Ticket returns the ticket code zero-padded to four digits.
func (u User) Ticket() string {
	return FormatTicket(u.TicketCode)
}

func FormatTicket(code int) string {
	return fmt.Sprintf("%04d", code)
}

func IsValidTicket(code int) bool {
	return code >= MinTicketCode && code <= MaxTicketCode
}
