package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session identifies who is logged in. It is handed to every dashboard
// handler explicitly.
type Session struct {
	ID         string    `json:"id"`
	Role       Role      `json:"role"`
	UserName   string    `json:"user_name"`
	TicketCode int       `json:"ticket_code,omitempty"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	Token      string    `json:"-"`
}

func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// IsExpired reports whether the session has run out at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
