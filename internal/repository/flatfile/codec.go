package flatfile

import (
	"fmt"
	"strings"

	"github.com/vogiaan1904/eventease/internal/models"
)

const eventFieldSeparator = "|"

// scanInt reads a leading decimal integer the way a %d conversion does:
// leading blanks and one sign are accepted and parsing stops at the first
// non-digit. rest is what follows the digits.
func scanInt(s string) (n int, rest string, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		if n > (1<<31-1)/10 {
			return 0, s, false
		}
		n = n*10 + int(s[i]-'0')
		i++
	}
	if i == start {
		return 0, s, false
	}
	if neg {
		n = -n
	}
	return n, s[i:], true
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// TICKET,NAME
func parseUser(line string) (models.User, bool) {
	code, rest, ok := scanInt(line)
	if !ok || !strings.HasPrefix(rest, ",") {
		return models.User{}, false
	}
	name := rest[1:]
	if name == "" {
		return models.User{}, false
	}
	return models.User{TicketCode: code, Name: name}, true
}

func formatUser(code int, name string) string {
	return fmt.Sprintf("%s,%s", models.FormatTicket(code), name)
}

// NAME|VENUE|DATE|TIME|CAPACITY
func parseEvent(line string) (models.Event, bool) {
	fields := strings.SplitN(line, eventFieldSeparator, 5)
	if len(fields) != 5 {
		return models.Event{}, false
	}
	for _, f := range fields[:4] {
		if f == "" {
			return models.Event{}, false
		}
	}
	capacity, _, ok := scanInt(fields[4])
	if !ok {
		return models.Event{}, false
	}
	return models.Event{
		Name:         fields[0],
		Venue:        fields[1],
		Date:         fields[2],
		Time:         fields[3],
		SeatCapacity: capacity,
	}, true
}

func formatEvent(e models.Event) string {
	return fmt.Sprintf("%s|%s|%s|%s|%d", e.Name, e.Venue, e.Date, e.Time, e.SeatCapacity)
}

// EVENTPOS NAME, where NAME runs to the end of the line.
func parseBooking(line string) (models.Booking, bool) {
	pos, rest, ok := scanInt(line)
	if !ok {
		return models.Booking{}, false
	}
	name := strings.TrimLeft(rest, " \t\v\f\r\n")
	if name == "" {
		return models.Booking{}, false
	}
	return models.Booking{EventID: models.EventID(pos), UserName: name}, true
}

func formatBooking(id models.EventID, userName string) string {
	return fmt.Sprintf("%d %s", int(id), userName)
}

// equalFoldASCII compares a and b ignoring ASCII letter case only.
func equalFoldASCII(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if lowerASCII(a[i]) != lowerASCII(b[i]) {
			return false
		}
	}
	return true
}

func lowerASCII(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
