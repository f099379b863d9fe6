package flatfile

import (
	"context"
	"fmt"
	"math/rand/v2"

	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

const DefaultTicketAttempts = 1000

type UserRepositoryOptions struct {
	// MaxAttempts bounds GenerateUniqueTicket. Zero means DefaultTicketAttempts.
	MaxAttempts int
	// Rand supplies ticket draws. Nil uses the auto-seeded global source.
	Rand *rand.Rand
}

type flatfileUserRepository struct {
	path        string
	maxAttempts int
	rnd         *rand.Rand
	l           logger.Logger
}

func NewUserRepository(path string, opts UserRepositoryOptions, l logger.Logger) UserRepository {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultTicketAttempts
	}
	return &flatfileUserRepository{
		path:        path,
		maxAttempts: opts.MaxAttempts,
		rnd:         opts.Rand,
		l:           l,
	}
}

// scan calls fn for every well-formed user line until fn returns true.
func (r *flatfileUserRepository) scan(ctx context.Context, fn func(u models.User) bool) error {
	err := scanLines(r.path, func(lineNo int, line string) bool {
		if line == "" {
			return false
		}
		u, ok := parseUser(line)
		if !ok {
			r.l.Debugf(ctx, "flatfileUserRepository.scan: %v at %s:%d", errs.ErrMalformedInput, r.path, lineNo)
			return false
		}
		return fn(u)
	})
	if err != nil {
		r.l.Errorf(ctx, "flatfileUserRepository.scan: %v", err)
	}
	return err
}

func (r *flatfileUserRepository) ExistsTicket(ctx context.Context, code int) (bool, error) {
	found := false
	err := r.scan(ctx, func(u models.User) bool {
		found = u.TicketCode == code
		return found
	})
	return found, err
}

// ExistsName matches names ignoring ASCII case.
func (r *flatfileUserRepository) ExistsName(ctx context.Context, name string) (bool, error) {
	found := false
	err := r.scan(ctx, func(u models.User) bool {
		found = equalFoldASCII(u.Name, name)
		return found
	})
	return found, err
}

func (r *flatfileUserRepository) GenerateUniqueTicket(ctx context.Context) (int, error) {
	taken := make(map[int]struct{})
	if err := r.scan(ctx, func(u models.User) bool {
		taken[u.TicketCode] = struct{}{}
		return false
	}); err != nil {
		return 0, err
	}

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		code := r.draw()
		if _, ok := taken[code]; !ok {
			r.l.Debugf(ctx, "flatfileUserRepository.GenerateUniqueTicket: code found after %d attempts", attempt)
			return code, nil
		}
	}

	r.l.Warnf(ctx, "flatfileUserRepository.GenerateUniqueTicket: %v after %d attempts with %d codes taken",
		errs.ErrTicketExhausted, r.maxAttempts, len(taken))
	return 0, errs.ErrTicketExhausted
}

func (r *flatfileUserRepository) draw() int {
	n := models.MaxTicketCode - models.MinTicketCode + 1
	if r.rnd != nil {
		return models.MinTicketCode + r.rnd.IntN(n)
	}
	return models.MinTicketCode + rand.IntN(n)
}

func (r *flatfileUserRepository) Save(ctx context.Context, code int, name string) error {
	if err := appendLine(r.path, formatUser(code, name)); err != nil {
		r.l.Errorf(ctx, "flatfileUserRepository.Save: %v", err)
		return fmt.Errorf("saving user: %w", err)
	}

	r.l.Infof(ctx, "User saved: ticket=%s", models.FormatTicket(code))
	return nil
}

// ValidateLogin needs an exact ticket and an exact, case-sensitive name.
// Registration compares names case-insensitively; the two deliberately
// differ.
func (r *flatfileUserRepository) ValidateLogin(ctx context.Context, name string, code int) (bool, error) {
	found := false
	err := r.scan(ctx, func(u models.User) bool {
		found = u.TicketCode == code && u.Name == name
		return found
	})
	return found, err
}

func (r *flatfileUserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.scan(ctx, func(u models.User) bool {
		users = append(users, u)
		return false
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}
