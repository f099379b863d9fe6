package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/vogiaan1904/eventease/config"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/internal/repository/flatfile"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type userService struct {
	repo          flatfile.UserRepository
	sessions      SessionService
	adminUsername string
	adminHash     []byte
	userLimiter   *rate.Limiter
	adminLimiter  *rate.Limiter
	l             logger.Logger
}

// NewUserService hashes the configured admin password with bcrypt unless a
// hash is configured already. Only the hash is kept.
func NewUserService(
	repo flatfile.UserRepository,
	sessions SessionService,
	admin config.AdminConfig,
	login config.LoginConfig,
	l logger.Logger,
) (UserService, error) {
	hash := []byte(admin.PasswordHash)
	if len(hash) == 0 {
		cost := admin.BcryptCost
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(admin.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}

	return &userService{
		repo:          repo,
		sessions:      sessions,
		adminUsername: admin.Username,
		adminHash:     hash,
		userLimiter:   rate.NewLimiter(rate.Every(login.RateInterval), login.RateBurst),
		adminLimiter:  rate.NewLimiter(rate.Every(login.RateInterval), login.RateBurst),
		l:             l,
	}, nil
}

// Register stores name with surrounding whitespace removed. Booking lines
// separate the event from the name with blanks, so a leading blank could not
// survive a round trip.
func (s *userService) Register(ctx context.Context, name string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "\r\n") {
		return nil, ErrInvalidName
	}

	exists, err := s.repo.ExistsName(ctx, name)
	if err != nil {
		s.l.Errorf(ctx, "userService.Register.ExistsName: %v", err)
		return nil, err
	}
	if exists {
		s.l.Infof(ctx, "userService.Register: %v", ErrNameTaken)
		return nil, ErrNameTaken
	}

	code, err := s.repo.GenerateUniqueTicket(ctx)
	if err != nil {
		s.l.Errorf(ctx, "userService.Register.GenerateUniqueTicket: %v", err)
		return nil, err
	}

	if err := s.repo.Save(ctx, code, name); err != nil {
		s.l.Errorf(ctx, "userService.Register.Save: %v", err)
		return nil, err
	}

	return &models.User{TicketCode: code, Name: name}, nil
}

func (s *userService) Login(ctx context.Context, name string, ticket int) (*models.Session, error) {
	if !models.IsValidTicket(ticket) {
		return nil, ErrInvalidTicket
	}
	name = strings.TrimSpace(name)
	if !s.userLimiter.Allow() {
		s.l.Warnf(ctx, "userService.Login: %v", ErrTooManyAttempts)
		return nil, ErrTooManyAttempts
	}

	ok, err := s.repo.ValidateLogin(ctx, name, ticket)
	if err != nil {
		s.l.Errorf(ctx, "userService.Login.ValidateLogin: %v", err)
		return nil, err
	}
	if !ok {
		s.l.Infof(ctx, "userService.Login: %v for ticket %s", ErrInvalidCredentials, models.FormatTicket(ticket))
		return nil, ErrInvalidCredentials
	}

	return s.sessions.Issue(ctx, models.RoleUser, name, ticket)
}

func (s *userService) AdminLogin(ctx context.Context, username, password string) (*models.Session, error) {
	if !s.adminLimiter.Allow() {
		s.l.Warnf(ctx, "userService.AdminLogin: %v", ErrTooManyAttempts)
		return nil, ErrTooManyAttempts
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	err := bcrypt.CompareHashAndPassword(s.adminHash, []byte(password))
	if err != nil && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		s.l.Errorf(ctx, "userService.AdminLogin: %v", err)
		return nil, err
	}
	if !userOK || err != nil {
		s.l.Warnf(ctx, "userService.AdminLogin: %v", ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}

	return s.sessions.Issue(ctx, models.RoleAdmin, username, 0)
}

func (s *userService) ListUsers(ctx context.Context, ss *models.Session) ([]models.User, error) {
	if err := s.sessions.Authorize(ctx, ss, models.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		s.l.Errorf(ctx, "userService.ListUsers: %v", err)
		return nil, err
	}
	return users, nil
}
