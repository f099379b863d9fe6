package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vogiaan1904/eventease/config"
	errs "github.com/vogiaan1904/eventease/internal/errors"
	"github.com/vogiaan1904/eventease/internal/models"
	"github.com/vogiaan1904/eventease/pkg/logger"
)

type sessionService struct {
	conf config.SessionConfig
	now  func() time.Time
	l    logger.Logger
}

func NewSessionService(conf config.SessionConfig, l logger.Logger) SessionService {
	return &sessionService{
		conf: conf,
		now:  time.Now,
		l:    l,
	}
}

func (s *sessionService) Issue(ctx context.Context, role models.Role, userName string, ticket int) (*models.Session, error) {
	now := s.now()
	ss := &models.Session{
		ID:         uuid.New().String(),
		Role:       role,
		UserName:   userName,
		TicketCode: ticket,
		IssuedAt:   now,
		ExpiresAt:  now.Add(s.conf.TTL),
	}

	claims := jwt.MapClaims{
		"session_id": ss.ID,
		"name":       ss.UserName,
		"role":       string(ss.Role),
		"exp":        ss.ExpiresAt.Unix(),
		"iat":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString([]byte(s.conf.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	ss.Token = tokenStr

	s.l.Infof(ctx, "Session issued - session_id: %s, role: %s", ss.ID, ss.Role)
	return ss, nil
}

func (s *sessionService) Validate(ctx context.Context, ss *models.Session) error {
	if ss == nil || ss.Token == "" {
		return errs.ErrSessionInvalid
	}
	if ss.IsExpired(s.now()) {
		s.l.Infof(ctx, "Session expired - session_id: %s", ss.ID)
		return errs.ErrSessionExpired
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(ss.Token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.conf.Secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			s.l.Infof(ctx, "Session expired - session_id: %s", ss.ID)
			return errs.ErrSessionExpired
		}
		s.l.Warnf(ctx, "Invalid session token - session_id: %s: %v", ss.ID, err)
		return fmt.Errorf("%w: %v", errs.ErrSessionInvalid, err)
	}
	if !parsed.Valid {
		return errs.ErrSessionInvalid
	}

	sessionID, _ := claims["session_id"].(string)
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)
	if sessionID != ss.ID || name != ss.UserName || models.Role(role) != ss.Role {
		s.l.Warnf(ctx, "Session claims do not match - session_id: %s", ss.ID)
		return errs.ErrSessionInvalid
	}

	return nil
}

// Authorize validates ss and requires it to carry role.
func (s *sessionService) Authorize(ctx context.Context, ss *models.Session, role models.Role) error {
	if err := s.Validate(ctx, ss); err != nil {
		return err
	}
	if ss.Role != role {
		s.l.Warnf(ctx, "Session %s with role %s denied %s operation", ss.ID, ss.Role, role)
		return ErrNotAuthorized
	}
	return nil
}
