package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aswin1661/looms-petals/domain"
	"github.com/aswin1661/looms-petals/internal/metrics"
)

// SessionServiceImpl implements domain.SessionService over the two session
// tables. Storefront and dashboard tokens live in disjoint namespaces and
// never validate against each other.
type SessionServiceImpl struct {
	userRepo      domain.UserRepository
	userSessions  domain.SessionRepository
	adminSessions domain.SessionRepository
	tokenSvc      domain.TokenService
	config        SessionConfig
	logger        zerolog.Logger
}

type SessionConfig struct {
	UserTTL    time.Duration
	AdminTTL   time.Duration
	MaxPerUser int
}

// NewSessionService creates a new session service
func NewSessionService(userRepo domain.UserRepository, userSessions, adminSessions domain.SessionRepository, tokenSvc domain.TokenService, config SessionConfig, logger zerolog.Logger) domain.SessionService {
	return &SessionServiceImpl{
		userRepo:      userRepo,
		userSessions:  userSessions,
		adminSessions: adminSessions,
		tokenSvc:      tokenSvc,
		config:        config,
		logger:        logger,
	}
}

// CreateUserSession implements domain.SessionService. After the insert the
// user's session rows are opportunistically pruned down to the configured
// cap, newest first.
func (s *SessionServiceImpl) CreateUserSession(ctx context.Context, userID uint) (*domain.Session, error) {
	session, err := s.create(ctx, s.userSessions, userID, s.config.UserTTL)
	if err != nil {
		return nil, err
	}

	pruned, err := s.userSessions.PruneToNewest(ctx, userID, s.config.MaxPerUser)
	if err != nil {
		// Pruning is opportunistic; the new session is already valid.
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("session prune failed")
	} else if pruned > 0 {
		metrics.SessionsPrunedTotal.Add(float64(pruned))
	}
	return session, nil
}

// CreateAdminSession implements domain.SessionService. Creation sweeps the
// user's already-expired admin sessions first.
func (s *SessionServiceImpl) CreateAdminSession(ctx context.Context, userID uint) (*domain.Session, error) {
	if err := s.adminSessions.DeleteExpiredForUser(ctx, userID, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Msg("expired admin session sweep failed")
	}
	return s.create(ctx, s.adminSessions, userID, s.config.AdminTTL)
}

func (s *SessionServiceImpl) create(ctx context.Context, repo domain.SessionRepository, userID uint, ttl time.Duration) (*domain.Session, error) {
	token, err := s.tokenSvc.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.Session{
		UserID:    userID,
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateUserSession implements domain.SessionService. Expired and
// dangling rows are deleted as a side effect of discovering them, for both
// namespaces alike.
func (s *SessionServiceImpl) ValidateUserSession(ctx context.Context, token string) (*domain.User, error) {
	return s.validate(ctx, s.userSessions, token, false)
}

// ValidateAdminSession implements domain.SessionService. The role flag is
// re-read from the user row on every call, so a session issued before a
// role downgrade dies the moment it is next used.
func (s *SessionServiceImpl) ValidateAdminSession(ctx context.Context, token string) (*domain.User, error) {
	return s.validate(ctx, s.adminSessions, token, true)
}

func (s *SessionServiceImpl) validate(ctx context.Context, repo domain.SessionRepository, token string, admin bool) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := repo.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		s.deleteQuietly(ctx, repo, token)
		return nil, domain.ErrSessionExpired
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Dangling session: the account is gone, so the row is garbage.
			s.deleteQuietly(ctx, repo, token)
		}
		return nil, err
	}

	if admin && !user.IsAdmin() {
		s.deleteQuietly(ctx, repo, token)
		return nil, domain.ErrNotAdmin
	}
	return user, nil
}

// RevokeUserSession implements domain.SessionService; idempotent.
func (s *SessionServiceImpl) RevokeUserSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.userSessions.DeleteByToken(ctx, token)
}

// RevokeAdminSession implements domain.SessionService; idempotent.
func (s *SessionServiceImpl) RevokeAdminSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.adminSessions.DeleteByToken(ctx, token)
}

// RevokeAllUserSessions implements domain.SessionService
func (s *SessionServiceImpl) RevokeAllUserSessions(ctx context.Context, userID uint) error {
	return s.userSessions.DeleteForUser(ctx, userID)
}

func (s *SessionServiceImpl) deleteQuietly(ctx context.Context, repo domain.SessionRepository, token string) {
	if err := repo.DeleteByToken(ctx, token); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete stale session")
	}
}
