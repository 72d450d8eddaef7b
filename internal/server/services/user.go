// Package services contains server-side business logic. This file implements
// UserService, which handles registration and password login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/repomanager"
)

// TokenPair is the login response body.
type TokenPair struct {
	AccessToken string
	TokenType   string
}

// LoginLimiter throttles login attempts per email. A nil limiter disables
// throttling.
type LoginLimiter interface {
	Allow(ctx context.Context, identifier string) error
	Reset(ctx context.Context, identifier string) error
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      *auth.PasswordHasher
	codec       *auth.TokenCodec
	limiter     LoginLimiter
	logger      logging.Logger

	// compared against when the email is unknown so both failure paths
	// spend one bcrypt comparison
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *auth.PasswordHasher,
	codec *auth.TokenCodec, limiter LoginLimiter, logger logging.Logger) (*UserService, error) {

	seed, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, fmt.Errorf("dummy hash seed: %w", err)
	}
	dummy, err := hasher.Hash(seed)
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	if logger == nil {
		logger = logging.Nop{}
	}

	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		codec:       codec,
		limiter:     limiter,
		logger:      logger.With("module", "users"),
		dummyHash:   dummy,
	}, nil
}

// Register stores a new user with a hashed password. It fails with
// common.ErrForbidden while registration is disabled in system settings and
// with common.ErrDuplicateIdentity when the email is taken.
func (s *UserService) Register(ctx context.Context, email, name, password string) (*models.User, error) {
	settings, err := s.repomanager.Settings(s.db).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	if !settings.RegistrationEnabled {
		return nil, fmt.Errorf("registration disabled: %w", common.ErrForbidden)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, common.ErrEmptyPassword) {
			return nil, fmt.Errorf("%w: %w", common.ErrValidation, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	user := &models.User{
		Email:        models.NormalizeEmail(email),
		Name:         name,
		PasswordHash: hash,
	}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the password and issues an access token. An unknown email
// and a wrong password both yield common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = models.NormalizeEmail(email)

	if s.limiter != nil {
		if err := s.limiter.Allow(ctx, email); err != nil {
			if errors.Is(err, common.ErrRateLimited) {
				return nil, err
			}
			// fail open
			s.logger.Warn(ctx, "login limiter", "error", err.Error())
		}
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn(ctx, "login limiter reset", "error", err.Error())
		}
	}

	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return &TokenPair{AccessToken: token, TokenType: common.TokenType}, nil
}
