package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/models"
)

// UserLookup is the part of the credential store the resolver needs.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// Resolver turns a bearer token into the current user record.
type Resolver struct {
	codec  *TokenCodec
	users  UserLookup
	logger logging.Logger
}

func NewResolver(codec *TokenCodec, users UserLookup, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &Resolver{codec: codec, users: users, logger: logger.With("module", "auth")}
}

// Resolve verifies token before touching the store. Tokens that fail
// verification and tokens for users that no longer exist both yield
// common.ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	claims, err := r.codec.Verify(token)
	if err != nil {
		r.logger.Warn(ctx, "token rejected", "reason", err.Error())
		return nil, common.ErrUnauthenticated
	}

	user, err := r.users.GetUserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			r.logger.Warn(ctx, "token subject not found")
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return user, nil
}
