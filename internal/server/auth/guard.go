package auth

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
)

// Guard applies the authorization checks every protected operation goes
// through: authenticated, then active, then (for admin routes) admin.
type Guard struct {
	resolver *Resolver
}

func NewGuard(resolver *Resolver) *Guard {
	return &Guard{resolver: resolver}
}

func (g *Guard) RequireAuthenticated(ctx context.Context, token string) (*models.User, error) {
	return g.resolver.Resolve(ctx, token)
}

// RequireActive has no account states to check yet; it only rejects a
// missing principal.
func (g *Guard) RequireActive(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, common.ErrUnauthenticated
	}
	return user, nil
}

func (g *Guard) RequireAdmin(user *models.User) (*models.User, error) {
	if user == nil {
		return nil, common.ErrUnauthenticated
	}
	if !user.Role().Can(models.CapabilityAdmin) {
		return nil, common.ErrForbidden
	}
	return user, nil
}
