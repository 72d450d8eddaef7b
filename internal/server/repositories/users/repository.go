// Package users is the credential store: durable storage and lookup of
// user records keyed by id and by normalised email.
package users

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

// Repository defines operations on user records. Lookups return
// common.ErrorNotFound when no row matches; Create returns
// common.ErrDuplicateIdentity when the email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, offset, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error

	// Delete removes the user row only. Owned content is removed by the
	// caller in the same transaction.
	Delete(ctx context.Context, id int64) error
}
