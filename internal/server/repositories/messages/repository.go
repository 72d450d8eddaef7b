// Package messages stores user messages and their moderation state.
package messages

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, msg *models.Message) (*models.Message, error)
	GetByID(ctx context.Context, id int64) (*models.Message, error)

	// ListByUser returns the user's messages that have not been hidden by a moderator.
	ListByUser(ctx context.Context, userID int64) ([]*models.Message, error)

	// List returns every message, hidden ones included.
	List(ctx context.Context, offset, limit int) ([]*models.Message, error)

	Hide(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
