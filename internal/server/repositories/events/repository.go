// Package events stores calendar events owned by users.
package events

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, event *models.Event) (*models.Event, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Event, error)
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
