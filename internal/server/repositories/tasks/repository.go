// Package tasks stores per-user to-do items.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Task, error)

	// Complete marks the task done if it belongs to userID; otherwise it
	// returns common.ErrorNotFound.
	Complete(ctx context.Context, id, userID int64) (*models.Task, error)

	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountCompleted(ctx context.Context) (int64, error)
}
