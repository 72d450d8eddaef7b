// Package settings persists the single system settings row.
package settings

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type Repository interface {
	// Get returns the stored settings, or models.DefaultSystemSettings when
	// nothing has been saved yet.
	Get(ctx context.Context) (models.SystemSettings, error)
	Save(ctx context.Context, s models.SystemSettings) error
}
