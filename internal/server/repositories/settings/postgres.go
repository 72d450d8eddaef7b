package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/dbx"
	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context) (models.SystemSettings, error) {
	query :=
		`SELECT registration_enabled, default_page_size, max_page_size
		 FROM system_settings WHERE id = 1`

	var s models.SystemSettings
	err := r.db.QueryRowContext(ctx, query).Scan(&s.RegistrationEnabled, &s.DefaultPageSize, &s.MaxPageSize)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DefaultSystemSettings(), nil
		}
		return models.SystemSettings{}, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Save(ctx context.Context, s models.SystemSettings) error {
	query :=
		`INSERT INTO system_settings (id, registration_enabled, default_page_size, max_page_size, updated_at)
		 VALUES (1, $1, $2, $3, now())
		 ON CONFLICT (id) DO UPDATE SET
		   registration_enabled = EXCLUDED.registration_enabled,
		   default_page_size = EXCLUDED.default_page_size,
		   max_page_size = EXCLUDED.max_page_size,
		   updated_at = EXCLUDED.updated_at
		 `
	if _, err := r.db.ExecContext(ctx, query, s.RegistrationEnabled, s.DefaultPageSize, s.MaxPageSize); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
