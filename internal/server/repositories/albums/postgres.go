package albums

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/dbx"
	"github.com/dmitrijs2005/memoria/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const albumColumns = `id, user_id, name, description, created_at`

func (r *PostgresRepository) Create(ctx context.Context, album *models.Album) (*models.Album, error) {
	query :=
		`INSERT INTO albums (user_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `
	err := r.db.QueryRowContext(ctx, query, album.UserID, album.Name, album.Description).
		Scan(&album.ID, &album.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return album, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE id = $1`

	a := &models.Album{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums WHERE user_id = $1 ORDER BY id`
	return r.selectAlbums(ctx, query, userID)
}

func (r *PostgresRepository) List(ctx context.Context, offset, limit int) ([]*models.Album, error) {
	query := `SELECT ` + albumColumns + ` FROM albums ORDER BY id LIMIT $1 OFFSET $2`
	return r.selectAlbums(ctx, query, limit, offset)
}

func (r *PostgresRepository) selectAlbums(ctx context.Context, query string, args ...any) ([]*models.Album, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select albums: %w", err)
	}
	defer rows.Close()

	var result []*models.Album
	for rows.Next() {
		var a models.Album
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return r.exec(ctx, `DELETE FROM albums WHERE user_id = $1`, userID)
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM albums`)
}

func (r *PostgresRepository) AddPhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error) {
	query :=
		`INSERT INTO photos (album_id, user_id, url, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `
	err := r.db.QueryRowContext(ctx, query, photo.AlbumID, photo.UserID, photo.URL, photo.Description).
		Scan(&photo.ID, &photo.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return photo, nil
}

func (r *PostgresRepository) DeletePhotosByAlbum(ctx context.Context, albumID int64) (int64, error) {
	return r.exec(ctx, `DELETE FROM photos WHERE album_id = $1`, albumID)
}

// DeletePhotosByUser removes photos uploaded by the user as well as any
// photo stored in one of the user's albums.
func (r *PostgresRepository) DeletePhotosByUser(ctx context.Context, userID int64) (int64, error) {
	query :=
		`DELETE FROM photos
		 WHERE user_id = $1
		    OR album_id IN (SELECT id FROM albums WHERE user_id = $1)
		 `
	return r.exec(ctx, query, userID)
}

func (r *PostgresRepository) CountPhotos(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM photos`)
}

func (r *PostgresRepository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
