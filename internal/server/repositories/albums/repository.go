// Package albums stores photo albums and the photos inside them.
package albums

import (
	"context"

	"github.com/dmitrijs2005/memoria/internal/server/models"
)

// Repository persists albums and photos. Deletes never cascade on their own:
// callers remove photos before the albums that hold them, inside one
// transaction.
type Repository interface {
	Create(ctx context.Context, album *models.Album) (*models.Album, error)
	GetByID(ctx context.Context, id int64) (*models.Album, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Album, error)
	List(ctx context.Context, offset, limit int) ([]*models.Album, error)
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	Count(ctx context.Context) (int64, error)

	AddPhoto(ctx context.Context, photo *models.Photo) (*models.Photo, error)
	DeletePhotosByAlbum(ctx context.Context, albumID int64) (int64, error)
	DeletePhotosByUser(ctx context.Context, userID int64) (int64, error)
	CountPhotos(ctx context.Context) (int64, error)
}
