package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/repomanager"
)

// ContentService serves a user's own albums, photos, messages, tasks and
// events. Every method is scoped to the calling user's id.
type ContentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContentService(db *sql.DB, m repomanager.RepositoryManager) *ContentService {
	return &ContentService{db: db, repomanager: m}
}

func (s *ContentService) ListAlbums(ctx context.Context, userID int64) ([]*models.Album, error) {
	return s.repomanager.Albums(s.db).ListByUser(ctx, userID)
}

func (s *ContentService) CreateAlbum(ctx context.Context, userID int64, name string, description *string) (*models.Album, error) {
	return s.repomanager.Albums(s.db).Create(ctx, &models.Album{UserID: userID, Name: name, Description: description})
}

// AddPhoto adds a photo to one of the user's albums. Albums owned by
// someone else are reported as not found.
func (s *ContentService) AddPhoto(ctx context.Context, userID, albumID int64, url string, description *string) (*models.Photo, error) {
	repo := s.repomanager.Albums(s.db)

	album, err := repo.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album.UserID != userID {
		return nil, common.ErrorNotFound
	}

	return repo.AddPhoto(ctx, &models.Photo{AlbumID: albumID, UserID: userID, URL: url, Description: description})
}

func (s *ContentService) ListMessages(ctx context.Context, userID int64) ([]*models.Message, error) {
	return s.repomanager.Messages(s.db).ListByUser(ctx, userID)
}

func (s *ContentService) CreateMessage(ctx context.Context, userID int64, content, msgType string) (*models.Message, error) {
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	return s.repomanager.Messages(s.db).Create(ctx, &models.Message{UserID: userID, Content: content, Type: msgType})
}

func (s *ContentService) ListTasks(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.repomanager.Tasks(s.db).ListByUser(ctx, userID)
}

func (s *ContentService) CreateTask(ctx context.Context, userID int64, title string, description *string) (*models.Task, error) {
	return s.repomanager.Tasks(s.db).Create(ctx, &models.Task{UserID: userID, Title: title, Description: description})
}

func (s *ContentService) CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	t, err := s.repomanager.Tasks(s.db).Complete(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("complete task: %w", err)
	}
	return t, nil
}

func (s *ContentService) ListEvents(ctx context.Context, userID int64) ([]*models.Event, error) {
	return s.repomanager.Events(s.db).ListByUser(ctx, userID)
}

func (s *ContentService) CreateEvent(ctx context.Context, userID int64, title string, description *string, date time.Time, eventType string) (*models.Event, error) {
	return s.repomanager.Events(s.db).Create(ctx, &models.Event{
		UserID:      userID,
		Title:       title,
		Description: description,
		Date:        date,
		Type:        eventType,
	})
}
