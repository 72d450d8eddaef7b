package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/dbx"
	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/repomanager"
)

// AdminService backs the admin console. Callers must have passed
// Guard.RequireAdmin; the service itself does not check roles.
type AdminService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewAdminService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *AdminService {
	if logger == nil {
		logger = logging.Nop{}
	}
	return &AdminService{db: db, repomanager: m, logger: logger.With("module", "admin")}
}

func (s *AdminService) page(ctx context.Context, limit int) (int, error) {
	settings, err := s.repomanager.Settings(s.db).Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	return settings.ClampLimit(limit), nil
}

func (s *AdminService) ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error) {
	limit, err := s.page(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Users(s.db).List(ctx, max(skip, 0), limit)
}

func (s *AdminService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetUserByID(ctx, id)
}

// DeleteUser removes the user and everything they own in one transaction.
// Tokens already issued to the user stop resolving once the row is gone.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Users(tx).GetUserByID(ctx, id); err != nil {
			return err
		}

		albums := s.repomanager.Albums(tx)
		if _, err := albums.DeletePhotosByUser(ctx, id); err != nil {
			return err
		}
		if _, err := albums.DeleteByUser(ctx, id); err != nil {
			return err
		}
		if _, err := s.repomanager.Messages(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if _, err := s.repomanager.Tasks(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if _, err := s.repomanager.Events(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.repomanager.Users(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	s.logger.Info(ctx, "user deleted", "user_id", id)
	return nil
}

func (s *AdminService) ListAlbums(ctx context.Context, skip, limit int) ([]*models.Album, error) {
	limit, err := s.page(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Albums(s.db).List(ctx, max(skip, 0), limit)
}

// DeleteAlbum removes the album and its photos.
func (s *AdminService) DeleteAlbum(ctx context.Context, id int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Albums(tx)
		if _, err := repo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := repo.DeletePhotosByAlbum(ctx, id); err != nil {
			return err
		}
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		return fmt.Errorf("delete album: %w", err)
	}

	s.logger.Info(ctx, "album deleted", "album_id", id)
	return nil
}

func (s *AdminService) ListMessages(ctx context.Context, skip, limit int) ([]*models.Message, error) {
	limit, err := s.page(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.repomanager.Messages(s.db).List(ctx, max(skip, 0), limit)
}

func (s *AdminService) DeleteMessage(ctx context.Context, id int64) error {
	return s.repomanager.Messages(s.db).Delete(ctx, id)
}

// ModerateMessage hides or deletes a message. A missing message is reported
// before an unknown action.
func (s *AdminService) ModerateMessage(ctx context.Context, id int64, action models.ModerationAction) error {
	repo := s.repomanager.Messages(s.db)
	if _, err := repo.GetByID(ctx, id); err != nil {
		return err
	}

	switch action {
	case models.ModerationHide:
		if err := repo.Hide(ctx, id); err != nil {
			return err
		}
	case models.ModerationDelete:
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", common.ErrInvalidAction, action)
	}

	s.logger.Info(ctx, "message moderated", "message_id", id, "action", string(action))
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*models.SystemStats, error) {
	var (
		st  models.SystemStats
		err error
	)
	users := s.repomanager.Users(s.db)
	albums := s.repomanager.Albums(s.db)
	tasks := s.repomanager.Tasks(s.db)

	counters := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&st.TotalUsers, users.Count},
		{&st.TotalAlbums, albums.Count},
		{&st.TotalPhotos, albums.CountPhotos},
		{&st.TotalMessages, s.repomanager.Messages(s.db).Count},
		{&st.TotalTasks, tasks.Count},
		{&st.TotalEvents, s.repomanager.Events(s.db).Count},
		{&st.CompletedTasks, tasks.CountCompleted},
	}
	for _, c := range counters {
		if *c.dst, err = c.fn(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrorInternal, err)
		}
	}
	return &st, nil
}

func (s *AdminService) Settings(ctx context.Context) (models.SystemSettings, error) {
	return s.repomanager.Settings(s.db).Get(ctx)
}

func (s *AdminService) UpdateSettings(ctx context.Context, settings models.SystemSettings) (models.SystemSettings, error) {
	if err := settings.Validate(); err != nil {
		return models.SystemSettings{}, fmt.Errorf("%w: %w", common.ErrValidation, err)
	}
	if err := s.repomanager.Settings(s.db).Save(ctx, settings); err != nil {
		return models.SystemSettings{}, fmt.Errorf("%w: %w", common.ErrorInternal, err)
	}
	s.logger.Info(ctx, "settings updated")
	return settings, nil
}

// EnsureAdmin promotes the user with email to administrator, creating the
// account when it does not exist. password is only used for a new account.
// It reports whether a user was created.
func (s *AdminService) EnsureAdmin(ctx context.Context, hasher *auth.PasswordHasher, email, name, password string) (*models.User, bool, error) {
	var (
		user    *models.User
		created bool
	)
	email = models.NormalizeEmail(email)

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			if err := repo.SetAdmin(ctx, u.ID, true); err != nil {
				return err
			}
			u.IsAdmin = true
			user = u
			return nil
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return err
		}
		user, err = repo.Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash, IsAdmin: true})
		created = err == nil
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("ensure admin: %w", err)
	}

	s.logger.Info(ctx, "admin ensured", "user_id", user.ID, "created", created)
	return user, created, nil
}
