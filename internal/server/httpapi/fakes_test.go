package httpapi

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/services"
)

type userStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func (s *userStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *userStore) put(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.Email] = u
}

func (s *userStore) remove(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, email)
}

type fakeAccounts struct {
	store       *userStore
	codec       *auth.TokenCodec
	passwords   map[string]string
	registerErr error
	loginErr    error
}

func (a *fakeAccounts) Register(_ context.Context, email, name, password string) (*models.User, error) {
	if a.registerErr != nil {
		return nil, a.registerErr
	}
	u := &models.User{ID: int64(len(a.passwords) + 1), Email: email, Name: name, PasswordHash: "hash:" + password, CreatedAt: time.Now()}
	a.store.put(u)
	a.passwords[email] = password
	return u, nil
}

func (a *fakeAccounts) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	if a.loginErr != nil {
		return nil, a.loginErr
	}
	if p, ok := a.passwords[email]; !ok || p != password {
		return nil, common.ErrInvalidCredentials
	}
	u, err := a.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	tok, err := a.codec.Issue(u)
	if err != nil {
		return nil, err
	}
	return &services.TokenPair{AccessToken: tok, TokenType: common.TokenType}, nil
}

type fakeContent struct {
	albums []*models.Album
}

func (f *fakeContent) ListAlbums(_ context.Context, userID int64) ([]*models.Album, error) {
	var out []*models.Album
	for _, a := range f.albums {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeContent) CreateAlbum(_ context.Context, userID int64, name string, description *string) (*models.Album, error) {
	a := &models.Album{ID: int64(len(f.albums) + 1), UserID: userID, Name: name, Description: description}
	f.albums = append(f.albums, a)
	return a, nil
}

func (f *fakeContent) AddPhoto(_ context.Context, userID, albumID int64, url string, description *string) (*models.Photo, error) {
	for _, a := range f.albums {
		if a.ID == albumID && a.UserID == userID {
			return &models.Photo{ID: 1, AlbumID: albumID, UserID: userID, URL: url, Description: description}, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeContent) ListMessages(context.Context, int64) ([]*models.Message, error) {
	return nil, nil
}

func (f *fakeContent) CreateMessage(_ context.Context, userID int64, content, msgType string) (*models.Message, error) {
	return &models.Message{ID: 1, UserID: userID, Content: content, Type: msgType}, nil
}

func (f *fakeContent) ListTasks(context.Context, int64) ([]*models.Task, error) { return nil, nil }

func (f *fakeContent) CreateTask(_ context.Context, userID int64, title string, description *string) (*models.Task, error) {
	return &models.Task{ID: 1, UserID: userID, Title: title, Description: description}, nil
}

func (f *fakeContent) CompleteTask(_ context.Context, userID, taskID int64) (*models.Task, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeContent) ListEvents(context.Context, int64) ([]*models.Event, error) { return nil, nil }

func (f *fakeContent) CreateEvent(_ context.Context, userID int64, title string, description *string, date time.Time, eventType string) (*models.Event, error) {
	return &models.Event{ID: 1, UserID: userID, Title: title, Description: description, Date: date, Type: eventType}, nil
}

type fakeAdmin struct {
	store      *userStore
	settings   models.SystemSettings
	statsErr   error
	lastSkip   int
	lastLimit  int
	moderated  []models.ModerationAction
	deletedIDs []int64
}

func (f *fakeAdmin) ListUsers(_ context.Context, skip, limit int) ([]*models.User, error) {
	f.lastSkip, f.lastLimit = skip, limit
	return []*models.User{{ID: 1, Email: "a@x.io", PasswordHash: "secret-hash"}}, nil
}

func (f *fakeAdmin) GetUser(_ context.Context, id int64) (*models.User, error) {
	return nil, common.ErrorNotFound
}

func (f *fakeAdmin) DeleteUser(_ context.Context, id int64) error {
	f.deletedIDs = append(f.deletedIDs, id)
	for email, u := range f.store.users {
		if u.ID == id {
			f.store.remove(email)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (f *fakeAdmin) ListAlbums(context.Context, int, int) ([]*models.Album, error) { return nil, nil }
func (f *fakeAdmin) DeleteAlbum(context.Context, int64) error                      { return nil }
func (f *fakeAdmin) ListMessages(context.Context, int, int) ([]*models.Message, error) {
	return nil, nil
}
func (f *fakeAdmin) DeleteMessage(context.Context, int64) error { return nil }

func (f *fakeAdmin) ModerateMessage(_ context.Context, id int64, action models.ModerationAction) error {
	switch action {
	case models.ModerationHide, models.ModerationDelete:
		f.moderated = append(f.moderated, action)
		return nil
	default:
		return common.ErrInvalidAction
	}
}

func (f *fakeAdmin) Stats(context.Context) (*models.SystemStats, error) {
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	return &models.SystemStats{TotalUsers: 2, TotalTasks: 4, CompletedTasks: 1}, nil
}

func (f *fakeAdmin) Settings(context.Context) (models.SystemSettings, error) {
	return f.settings, nil
}

func (f *fakeAdmin) UpdateSettings(_ context.Context, s models.SystemSettings) (models.SystemSettings, error) {
	if err := s.Validate(); err != nil {
		return models.SystemSettings{}, common.ErrValidation
	}
	f.settings = s
	return s, nil
}
