package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/dbx"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/albums"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/events"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/messages"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/settings"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/users"
)

// memStore is an in-memory stand-in for every repository. Transactions are
// not simulated: the sqlmock DB only records Begin/Commit/Rollback.
type memStore struct {
	mu sync.Mutex

	nextID   int64
	users    map[int64]*models.User
	albums   map[int64]*models.Album
	photos   map[int64]*models.Photo
	messages map[int64]*models.Message
	tasks    map[int64]*models.Task
	events   map[int64]*models.Event
	settings *models.SystemSettings

	// failOn makes the named operation return errBoom.
	failOn string

	lastListLimit int
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[int64]*models.User{},
		albums:   map[int64]*models.Album{},
		photos:   map[int64]*models.Photo{},
		messages: map[int64]*models.Message{},
		tasks:    map[int64]*models.Task{},
		events:   map[int64]*models.Event{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) fail(op string) error {
	if m.failOn == op {
		return errBoom
	}
	return nil
}

func sortedKeys[V any](mp map[int64]V) []int64 {
	keys := make([]int64, 0, len(mp))
	for k := range mp {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- repository manager ---

type fakeRepoManager struct{ s *memStore }

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return memUsers{f.s} }
func (f *fakeRepoManager) Albums(dbx.DBTX) albums.Repository            { return memAlbums{f.s} }
func (f *fakeRepoManager) Messages(dbx.DBTX) messages.Repository        { return memMessages{f.s} }
func (f *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository              { return memTasks{f.s} }
func (f *fakeRepoManager) Events(dbx.DBTX) events.Repository            { return memEvents{f.s} }
func (f *fakeRepoManager) Settings(dbx.DBTX) settings.Repository        { return memSettings{f.s} }

// --- users ---

type memUsers struct{ s *memStore }

func (r memUsers) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.Create"); err != nil {
		return nil, err
	}
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return nil, common.ErrDuplicateIdentity
		}
	}
	cp := *u
	cp.ID = r.s.id()
	cp.CreatedAt = time.Now()
	r.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.GetUserByEmail"); err != nil {
		return nil, err
	}
	email = models.NormalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r memUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) List(_ context.Context, offset, limit int) ([]*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastListLimit = limit
	var out []*models.User
	for _, k := range sortedKeys(r.s.users) {
		cp := *r.s.users[k]
		out = append(out, &cp)
	}
	return page(out, offset, limit), nil
}

func (r memUsers) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.users)), r.s.fail("users.Count")
}

func (r memUsers) SetAdmin(_ context.Context, id int64, isAdmin bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.IsAdmin = isAdmin
	return nil
}

func (r memUsers) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("users.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	return nil
}

// --- albums ---

type memAlbums struct{ s *memStore }

func (r memAlbums) Create(_ context.Context, a *models.Album) (*models.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *a
	cp.ID = r.s.id()
	r.s.albums[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memAlbums) GetByID(_ context.Context, id int64) (*models.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.albums[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAlbums) ListByUser(_ context.Context, userID int64) ([]*models.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Album
	for _, k := range sortedKeys(r.s.albums) {
		if a := r.s.albums[k]; a.UserID == userID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memAlbums) List(_ context.Context, offset, limit int) ([]*models.Album, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastListLimit = limit
	var out []*models.Album
	for _, k := range sortedKeys(r.s.albums) {
		cp := *r.s.albums[k]
		out = append(out, &cp)
	}
	return page(out, offset, limit), nil
}

func (r memAlbums) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.albums[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.albums, id)
	return nil
}

func (r memAlbums) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.albums {
		if a.UserID == userID {
			delete(r.s.albums, id)
			n++
		}
	}
	return n, nil
}

func (r memAlbums) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.albums)), nil
}

func (r memAlbums) AddPhoto(_ context.Context, p *models.Photo) (*models.Photo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *p
	cp.ID = r.s.id()
	r.s.photos[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memAlbums) DeletePhotosByAlbum(_ context.Context, albumID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, p := range r.s.photos {
		if p.AlbumID == albumID {
			delete(r.s.photos, id)
			n++
		}
	}
	return n, nil
}

func (r memAlbums) DeletePhotosByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("albums.DeletePhotosByUser"); err != nil {
		return 0, err
	}
	var n int64
	for id, p := range r.s.photos {
		a, ok := r.s.albums[p.AlbumID]
		if p.UserID == userID || (ok && a.UserID == userID) {
			delete(r.s.photos, id)
			n++
		}
	}
	return n, nil
}

func (r memAlbums) CountPhotos(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.photos)), nil
}

// --- messages ---

type memMessages struct{ s *memStore }

func (r memMessages) Create(_ context.Context, m *models.Message) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	cp.ID = r.s.id()
	r.s.messages[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memMessages) GetByID(_ context.Context, id int64) (*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *m
	return &cp, nil
}

func (r memMessages) ListByUser(_ context.Context, userID int64) ([]*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Message
	for _, k := range sortedKeys(r.s.messages) {
		if m := r.s.messages[k]; m.UserID == userID && !m.IsHidden {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memMessages) List(_ context.Context, offset, limit int) ([]*models.Message, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lastListLimit = limit
	var out []*models.Message
	for _, k := range sortedKeys(r.s.messages) {
		cp := *r.s.messages[k]
		out = append(out, &cp)
	}
	return page(out, offset, limit), nil
}

func (r memMessages) Hide(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.messages[id]
	if !ok {
		return common.ErrorNotFound
	}
	m.IsHidden = true
	return nil
}

func (r memMessages) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.messages[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.messages, id)
	return nil
}

func (r memMessages) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, m := range r.s.messages {
		if m.UserID == userID {
			delete(r.s.messages, id)
			n++
		}
	}
	return n, nil
}

func (r memMessages) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.messages)), nil
}

// --- tasks ---

type memTasks struct{ s *memStore }

func (r memTasks) Create(_ context.Context, t *models.Task) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *t
	cp.ID = r.s.id()
	r.s.tasks[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memTasks) ListByUser(_ context.Context, userID int64) ([]*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Task
	for _, k := range sortedKeys(r.s.tasks) {
		if t := r.s.tasks[k]; t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memTasks) Complete(_ context.Context, id, userID int64) (*models.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	now := time.Now()
	t.Completed = true
	t.CompletedAt = &now
	cp := *t
	return &cp, nil
}

func (r memTasks) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, t := range r.s.tasks {
		if t.UserID == userID {
			delete(r.s.tasks, id)
			n++
		}
	}
	return n, nil
}

func (r memTasks) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.tasks)), nil
}

func (r memTasks) CountCompleted(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, t := range r.s.tasks {
		if t.Completed {
			n++
		}
	}
	return n, nil
}

// --- events ---

type memEvents struct{ s *memStore }

func (r memEvents) Create(_ context.Context, e *models.Event) (*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	cp.ID = r.s.id()
	r.s.events[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (r memEvents) ListByUser(_ context.Context, userID int64) ([]*models.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Event
	for _, k := range sortedKeys(r.s.events) {
		if e := r.s.events[k]; e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memEvents) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, e := range r.s.events {
		if e.UserID == userID {
			delete(r.s.events, id)
			n++
		}
	}
	return n, nil
}

func (r memEvents) Count(context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.events)), nil
}

// --- settings ---

type memSettings struct{ s *memStore }

func (r memSettings) Get(context.Context) (models.SystemSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("settings.Get"); err != nil {
		return models.SystemSettings{}, err
	}
	if r.s.settings == nil {
		return models.DefaultSystemSettings(), nil
	}
	return *r.s.settings, nil
}

func (r memSettings) Save(_ context.Context, st models.SystemSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.settings = &st
	return nil
}
