package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/memoria/internal/common"
	"github.com/dmitrijs2005/memoria/internal/server/models"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	err   error
	calls int
}

func newMemUsers(us ...*models.User) *memUsers {
	m := &memUsers{users: map[string]*models.User{}}
	for _, u := range us {
		m.users[u.Email] = u
	}
	return m
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[models.NormalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) promote(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email].IsAdmin = true
}

func (m *memUsers) remove(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, email)
}

var errStoreDown = errors.New("store down")
