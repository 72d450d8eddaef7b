package services

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fixture struct {
	db       *sql.DB
	mock     sqlmock.Sqlmock
	store    *memStore
	rm       *fakeRepoManager
	codec    *auth.TokenCodec
	hasher   *auth.PasswordHasher
	resolver *auth.Resolver
	guard    *auth.Guard
	users    *UserService
	content  *ContentService
	admin    *AdminService
}

func newFixture(t *testing.T, limiter LoginLimiter) *fixture {
	t.Helper()

	f := &fixture{store: newMemStore()}
	f.db, f.mock = newSQLMockDB(t)
	f.rm = &fakeRepoManager{s: f.store}
	f.codec = auth.NewTokenCodec([]byte("k"), time.Hour)
	f.hasher = auth.NewPasswordHasher(bcrypt.MinCost)
	f.resolver = auth.NewResolver(f.codec, f.rm.Users(f.db), logging.Nop{})
	f.guard = auth.NewGuard(f.resolver)

	var err error
	f.users, err = NewUserService(f.db, f.rm, f.hasher, f.codec, limiter, logging.Nop{})
	require.NoError(t, err)
	f.content = NewContentService(f.db, f.rm)
	f.admin = NewAdminService(f.db, f.rm, logging.Nop{})
	return f
}
