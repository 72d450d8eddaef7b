// Package httpapi exposes the memoria services over HTTP using fiber.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/models"
	"github.com/dmitrijs2005/memoria/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

const shutdownTimeout = 5 * time.Second

// Accounts registers users and logs them in.
type Accounts interface {
	Register(ctx context.Context, email, name, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
}

// Content serves the calling user's own resources.
type Content interface {
	ListAlbums(ctx context.Context, userID int64) ([]*models.Album, error)
	CreateAlbum(ctx context.Context, userID int64, name string, description *string) (*models.Album, error)
	AddPhoto(ctx context.Context, userID, albumID int64, url string, description *string) (*models.Photo, error)
	ListMessages(ctx context.Context, userID int64) ([]*models.Message, error)
	CreateMessage(ctx context.Context, userID int64, content, msgType string) (*models.Message, error)
	ListTasks(ctx context.Context, userID int64) ([]*models.Task, error)
	CreateTask(ctx context.Context, userID int64, title string, description *string) (*models.Task, error)
	CompleteTask(ctx context.Context, userID, taskID int64) (*models.Task, error)
	ListEvents(ctx context.Context, userID int64) ([]*models.Event, error)
	CreateEvent(ctx context.Context, userID int64, title string, description *string, date time.Time, eventType string) (*models.Event, error)
}

// Admin backs the /admin routes.
type Admin interface {
	ListUsers(ctx context.Context, skip, limit int) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ListAlbums(ctx context.Context, skip, limit int) ([]*models.Album, error)
	DeleteAlbum(ctx context.Context, id int64) error
	ListMessages(ctx context.Context, skip, limit int) ([]*models.Message, error)
	DeleteMessage(ctx context.Context, id int64) error
	ModerateMessage(ctx context.Context, id int64, action models.ModerationAction) error
	Stats(ctx context.Context) (*models.SystemStats, error)
	Settings(ctx context.Context) (models.SystemSettings, error)
	UpdateSettings(ctx context.Context, s models.SystemSettings) (models.SystemSettings, error)
}

// Guard is the access check applied to protected routes.
type Guard interface {
	RequireAuthenticated(ctx context.Context, token string) (*models.User, error)
	RequireActive(user *models.User) (*models.User, error)
	RequireAdmin(user *models.User) (*models.User, error)
}

type Server struct {
	address  string
	app      *fiber.App
	accounts Accounts
	content  Content
	admin    Admin
	guard    Guard
	logger   logging.Logger
}

func NewServer(address string, l logging.Logger, accounts Accounts, content Content, admin Admin, guard Guard) *Server {
	s := &Server{
		address:  address,
		accounts: accounts,
		content:  content,
		admin:    admin,
		guard:    guard,
		logger:   l.With("module", "http_server"),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "memoria",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Use(s.requestLogger)
	// inside the logger so recovered panics are logged as 500s
	s.app.Use(recover.New())
	s.routes()

	return s
}

// App exposes the fiber application, mainly for tests.
func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		errCh <- s.app.Listen(s.address)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "Stopping HTTP server...")
		return s.app.ShutdownWithTimeout(shutdownTimeout)
	}
}
