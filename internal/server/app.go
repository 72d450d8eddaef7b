// Package server wires configuration, storage, services and transports
// together and runs the HTTP and gRPC listeners until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/memoria/internal/logging"
	"github.com/dmitrijs2005/memoria/internal/server/auth"
	"github.com/dmitrijs2005/memoria/internal/server/config"
	gs "github.com/dmitrijs2005/memoria/internal/server/grpc"
	"github.com/dmitrijs2005/memoria/internal/server/httpapi"
	"github.com/dmitrijs2005/memoria/internal/server/ratelimit"
	"github.com/dmitrijs2005/memoria/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/memoria/internal/server/services"
	"github.com/redis/go-redis/v9"
)

// adminGRPCPrefix marks gRPC services that require the admin role.
const adminGRPCPrefix = "/memoria.admin."

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client

	guard   *auth.Guard
	users   *services.UserService
	content *services.ContentService
	admin   *services.AdminService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	warnInsecureConfig(ctx, logger, c)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{config: c, logger: logger, db: db}

	var limiter services.LoginLimiter
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		limiter = ratelimit.NewLoginLimiter(app.redis, c.LoginMaxAttempts, c.LoginAttemptWindow)
	}

	hasher := auth.NewPasswordHasher(c.PasswordHashCost)
	codec := auth.NewTokenCodec([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	app.guard = auth.NewGuard(auth.NewResolver(codec, rm.Users(db), logger))

	app.users, err = services.NewUserService(db, rm, hasher, codec, limiter, logger)
	if err != nil {
		app.close()
		return nil, err
	}
	app.content = services.NewContentService(db, rm)
	app.admin = services.NewAdminService(db, rm, logger)

	return app, nil
}

func warnInsecureConfig(ctx context.Context, logger logging.Logger, c *config.Config) {
	if c.InsecureSecret() {
		logger.Warn(ctx, "token signing key is the development default; set MEMORIA_SECRET_KEY")
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.guard, app.admin, adminGRPCPrefix)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.logger, app.users, app.content, app.admin, app.guard)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) close() {
	if app.redis != nil {
		_ = app.redis.Close()
	}
	if app.db != nil {
		_ = app.db.Close()
	}
}

// Run blocks until a signal arrives or one of the listeners fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.close()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.EndpointAddrGRPC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()
	app.logger.Info(ctx, "App stopped")
}
