// Package server initializes and runs the development relay: the REST API the
// console talks to and a gRPC health endpoint, with graceful shutdown on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gzapadmin/internal/logging"
	"github.com/dmitrijs2005/gzapadmin/internal/server/config"
	"github.com/dmitrijs2005/gzapadmin/internal/server/httpapi"
	"github.com/dmitrijs2005/gzapadmin/internal/server/models"
	"github.com/dmitrijs2005/gzapadmin/internal/server/relay"
	"github.com/dmitrijs2005/gzapadmin/internal/server/users"

	gs "github.com/dmitrijs2005/gzapadmin/internal/server/grpc"
)

const (
	demoMessages    = 23
	shutdownTimeout = 5 * time.Second
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	store       *relay.Store
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	us := users.NewService(users.NewMemoryRepository(), c)
	store := relay.NewStore(c.PairDelay)

	app := &App{config: c, logger: logger, userService: us, store: store}
	if err := app.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}
	return app, nil
}

// seed creates the demo company, its log and the admin/admin and user/user
// accounts.
func (app *App) seed(ctx context.Context) error {
	companyID, err := app.store.SeedDemo(ctx, demoMessages)
	if err != nil {
		return err
	}
	if err := app.userService.Seed(ctx, "admin", "admin", models.UserTypeAdmin, ""); err != nil {
		return err
	}
	return app.userService.Seed(ctx, "user", "user", models.UserTypeUser, companyID)
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	h := httpapi.NewHandler(app.userService, app.store, app.logger)
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           httpapi.NewRouter(h, app.userService, app.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		app.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.HealthAddr, app.logger)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	if app.config.HealthAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.startGRPCServer(ctx, cancelFunc)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
