// Package web serves the employee and admin pages over HTTP. It is a thin
// adapter: every request translates to a navigation event or a controller
// call, and the response is the fully re-rendered document.
package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/billhub/billhub/internal/application/port"
	"github.com/billhub/billhub/internal/application/service"
	"github.com/billhub/billhub/internal/domain/entity"
	"github.com/billhub/billhub/internal/export"
	"github.com/billhub/billhub/internal/interfaces/middleware"
	"github.com/billhub/billhub/internal/router"
	"github.com/billhub/billhub/internal/view"
)

// Config holds web application server configuration.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns default web server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// App wires the router, the page controllers and the gin engine together.
type App struct {
	config     Config
	engine     *gin.Engine
	httpServer *http.Server
	nav        *router.Router
	sessions   port.SessionStore
	bills      *service.BillsService
	dashboard  *service.DashboardService
	newBill    *service.NewBillService
	exporter   *export.Writer
	logger     *zap.Logger
}

// NewApp creates the web application over a bill store and a session store.
func NewApp(config Config, store port.BillStore, sessions port.SessionStore, logger *zap.Logger) *App {
	gin.SetMode(gin.ReleaseMode)

	nav := router.New(sessions, logger)
	app := &App{
		config:    config,
		engine:    gin.New(),
		nav:       nav,
		sessions:  sessions,
		bills:     service.NewBillsService(store, sessions, logger),
		dashboard: service.NewDashboardService(store, sessions, nav, logger),
		newBill:   service.NewNewBillService(store, sessions, nav, logger),
		exporter:  export.NewWriter(logger),
		logger:    logger,
	}

	app.registerRoutes()
	app.setupEngine()

	return app
}

// registerRoutes binds each navigable path to its view.
func (a *App) registerRoutes() {
	a.nav.Handle(router.PathLogin, router.Route{
		Title:  "Billed",
		Render: func() (string, error) { return view.LoginPage(), nil },
	})
	a.nav.Handle(router.PathBills, router.Route{
		Title:      "Billed - Mes notes de frais",
		ActiveIcon: "window",
		Role:       entity.RoleEmployee,
		Render: func() (string, error) {
			return a.bills.RenderPage(context.Background())
		},
	})
	a.nav.Handle(router.PathNewBill, router.Route{
		Title:      "Billed - Envoyer une note de frais",
		ActiveIcon: "mail",
		Role:       entity.RoleEmployee,
		Render: func() (string, error) {
			return a.newBill.RenderPage(), nil
		},
	})
	a.nav.Handle(router.PathDashboard, router.Route{
		Title: "Billed - Dashboard",
		Role:  entity.RoleAdmin,
		Render: func() (string, error) {
			return a.dashboard.RenderPage(context.Background())
		},
	})
}

func (a *App) setupEngine() {
	a.engine.Use(gin.Recovery())
	a.engine.Use(middleware.RequestLogging(a.logger))

	a.engine.GET("/", a.handleStart)
	a.engine.GET(router.PathBills, a.handleNavigate)
	a.engine.GET(router.PathNewBill, a.handleNavigate)
	a.engine.GET(router.PathDashboard, a.handleNavigate)

	a.engine.POST("/login", a.handleLogin)
	a.engine.POST("/logout", a.handleLogout)
	a.engine.POST("/back", a.handleBack)
	a.engine.POST("/forward", a.handleForward)

	a.engine.POST(router.PathNewBill, a.handleSubmitBill)

	a.engine.POST(router.PathDashboard+"/toggle/:index", a.handleToggle)
	a.engine.POST(router.PathDashboard+"/bills/:id/edit", a.handleEditTicket)
	a.engine.POST(router.PathDashboard+"/bills/:id/accept", a.handleAccept)
	a.engine.POST(router.PathDashboard+"/bills/:id/refuse", a.handleRefuse)
	a.engine.GET(router.PathDashboard+"/bills/:id/receipt", a.handleReceipt)
	a.engine.GET(router.PathDashboard+"/export", a.handleExport)

	a.engine.NoRoute(a.handleNavigate)
}

// Start starts the web server and blocks until ctx is cancelled or the
// server fails.
func (a *App) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.config.Host, a.config.Port)

	a.httpServer = &http.Server{
		Addr:         addr,
		Handler:      a.engine,
		ReadTimeout:  a.config.ReadTimeout,
		WriteTimeout: a.config.WriteTimeout,
	}

	a.logger.Info("Starting web server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Web server shutdown requested")
		return a.Stop()
	case err := <-errCh:
		a.logger.Error("Web server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the web server.
func (a *App) Stop() error {
	if a.httpServer == nil {
		return nil
	}

	a.logger.Info("Stopping web server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("Web server shutdown error", zap.Error(err))
		return err
	}

	a.logger.Info("Web server stopped")
	return nil
}

// Engine returns the underlying gin engine (for testing).
func (a *App) Engine() *gin.Engine {
	return a.engine
}
