package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/gobiblia/internal/audit"
	"github.com/mrlokans/gobiblia/internal/config"
	"github.com/mrlokans/gobiblia/internal/database/readings"
	http_controllers "github.com/mrlokans/gobiblia/internal/http"
	"github.com/mrlokans/gobiblia/internal/scripture"
)

// App holds the per-process dependencies shared by every request.
type App struct {
	Client  *scripture.Client
	Store   *readings.Repository
	Auditor *audit.Auditor
}

// NewApp builds the client, store and auditor from configuration.
// A store that fails to initialize is kept in degraded mode.
func NewApp(cfg *config.Config) *App {
	app := &App{
		Client: scripture.NewClient(cfg.Scripture.ClientOptions()),
		Store:  readings.Open(cfg.Database.Path, logger.Warn),
	}
	if !app.Store.Available() {
		log.Printf("WARNING: reading store is unavailable; reading endpoints will fail until %s is fixed", cfg.Database.Path)
	}

	if cfg.Audit.Enabled {
		log.Printf("Journaling reading submissions to %s", cfg.Audit.Dir)
		app.Auditor = audit.NewAuditor(cfg.Audit.Dir)
	}

	if cfg.Scripture.Token == "" {
		log.Printf("WARNING: scripture API token is not set. Requests are anonymous and may be throttled. Set 'SCRIPTURE_TOKEN' environment variable to authenticate.")
	}

	return app
}

// Router builds the HTTP router around the app's dependencies.
func (a *App) Router(cfg *config.Config, version string) *gin.Engine {
	return http_controllers.NewRouter(http_controllers.RouterConfig{
		Client:   a.Client,
		Store:    a.Store,
		Auditor:  a.Auditor,
		ReadOnly: cfg.HTTP.ReadOnly,
		Version:  version,
	})
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then give in-flight requests until the
	// shutdown timeout to finish.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting GoBiblia v%s", version)

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}
	if cfg.HTTP.ReadOnly {
		log.Printf("Read-only mode enabled - reading submissions will be rejected")
	}

	app := NewApp(cfg)
	router := app.Router(cfg, version)

	Serve(router, cfg, func(ctx context.Context) {
		if err := app.Close(); err != nil {
			log.Printf("Failed to close reading store: %v", err)
		}
	})
}
