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

	"github.com/mrlokans/userauth/internal/audit"
	"github.com/mrlokans/userauth/internal/auth"
	"github.com/mrlokans/userauth/internal/config"
	"github.com/mrlokans/userauth/internal/database"
	auditrepo "github.com/mrlokans/userauth/internal/database/audit"
	sessionsrepo "github.com/mrlokans/userauth/internal/database/sessions"
	usersrepo "github.com/mrlokans/userauth/internal/database/users"
	http_controllers "github.com/mrlokans/userauth/internal/http"
	"github.com/mrlokans/userauth/internal/scheduler"
	"github.com/mrlokans/userauth/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown: wait for SIGINT/SIGTERM, then drain with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// NewStrategy builds the session-authentication strategy selected by the
// configuration. Unknown values fall back to the base strategy.
func NewStrategy(cfg config.Auth, users *usersrepo.Repository, sessions *sessionsrepo.Repository, hasher *auth.Hasher) auth.Strategy {
	switch cfg.Strategy {
	case config.StrategyBasic:
		return auth.NewBasicCredential(cfg.CookieName, users, hasher)
	case config.StrategySession:
		return auth.NewBareSession(cfg.CookieName, users)
	case config.StrategySessionExp:
		return auth.NewExpiringSession(cfg.CookieName, users, cfg.SessionDuration)
	case config.StrategySessionDB:
		return auth.NewPersistedSession(cfg.CookieName, users, sessions, cfg.SessionDuration)
	case config.StrategyBase:
		return auth.NewBase(cfg.CookieName)
	default:
		log.Printf("Unknown auth strategy %q, falling back to base", cfg.Strategy)
		return auth.NewBase(cfg.CookieName)
	}
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting userauth v%s", version)

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	usersRepository := usersrepo.NewRepository(db.DB)
	sessionsRepository := sessionsrepo.NewRepository(db.DB)
	auditRepository := auditrepo.NewRepository(db.DB)

	auditService := audit.NewService(auditRepository)

	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	authService := auth.NewService(usersRepository, hasher)

	strategy := NewStrategy(cfg.Auth, usersRepository, sessionsRepository, hasher)
	log.Printf("Authentication strategy: %s", cfg.Auth.Strategy)

	authMiddleware := auth.NewMiddleware(authService, strategy, cfg.Auth)

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	var cleanupScheduler *scheduler.CleanupScheduler
	if cfg.Tasks.Enabled {
		taskCfg := tasks.DefaultConfig()
		taskCfg.Workers = cfg.Tasks.Workers
		taskCfg.ReleaseAfter = cfg.Tasks.ReleaseAfter
		taskCfg.CleanupInterval = cfg.Tasks.CleanupInterval

		taskClient, err = tasks.NewClient(cfg.Database.Path, taskCfg)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewCleanupSessionsQueue(sessionsRepository),
			tasks.NewCleanupAuditEventsQueue(auditService),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupScheduler = scheduler.NewCleanupScheduler(taskClient, cfg)
		if err := cleanupScheduler.Start(context.Background()); err != nil {
			log.Printf("WARNING: Failed to start cleanup scheduler: %v", err)
		}
	}

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Version:        version,
		AuthConfig:     cfg.Auth,
		AuthService:    authService,
		AuthStrategy:   strategy,
		AuthMiddleware: authMiddleware,
		AuditService:   auditService,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}
