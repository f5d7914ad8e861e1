package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"apacheck-backend/internal/apa"
	"apacheck-backend/internal/documents"
	"apacheck-backend/internal/shared/config"
	"apacheck-backend/internal/shared/server"
	"apacheck-backend/internal/shared/storage/db"
	"apacheck-backend/internal/shared/storage/object"
	localstore "apacheck-backend/internal/shared/storage/object/local"
	"apacheck-backend/internal/validations"
)

// App holds shared dependencies wired from config.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	DocumentsRepo      documents.Repo
	ValidationsRepo    validations.Repo
	DocumentsService   *documents.Service
	ValidationsService *validations.Service
	DocumentsHandler   *documents.Handler
	ValidationsHandler *validations.Handler
}

// Build prepares shared dependencies and the HTTP router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  localstore.New(cfg.LocalStoreDir),
	}

	if app.DB != nil {
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.ValidationsRepo = &validations.PGRepo{DB: app.DB}
	} else {
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.ValidationsRepo = validations.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{Store: app.Store, Repo: app.DocumentsRepo}
	app.ValidationsService = &validations.Service{
		Repo:   app.ValidationsRepo,
		Docs:   app.DocumentsService,
		Policy: apa.DefaultPolicy(),
	}
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.ValidationsHandler = validations.NewHandler(app.ValidationsService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		DocumentHandler:   app.DocumentsHandler,
		ValidationHandler: app.ValidationsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
