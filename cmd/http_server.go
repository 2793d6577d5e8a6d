package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reformtrack/reform-management/internal"
	"github.com/reformtrack/reform-management/internal/accesscontrol"
	accesscontrolPostgres "github.com/reformtrack/reform-management/internal/accesscontrol/postgres"
	"github.com/reformtrack/reform-management/internal/audit"
	auditPostgres "github.com/reformtrack/reform-management/internal/audit/postgres"
	"github.com/reformtrack/reform-management/internal/auth"
	authPostgres "github.com/reformtrack/reform-management/internal/auth/postgres"
	"github.com/reformtrack/reform-management/internal/budget"
	budgetPostgres "github.com/reformtrack/reform-management/internal/budget/postgres"
	"github.com/reformtrack/reform-management/internal/core/events"
	"github.com/reformtrack/reform-management/internal/settings"
	settingsPostgres "github.com/reformtrack/reform-management/internal/settings/postgres"
	"github.com/reformtrack/reform-management/internal/task"
	taskPostgres "github.com/reformtrack/reform-management/internal/task/postgres"
	"github.com/reformtrack/reform-management/internal/transport/rest"
	"github.com/reformtrack/reform-management/internal/transport/swagger"
	"github.com/reformtrack/reform-management/internal/user"
	userPostgres "github.com/reformtrack/reform-management/internal/user/postgres"
	"github.com/reformtrack/reform-management/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Env, config.Logging.Level)
	appLogger := logger.LoggerWrapper()

	if err := swagger.ValidateSpec("./api/openapi.yml"); err != nil {
		appLogger.Warn("openapi spec validation failed", "error", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over db connection: %w", err)
	}

	router := chi.NewRouter()
	if err := registerRoutes(router, config, db, gormDB, appLogger); err != nil {
		return nil, err
	}

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     db,
		Router: router,
	}, nil
}

func registerRoutes(router *chi.Mux, config *internal.Config, db *sqlx.DB, gormDB *gorm.DB, appLogger *slog.Logger) error {
	// audit is the sink everything else writes into; build it first
	auditService := audit.NewService(auditPostgres.NewAuditRepository(gormDB), appLogger, config.Security.AuditWriteTimeout)

	roleTable, err := accesscontrol.NewRoleTable(accesscontrolPostgres.NewRoleRepository(gormDB), appLogger)
	if err != nil {
		return fmt.Errorf("failed to load role table: %w", err)
	}

	resolver := accesscontrol.NewResolver(roleTable, auditService, appLogger)
	gate := accesscontrol.NewGate(auditService, appLogger)

	bus := events.NewEventBus(appLogger)
	audit.NewSubscriber(auditService, appLogger).RegisterHandlers(bus)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authPostgres.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)
	userService := user.NewService(userPostgres.NewUserRepository(gormDB), auditService, appLogger)
	taskService := task.NewService(taskPostgres.NewTaskRepository(gormDB), bus, appLogger)
	budgetService := budget.NewService(budgetPostgres.NewBudgetRepository(gormDB), bus, appLogger)
	settingsService := settings.NewService(settingsPostgres.NewSettingsRepository(gormDB), auditService, appLogger)

	handlers := rest.Handlers{
		Auth:     auth.NewHandler(authService),
		User:     user.NewHandler(userService),
		Task:     task.NewHandler(taskService),
		Budget:   budget.NewHandler(budgetService),
		Settings: settings.NewHandler(settingsService),
		Audit:    audit.NewHandler(auditService),
		Roles:    accesscontrol.NewRolesHandler(roleTable, auditService),
	}
	guards := rest.Guards{
		Resolver: resolver,
		Gate:     gate,
	}

	rest.RegisterAllRoutes(router, db.DB, handlers, guards, appLogger)
	return nil
}

// initDB opens the pgx stdlib connection pool used by both sqlx and gorm.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
