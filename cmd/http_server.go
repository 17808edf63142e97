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

	"github.com/hrtools/employee-directory/internal"
	"github.com/hrtools/employee-directory/internal/audit"
	"github.com/hrtools/employee-directory/internal/auth"
	"github.com/hrtools/employee-directory/internal/core/events"
	"github.com/hrtools/employee-directory/internal/department"
	departmentpg "github.com/hrtools/employee-directory/internal/department/postgres"
	"github.com/hrtools/employee-directory/internal/employee"
	employeepg "github.com/hrtools/employee-directory/internal/employee/postgres"
	"github.com/hrtools/employee-directory/internal/ratelimit"
	"github.com/hrtools/employee-directory/internal/transport/middleware"
	"github.com/hrtools/employee-directory/internal/transport/rest"
	"github.com/hrtools/employee-directory/internal/user"
	userpg "github.com/hrtools/employee-directory/internal/user/postgres"
	"github.com/hrtools/employee-directory/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
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
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
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

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	appLogger := logger.LoggerWrapper()

	sqlxDB, gormDB, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := events.NewEventBus(appLogger)
	audit.RegisterSubscribers(bus, appLogger)

	userRepo := userpg.NewUserRepository(gormDB)
	userService := user.NewService(userRepo, config.Security.BCryptCost)
	userHandler := user.NewHandler(userService)

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(userRepo, tokenGen)
	authHandler := auth.NewHandler(authService, bus)

	departmentRepo := departmentpg.NewDepartmentRepository(gormDB)
	resolver := department.NewResolver(departmentRepo)
	departmentHandler := department.NewHandler(resolver)

	employeeRepo := employeepg.NewEmployeeRepository(gormDB)
	employeeService := employee.NewService(employeeRepo, resolver, bus, appLogger)
	employeeHandler := employee.NewHandler(employeeService)

	limiter := ratelimit.NewLimiter(config.RateLimit.Limit, config.RateLimit.Period)

	if config.Observability.Metrics.Enabled {
		middleware.InitMetrics()
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		Config:            config,
		DB:                sqlxDB.DB,
		AuthHandler:       authHandler,
		UserHandler:       userHandler,
		EmployeeHandler:   employeeHandler,
		DepartmentHandler: departmentHandler,
		Limiter:           limiter,
		Events:            bus,
		Logger:            appLogger,
	})

	return &Dependencies{
		Config: config,
		Logger: appLogger,
		DB:     sqlxDB,
		Router: router,
	}, nil
}

// initDB opens one pgx connection pool and hands the same pool to gorm, so
// pool limits apply to every query path.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: dbConn.DB}), &gorm.Config{})
	if err != nil {
		_ = dbConn.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return dbConn, gormDB, nil
}
