package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/pitaka-app/pitaka-api/internal/config"
	"github.com/pitaka-app/pitaka-api/internal/platform/postgres"
	"github.com/pitaka-app/pitaka-api/internal/service"
	"github.com/pitaka-app/pitaka-api/internal/service/auth"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// application holds every long-lived dependency of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	uow *store.UnitOfWork

	jwtService auth.JWTService

	userService        service.UserService
	categoryService    service.CategoryService
	incomeService      service.IncomeService
	expenseService     service.ExpenseService
	debtService        service.DebtService
	debtPaymentService service.DebtPaymentService
	savingService      service.SavingService
	dashboardService   service.DashboardService
}

// newApplication opens the database and wires stores, services and auth
// together. The returned application owns the database handle; call
// cleanup when done.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := openDatabase(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	uow := store.NewUnitOfWork(
		db,
		postgres.NewPostgresUserStore(db, logger),
		postgres.NewPostgresCategoryStore(db, logger),
		postgres.NewPostgresIncomeStore(db, logger),
		postgres.NewPostgresExpenseStore(db, logger),
		postgres.NewPostgresDebtStore(db, logger),
		postgres.NewPostgresDebtPaymentStore(db, logger),
		postgres.NewPostgresSavingGoalStore(db, logger),
		postgres.NewPostgresSavingTransactionStore(db, logger),
	)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	return &application{
		config:     cfg,
		logger:     logger,
		db:         db,
		uow:        uow,
		jwtService: jwtService,

		userService:        service.NewUserService(uow, hasher, verifier, jwtService, logger),
		categoryService:    service.NewCategoryService(uow, logger),
		incomeService:      service.NewIncomeService(uow, logger),
		expenseService:     service.NewExpenseService(uow, logger),
		debtService:        service.NewDebtService(uow, logger),
		debtPaymentService: service.NewDebtPaymentService(uow, logger),
		savingService:      service.NewSavingService(uow, logger),
		dashboardService:   service.NewDashboardService(uow, logger),
	}, nil
}

// openDatabase opens and pings the Postgres connection pool.
func openDatabase(cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		closeQuietly(db, logger)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// cleanup releases the application's long-lived resources.
func (app *application) cleanup() {
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
