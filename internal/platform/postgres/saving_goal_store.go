package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pitaka-app/pitaka-api/internal/domain"
	"github.com/pitaka-app/pitaka-api/internal/platform/logger"
	"github.com/pitaka-app/pitaka-api/internal/store"
)

// PostgresSavingGoalStore implements the store.SavingGoalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSavingGoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSavingGoalStore creates a new PostgreSQL implementation of
// the SavingGoalStore interface. If logger is nil, a default logger will
// be used.
func NewPostgresSavingGoalStore(db store.DBTX, logger *slog.Logger) *PostgresSavingGoalStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSavingGoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "saving_goal_store")),
	}
}

// Ensure PostgresSavingGoalStore implements store.SavingGoalStore interface
var _ store.SavingGoalStore = (*PostgresSavingGoalStore)(nil)

// WithTx implements store.SavingGoalStore.WithTx
func (s *PostgresSavingGoalStore) WithTx(tx *sql.Tx) store.SavingGoalStore {
	return &PostgresSavingGoalStore{
		db:     tx,
		logger: s.logger,
	}
}

const savingGoalColumns = `id, user_id, name, target_amount, target_date, current_amount, remarks, created_at`

// scanSavingGoal scans a single saving goal row in savingGoalColumns order.
func scanSavingGoal(row interface{ Scan(...any) error }) (*domain.SavingGoal, error) {
	var g domain.SavingGoal
	var remarks sql.NullString
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.TargetDate,
		&g.CurrentAmount,
		&remarks,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	g.Remarks = remarks.String
	return &g, nil
}

// Save implements store.SavingGoalStore.Save
func (s *PostgresSavingGoalStore) Save(ctx context.Context, goal *domain.SavingGoal) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO saving_goals (user_id, name, target_amount, target_date, current_amount, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.TargetDate,
		goal.CurrentAmount,
		nullableString(goal.Remarks),
	).Scan(&goal.ID, &goal.CreatedAt)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate goal name during save",
				slog.Int64("user_id", goal.UserID),
				slog.String("name", goal.Name))
			return 0, fmt.Errorf("%w: %v", store.ErrGoalNameExists, err)
		}
		log.Error("failed to save saving goal",
			slog.String("error", err.Error()),
			slog.Int64("user_id", goal.UserID))
		return 0, MapError(err)
	}

	log.Info("saving goal saved successfully",
		slog.Int64("goal_id", goal.ID),
		slog.Int64("user_id", goal.UserID),
		slog.Float64("target_amount", goal.TargetAmount))
	return goal.ID, nil
}

// GetByID implements store.SavingGoalStore.GetByID
func (s *PostgresSavingGoalStore) GetByID(ctx context.Context, id int64) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1`
	return s.getGoal(ctx, query, id)
}

// GetByIDAndUserID implements store.SavingGoalStore.GetByIDAndUserID
func (s *PostgresSavingGoalStore) GetByIDAndUserID(ctx context.Context, id, userID int64) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1 AND user_id = $2`
	return s.getGoal(ctx, query, id, userID)
}

// GetByIDAndUserIDForUpdate implements store.SavingGoalStore.GetByIDAndUserIDForUpdate
// The FOR UPDATE clause serializes concurrent deposits and withdrawals
// against the same goal.
func (s *PostgresSavingGoalStore) GetByIDAndUserIDForUpdate(ctx context.Context, id, userID int64) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE id = $1 AND user_id = $2 FOR UPDATE`
	return s.getGoal(ctx, query, id, userID)
}

// GetByNameAndUserID implements store.SavingGoalStore.GetByNameAndUserID
func (s *PostgresSavingGoalStore) GetByNameAndUserID(ctx context.Context, name string, userID int64) (*domain.SavingGoal, error) {
	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE name = $1 AND user_id = $2`
	return s.getGoal(ctx, query, name, userID)
}

// getGoal runs a single-row saving goal query.
func (s *PostgresSavingGoalStore) getGoal(ctx context.Context, query string, args ...any) (*domain.SavingGoal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	goal, err := scanSavingGoal(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("saving goal not found")
			return nil, store.ErrSavingGoalNotFound
		}
		log.Error("failed to get saving goal", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return goal, nil
}

// GetAllByUserID implements store.SavingGoalStore.GetAllByUserID
func (s *PostgresSavingGoalStore) GetAllByUserID(ctx context.Context, userID int64) ([]*domain.SavingGoal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + savingGoalColumns + ` FROM saving_goals WHERE user_id = $1 ORDER BY target_date ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query saving goals",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	goals := []*domain.SavingGoal{}
	for rows.Next() {
		goal, err := scanSavingGoal(rows)
		if err != nil {
			log.Error("failed to scan saving goal row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		goals = append(goals, goal)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning saving goal rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return goals, nil
}

// Update implements store.SavingGoalStore.Update
func (s *PostgresSavingGoalStore) Update(ctx context.Context, goal *domain.SavingGoal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE saving_goals
		SET name = $1, target_amount = $2, target_date = $3,
		    current_amount = $4, remarks = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(ctx, query,
		goal.Name,
		goal.TargetAmount,
		goal.TargetDate,
		goal.CurrentAmount,
		nullableString(goal.Remarks),
		goal.ID,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate goal name during update",
				slog.Int64("goal_id", goal.ID),
				slog.String("name", goal.Name))
			return fmt.Errorf("%w: %v", store.ErrGoalNameExists, err)
		}
		log.Error("failed to update saving goal",
			slog.String("error", err.Error()),
			slog.Int64("goal_id", goal.ID))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSavingGoalNotFound); err != nil {
		log.Debug("saving goal not found for update", slog.Int64("goal_id", goal.ID))
		return err
	}

	log.Info("saving goal updated successfully", slog.Int64("goal_id", goal.ID))
	return nil
}

// Delete implements store.SavingGoalStore.Delete
func (s *PostgresSavingGoalStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM saving_goals WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("saving goal still has recorded transactions",
				slog.Int64("goal_id", id))
			return false, &store.StoreError{
				Entity:    "saving_goal",
				Operation: "delete",
				Message:   "saving goal has recorded transactions",
				Err:       err,
			}
		}
		log.Error("failed to delete saving goal",
			slog.String("error", err.Error()),
			slog.Int64("goal_id", id))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return false, nil
	}

	log.Info("saving goal deleted successfully", slog.Int64("goal_id", id))
	return true, nil
}
