package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

func TestRemainingAmount(t *testing.T) {
	t.Parallel()

	goal := &domain.SavingGoal{TargetAmount: 1000, CurrentAmount: 300}
	assert.InDelta(t, 700.0, RemainingAmount(goal), 1e-9)

	overSaved := &domain.SavingGoal{TargetAmount: 1000, CurrentAmount: 1200}
	assert.Zero(t, RemainingAmount(overSaved), "floored at zero when over-saved")
}

func TestGoalProgressPercentage(t *testing.T) {
	t.Parallel()

	goal := &domain.SavingGoal{TargetAmount: 1000, CurrentAmount: 250}
	assert.InDelta(t, 25.0, GoalProgressPercentage(goal), 1e-9)

	overSaved := &domain.SavingGoal{TargetAmount: 1000, CurrentAmount: 1500}
	assert.InDelta(t, 100.0, GoalProgressPercentage(overSaved), 1e-9, "capped at 100")
}

func TestMonthsToTarget(t *testing.T) {
	t.Parallel()

	goal := &domain.SavingGoal{TargetAmount: 1000, CurrentAmount: 400}

	assert.Equal(t, 3, MonthsToTarget(goal, 200))
	assert.Equal(t, 0, MonthsToTarget(goal, 0), "no savings means no estimate")
	assert.Equal(t, 0, MonthsToTarget(goal, -50))
}

func TestIsOnTrack(t *testing.T) {
	t.Parallel()

	today := domain.Today()

	t.Run("past target date requires completion", func(t *testing.T) {
		t.Parallel()
		done := &domain.SavingGoal{
			TargetAmount:  1000,
			CurrentAmount: 1000,
			TargetDate:    today.AddDate(0, 0, -1),
		}
		assert.True(t, IsOnTrack(done))

		unfinished := &domain.SavingGoal{
			TargetAmount:  1000,
			CurrentAmount: 500,
			TargetDate:    today.AddDate(0, 0, -1),
		}
		assert.False(t, IsOnTrack(unfinished))
	})

	t.Run("far-future goal with full progress is on track", func(t *testing.T) {
		t.Parallel()
		goal := &domain.SavingGoal{
			TargetAmount:  1000,
			CurrentAmount: 999,
			TargetDate:    today.AddDate(1, 0, 0),
		}
		assert.True(t, IsOnTrack(goal))
	})

	t.Run("far-future goal with no progress this far in is off track", func(t *testing.T) {
		t.Parallel()
		// Expect nothing on the first of the month, so zero progress only
		// fails once some of the window has elapsed.
		goal := &domain.SavingGoal{
			TargetAmount:  1000,
			CurrentAmount: 0,
			TargetDate:    today.AddDate(0, 1, 0),
		}
		if today.Day() > 3 {
			assert.False(t, IsOnTrack(goal))
		}
	})
}

func TestCategorizeGoals(t *testing.T) {
	t.Parallel()

	today := domain.Today()

	completed := &domain.SavingGoal{ID: 1, TargetAmount: 100, CurrentAmount: 100, TargetDate: today.AddDate(0, 1, 0)}
	overdue := &domain.SavingGoal{ID: 2, TargetAmount: 100, CurrentAmount: 50, TargetDate: today.AddDate(0, 0, -1)}
	atRisk := &domain.SavingGoal{ID: 3, TargetAmount: 100, CurrentAmount: 10, TargetDate: today.AddDate(0, 6, 0)}

	buckets := CategorizeGoals([]*domain.SavingGoal{completed, overdue, atRisk})

	require.Len(t, buckets.Completed, 1)
	assert.Equal(t, int64(1), buckets.Completed[0].ID)
	require.Len(t, buckets.Overdue, 1)
	assert.Equal(t, int64(2), buckets.Overdue[0].ID)
	require.Len(t, buckets.AtRisk, 1)
	assert.Equal(t, int64(3), buckets.AtRisk[0].ID)
}

func TestHighestPriorityGoal(t *testing.T) {
	t.Parallel()

	today := domain.Today()

	t.Run("empty list", func(t *testing.T) {
		t.Parallel()
		assert.Nil(t, HighestPriorityGoal(nil))
	})

	t.Run("all completed", func(t *testing.T) {
		t.Parallel()
		goals := []*domain.SavingGoal{
			{TargetAmount: 100, CurrentAmount: 100, TargetDate: today.AddDate(0, 1, 0)},
		}
		assert.Nil(t, HighestPriorityGoal(goals))
	})

	t.Run("closest incomplete target wins", func(t *testing.T) {
		t.Parallel()
		near := &domain.SavingGoal{ID: 1, TargetAmount: 100, CurrentAmount: 10, TargetDate: today.AddDate(0, 1, 0)}
		far := &domain.SavingGoal{ID: 2, TargetAmount: 100, CurrentAmount: 10, TargetDate: today.AddDate(0, 6, 0)}
		done := &domain.SavingGoal{ID: 3, TargetAmount: 100, CurrentAmount: 100, TargetDate: today.AddDate(0, 0, 1)}

		got := HighestPriorityGoal([]*domain.SavingGoal{far, near, done})
		require.NotNil(t, got)
		assert.Equal(t, int64(1), got.ID)
	})
}
