package finance

import (
	"math"
	"time"

	"github.com/pitaka-app/pitaka-api/internal/domain"
)

// onTrackTolerance lets actual progress trail expected linear progress by
// up to 10% before a goal counts as off track.
const onTrackTolerance = 0.9

// GoalBuckets groups saving goals by derived status.
type GoalBuckets struct {
	Completed []*domain.SavingGoal `json:"completed"`
	Overdue   []*domain.SavingGoal `json:"overdue"`
	AtRisk    []*domain.SavingGoal `json:"at_risk"`
}

// RemainingAmount returns how much is still needed to reach the target,
// floored at zero.
func RemainingAmount(goal *domain.SavingGoal) float64 {
	return max(0, goal.TargetAmount-goal.CurrentAmount)
}

// GoalProgressPercentage returns progress toward the target as a
// percentage, capped at 100 regardless of over-saving.
func GoalProgressPercentage(goal *domain.SavingGoal) float64 {
	return goal.ProgressPercentage()
}

// MonthsToTarget estimates how many months of saving at monthlySavings
// remain until the target, rounded to the nearest month. Zero when no
// progress is possible.
func MonthsToTarget(goal *domain.SavingGoal, monthlySavings float64) int {
	if monthlySavings <= 0 {
		return 0
	}
	return int(math.Round(RemainingAmount(goal) / monthlySavings))
}

// IsOnTrack compares actual progress against the linear progress expected
// between the first of the current month and the target date, allowing a
// 10% shortfall. Once the target date has passed the goal is on track
// only if it completed.
func IsOnTrack(goal *domain.SavingGoal) bool {
	today := domain.Today()

	if !today.Before(goal.TargetDate) {
		return goal.IsCompleted()
	}

	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	totalDays := goal.TargetDate.Sub(start).Hours() / 24
	elapsedDays := today.Sub(start).Hours() / 24

	if totalDays <= 0 {
		return true
	}

	expected := elapsedDays / totalDays
	actual := goal.CurrentAmount / goal.TargetAmount

	return actual >= expected*onTrackTolerance
}

// CategorizeGoals buckets goals as completed, overdue or at risk.
func CategorizeGoals(goals []*domain.SavingGoal) GoalBuckets {
	var buckets GoalBuckets
	for _, g := range goals {
		switch {
		case g.IsCompleted():
			buckets.Completed = append(buckets.Completed, g)
		case g.IsOverdue():
			buckets.Overdue = append(buckets.Overdue, g)
		default:
			buckets.AtRisk = append(buckets.AtRisk, g)
		}
	}
	return buckets
}

// HighestPriorityGoal returns the incomplete goal with the closest target
// date, or nil when every goal is completed or the list is empty.
func HighestPriorityGoal(goals []*domain.SavingGoal) *domain.SavingGoal {
	var best *domain.SavingGoal
	for _, g := range goals {
		if g.IsCompleted() {
			continue
		}
		if best == nil || g.TargetDate.Before(best.TargetDate) {
			best = g
		}
	}
	return best
}
