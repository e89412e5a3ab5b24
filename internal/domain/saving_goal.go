package domain

import (
	"fmt"
	"time"
)

// SavingGoal represents a savings target. CurrentAmount is the aggregated
// balance of the goal's saving transactions; the goal itself never mutates
// it directly.
type SavingGoal struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	TargetDate    time.Time `json:"target_date"`
	CurrentAmount float64   `json:"current_amount"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SavingGoalUpdate carries the optional fields accepted by
// SavingGoal.Update. Nil fields are left untouched.
type SavingGoalUpdate struct {
	Name         *string
	TargetAmount *float64
	TargetDate   *time.Time
	Remarks      *string
}

// NewSavingGoal creates a SavingGoal with CurrentAmount zero.
// Returns an error wrapping ErrInvalidSavingGoal if validation fails.
func NewSavingGoal(
	userID int64,
	name string,
	targetAmount float64,
	targetDate time.Time,
	remarks string,
) (*SavingGoal, error) {
	if userID <= 0 {
		return nil, validationErr(ErrInvalidSavingGoal, "user_id", "must be a positive integer")
	}
	cleanName, err := validateGoalName(name)
	if err != nil {
		return nil, err
	}
	if targetAmount <= 0 {
		return nil, validationErr(ErrInvalidSavingGoal, "target_amount", "must be greater than zero")
	}
	target := DateOf(targetDate)
	if target.Before(Today()) {
		return nil, validationErr(ErrInvalidSavingGoal, "target_date", "must be today or in the future")
	}

	return &SavingGoal{
		UserID:       userID,
		Name:         cleanName,
		TargetAmount: targetAmount,
		TargetDate:   target,
		Remarks:      trimmed(remarks),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Update applies the non-nil fields of upd, re-validating each one.
func (g *SavingGoal) Update(upd SavingGoalUpdate) error {
	if upd.Name != nil {
		clean, err := validateGoalName(*upd.Name)
		if err != nil {
			return err
		}
		g.Name = clean
	}
	if upd.TargetAmount != nil {
		if *upd.TargetAmount <= 0 {
			return validationErr(ErrInvalidSavingGoal, "target_amount", "must be greater than zero")
		}
		g.TargetAmount = *upd.TargetAmount
	}
	if upd.TargetDate != nil {
		target := DateOf(*upd.TargetDate)
		if target.Before(Today()) {
			return validationErr(ErrInvalidSavingGoal, "target_date", "must be today or in the future")
		}
		g.TargetDate = target
	}
	if upd.Remarks != nil {
		g.Remarks = trimmed(*upd.Remarks)
	}
	return nil
}

// ProgressPercentage returns progress toward the target, capped at 100.
func (g *SavingGoal) ProgressPercentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	return min(100, g.CurrentAmount/g.TargetAmount*100)
}

// IsCompleted reports whether the target amount has been reached.
func (g *SavingGoal) IsCompleted() bool {
	return g.CurrentAmount >= g.TargetAmount
}

// IsOverdue reports whether the target date passed without completion.
func (g *SavingGoal) IsOverdue() bool {
	return Today().After(g.TargetDate) && !g.IsCompleted()
}

// Equal reports entity equality: by ID when both are persisted, otherwise
// by the (user_id, name) natural key.
func (g *SavingGoal) Equal(other *SavingGoal) bool {
	if other == nil {
		return false
	}
	if g.ID != 0 && other.ID != 0 {
		return g.ID == other.ID
	}
	return g.UserID == other.UserID && g.Name == other.Name
}

func validateGoalName(name string) (string, error) {
	clean := trimmed(name)
	if len(clean) < 3 {
		return "", validationErr(ErrInvalidSavingGoal, "name", "must be at least 3 characters")
	}
	return clean, nil
}

func (g *SavingGoal) String() string {
	return fmt.Sprintf("SavingGoal(id=%d, name=%s, target=%v, current=%v)",
		g.ID, g.Name, g.TargetAmount, g.CurrentAmount)
}
