package pool

import (
	"strconv"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

const (
	MinWillpowerRating = 1
	MaxWillpower       = 10
)

var (
	ErrWillpowerInvalidRating = apperrors.New(apperrors.CodeWillpowerInvalidRating, "willpower rating out of range")
	ErrWillpowerInvalidAmount = apperrors.New(apperrors.CodeWillpowerInvalidAmount, "willpower amount must be positive")
	ErrWillpowerInsufficient  = apperrors.New(apperrors.CodeWillpowerInsufficient, "not enough willpower")
)

// Willpower tracks the permanent rating and the current points.
// Current may exceed the rating but never MaxWillpower.
type Willpower struct {
	Current int `json:"current"`
	Rating  int `json:"rating"`
}

// NewWillpower returns a full willpower track.
func NewWillpower(rating int) Willpower {
	return Willpower{Current: rating, Rating: rating}
}

// CheckSetRating validates a new permanent rating.
func (w Willpower) CheckSetRating(rating int) error {
	if rating < MinWillpowerRating || rating > MaxWillpower {
		return ErrWillpowerInvalidRating.With("rating", strconv.Itoa(rating))
	}
	return nil
}

// SetRating changes the rating; lowering it clamps current down.
func (w *Willpower) SetRating(rating int) {
	w.Rating = rating
	w.Current = min(w.Current, rating)
}

// CheckSpend validates spending amount points.
func (w Willpower) CheckSpend(amount int) error {
	if amount <= 0 {
		return ErrWillpowerInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	if w.Current < amount {
		return ErrWillpowerInsufficient.
			With("available", strconv.Itoa(w.Current)).
			With("required", strconv.Itoa(amount))
	}
	return nil
}

// Spend removes amount points.
func (w *Willpower) Spend(amount int) error {
	if w.Current < amount || amount <= 0 {
		return ErrInvariant.With("operation", "spend willpower").With("amount", strconv.Itoa(amount))
	}
	w.Current -= amount
	return nil
}

// CheckGain validates gaining amount points.
func (w Willpower) CheckGain(amount int) error {
	if amount <= 0 {
		return ErrWillpowerInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	return nil
}

// Gain adds amount points, capped at MaxWillpower.
func (w *Willpower) Gain(amount int) {
	w.Current += min(amount, MaxWillpower-w.Current)
}

// Verify reports a rating or current value outside its range.
func (w Willpower) Verify() error {
	if w.Rating < MinWillpowerRating || w.Rating > MaxWillpower || w.Current < 0 || w.Current > MaxWillpower {
		return ErrInvariant.With("pool", "willpower")
	}
	return nil
}
