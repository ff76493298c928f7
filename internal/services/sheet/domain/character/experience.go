package character

import (
	"math"
	"strconv"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
)

var (
	ErrExperienceInvalidAmount = apperrors.New(apperrors.CodeExperienceInvalidAmount, "experience amount must be positive")
	ErrExperienceInsufficient  = apperrors.New(apperrors.CodeExperienceInsufficient, "not enough unspent experience")
)

// Experience tracks earned and spent experience points.
type Experience struct {
	Total int `json:"total"`
	Spent int `json:"spent"`
}

// Remaining returns unspent experience.
func (e Experience) Remaining() int {
	return e.Total - e.Spent
}

// CheckGain validates earning amount points. The new total must fit in an int.
func (e Experience) CheckGain(amount int) error {
	if amount <= 0 || amount > math.MaxInt-e.Total {
		return ErrExperienceInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	return nil
}

// Gain adds amount points.
func (e *Experience) Gain(amount int) {
	e.Total += amount
}

// CheckSpend validates spending amount points.
func (e Experience) CheckSpend(amount int) error {
	if amount <= 0 {
		return ErrExperienceInvalidAmount.With("amount", strconv.Itoa(amount))
	}
	if e.Remaining() < amount {
		return ErrExperienceInsufficient.
			With("available", strconv.Itoa(e.Remaining())).
			With("required", strconv.Itoa(amount))
	}
	return nil
}

// Spend marks amount points spent.
func (e *Experience) Spend(amount int) error {
	if e.Remaining() < amount || amount <= 0 {
		return ErrInvariant.With("operation", "spend experience").With("amount", strconv.Itoa(amount))
	}
	e.Spent += amount
	return nil
}

func (e Experience) verify() error {
	if e.Total < 0 || e.Spent < 0 || e.Spent > e.Total {
		return ErrInvariant.With("pool", "experience")
	}
	return nil
}
