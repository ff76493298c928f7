// Package character holds the owned Snapshot of one character and the
// read-only View the engine publishes for it.
package character

import (
	"strings"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/platform/id"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

// StartingWillpower is the willpower rating of a new character.
const StartingWillpower = 5

var (
	ErrNameEmpty = apperrors.New(apperrors.CodeCharacterNameEmpty, "character name is required")
	ErrInvariant = apperrors.New(apperrors.CodeInvariantViolation, "character invariant violated")
)

// Snapshot is the single owned source of truth for one character.
type Snapshot struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Attributes attribute.Set      `json:"attributes"`
	Abilities  ability.Set        `json:"abilities"`
	Willpower  pool.Willpower     `json:"willpower"`
	Experience Experience         `json:"experience"`
	Weapons    equipment.Weapons  `json:"weapons"`
	Armor      equipment.ArmorSet `json:"armor"`
	Merits     merit.Set          `json:"merits,omitempty"`
	Exaltation exaltation.State   `json:"exaltation"`
}

// New creates a mortal character with a fresh id, every attribute at 1,
// starting willpower and the Unarmed natural weapon.
func New(name string) (*Snapshot, error) {
	name = strings.TrimSpace(name)
	if err := CheckName(name); err != nil {
		return nil, err
	}
	characterID, err := id.NewID()
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		ID:         characterID,
		Name:       name,
		Attributes: attribute.NewSet(),
		Willpower:  pool.NewWillpower(StartingWillpower),
		Weapons:    equipment.NewWeapons(),
	}, nil
}

// CheckName validates a character name.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameEmpty
	}
	return nil
}

// Clone returns a deep copy sharing no maps or slices with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		ID:         s.ID,
		Name:       s.Name,
		Attributes: s.Attributes,
		Abilities:  s.Abilities.Clone(),
		Willpower:  s.Willpower,
		Experience: s.Experience,
		Weapons:    s.Weapons.Clone(),
		Armor:      s.Armor.Clone(),
		Merits:     s.Merits.Clone(),
		Exaltation: s.Exaltation.Clone(),
	}
}

// Verify reports the first broken invariant. A passing check followed by an
// apply must always leave a snapshot that verifies.
func (s *Snapshot) Verify() error {
	if err := CheckName(s.Name); err != nil {
		return apperrors.Wrap(apperrors.CodeInvariantViolation, "character name", err)
	}
	checks := []func() error{
		s.Attributes.Verify,
		s.Abilities.Verify,
		s.Willpower.Verify,
		s.Experience.verify,
		s.Weapons.Verify,
		s.Armor.Verify,
		s.Merits.Verify,
		s.Exaltation.Verify,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			if apperrors.CodeOf(err) == apperrors.CodeInvariantViolation {
				return err
			}
			return apperrors.Wrap(apperrors.CodeInvariantViolation, "snapshot verify", err)
		}
	}
	return nil
}
