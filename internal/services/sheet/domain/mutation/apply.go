package mutation

import (
	"fmt"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

// Effects lists the rule-driven side effects of an apply beyond the literal change.
type Effects struct {
	UnequippedWeapons   []string
	UnequippedArmor     []string
	ReleasedCommitments []string
}

// Apply performs m on snap. It must only run after Check passed against the
// same state. A returned error carries CodeInvariantViolation and leaves snap
// in an undefined state; callers apply to a clone.
func Apply(snap *character.Snapshot, m Mutation) (Effects, error) {
	var effects Effects
	switch m := m.(type) {
	case SetName:
		snap.Name = m.Name
	case SetAttribute:
		lowered := m.Dots < snap.Attributes.Get(m.Attribute)
		snap.Attributes.Set(m.Attribute, m.Dots)
		if m.Attribute == attribute.Strength && lowered {
			effects.UnequippedWeapons = snap.Weapons.UnequipForStrength(m.Dots)
			effects.UnequippedArmor = snap.Armor.UnequipForStrength(m.Dots)
		}
	case SetAbility:
		snap.Abilities.Set(m.Ability, m.Dots)
	case AddSpecialty:
		snap.Abilities.AddSpecialty(m.Ability, m.Specialty)
	case RemoveSpecialty:
		snap.Abilities.RemoveSpecialty(m.Ability, m.Specialty)
	case SetWillpowerRating:
		snap.Willpower.SetRating(m.Rating)
	case SpendWillpower:
		return effects, snap.Willpower.Spend(m.Amount)
	case GainWillpower:
		snap.Willpower.Gain(m.Amount)
	case SetEssenceRating:
		released, err := snap.Exaltation.SetEssence(m.Rating)
		effects.ReleasedCommitments = released
		return effects, err
	case SpendMotes:
		return effects, withMotes(snap, m, func(motes *pool.Motes) error { return motes.Spend(m.Amount, m.First) })
	case CommitMotes:
		return effects, withMotes(snap, m, func(motes *pool.Motes) error { return motes.Commit(m.Name, m.Amount, m.First) })
	case UncommitMotes:
		return effects, withMotes(snap, m, func(motes *pool.Motes) error { return motes.Uncommit(m.Name) })
	case RecoverMotes:
		return effects, withMotes(snap, m, func(motes *pool.Motes) error { return motes.Recover(m.Amount) })
	case AddWeapon:
		snap.Weapons.Add(m.Weapon)
	case RemoveWeapon:
		return effects, snap.Weapons.Remove(m.Name)
	case EquipWeapon:
		return effects, snap.Weapons.Equip(m.Name, m.Hand)
	case UnequipWeapon:
		return effects, snap.Weapons.Unequip(m.Name, m.Hand)
	case AddArmor:
		snap.Armor.Add(m.Armor)
	case RemoveArmor:
		return effects, snap.Armor.Remove(m.Name)
	case EquipArmor:
		return effects, snap.Armor.Equip(m.Name)
	case UnequipArmor:
		return effects, snap.Armor.Unequip(m.Name)
	case AddMerit:
		snap.Merits.Add(m.Merit)
	case RemoveMerit:
		return effects, snap.Merits.Remove(m.Key)
	case ChangeExaltation:
		effects.ReleasedCommitments = snap.Exaltation.Change(m.Target)
	case AddCharm:
		return effects, snap.Exaltation.AddCharm(m.Charm)
	case RemoveCharm:
		return effects, snap.Exaltation.RemoveCharm(m.Name)
	case GainExperience:
		snap.Experience.Gain(m.Amount)
	case SpendExperience:
		return effects, snap.Experience.Spend(m.Amount)
	default:
		return effects, character.ErrInvariant.With("type", fmt.Sprintf("%T", m))
	}
	return effects, nil
}

func withMotes(snap *character.Snapshot, m Mutation, apply func(*pool.Motes) error) error {
	motes := snap.Exaltation.MutableMotes()
	if motes == nil {
		return character.ErrInvariant.With("type", string(m.Type()))
	}
	return apply(motes)
}
