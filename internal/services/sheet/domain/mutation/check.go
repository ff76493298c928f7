package mutation

import (
	"fmt"

	apperrors "github.com/louisbranch/charsheet/internal/platform/errors"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/character"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
)

// ErrUnknownType rejects a mutation outside the known set, including nil.
var ErrUnknownType = apperrors.New(apperrors.CodeMutationUnknownType, "unknown mutation type")

// Check reports whether m may be applied to the character behind view.
// It has no side effects.
func Check(view character.View, m Mutation) error {
	switch m := m.(type) {
	case SetName:
		return character.CheckName(m.Name)
	case SetAttribute:
		return view.Attributes().CheckSet(m.Attribute, m.Dots)
	case SetAbility:
		return checkSetAbility(view, m)
	case AddSpecialty:
		return view.Abilities().CheckAddSpecialty(m.Ability, m.Specialty)
	case RemoveSpecialty:
		return view.Abilities().CheckRemoveSpecialty(m.Ability, m.Specialty)
	case SetWillpowerRating:
		return view.Willpower().CheckSetRating(m.Rating)
	case SpendWillpower:
		return view.Willpower().CheckSpend(m.Amount)
	case GainWillpower:
		return view.Willpower().CheckGain(m.Amount)
	case SetEssenceRating:
		return view.Exaltation().CheckSetEssence(m.Rating)
	case SpendMotes:
		motes, err := view.Exaltation().Motes()
		if err != nil {
			return err
		}
		return motes.CheckSpend(m.Amount, m.First)
	case CommitMotes:
		motes, err := view.Exaltation().Motes()
		if err != nil {
			return err
		}
		return motes.CheckCommit(m.Name, m.Amount, m.First)
	case UncommitMotes:
		motes, err := view.Exaltation().Motes()
		if err != nil {
			return err
		}
		return motes.CheckUncommit(m.Name)
	case RecoverMotes:
		motes, err := view.Exaltation().Motes()
		if err != nil {
			return err
		}
		return motes.CheckRecover(m.Amount)
	case AddWeapon:
		return view.Weapons().CheckAdd(m.Weapon)
	case RemoveWeapon:
		return view.Weapons().CheckRemove(m.Name)
	case EquipWeapon:
		return view.Weapons().CheckEquip(m.Name, m.Hand, view.Attribute(attribute.Strength))
	case UnequipWeapon:
		return view.Weapons().CheckUnequip(m.Name, m.Hand)
	case AddArmor:
		return view.Armor().CheckAdd(m.Armor)
	case RemoveArmor:
		return view.Armor().CheckRemove(m.Name)
	case EquipArmor:
		return view.Armor().CheckEquip(m.Name, view.Attribute(attribute.Strength))
	case UnequipArmor:
		return view.Armor().CheckUnequip(m.Name)
	case AddMerit:
		return view.Merits().CheckAdd(m.Merit, view.Attributes(), view.Abilities())
	case RemoveMerit:
		return checkRemoveMerit(view, m)
	case ChangeExaltation:
		return view.Exaltation().CheckChange(m.Target)
	case AddCharm:
		return view.Exaltation().CheckAddCharm(m.Charm, view.Abilities())
	case RemoveCharm:
		return view.Exaltation().CheckRemoveCharm(m.Name)
	case GainExperience:
		return view.Experience().CheckGain(m.Amount)
	case SpendExperience:
		return view.Experience().CheckSpend(m.Amount)
	}
	return ErrUnknownType.With("type", fmt.Sprintf("%T", m))
}

// checkSetAbility also requires the Martial Artist merit before any style
// rises above zero.
func checkSetAbility(view character.View, m SetAbility) error {
	if err := view.Abilities().CheckSet(m.Ability, m.Dots); err != nil {
		return err
	}
	if m.Ability.Name == ability.MartialArts && m.Dots > 0 && !view.HasMerit(merit.MartialArtist) {
		return ability.ErrPrerequisites.
			With("ability", m.Ability.String()).
			With("merit", merit.MartialArtist)
	}
	return nil
}

// checkRemoveMerit keeps Martial Artist while any style is rated.
func checkRemoveMerit(view character.View, m RemoveMerit) error {
	merits := view.Merits()
	if err := merits.CheckRemove(m.Key); err != nil {
		return err
	}
	if merits[m.Key].Name != merit.MartialArtist {
		return nil
	}
	remaining := 0
	for _, entry := range merits {
		if entry.Name == merit.MartialArtist {
			remaining++
		}
	}
	if remaining == 1 && view.Abilities().HighestDots(ability.MartialArts) > 0 {
		return merit.ErrPrerequisites.With("merit", m.Key).With("ability", string(ability.MartialArts))
	}
	return nil
}
