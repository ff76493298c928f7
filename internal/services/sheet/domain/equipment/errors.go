package equipment

import apperrors "github.com/louisbranch/charsheet/internal/platform/errors"

var (
	ErrWeaponInvalid         = apperrors.New(apperrors.CodeWeaponInvalid, "weapon definition is incomplete")
	ErrWeaponNotFound        = apperrors.New(apperrors.CodeWeaponNotFound, "weapon not found")
	ErrWeaponDuplicate       = apperrors.New(apperrors.CodeWeaponDuplicate, "weapon name already defined differently")
	ErrWeaponAlreadyEquipped = apperrors.New(apperrors.CodeWeaponAlreadyEquip, "weapon already equipped")
	ErrWeaponNotEquipped     = apperrors.New(apperrors.CodeWeaponNotEquipped, "weapon not equipped")
	ErrWeaponUnequipNatural  = apperrors.New(apperrors.CodeWeaponUnequipNatural, "natural weapons cannot be unequipped")
	ErrWeaponInvalidHand     = apperrors.New(apperrors.CodeWeaponInvalidHand, "hand does not fit the weapon")
	ErrWeaponPrerequisites   = apperrors.New(apperrors.CodeWeaponPrerequisites, "weapon prerequisites not met")

	ErrArmorInvalid         = apperrors.New(apperrors.CodeArmorInvalid, "armor definition is incomplete")
	ErrArmorNotFound        = apperrors.New(apperrors.CodeArmorNotFound, "armor not found")
	ErrArmorDuplicate       = apperrors.New(apperrors.CodeArmorDuplicate, "armor name already defined differently")
	ErrArmorAlreadyEquipped = apperrors.New(apperrors.CodeArmorAlreadyEquip, "armor already equipped")
	ErrArmorNotEquipped     = apperrors.New(apperrors.CodeArmorNotEquipped, "armor not equipped")
	ErrArmorUnequipNatural  = apperrors.New(apperrors.CodeArmorUnequipNatural, "natural armor cannot be unequipped")
	ErrArmorPrerequisites   = apperrors.New(apperrors.CodeArmorPrerequisites, "armor prerequisites not met")

	ErrInvariant = apperrors.New(apperrors.CodeInvariantViolation, "equipment invariant violated")
)
