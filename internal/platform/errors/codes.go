// Package errors provides structured error handling with i18n support.
package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Character errors
	CodeCharacterNameEmpty Code = "CHARACTER_NAME_EMPTY"

	// Attribute errors
	CodeAttributeUnknown       Code = "ATTRIBUTE_UNKNOWN"
	CodeAttributeInvalidRating Code = "ATTRIBUTE_INVALID_RATING"

	// Ability errors
	CodeAbilityUnknown            Code = "ABILITY_UNKNOWN"
	CodeAbilityInvalidRating      Code = "ABILITY_INVALID_RATING"
	CodeAbilityQualifierRequired  Code = "ABILITY_QUALIFIER_REQUIRED"
	CodeAbilityNotFound           Code = "ABILITY_NOT_FOUND"
	CodeAbilityDuplicateSpecialty Code = "ABILITY_DUPLICATE_SPECIALTY"
	CodeAbilityInvalidSpecialty   Code = "ABILITY_INVALID_SPECIALTY"
	CodeAbilityPrerequisites      Code = "ABILITY_PREREQUISITES_NOT_MET"

	// Willpower errors
	CodeWillpowerInvalidRating Code = "WILLPOWER_INVALID_RATING"
	CodeWillpowerInvalidAmount Code = "WILLPOWER_INVALID_AMOUNT"
	CodeWillpowerInsufficient  Code = "WILLPOWER_INSUFFICIENT_RESOURCE"

	// Essence errors
	CodeEssenceInvalidRating       Code = "ESSENCE_INVALID_RATING"
	CodeEssenceInvalidAmount       Code = "ESSENCE_INVALID_AMOUNT"
	CodeEssenceInvalidPool         Code = "ESSENCE_INVALID_POOL"
	CodeEssenceInsufficient        Code = "ESSENCE_INSUFFICIENT_RESOURCE"
	CodeEssenceDuplicateCommitment Code = "ESSENCE_DUPLICATE_COMMITMENT"
	CodeEssenceCommitmentNotFound  Code = "ESSENCE_COMMITMENT_NOT_FOUND"
	CodeEssenceInvalidCommitment   Code = "ESSENCE_INVALID_COMMITMENT"
	CodeEssenceWrongExaltType      Code = "ESSENCE_WRONG_EXALT_TYPE"
	CodeEssenceUnchanged           Code = "ESSENCE_UNCHANGED"

	// Weapon errors
	CodeWeaponInvalid        Code = "WEAPON_INVALID"
	CodeWeaponNotFound       Code = "WEAPON_NOT_FOUND"
	CodeWeaponDuplicate      Code = "WEAPON_DUPLICATE"
	CodeWeaponAlreadyEquip   Code = "WEAPON_ALREADY_EQUIPPED"
	CodeWeaponNotEquipped    Code = "WEAPON_NOT_EQUIPPED"
	CodeWeaponUnequipNatural Code = "WEAPON_UNEQUIP_NATURAL"
	CodeWeaponInvalidHand    Code = "WEAPON_INVALID_HAND"
	CodeWeaponPrerequisites  Code = "WEAPON_PREREQUISITES_NOT_MET"

	// Armor errors
	CodeArmorInvalid        Code = "ARMOR_INVALID"
	CodeArmorNotFound       Code = "ARMOR_NOT_FOUND"
	CodeArmorDuplicate      Code = "ARMOR_DUPLICATE"
	CodeArmorAlreadyEquip   Code = "ARMOR_ALREADY_EQUIPPED"
	CodeArmorNotEquipped    Code = "ARMOR_NOT_EQUIPPED"
	CodeArmorUnequipNatural Code = "ARMOR_UNEQUIP_NATURAL"
	CodeArmorPrerequisites  Code = "ARMOR_PREREQUISITES_NOT_MET"

	// Merit errors
	CodeMeritInvalid       Code = "MERIT_INVALID"
	CodeMeritInvalidRating Code = "MERIT_INVALID_RATING"
	CodeMeritDuplicate     Code = "MERIT_DUPLICATE"
	CodeMeritNotFound      Code = "MERIT_NOT_FOUND"
	CodeMeritPrerequisites Code = "MERIT_PREREQUISITES_NOT_MET"

	// Exaltation errors
	CodeExaltationInvalidType  Code = "EXALTATION_INVALID_TYPE"
	CodeExaltationInvalidCaste Code = "EXALTATION_INVALID_CASTE"
	CodeExaltationUnchanged    Code = "EXALTATION_UNCHANGED"

	// Charm errors
	CodeCharmInvalid        Code = "CHARM_INVALID"
	CodeCharmDuplicate      Code = "CHARM_DUPLICATE"
	CodeCharmNotFound       Code = "CHARM_NOT_FOUND"
	CodeCharmWrongExaltType Code = "CHARM_WRONG_EXALT_TYPE"
	CodeCharmPrerequisites  Code = "CHARM_PREREQUISITES_NOT_MET"

	// Experience errors
	CodeExperienceInvalidAmount Code = "EXPERIENCE_INVALID_AMOUNT"
	CodeExperienceInsufficient  Code = "EXPERIENCE_INSUFFICIENT"

	// History errors
	CodeHistoryNothingToUndo Code = "HISTORY_NOTHING_TO_UNDO"
	CodeHistoryNothingToRedo Code = "HISTORY_NOTHING_TO_REDO"

	// Mutation envelope errors
	CodeMutationUnknownType  Code = "MUTATION_UNKNOWN_TYPE"
	CodeMutationDecodeFailed Code = "MUTATION_DECODE_FAILED"

	// Snapshot and storage errors
	CodeSnapshotSchemaUnsupported Code = "SNAPSHOT_SCHEMA_UNSUPPORTED"
	CodeNotFound                  Code = "NOT_FOUND"

	// CodeInvariantViolation signals a check/apply mismatch detected while applying.
	CodeInvariantViolation Code = "INVARIANT_VIOLATION"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeCharacterNameEmpty,
		CodeAttributeUnknown,
		CodeAttributeInvalidRating,
		CodeAbilityUnknown,
		CodeAbilityInvalidRating,
		CodeAbilityQualifierRequired,
		CodeAbilityInvalidSpecialty,
		CodeWillpowerInvalidRating,
		CodeWillpowerInvalidAmount,
		CodeEssenceInvalidRating,
		CodeEssenceInvalidAmount,
		CodeEssenceInvalidPool,
		CodeEssenceInvalidCommitment,
		CodeWeaponInvalid,
		CodeWeaponInvalidHand,
		CodeArmorInvalid,
		CodeMeritInvalid,
		CodeMeritInvalidRating,
		CodeExaltationInvalidType,
		CodeExaltationInvalidCaste,
		CodeCharmInvalid,
		CodeExperienceInvalidAmount,
		CodeMutationUnknownType,
		CodeMutationDecodeFailed,
		CodeSnapshotSchemaUnsupported:
		return codes.InvalidArgument

	// FailedPrecondition - state doesn't allow operation
	case CodeAbilityPrerequisites,
		CodeWillpowerInsufficient,
		CodeEssenceInsufficient,
		CodeEssenceWrongExaltType,
		CodeEssenceUnchanged,
		CodeWeaponAlreadyEquip,
		CodeWeaponNotEquipped,
		CodeWeaponUnequipNatural,
		CodeWeaponPrerequisites,
		CodeArmorAlreadyEquip,
		CodeArmorNotEquipped,
		CodeArmorUnequipNatural,
		CodeArmorPrerequisites,
		CodeMeritPrerequisites,
		CodeExaltationUnchanged,
		CodeCharmWrongExaltType,
		CodeCharmPrerequisites,
		CodeExperienceInsufficient,
		CodeHistoryNothingToUndo,
		CodeHistoryNothingToRedo:
		return codes.FailedPrecondition

	// NotFound - referenced entity doesn't exist
	case CodeNotFound,
		CodeAbilityNotFound,
		CodeEssenceCommitmentNotFound,
		CodeWeaponNotFound,
		CodeArmorNotFound,
		CodeMeritNotFound,
		CodeCharmNotFound:
		return codes.NotFound

	// AlreadyExists - unique name constraint
	case CodeAbilityDuplicateSpecialty,
		CodeEssenceDuplicateCommitment,
		CodeWeaponDuplicate,
		CodeArmorDuplicate,
		CodeMeritDuplicate,
		CodeCharmDuplicate:
		return codes.AlreadyExists

	default:
		return codes.Internal
	}
}

// HTTPStatus maps domain codes to HTTP status codes for REST collaborators.
func (c Code) HTTPStatus() int {
	switch c.GRPCCode() {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.FailedPrecondition, codes.AlreadyExists:
		return http.StatusConflict
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
