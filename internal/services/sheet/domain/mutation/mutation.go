// Package mutation defines the closed set of edits a character accepts.
//
// Every variant has a check step that reads a character.View and reports
// rule violations, and an apply step that edits a Snapshot. Apply runs only
// after its check passed against the same state and never re-validates; an
// error from apply means an internal invariant broke.
package mutation

import (
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/ability"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/attribute"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/pool"
)

// Type identifies a mutation variant on the wire.
type Type string

const (
	TypeSetName            Type = "name.set"
	TypeSetAttribute       Type = "attribute.set"
	TypeSetAbility         Type = "ability.set"
	TypeAddSpecialty       Type = "specialty.add"
	TypeRemoveSpecialty    Type = "specialty.remove"
	TypeSetWillpowerRating Type = "willpower.rating.set"
	TypeSpendWillpower     Type = "willpower.spend"
	TypeGainWillpower      Type = "willpower.gain"
	TypeSetEssenceRating   Type = "essence.rating.set"
	TypeSpendMotes         Type = "motes.spend"
	TypeCommitMotes        Type = "motes.commit"
	TypeUncommitMotes      Type = "motes.uncommit"
	TypeRecoverMotes       Type = "motes.recover"
	TypeAddWeapon          Type = "weapon.add"
	TypeRemoveWeapon       Type = "weapon.remove"
	TypeEquipWeapon        Type = "weapon.equip"
	TypeUnequipWeapon      Type = "weapon.unequip"
	TypeAddArmor           Type = "armor.add"
	TypeRemoveArmor        Type = "armor.remove"
	TypeEquipArmor         Type = "armor.equip"
	TypeUnequipArmor       Type = "armor.unequip"
	TypeAddMerit           Type = "merit.add"
	TypeRemoveMerit        Type = "merit.remove"
	TypeChangeExaltation   Type = "exaltation.change"
	TypeAddCharm           Type = "charm.add"
	TypeRemoveCharm        Type = "charm.remove"
	TypeGainExperience     Type = "experience.gain"
	TypeSpendExperience    Type = "experience.spend"
)

// Mutation is one requested change. The set of implementations is closed.
type Mutation interface {
	Type() Type
	sealed()
}

type SetName struct {
	Name string `json:"name"`
}

type SetAttribute struct {
	Attribute attribute.Name `json:"attribute"`
	Dots      int            `json:"dots"`
}

type SetAbility struct {
	Ability ability.Ref `json:"ability"`
	Dots    int         `json:"dots"`
}

type AddSpecialty struct {
	Ability   ability.Ref `json:"ability"`
	Specialty string      `json:"specialty"`
}

type RemoveSpecialty struct {
	Ability   ability.Ref `json:"ability"`
	Specialty string      `json:"specialty"`
}

type SetWillpowerRating struct {
	Rating int `json:"rating"`
}

type SpendWillpower struct {
	Amount int `json:"amount"`
}

type GainWillpower struct {
	Amount int `json:"amount"`
}

// SetEssenceRating changes the essence rating. Every commitment is released
// and both mote pools refill to the new capacity.
type SetEssenceRating struct {
	Rating int `json:"rating"`
}

type SpendMotes struct {
	Amount int       `json:"amount"`
	First  pool.Kind `json:"first"`
}

type CommitMotes struct {
	Name   string    `json:"name"`
	Amount int       `json:"amount"`
	First  pool.Kind `json:"first"`
}

type UncommitMotes struct {
	Name string `json:"name"`
}

type RecoverMotes struct {
	Amount int `json:"amount"`
}

type AddWeapon struct {
	Weapon equipment.Weapon `json:"weapon"`
}

type RemoveWeapon struct {
	Name string `json:"name"`
}

// EquipWeapon equips a stored weapon. Hand is required for one-handed
// weapons and must be empty otherwise.
type EquipWeapon struct {
	Name string         `json:"name"`
	Hand equipment.Hand `json:"hand,omitempty"`
}

type UnequipWeapon struct {
	Name string         `json:"name"`
	Hand equipment.Hand `json:"hand,omitempty"`
}

type AddArmor struct {
	Armor equipment.Armor `json:"armor"`
}

type RemoveArmor struct {
	Name string `json:"name"`
}

type EquipArmor struct {
	Name string `json:"name"`
}

type UnequipArmor struct {
	Name string `json:"name"`
}

type AddMerit struct {
	Merit merit.Merit `json:"merit"`
}

// RemoveMerit removes the merit stored under Key ("name" or "name (detail)").
type RemoveMerit struct {
	Key string `json:"key"`
}

type ChangeExaltation struct {
	exaltation.Target
}

type AddCharm struct {
	Charm exaltation.Charm `json:"charm"`
}

type RemoveCharm struct {
	Name string `json:"name"`
}

type GainExperience struct {
	Amount int `json:"amount"`
}

type SpendExperience struct {
	Amount int `json:"amount"`
}

func (SetName) Type() Type            { return TypeSetName }
func (SetAttribute) Type() Type       { return TypeSetAttribute }
func (SetAbility) Type() Type         { return TypeSetAbility }
func (AddSpecialty) Type() Type       { return TypeAddSpecialty }
func (RemoveSpecialty) Type() Type    { return TypeRemoveSpecialty }
func (SetWillpowerRating) Type() Type { return TypeSetWillpowerRating }
func (SpendWillpower) Type() Type     { return TypeSpendWillpower }
func (GainWillpower) Type() Type      { return TypeGainWillpower }
func (SetEssenceRating) Type() Type   { return TypeSetEssenceRating }
func (SpendMotes) Type() Type         { return TypeSpendMotes }
func (CommitMotes) Type() Type        { return TypeCommitMotes }
func (UncommitMotes) Type() Type      { return TypeUncommitMotes }
func (RecoverMotes) Type() Type       { return TypeRecoverMotes }
func (AddWeapon) Type() Type          { return TypeAddWeapon }
func (RemoveWeapon) Type() Type       { return TypeRemoveWeapon }
func (EquipWeapon) Type() Type        { return TypeEquipWeapon }
func (UnequipWeapon) Type() Type      { return TypeUnequipWeapon }
func (AddArmor) Type() Type           { return TypeAddArmor }
func (RemoveArmor) Type() Type        { return TypeRemoveArmor }
func (EquipArmor) Type() Type         { return TypeEquipArmor }
func (UnequipArmor) Type() Type       { return TypeUnequipArmor }
func (AddMerit) Type() Type           { return TypeAddMerit }
func (RemoveMerit) Type() Type        { return TypeRemoveMerit }
func (ChangeExaltation) Type() Type   { return TypeChangeExaltation }
func (AddCharm) Type() Type           { return TypeAddCharm }
func (RemoveCharm) Type() Type        { return TypeRemoveCharm }
func (GainExperience) Type() Type     { return TypeGainExperience }
func (SpendExperience) Type() Type    { return TypeSpendExperience }

func (SetName) sealed()            {}
func (SetAttribute) sealed()       {}
func (SetAbility) sealed()         {}
func (AddSpecialty) sealed()       {}
func (RemoveSpecialty) sealed()    {}
func (SetWillpowerRating) sealed() {}
func (SpendWillpower) sealed()     {}
func (GainWillpower) sealed()      {}
func (SetEssenceRating) sealed()   {}
func (SpendMotes) sealed()         {}
func (CommitMotes) sealed()        {}
func (UncommitMotes) sealed()      {}
func (RecoverMotes) sealed()       {}
func (AddWeapon) sealed()          {}
func (RemoveWeapon) sealed()       {}
func (EquipWeapon) sealed()        {}
func (UnequipWeapon) sealed()      {}
func (AddArmor) sealed()           {}
func (RemoveArmor) sealed()        {}
func (EquipArmor) sealed()         {}
func (UnequipArmor) sealed()       {}
func (AddMerit) sealed()           {}
func (RemoveMerit) sealed()        {}
func (ChangeExaltation) sealed()   {}
func (AddCharm) sealed()           {}
func (RemoveCharm) sealed()        {}
func (GainExperience) sealed()     {}
func (SpendExperience) sealed()    {}
