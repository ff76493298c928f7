package content

import (
	"github.com/tidwall/gjson"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
)

// Resolve decodes envelope into a mutation. Payloads of the add mutations may
// name a catalog entry with {"ref": "<name>"} instead of carrying the full
// definition; merit references may also set "detail" and "dots".
func (c *Catalog) Resolve(envelope mutation.Envelope) (mutation.Mutation, error) {
	ref := gjson.GetBytes(envelope.Payload, "ref")
	if !ref.Exists() {
		return mutation.Decode(envelope)
	}
	if ref.Type != gjson.String {
		return nil, mutation.ErrDecodeFailed.With("type", string(envelope.Type)).With("field", "ref")
	}
	name := ref.String()

	switch envelope.Type {
	case mutation.TypeAddWeapon:
		weapon, ok := c.Weapon(name)
		if !ok {
			return nil, equipment.ErrWeaponNotFound.With("weapon", name)
		}
		return mutation.AddWeapon{Weapon: weapon}, nil
	case mutation.TypeAddArmor:
		armor, ok := c.Armor(name)
		if !ok {
			return nil, equipment.ErrArmorNotFound.With("armor", name)
		}
		return mutation.AddArmor{Armor: armor}, nil
	case mutation.TypeAddMerit:
		m, ok := c.Merit(name)
		if !ok {
			return nil, merit.ErrNotFound.With("merit", name)
		}
		if detail := gjson.GetBytes(envelope.Payload, "detail"); detail.Exists() {
			m.Detail = detail.String()
		}
		if dots := gjson.GetBytes(envelope.Payload, "dots"); dots.Exists() {
			m.Dots = int(dots.Int())
		}
		return mutation.AddMerit{Merit: m}, nil
	case mutation.TypeAddCharm:
		charm, ok := c.Charm(name)
		if !ok {
			return nil, exaltation.ErrCharmNotFound.With("charm", name)
		}
		return mutation.AddCharm{Charm: charm}, nil
	}
	return mutation.Decode(envelope)
}
