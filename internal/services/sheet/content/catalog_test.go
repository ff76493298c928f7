package content

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/mutation"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	sword, ok := c.Weapon("Straight Sword")
	if !ok || sword.Handedness != equipment.OneHanded || sword.Damage != 9 {
		t.Fatalf("sword = %+v, %v", sword, ok)
	}
	axe, _ := c.Weapon("Great Axe")
	if axe.Handedness != equipment.TwoHanded || axe.MinStrength != 3 {
		t.Fatalf("axe = %+v", axe)
	}
	hide, ok := c.Armor("Tough Hide")
	if !ok || !hide.Natural {
		t.Fatalf("hide = %+v, %v", hide, ok)
	}
	artist, ok := c.Merit(merit.MartialArtist)
	if !ok || len(artist.Prerequisites) != 1 || artist.Kind != merit.Purchased {
		t.Fatalf("martial artist = %+v, %v", artist, ok)
	}
	strike, ok := c.Charm("Excellent Strike")
	if !ok || strike.Type != exaltation.Solar || strike.MinAbility != 1 {
		t.Fatalf("charm = %+v, %v", strike, ok)
	}
	if names := c.Names()["charms"]; len(names) != 7 {
		t.Fatalf("charms = %v", names)
	}
}

func TestCatalogLookupsReturnCopies(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	sword, _ := c.Weapon("Straight Sword")
	sword.Tags[0] = "changed"
	again, _ := c.Weapon("Straight Sword")
	if again.Tags[0] != "lethal" {
		t.Fatalf("catalog entry mutated: %v", again.Tags)
	}
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad yaml", yaml: "weapons: [\n"},
		{name: "weapon without handedness", yaml: "weapons:\n  - name: Club\n    weight: light\n"},
		{name: "armor without weight", yaml: "armor:\n  - name: Robe\n"},
		{name: "merit dots out of range", yaml: "merits:\n  - name: Huge\n    dots: 9\n"},
		{name: "mortal charm", yaml: "charms:\n  - name: Nope\n    type: mortal\n    ability: melee\n"},
		{name: "duplicate weapon", yaml: "weapons:\n  - {name: Knife, handedness: one_handed, weight: light}\n  - {name: Knife, handedness: one_handed, weight: light}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("weapons:\n  - {name: Club, handedness: one_handed, weight: medium, accuracy: 2, damage: 9}\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := c.Weapon("Club"); !ok {
		t.Fatal("expected Club")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected missing file error")
	}
	if _, err := Load(" "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestResolveReferences(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	m, err := c.Resolve(envelope(mutation.TypeAddWeapon, `{"ref":"Knife"}`))
	if err != nil {
		t.Fatalf("resolve weapon: %v", err)
	}
	if add, ok := m.(mutation.AddWeapon); !ok || add.Weapon.Name != "Knife" {
		t.Fatalf("mutation = %#v", m)
	}

	m, err = c.Resolve(envelope(mutation.TypeAddMerit, `{"ref":"Language","detail":"Old Realm","dots":2}`))
	if err != nil {
		t.Fatalf("resolve merit: %v", err)
	}
	add, ok := m.(mutation.AddMerit)
	if !ok || add.Merit.Key() != "Language (Old Realm)" || add.Merit.Dots != 2 {
		t.Fatalf("mutation = %#v", m)
	}

	m, err = c.Resolve(envelope(mutation.TypeAddCharm, `{"ref":"Wise Arrow"}`))
	if err != nil {
		t.Fatalf("resolve charm: %v", err)
	}
	if charm, ok := m.(mutation.AddCharm); !ok || charm.Charm.Ability != "archery" {
		t.Fatalf("mutation = %#v", m)
	}

	m, err = c.Resolve(envelope(mutation.TypeAddArmor, `{"ref":"Chain Shirt"}`))
	if err != nil {
		t.Fatalf("resolve armor: %v", err)
	}
	if armor, ok := m.(mutation.AddArmor); !ok || armor.Armor.Soak != 5 {
		t.Fatalf("mutation = %#v", m)
	}
}

func TestResolveFallsBackToDecode(t *testing.T) {
	c, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty catalog: %v", err)
	}
	m, err := c.Resolve(envelope(mutation.TypeGainExperience, `{"amount":3}`))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m != (mutation.GainExperience{Amount: 3}) {
		t.Fatalf("mutation = %#v", m)
	}
}

func TestResolveErrors(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	tests := []struct {
		name string
		env  mutation.Envelope
		want error
	}{
		{name: "unknown weapon", env: envelope(mutation.TypeAddWeapon, `{"ref":"Spork"}`), want: equipment.ErrWeaponNotFound},
		{name: "unknown armor", env: envelope(mutation.TypeAddArmor, `{"ref":"Spork"}`), want: equipment.ErrArmorNotFound},
		{name: "unknown merit", env: envelope(mutation.TypeAddMerit, `{"ref":"Spork"}`), want: merit.ErrNotFound},
		{name: "unknown charm", env: envelope(mutation.TypeAddCharm, `{"ref":"Spork"}`), want: exaltation.ErrCharmNotFound},
		{name: "non-string ref", env: envelope(mutation.TypeAddWeapon, `{"ref":3}`), want: mutation.ErrDecodeFailed},
		{name: "ref on other type", env: envelope(mutation.TypeSetName, `{"ref":"x"}`), want: mutation.ErrDecodeFailed},
		{name: "unknown type", env: envelope("weapon.polish", `{}`), want: mutation.ErrUnknownType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Resolve(tt.env); !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func envelope(typ mutation.Type, payload string) mutation.Envelope {
	return mutation.Envelope{Type: typ, Payload: json.RawMessage(payload)}
}
