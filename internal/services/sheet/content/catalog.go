package content

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/charsheet/internal/services/sheet/domain/equipment"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/exaltation"
	"github.com/louisbranch/charsheet/internal/services/sheet/domain/merit"
)

//go:embed data/*.yaml
var embedded embed.FS

// DefaultFile is the embedded catalog used when no path is configured.
const DefaultFile = "data/core.yaml"

// Catalog indexes definitions by name.
type Catalog struct {
	weapons map[string]equipment.Weapon
	armor   map[string]equipment.Armor
	merits  map[string]merit.Merit
	charms  map[string]exaltation.Charm
}

type file struct {
	Weapons []weaponEntry      `yaml:"weapons"`
	Armor   []armorEntry       `yaml:"armor"`
	Merits  []meritEntry       `yaml:"merits"`
	Charms  []exaltation.Charm `yaml:"charms"`
}

type weaponEntry struct {
	Name        string                `yaml:"name"`
	Handedness  equipment.Handedness  `yaml:"handedness"`
	Weight      equipment.WeightClass `yaml:"weight"`
	Accuracy    int                   `yaml:"accuracy"`
	Damage      int                   `yaml:"damage"`
	Defense     int                   `yaml:"defense"`
	Tags        []string              `yaml:"tags"`
	Artifact    bool                  `yaml:"artifact"`
	MinStrength int                   `yaml:"min_strength"`
}

type armorEntry struct {
	Name            string                `yaml:"name"`
	Weight          equipment.WeightClass `yaml:"weight"`
	Soak            int                   `yaml:"soak"`
	Hardness        int                   `yaml:"hardness"`
	MobilityPenalty int                   `yaml:"mobility_penalty"`
	Tags            []string              `yaml:"tags"`
	Artifact        bool                  `yaml:"artifact"`
	Natural         bool                  `yaml:"natural"`
	MinStrength     int                   `yaml:"min_strength"`
}

type meritEntry struct {
	Name          string                `yaml:"name"`
	Dots          int                   `yaml:"dots"`
	Kind          merit.Kind            `yaml:"kind"`
	Description   string                `yaml:"description"`
	Prerequisites [][]merit.Requirement `yaml:"prerequisites"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	data, err := embedded.ReadFile(DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return Parse(data)
}

// Load reads a catalog from path.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return catalog, nil
}

// Parse decodes and validates a YAML catalog. Names must be unique per section.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		weapons: make(map[string]equipment.Weapon, len(f.Weapons)),
		armor:   make(map[string]equipment.Armor, len(f.Armor)),
		merits:  make(map[string]merit.Merit, len(f.Merits)),
		charms:  make(map[string]exaltation.Charm, len(f.Charms)),
	}
	for _, entry := range f.Weapons {
		weapon, err := entry.build()
		if err != nil {
			return nil, err
		}
		if err := insert(c.weapons, "weapon", weapon.Name, weapon); err != nil {
			return nil, err
		}
	}
	for _, entry := range f.Armor {
		armor, err := entry.build()
		if err != nil {
			return nil, err
		}
		if err := insert(c.armor, "armor", armor.Name, armor); err != nil {
			return nil, err
		}
	}
	for _, entry := range f.Merits {
		m, err := entry.build()
		if err != nil {
			return nil, err
		}
		if err := insert(c.merits, "merit", m.Name, m); err != nil {
			return nil, err
		}
	}
	for _, charm := range f.Charms {
		charm.Name = strings.TrimSpace(charm.Name)
		if err := charm.Check(); err != nil {
			return nil, err
		}
		if err := insert(c.charms, "charm", charm.Name, charm); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func insert[T any](index map[string]T, kind, name string, value T) error {
	if _, ok := index[name]; ok {
		return fmt.Errorf("duplicate %s %q", kind, name)
	}
	index[name] = value
	return nil
}

func (e weaponEntry) build() (equipment.Weapon, error) {
	b := equipment.NewWeaponBuilder(e.Name).
		Weight(e.Weight).
		Stats(e.Accuracy, e.Damage, e.Defense).
		Tag(e.Tags...).
		MinStrength(e.MinStrength)
	switch e.Handedness {
	case equipment.OneHanded:
		b.OneHanded()
	case equipment.TwoHanded:
		b.TwoHanded()
	case equipment.Worn:
		b.Worn()
	case equipment.Natural:
		b.Natural()
	}
	if e.Artifact {
		b.Artifact()
	}
	return b.Build()
}

func (e armorEntry) build() (equipment.Armor, error) {
	b := equipment.NewArmorBuilder(e.Name).
		Weight(e.Weight).
		Stats(e.Soak, e.Hardness, e.MobilityPenalty).
		Tag(e.Tags...).
		MinStrength(e.MinStrength)
	if e.Artifact {
		b.Artifact()
	}
	if e.Natural {
		b.Natural()
	}
	return b.Build()
}

func (e meritEntry) build() (merit.Merit, error) {
	b := merit.NewBuilder(e.Name).Dots(e.Dots).Description(e.Description)
	if e.Kind != "" {
		b.Kind(e.Kind)
	}
	for _, group := range e.Prerequisites {
		b.RequireAny(group...)
	}
	return b.Build()
}

// Weapon returns a copy of the named weapon definition.
func (c *Catalog) Weapon(name string) (equipment.Weapon, bool) {
	w, ok := c.weapons[name]
	return w.Clone(), ok
}

// Armor returns a copy of the named armor definition.
func (c *Catalog) Armor(name string) (equipment.Armor, bool) {
	a, ok := c.armor[name]
	return a.Clone(), ok
}

// Merit returns a copy of the named merit definition.
func (c *Catalog) Merit(name string) (merit.Merit, bool) {
	m, ok := c.merits[name]
	return m.Clone(), ok
}

// Charm returns a copy of the named charm.
func (c *Catalog) Charm(name string) (exaltation.Charm, bool) {
	ch, ok := c.charms[name]
	return ch.Clone(), ok
}

// Names lists the entries of each section in order, keyed by section name.
func (c *Catalog) Names() map[string][]string {
	return map[string][]string{
		"weapons": sortedKeys(c.weapons),
		"armor":   sortedKeys(c.armor),
		"merits":  sortedKeys(c.merits),
		"charms":  sortedKeys(c.charms),
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
