// Package hero builds hero records from names using the static tables.
package hero

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/draftcoach/internal/data"
)

// Lane roles.
const (
	RoleGold   = "Gold"
	RoleEXP    = "EXP"
	RoleMid    = "Mid"
	RoleJungle = "Jungle"
	RoleRoam   = "Roam"
	RoleFlex   = "Flex"
)

// Damage types.
const (
	DamagePhysical = "Physical"
	DamageMagic    = "Magic"
	DamageHybrid   = "Hybrid"
)

// Roles lists the lane roles a player can select.
var Roles = []string{RoleGold, RoleEXP, RoleMid, RoleJungle, RoleRoam}

// Hero is a derived, read-only hero record.
type Hero struct {
	Name   string
	ID     int // 0 when unknown
	Role   string
	Damage string
	Tags   []string
}

// HasTag reports whether the hero carries tag.
func (h Hero) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var titleWord = regexp.MustCompile(`(^|\s)\w`)

// Catalog answers name lookups against one set of tables. Every key it
// stores is normalized. It is immutable after construction.
type Catalog struct {
	fixes         map[string]string
	augment       map[string]data.Traits
	classDefaults map[string]data.Traits
	classByLane   map[string]string
	local         []string
}

// NewCatalog indexes t.
func NewCatalog(t *data.HeroTables) *Catalog {
	c := &Catalog{
		fixes:         make(map[string]string, len(t.NameFixes)),
		augment:       make(map[string]data.Traits, len(t.Augment)),
		classDefaults: make(map[string]data.Traits, len(t.ClassDefaults)),
		classByLane:   make(map[string]string, len(t.ClassByLane)),
	}
	for k, v := range t.NameFixes {
		c.fixes[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range t.Augment {
		c.augment[c.Normalize(k)] = v
	}
	for k, v := range t.ClassDefaults {
		c.classDefaults[strings.ToLower(k)] = v
	}
	for k, v := range t.ClassByLane {
		c.classByLane[k] = v
	}
	c.local = c.Unique(t.LocalHeroNames())
	return c
}

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// Default returns the catalog built from the process-wide hero tables.
func Default() *Catalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewCatalog(data.MustHeroTables())
	})
	return defaultCatalog
}

// Normalize trims and lower-cases name, applies the correction table, and
// otherwise capitalizes the first letter of each word.
func (c *Catalog) Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ""
	}
	if fixed, ok := c.fixes[n]; ok {
		return fixed
	}
	return titleWord.ReplaceAllStringFunc(n, strings.ToUpper)
}

// Normalize uses the default catalog.
func Normalize(name string) string {
	return Default().Normalize(name)
}

// Unique normalizes names, drops empties and duplicates, and sorts the rest.
func (c *Catalog) Unique(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		nm := c.Normalize(n)
		if nm == "" {
			continue
		}
		if _, dup := seen[nm]; dup {
			continue
		}
		seen[nm] = struct{}{}
		out = append(out, nm)
	}
	sort.Strings(out)
	return out
}

// FromName builds the record for name: curated traits when known, otherwise
// the defaults for an unknown class. It returns false for a blank name.
func (c *Catalog) FromName(name string) (Hero, bool) {
	nm := c.Normalize(name)
	if nm == "" {
		return Hero{}, false
	}
	traits, ok := c.augment[nm]
	if !ok {
		traits = c.InferFromClass("")
	}
	tags := make([]string, len(traits.Tags))
	copy(tags, traits.Tags)
	return Hero{
		Name:   nm,
		Role:   traits.Role,
		Damage: traits.Damage,
		Tags:   tags,
	}, true
}

// FromNames builds records for every non-blank name, keeping order.
func (c *Catalog) FromNames(names []string) []Hero {
	out := make([]Hero, 0, len(names))
	for _, n := range names {
		if h, ok := c.FromName(n); ok {
			out = append(out, h)
		}
	}
	return out
}

// Curated reports whether name has an entry in the augment table.
func (c *Catalog) Curated(name string) bool {
	_, ok := c.augment[c.Normalize(name)]
	return ok
}

// InferFromClass returns default traits for an API hero class such as
// "Marksman". Unknown classes get the Flex defaults.
func (c *Catalog) InferFromClass(class string) data.Traits {
	if t, ok := c.classDefaults[strings.ToLower(strings.TrimSpace(class))]; ok {
		return t
	}
	return c.classDefaults[""]
}

// ClassForLane returns the class usually played in lane, or "—".
func (c *Catalog) ClassForLane(lane string) string {
	if cls, ok := c.classByLane[lane]; ok {
		return cls
	}
	return "—"
}

// LocalRoster returns the offline roster, normalized, unique and sorted.
func (c *Catalog) LocalRoster() []string {
	return append([]string(nil), c.local...)
}

// ParseRole matches a lane role case-insensitively.
func ParseRole(s string) (string, bool) {
	for _, r := range Roles {
		if strings.EqualFold(strings.TrimSpace(s), r) {
			return r, true
		}
	}
	return "", false
}
