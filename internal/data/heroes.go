// Package data provides the static hero reference tables for DraftCoach.
package data

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed heroes.yaml
var embeddedHeroes []byte

// Traits is the lane role, damage type and style tags of a hero.
type Traits struct {
	Role   string   `yaml:"role"`
	Damage string   `yaml:"dmg"`
	Tags   []string `yaml:"tags"`
}

// RosterGroup is one category of the offline roster.
type RosterGroup struct {
	Group  string   `yaml:"group"`
	Heroes []string `yaml:"heroes"`
}

// HeroTables represents the structure of heroes.yaml
type HeroTables struct {
	NameFixes     map[string]string `yaml:"name_fixes"`
	Augment       map[string]Traits `yaml:"augment"`
	ClassDefaults map[string]Traits `yaml:"class_defaults"`
	ClassByLane   map[string]string `yaml:"class_by_lane"`
	LocalRoster   []RosterGroup     `yaml:"local_roster"`
}

var (
	heroTables     *HeroTables
	heroTablesOnce sync.Once
	heroTablesErr  error
)

// LoadHeroTables loads the hero tables once per process. An empty filePath
// selects the embedded copy. Later calls return the first result whatever
// path they pass.
func LoadHeroTables(filePath string) (*HeroTables, error) {
	heroTablesOnce.Do(func() {
		raw := embeddedHeroes
		if filePath != "" {
			b, err := os.ReadFile(filePath)
			if err != nil {
				heroTablesErr = err
				return
			}
			raw = b
		}

		tables, err := ParseHeroTables(raw)
		if err != nil {
			heroTablesErr = err
			return
		}
		heroTables = tables
	})

	return heroTables, heroTablesErr
}

// MustHeroTables returns the loaded tables, falling back to the embedded copy
// when nothing was loaded yet.
func MustHeroTables() *HeroTables {
	tables, err := LoadHeroTables("")
	if err != nil {
		panic(fmt.Sprintf("hero tables: %v", err))
	}
	return tables
}

// ParseHeroTables decodes a heroes.yaml document.
func ParseHeroTables(raw []byte) (*HeroTables, error) {
	var t HeroTables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("heroes.yaml: %w", err)
	}
	if len(t.LocalRoster) == 0 {
		return nil, fmt.Errorf("heroes.yaml: local_roster is empty")
	}
	if _, ok := t.ClassDefaults[""]; !ok {
		return nil, fmt.Errorf("heroes.yaml: class_defaults needs an entry for unknown classes")
	}
	return &t, nil
}

// LocalHeroNames returns the offline roster names in file order.
func (t *HeroTables) LocalHeroNames() []string {
	var names []string
	for _, g := range t.LocalRoster {
		names = append(names, g.Heroes...)
	}
	return names
}
