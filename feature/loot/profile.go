package loot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Item is a plain vanilla item with a count range.
type Item struct {
	Name   string `yaml:"name"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Weight int    `yaml:"weight,omitempty"`
}

// Profile holds the non-weapon pools of a chest.
type Profile struct {
	Supplies  []Item `yaml:"supplies"`
	Resources []Item `yaml:"resources"`
}

// DefaultProfile returns the food, light and building supplies plus crafting
// resources every chest rolls from.
func DefaultProfile() Profile {
	return Profile{
		Supplies: []Item{
			{Name: "minecraft:bread", Min: 4, Max: 16},
			{Name: "minecraft:cooked_beef", Min: 2, Max: 10},
			{Name: "minecraft:torch", Min: 8, Max: 48},
			{Name: "minecraft:oak_planks", Min: 16, Max: 64},
			{Name: "minecraft:oak_log", Min: 8, Max: 32},
		},
		Resources: []Item{
			{Name: "minecraft:iron_ingot", Min: 2, Max: 16},
			{Name: "minecraft:coal", Min: 4, Max: 24},
			{Name: "minecraft:string", Min: 2, Max: 12},
			{Name: "minecraft:leather", Min: 1, Max: 8},
			{Name: "minecraft:golden_apple", Min: 0, Max: 2},
		},
	}
}

// LoadProfile reads a YAML profile. An empty path yields the default profile,
// and a section the file leaves out keeps its default items.
func LoadProfile(path string) (Profile, error) {
	profile := DefaultProfile()
	if path == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return profile, fmt.Errorf("failed to read loot profile: %w", err)
	}

	var custom Profile
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return profile, fmt.Errorf("failed to parse loot profile: %w", err)
	}
	if len(custom.Supplies) > 0 {
		profile.Supplies = custom.Supplies
	}
	if len(custom.Resources) > 0 {
		profile.Resources = custom.Resources
	}
	return profile, profile.Validate()
}

// Validate checks every item has a name and a sane count range.
func (p Profile) Validate() error {
	for _, section := range [][]Item{p.Supplies, p.Resources} {
		for _, it := range section {
			if it.Name == "" {
				return fmt.Errorf("loot profile item without name")
			}
			if err := (Range{Min: it.Min, Max: it.Max}).Validate(); err != nil {
				return fmt.Errorf("loot profile item %s: %w", it.Name, err)
			}
			if it.Weight < 0 {
				return fmt.Errorf("loot profile item %s: negative weight", it.Name)
			}
		}
	}
	return nil
}
