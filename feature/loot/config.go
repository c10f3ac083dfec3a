package loot

import (
	"fmt"
)

// Config holds weights, roll ranges and fallbacks for table synthesis.
// Roll ranges carry their defaults on the struct field as "min=..,max=..".
type Config struct {
	Weights   Weights     `mapstructure:"weights"`
	FireModes FireModes   `mapstructure:"fire_modes"`
	Ammo      AmmoConfig  `mapstructure:"ammo"`
	Rolls     RollsConfig `mapstructure:"rolls"`
	// SpecializeShotgunAmmo moves ammo fed to shotguns into its own pool.
	SpecializeShotgunAmmo bool `mapstructure:"specialize_shotgun_ammo" default:"true"`
	// GuaranteedID is the gun placed in the guaranteed pool of the second variant.
	GuaranteedID string `mapstructure:"guaranteed_id" default:"tacz:ak47"`
	// TableName names the baseline variant.
	TableName string `mapstructure:"table_name" default:"house"`
	// GuaranteedSuffix is appended to TableName for the guaranteed variant.
	GuaranteedSuffix string `mapstructure:"guaranteed_suffix" default:"ak"`
	// ProfileFile optionally points at a YAML file replacing the supply and resource items.
	ProfileFile string `mapstructure:"profile_file" default:""`
}

// Weights are per-entry weights of each pool.
type Weights struct {
	Pistol          int `mapstructure:"pistol" default:"6"`
	Shotgun         int `mapstructure:"shotgun" default:"3"`
	Rifle           int `mapstructure:"rifle" default:"2"`
	Ammo            int `mapstructure:"ammo" default:"1"`
	SpecializedAmmo int `mapstructure:"specialized_ammo" default:"3"`
	Attachment      int `mapstructure:"attachment" default:"1"`
}

// FireModes are used when a gun declares no default fire mode of its own.
type FireModes struct {
	Pistol  string `mapstructure:"pistol" default:"SEMI"`
	Shotgun string `mapstructure:"shotgun" default:"SEMI"`
	Rifle   string `mapstructure:"rifle" default:"AUTO"`
}

// AmmoConfig bounds ammunition stack counts.
type AmmoConfig struct {
	MinCount int `mapstructure:"min_count" default:"10"`
	// MaxCount is a hard cap regardless of the item's stack size.
	MaxCount int `mapstructure:"max_count" default:"60"`
	// FallbackStack applies to ammo referenced by a gun but missing from the catalog.
	FallbackStack int `mapstructure:"fallback_stack" default:"60"`
}

// RollsConfig holds the roll range of every pool.
type RollsConfig struct {
	Supplies        Range `mapstructure:"supplies" default:"min=2,max=5"`
	Resources       Range `mapstructure:"resources" default:"min=0,max=3"`
	Weapons         Range `mapstructure:"weapons" default:"min=0,max=1"`
	SpecializedAmmo Range `mapstructure:"specialized_ammo" default:"min=0,max=1"`
	Ammo            Range `mapstructure:"ammo" default:"min=0,max=2"`
	Attachments     Range `mapstructure:"attachments" default:"min=0,max=1"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Weights:   Weights{Pistol: 6, Shotgun: 3, Rifle: 2, Ammo: 1, SpecializedAmmo: 3, Attachment: 1},
		FireModes: FireModes{Pistol: "SEMI", Shotgun: "SEMI", Rifle: "AUTO"},
		Ammo:      AmmoConfig{MinCount: 10, MaxCount: 60, FallbackStack: 60},
		Rolls: RollsConfig{
			Supplies:        Range{Min: 2, Max: 5},
			Resources:       Range{Min: 0, Max: 3},
			Weapons:         Range{Min: 0, Max: 1},
			SpecializedAmmo: Range{Min: 0, Max: 1},
			Ammo:            Range{Min: 0, Max: 2},
			Attachments:     Range{Min: 0, Max: 1},
		},
		SpecializeShotgunAmmo: true,
		GuaranteedID:          "tacz:ak47",
		TableName:             "house",
		GuaranteedSuffix:      "ak",
	}
}

// GuaranteedName returns the name of the guaranteed variant.
func (c Config) GuaranteedName() string {
	return c.TableName + "_" + c.GuaranteedSuffix
}

// Validate rejects settings that would produce an invalid table.
func (c Config) Validate() error {
	weights := []struct {
		name  string
		value int
	}{
		{"pistol", c.Weights.Pistol},
		{"shotgun", c.Weights.Shotgun},
		{"rifle", c.Weights.Rifle},
		{"ammo", c.Weights.Ammo},
		{"specialized_ammo", c.Weights.SpecializedAmmo},
		{"attachment", c.Weights.Attachment},
	}
	for _, w := range weights {
		if w.value < 1 {
			return fmt.Errorf("weight %s must be at least 1, got %d", w.name, w.value)
		}
	}

	if c.Ammo.MinCount < 1 {
		return fmt.Errorf("ammo min_count must be at least 1, got %d", c.Ammo.MinCount)
	}
	if c.Ammo.MaxCount < 1 {
		return fmt.Errorf("ammo max_count must be at least 1, got %d", c.Ammo.MaxCount)
	}

	rolls := []struct {
		name  string
		value Range
	}{
		{"supplies", c.Rolls.Supplies},
		{"resources", c.Rolls.Resources},
		{"weapons", c.Rolls.Weapons},
		{"specialized_ammo", c.Rolls.SpecializedAmmo},
		{"ammo", c.Rolls.Ammo},
		{"attachments", c.Rolls.Attachments},
	}
	for _, r := range rolls {
		if err := r.value.Validate(); err != nil {
			return fmt.Errorf("rolls %s: %w", r.name, err)
		}
	}

	if c.TableName == "" {
		return fmt.Errorf("table_name must not be empty")
	}
	return nil
}
