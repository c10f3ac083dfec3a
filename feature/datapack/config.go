package datapack

// Config holds layout and placement settings for the generated datapack.
type Config struct {
	// Out is the folder the datapack is written to.
	Out string `mapstructure:"out" default:"lwi_loot_datapack"`
	// Namespace is the datapack namespace holding tables and functions.
	Namespace   string `mapstructure:"namespace" default:"village"`
	Description string `mapstructure:"description" default:"LWI loot generator (auto)"`
	// PackFormat 15 targets Minecraft 1.20.1.
	PackFormat int    `mapstructure:"pack_format" default:"15"`
	Dimension  string `mapstructure:"dimension" default:"minecraft:overworld"`

	// Staging row: house i gets a chest at (BaseX + i*StepX, Y, Z).
	BaseX  int `mapstructure:"base_x" default:"282"`
	Y      int `mapstructure:"y" default:"55"`
	Z      int `mapstructure:"z" default:"491"`
	Houses int `mapstructure:"houses" default:"8"`
	StepX  int `mapstructure:"step_x" default:"2"`
	// GuaranteedHouseIndex is the 0-based house whose chest uses the guaranteed table.
	GuaranteedHouseIndex int `mapstructure:"guaranteed_house_index" default:"3"`

	// Prefix is the object key prefix the datapack is published under.
	Prefix string `mapstructure:"prefix" default:"lwi_loot_datapack"`
	// UploadConcurrency bounds parallel uploads while publishing.
	UploadConcurrency int `mapstructure:"upload_concurrency" default:"4"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Out:                  "lwi_loot_datapack",
		Namespace:            "village",
		Description:          "LWI loot generator (auto)",
		PackFormat:           15,
		Dimension:            "minecraft:overworld",
		BaseX:                282,
		Y:                    55,
		Z:                    491,
		Houses:               8,
		StepX:                2,
		GuaranteedHouseIndex: 3,
		Prefix:               "lwi_loot_datapack",
		UploadConcurrency:    4,
	}
}

// Placement returns the staging row described by the config.
func (c Config) Placement() Placement {
	return Placement{BaseX: c.BaseX, Y: c.Y, Z: c.Z, Houses: c.Houses, StepX: c.StepX}
}
