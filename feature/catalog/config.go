package catalog

import "path/filepath"

// ScanConfig holds settings for reading a gun pack.
type ScanConfig struct {
	// Root is the pack folder containing index/ and data/.
	Root string `mapstructure:"root" default:""`
	// Namespace qualifies identifiers derived from bare file names.
	Namespace string `mapstructure:"namespace" default:"tacz"`
	// Summary is where the flattened CSV is written.
	Summary string `mapstructure:"summary" default:"tacz_summary.csv"`
	// Log receives every diagnostic when set.
	Log string `mapstructure:"log" default:""`
	// PreviewLimit caps diagnostics echoed to the console when Log is empty.
	PreviewLimit int `mapstructure:"preview_limit" default:"15"`
}

// IndexDir returns the folder holding category index records.
func (c ScanConfig) IndexDir() string {
	return filepath.Join(c.Root, "index")
}

// DataDir returns the folder holding per-item data records.
func (c ScanConfig) DataDir() string {
	return filepath.Join(c.Root, "data")
}
