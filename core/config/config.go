package config

import (
	"reflect"
	"strings"

	"loot-manager/core/database"
	"loot-manager/core/logger"
	"loot-manager/core/server"
	"loot-manager/core/storage"
	"loot-manager/feature/catalog"
	"loot-manager/feature/datapack"
	"loot-manager/feature/loot"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the read-only HTTP API.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage datapacks are published to.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the catalog store.
	Database database.Config `mapstructure:"database"`
	// Scan holds configuration for reading the gun pack.
	Scan catalog.ScanConfig `mapstructure:"scan"`
	// Loot holds weights, roll ranges and fallbacks for table synthesis.
	Loot loot.Config `mapstructure:"loot"`
	// Datapack holds layout and placement settings for the generated datapack.
	Datapack datapack.Config `mapstructure:"datapack"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigWithFlags(path, nil, nil)
}

// LoadConfigWithFlags loads configuration and lets command-line flags override it.
// bindings maps config keys (e.g. "scan.root") to flag names (e.g. "root").
// Priority: changed flags > environment variables > .env file > defaults.
func LoadConfigWithFlags(path string, flags *pflag.FlagSet, bindings map[string]string) (*Config, error) {
	// 1. Load .env file if it exists
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. CI)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	// Recursively parse struct tags to set default values
	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. SCAN_ROOT -> scan.root)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range bindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
// A nested struct field may carry a default tag of the form "min=2,max=5" which
// overrides the defaults of the nested fields it names.
func bindValues(v *viper.Viper, iface any, prefix string) {
	bindValuesWith(v, reflect.TypeOf(iface), prefix, nil)
}

func bindValuesWith(v *viper.Viper, t reflect.Type, prefix string, overrides map[string]string) {
	// If it's a pointer, get the element
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")

		// Skip if no tag
		if tag == "" || tag == "-" {
			continue
		}

		// Build the key
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		// If it's a nested struct, recurse
		if field.Type.Kind() == reflect.Struct {
			bindValuesWith(v, field.Type, key, parseOverrides(field.Tag.Get("default")))
			continue
		}

		defaultValue := field.Tag.Get("default")
		if o, ok := overrides[tag]; ok {
			defaultValue = o
		}
		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, defaultValue)
	}
}

func parseOverrides(tag string) map[string]string {
	if tag == "" {
		return nil
	}
	out := make(map[string]string)
	for _, pair := range strings.Split(tag, ",") {
		k, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	return out
}
