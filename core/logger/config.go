package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum enabled level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format selects the encoder: json or console.
	Format string `mapstructure:"format" default:"console"`
	// Output is where log lines go: stderr, stdout or a file path.
	// Command results are printed to stdout, so logs default to stderr.
	Output string `mapstructure:"output" default:"stderr"`
}
