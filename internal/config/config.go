package config

// Core configuration constants that define the boundaries and defaults
// for the spectrogram renderer.
const (
	// Default values for a render when neither the config file nor the
	// command line says otherwise.
	DefaultWidth    = 1024       // Output image width in pixels
	DefaultHeight   = 512        // Output image height in pixels
	DefaultLogScale = false      // Linear frequency axis
	DefaultRolloff  = false      // Rolloff overlay disabled
	DefaultPalette  = "audacity" // Classic spectrogram ramp
	DefaultLogLevel = "info"     // Logger verbosity
	DefaultVerbose  = false      // No timing statistics

	// Rendering limit. Dimensions beyond this are almost certainly a
	// typo and would allocate gigabytes of pixels.
	MaxImageDim = 16384
)

// ColorStop anchors a gradient color at a position in [0,1], as read
// from the config file.
type ColorStop struct {
	Position float64 `yaml:"position"`
	Color    string  `yaml:"color"` // Hex code "#RRGGBB"
}

// Config holds all runtime options for one invocation. It is built
// from defaults, then the YAML config file, then command line flags,
// in that order of increasing priority.
type Config struct {
	// Input/output
	InputFile string // Path to the WAV file to analyze
	SavePath  string // Output PNG path; empty skips saving

	// Render options
	Width    int    // Output image width in pixels
	Height   int    // Output image height in pixels
	LogScale bool   // Logarithmic frequency axis
	Rolloff  bool   // Draw the spectral rolloff overlay
	Palette  string // Built-in palette name

	// Stops overrides the named palette when non-empty (config file
	// custom gradients).
	Stops []ColorStop

	// Output behavior
	Quiet    bool   // Suppress all non-error output
	Verbose  bool   // Show timing statistics
	LogLevel string // Logger verbosity

	// Command is a one-off command to execute instead of analyzing a
	// file (e.g. "palettes").
	Command string
}

// NewConfig creates a new Config instance with default values. This is
// the base configuration before the config file and command line
// arguments are applied.
func NewConfig() *Config {
	return &Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		LogScale: DefaultLogScale,
		Rolloff:  DefaultRolloff,
		Palette:  DefaultPalette,
		Verbose:  DefaultVerbose,
		LogLevel: DefaultLogLevel,
	}
}
