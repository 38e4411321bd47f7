package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"spekgram/internal/config"
	"spekgram/pkg/build"
)

// ParseArgs parses the command line into a Config. Option precedence
// is CLI flags > config file > built-in defaults, so flag defaults are
// seeded from the loaded file.
func ParseArgs() (*config.Config, error) {
	buildInfo := build.GetBuildFlags()

	// The config file path must be known before the other flags can be
	// seeded from it, so it is pre-scanned from the raw arguments.
	options, err := config.LoadConfig(configPathFromArgs(os.Args[1:]))
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           buildInfo.Name + " [file]",
		Short:         "Audio spectrum analyzer - check audio quality from your terminal",
		Version:       buildInfo.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("missing audio file argument, see '%s --help'", buildInfo.Name)
			}
			options.InputFile = args[0]

			// An explicit palette choice on the command line beats any
			// custom stop set from the config file.
			if cmd.Flags().Changed("palette") {
				options.Stops = nil
			}
			return nil
		},
	}

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Palettes command
	palettesCmd := &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in color palettes",
		Run: func(cmd *cobra.Command, args []string) {
			options.Command = "palettes"
		},
	}
	rootCmd.AddCommand(palettesCmd)

	// Render Configuration
	rootCmd.PersistentFlags().IntVarP(&options.Width, "width", "w", options.Width,
		"Width of the output image in pixels")
	rootCmd.PersistentFlags().IntVarP(&options.Height, "height", "H", options.Height,
		"Height of the output image in pixels")
	rootCmd.PersistentFlags().BoolVar(&options.LogScale, "log", options.LogScale,
		"Use logarithmic frequency scale (better for music analysis)")
	rootCmd.PersistentFlags().StringVarP(&options.Palette, "palette", "p", options.Palette,
		"Color palette for the spectrogram. See 'palettes' command.")
	rootCmd.PersistentFlags().BoolVar(&options.Rolloff, "rolloff", options.Rolloff,
		"Overlay the spectral rolloff line (85% energy ceiling). Useful for "+
			"detecting lossy compression - MP3s typically roll off around 16kHz.")

	// Output Configuration
	rootCmd.PersistentFlags().StringVarP(&options.SavePath, "save", "s", options.SavePath,
		"Save the spectrogram to a PNG file")
	rootCmd.PersistentFlags().BoolVarP(&options.Quiet, "quiet", "q", options.Quiet,
		"Suppress all non-error output")
	rootCmd.PersistentFlags().BoolVarP(&options.Verbose, "verbose", "v", options.Verbose,
		"Show timing statistics after processing")
	rootCmd.PersistentFlags().String("config", "",
		"Path to a YAML config file (default: spekgram.yaml, ~/.config/spekgram/config.yaml)")

	// Execute the CLI
	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	return options, nil
}

// configPathFromArgs extracts the --config value without running the
// full parser.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if path, ok := strings.CutPrefix(arg, "--config="); ok {
			return path
		}
	}
	return ""
}
