package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mj1618/desktop-tree/internal/config"
	"github.com/mj1618/desktop-tree/internal/observability"
	"github.com/mj1618/desktop-tree/internal/output"
	"github.com/mj1618/desktop-tree/internal/version"

	// Registers the live Windows backend.
	_ "github.com/mj1618/desktop-tree/internal/platform/windows"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-tree",
	Short: "Inventory the interactive elements of the desktop",
	Long: `A CLI tool that reads the accessibility tree of the taskbar, the desktop and the
foreground application and reports the elements an agent can act on, read or scroll.`,
	SilenceUsage: true,
}

// cfg is the configuration loaded by the root command before any subcommand runs.
var cfg *config.Config

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "", "Output format: yaml, json, agent")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("scene", "", "Read a recorded desktop scene file instead of the live desktop")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		v := viper.New()
		if err := v.BindPFlag("platform.scene", rootCmd.PersistentFlags().Lookup("scene")); err != nil {
			return err
		}
		path, _ := rootCmd.PersistentFlags().GetString("config")
		loaded, err := config.Load(v, path)
		if err != nil {
			return err
		}
		cfg = loaded
		observability.InitializeLogger(cfg.Logger)

		// Smart default: piped output (agent context) gets agent format,
		// a terminal gets yaml.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		if format == "" {
			if output.IsOutputPiped() {
				format = string(output.FormatAgent)
			} else {
				format = string(output.FormatYAML)
			}
		}
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		observability.Sync()
	}
}
