package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/herlein/panscan/pkg/config"
	"github.com/herlein/panscan/pkg/logging"
	"github.com/herlein/panscan/pkg/palette"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configFile string

	v      = config.NewViper()
	appCfg *config.AppConfig
	logger = logging.Noop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "panscan",
	Short: "Panoramic spectrum scanner",
	Long: `panscan keeps the scan window of a panoramic spectrum view inside the
tunable range of an SDR receiver and switches between scanning and fixed
frequency mode as the view is zoomed and panned.

Settings are read from panscan.yaml (current directory or
$HOME/.config/panscan), PANSCAN_* environment variables and flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}
		return initializeConfig()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "",
		"config file (default is ./panscan.yaml or $HOME/.config/panscan/panscan.yaml)")
	flags.String("log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-format", config.DefaultLogFormat, "log format (text, json)")
	flags.String("state-file", config.DefaultStateFile, "file holding the persisted scan settings")
	flags.String("bandplan-dir", "", "directory of frequency allocation tables")
	flags.String("palette-file", "", "YAML file with extra waterfall palettes")
}

// bindFlags binds each flag of the command to the setting of the same name,
// dashes replaced by underscores
func bindFlags(cmd *cobra.Command) error {
	var lastErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil {
			lastErr = err
		}
	})
	return lastErr
}

// initializeConfig reads the config file, decodes the settings and builds
// the logger
func initializeConfig() error {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "panscan"))
		}
		v.SetConfigName("panscan")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg, err := config.LoadAppConfig(v)
	if err != nil {
		return err
	}
	appCfg = cfg

	logger = logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if used := v.ConfigFileUsed(); used != "" {
		logger.Debug(context.Background(), "using config file", logging.String("path", used))
	}
	return nil
}

// loadPalettes builds the palette table with the user palettes, if any
func loadPalettes(ctx context.Context) (*palette.Table, error) {
	if appCfg.PaletteFile == "" {
		return palette.NewTable(), nil
	}

	extra, problems, err := palette.LoadFile(appCfg.PaletteFile)
	if err != nil {
		return nil, err
	}
	for _, p := range problems {
		logger.Warn(ctx, "skipping palette", logging.String("file", appCfg.PaletteFile), logging.Err(p))
	}
	return palette.NewTable(extra...), nil
}
