package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/harrison/omopscript/internal/config"
	"github.com/harrison/omopscript/internal/logger"
	"github.com/harrison/omopscript/internal/scanner"
)

// addConfigFlags registers the flags shared by every subcommand
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to config file (default: omopscript.yaml, omopscript.yml or appsettings.json)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	flags.String("log-dir", "", "Directory for run logs (overrides config)")
}

// loadConfig loads the configuration named by --config, or the first
// settings file in the working directory, and applies flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.MergeWithFlags(
		changedString(cmd, "output"),
		changedString(cmd, "tool"),
		changedString(cmd, "log-level"),
		changedString(cmd, "log-dir"),
	)
	return cfg, nil
}

// changedString returns the flag value only when the user set it
func changedString(cmd *cobra.Command, name string) *string {
	flag := cmd.Flags().Lookup(name)
	if flag == nil || !flag.Changed {
		return nil
	}
	value := flag.Value.String()
	return &value
}

// newRunLogger builds the console logger and, when log_dir is set, a file
// logger alongside it. The returned close func must always be called.
func newRunLogger(cfg *config.Config, console io.Writer) (logger.Logger, func(), error) {
	consoleLog := logger.NewConsoleLogger(console, cfg.LogLevel)
	consoleLog.LogTrace(fmt.Sprintf("Settings: cds=%s cosd=%s sact=%s rtds=%s tool=%s output=%s date_layout=%s",
		cfg.CDSDirectory, cfg.COSDDirectory, cfg.SACTDirectory, cfg.RTDSDirectory,
		cfg.ToolPath, cfg.OutputPath, cfg.DateLayout))
	if cfg.LogDir == "" {
		return consoleLog, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create run log: %w", err)
	}
	consoleLog.LogDebug(fmt.Sprintf("Run %s logging to %s", fileLog.RunID(), fileLog.Path()))

	return logger.NewMultiLogger(consoleLog, fileLog), func() { fileLog.Close() }, nil
}

// sourceDirectories maps the configured directories onto the scanner's input
func sourceDirectories(cfg *config.Config) scanner.Directories {
	return scanner.Directories{
		CDS:  cfg.CDSDirectory,
		COSD: cfg.COSDDirectory,
		SACT: cfg.SACTDirectory,
		RTDS: cfg.RTDSDirectory,
	}
}
