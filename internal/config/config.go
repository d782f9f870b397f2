package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingField is wrapped by Validate when a required setting is empty
var ErrMissingField = errors.New("missing required setting")

// ErrConfigNotFound is returned by LoadConfigFromDir when no settings file exists
var ErrConfigNotFound = errors.New("no configuration file found")

// FileNames are the settings files LoadConfigFromDir looks for, in order
var FileNames = []string{"omopscript.yaml", "omopscript.yml", "appsettings.json"}

// Environment variables that override file settings
const (
	EnvCDSDirectory  = "OMOPSCRIPT_CDS_DIR"
	EnvCOSDDirectory = "OMOPSCRIPT_COSD_DIR"
	EnvSACTDirectory = "OMOPSCRIPT_SACT_DIR"
	EnvRTDSDirectory = "OMOPSCRIPT_RTDS_DIR"
	EnvToolPath      = "OMOPSCRIPT_TOOL_PATH"
	EnvOutputPath    = "OMOPSCRIPT_OUTPUT_PATH"
)

// Config represents omopscript configuration options
type Config struct {
	// CDSDirectory holds CDS extracts, scanned one level deep
	CDSDirectory string `yaml:"cds_directory"`

	// COSDDirectory holds COSD extracts, scanned one level deep
	COSDDirectory string `yaml:"cosd_directory"`

	// SACTDirectory contains year-named subdirectories of SACT extracts
	SACTDirectory string `yaml:"sact_directory"`

	// RTDSDirectory contains subdirectories of RTDS extracts
	RTDSDirectory string `yaml:"rtds_directory"`

	// ToolPath is the OMOP import tool invoked by the scripts
	ToolPath string `yaml:"tool_path"`

	// OutputPath is the directory the scripts are written to
	OutputPath string `yaml:"output_path"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a run log in this directory when set
	LogDir string `yaml:"log_dir"`

	// DateLayout is the Go time layout used for dates in the scripts
	DateLayout string `yaml:"date_layout"`
}

// appSettings is the flat JSON settings shape accepted for .json files
type appSettings struct {
	PathToCdsDirectory  string `json:"PathToCdsDirectory"`
	PathToCosdDirectory string `json:"PathToCosdDirectory"`
	PathToSactDirectory string `json:"PathToSactDirectory"`
	PathToRtdsDirectory string `json:"PathToRtdsDirectory"`
	OmopToolPath        string `json:"OmopToolPath"`
	OutputPath          string `json:"OutputPath"`
}

// DefaultConfig returns a Config with default values and no directories
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		DateLayout: "2006-01-02",
	}
}

// LoadConfig loads configuration from the file at path. Files ending in .json
// use the appsettings keys; anything else is parsed as YAML. A .env file next
// to the settings file is loaded first, then environment overrides are applied.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = cfg.mergeAppSettings(data)
	} else {
		err = cfg.mergeYAML(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := loadDotEnv(filepath.Dir(path)); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	return cfg, nil
}

// LoadConfigFromDir loads the first of FileNames found in dir
func LoadConfigFromDir(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadConfig(path)
		}
	}
	return nil, fmt.Errorf("%w in %s (looked for %s)", ErrConfigNotFound, dir, strings.Join(FileNames, ", "))
}

func (c *Config) mergeYAML(data []byte) error {
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return err
	}

	setIfPresent(&c.CDSDirectory, fileCfg.CDSDirectory)
	setIfPresent(&c.COSDDirectory, fileCfg.COSDDirectory)
	setIfPresent(&c.SACTDirectory, fileCfg.SACTDirectory)
	setIfPresent(&c.RTDSDirectory, fileCfg.RTDSDirectory)
	setIfPresent(&c.ToolPath, fileCfg.ToolPath)
	setIfPresent(&c.OutputPath, fileCfg.OutputPath)
	setIfPresent(&c.LogLevel, fileCfg.LogLevel)
	setIfPresent(&c.LogDir, fileCfg.LogDir)
	setIfPresent(&c.DateLayout, fileCfg.DateLayout)
	return nil
}

func (c *Config) mergeAppSettings(data []byte) error {
	var settings appSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		return err
	}

	setIfPresent(&c.CDSDirectory, settings.PathToCdsDirectory)
	setIfPresent(&c.COSDDirectory, settings.PathToCosdDirectory)
	setIfPresent(&c.SACTDirectory, settings.PathToSactDirectory)
	setIfPresent(&c.RTDSDirectory, settings.PathToRtdsDirectory)
	setIfPresent(&c.ToolPath, settings.OmopToolPath)
	setIfPresent(&c.OutputPath, settings.OutputPath)
	return nil
}

// loadDotEnv loads dir/.env if it exists. Variables already set in the
// environment win over the file.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from OMOPSCRIPT_* environment variables.
// Empty variables are ignored.
func (c *Config) ApplyEnv() {
	setIfPresent(&c.CDSDirectory, os.Getenv(EnvCDSDirectory))
	setIfPresent(&c.COSDDirectory, os.Getenv(EnvCOSDDirectory))
	setIfPresent(&c.SACTDirectory, os.Getenv(EnvSACTDirectory))
	setIfPresent(&c.RTDSDirectory, os.Getenv(EnvRTDSDirectory))
	setIfPresent(&c.ToolPath, os.Getenv(EnvToolPath))
	setIfPresent(&c.OutputPath, os.Getenv(EnvOutputPath))
}

func setIfPresent(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(outputPath, toolPath, logLevel, logDir *string) {
	if outputPath != nil {
		c.OutputPath = *outputPath
	}
	if toolPath != nil {
		c.ToolPath = *toolPath
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logDir != nil {
		c.LogDir = *logDir
	}
}

// Validate checks that every required setting is present and that the log
// level is known. All missing settings are reported in one error.
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateSources is Validate without tool_path and output_path, for
// commands that only read the source directories.
func (c *Config) ValidateSources() error {
	return c.validate(false)
}

type setting struct {
	name  string
	value string
}

func (c *Config) validate(needOutput bool) error {
	required := []setting{
		{"cds_directory", c.CDSDirectory},
		{"cosd_directory", c.COSDDirectory},
		{"sact_directory", c.SACTDirectory},
		{"rtds_directory", c.RTDSDirectory},
	}
	if needOutput {
		required = append(required,
			setting{"tool_path", c.ToolPath},
			setting{"output_path", c.OutputPath},
		)
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.DateLayout == "" {
		return fmt.Errorf("date_layout cannot be empty")
	}

	return nil
}
