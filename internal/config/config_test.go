package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var allEnvVars = []string{
	EnvCDSDirectory, EnvCOSDDirectory, EnvSACTDirectory,
	EnvRTDSDirectory, EnvToolPath, EnvOutputPath,
}

// unsetEnv removes the OMOPSCRIPT_* variables for the duration of the test
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		old, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, old)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.CDSDirectory = "/d/cds"
	cfg.COSDDirectory = "/d/cosd"
	cfg.SACTDirectory = "/d/sact"
	cfg.RTDSDirectory = "/d/rtds"
	cfg.ToolPath = "omop.exe"
	cfg.OutputPath = "/d/out"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.DateLayout != "2006-01-02" {
		t.Errorf("DateLayout = %q, want %q", cfg.DateLayout, "2006-01-02")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.CDSDirectory != "" || cfg.ToolPath != "" {
		t.Error("directories and tool path should have no default")
	}
}

func TestLoadConfig_YAMLCoversAllFields(t *testing.T) {
	unsetEnv(t)

	cfg, err := LoadConfig(filepath.Join("testdata", "full-config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	want := Config{
		CDSDirectory:  "/data/cds",
		COSDDirectory: "/data/cosd",
		SACTDirectory: "/data/sact",
		RTDSDirectory: "/data/rtds",
		ToolPath:      "omop.exe",
		OutputPath:    "/data/scripts",
		LogLevel:      "debug",
		LogDir:        "/tmp/omopscript/logs",
		DateLayout:    "02/01/2006",
	}
	if *cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", *cfg, want)
	}
}

func TestLoadConfig_AppSettingsJSON(t *testing.T) {
	unsetEnv(t)

	cfg, err := LoadConfig(filepath.Join("testdata", "appsettings.json"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	checks := map[string][2]string{
		"CDSDirectory":  {cfg.CDSDirectory, `C:\Data\CDS`},
		"COSDDirectory": {cfg.COSDDirectory, `C:\Data\COSD`},
		"SACTDirectory": {cfg.SACTDirectory, `C:\Data\SACT`},
		"RTDSDirectory": {cfg.RTDSDirectory, `C:\Data\RTDS`},
		"ToolPath":      {cfg.ToolPath, "omop.exe"},
		"OutputPath":    {cfg.OutputPath, `C:\Data\Scripts`},
		"LogLevel":      {cfg.LogLevel, "info"},
		"DateLayout":    {cfg.DateLayout, "2006-01-02"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadConfig_PartialYAMLKeepsDefaults(t *testing.T) {
	unsetEnv(t)
	path := filepath.Join(t.TempDir(), "omopscript.yaml")
	writeFile(t, path, "cds_directory: /only/cds\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CDSDirectory != "/only/cds" {
		t.Errorf("CDSDirectory = %q", cfg.CDSDirectory)
	}
	if cfg.LogLevel != "info" || cfg.DateLayout != "2006-01-02" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()

	badYAML := filepath.Join(dir, "bad.yaml")
	writeFile(t, badYAML, "cds_directory: [unclosed\n")
	badJSON := filepath.Join(dir, "appsettings.json")
	writeFile(t, badJSON, "{not json")

	tests := []struct {
		name    string
		path    string
		wantMsg string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), "failed to read config file"},
		{"malformed yaml", badYAML, "failed to parse config file"},
		{"malformed json", badJSON, "failed to parse config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(tt.path)
			if err == nil {
				t.Fatalf("LoadConfig() = %+v, want error", cfg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	unsetEnv(t)

	t.Run("yaml preferred over json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "omopscript.yaml"), "tool_path: from-yaml.exe\n")
		writeFile(t, filepath.Join(dir, "appsettings.json"), `{"OmopToolPath": "from-json.exe"}`)

		cfg, err := LoadConfigFromDir(dir)
		if err != nil {
			t.Fatalf("LoadConfigFromDir() error = %v", err)
		}
		if cfg.ToolPath != "from-yaml.exe" {
			t.Errorf("ToolPath = %q, want from-yaml.exe", cfg.ToolPath)
		}
	})

	t.Run("yml extension", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "omopscript.yml"), "tool_path: from-yml.exe\n")

		cfg, err := LoadConfigFromDir(dir)
		if err != nil {
			t.Fatalf("LoadConfigFromDir() error = %v", err)
		}
		if cfg.ToolPath != "from-yml.exe" {
			t.Errorf("ToolPath = %q, want from-yml.exe", cfg.ToolPath)
		}
	})

	t.Run("json fallback", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "appsettings.json"), `{"OmopToolPath": "from-json.exe"}`)

		cfg, err := LoadConfigFromDir(dir)
		if err != nil {
			t.Fatalf("LoadConfigFromDir() error = %v", err)
		}
		if cfg.ToolPath != "from-json.exe" {
			t.Errorf("ToolPath = %q, want from-json.exe", cfg.ToolPath)
		}
	})

	t.Run("nothing found", func(t *testing.T) {
		_, err := LoadConfigFromDir(t.TempDir())
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	unsetEnv(t)
	t.Setenv(EnvCDSDirectory, "/env/cds")
	t.Setenv(EnvToolPath, `C:\env\omop.exe`)
	t.Setenv(EnvOutputPath, "")

	cfg, err := LoadConfig(filepath.Join("testdata", "full-config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.CDSDirectory != "/env/cds" {
		t.Errorf("CDSDirectory = %q, want env override", cfg.CDSDirectory)
	}
	if cfg.ToolPath != `C:\env\omop.exe` {
		t.Errorf("ToolPath = %q, want env override", cfg.ToolPath)
	}
	// empty variables do not clear file values
	if cfg.OutputPath != "/data/scripts" {
		t.Errorf("OutputPath = %q, want file value", cfg.OutputPath)
	}
	if cfg.COSDDirectory != "/data/cosd" {
		t.Errorf("COSDDirectory = %q, want file value", cfg.COSDDirectory)
	}
}

func TestLoadConfig_DotEnvFile(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "omopscript.yaml"), "output_path: /file/out\nrtds_directory: /file/rtds\n")
	writeFile(t, filepath.Join(dir, ".env"), EnvOutputPath+"=/dotenv/out\n"+EnvRTDSDirectory+"=/dotenv/rtds\n")
	// variables already in the environment win over .env
	t.Setenv(EnvRTDSDirectory, "/shell/rtds")

	cfg, err := LoadConfigFromDir(dir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}

	if cfg.OutputPath != "/dotenv/out" {
		t.Errorf("OutputPath = %q, want /dotenv/out", cfg.OutputPath)
	}
	if cfg.RTDSDirectory != "/shell/rtds" {
		t.Errorf("RTDSDirectory = %q, want /shell/rtds", cfg.RTDSDirectory)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := validConfig()
	output := "/flag/out"
	level := "warn"

	cfg.MergeWithFlags(&output, nil, &level, nil)

	if cfg.OutputPath != "/flag/out" {
		t.Errorf("OutputPath = %q, want /flag/out", cfg.OutputPath)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.ToolPath != "omop.exe" {
		t.Errorf("ToolPath = %q, nil flag should not override", cfg.ToolPath)
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, nil flag should not override", cfg.LogDir)
	}

	tool := `D:\omop.exe`
	logDir := "/flag/logs"
	cfg.MergeWithFlags(nil, &tool, nil, &logDir)
	if cfg.ToolPath != tool || cfg.LogDir != logDir {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantMissing bool
		wantMsg     string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "uppercase level accepted", mutate: func(c *Config) { c.LogLevel = "DEBUG" }},
		{
			name:        "one missing",
			mutate:      func(c *Config) { c.SACTDirectory = "" },
			wantMissing: true,
			wantMsg:     "sact_directory",
		},
		{
			name: "all missing reported together",
			mutate: func(c *Config) {
				c.CDSDirectory = ""
				c.ToolPath = "  "
				c.OutputPath = ""
			},
			wantMissing: true,
			wantMsg:     "cds_directory, tool_path, output_path",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantMsg: `invalid log_level "verbose"`,
		},
		{
			name:    "empty date layout",
			mutate:  func(c *Config) { c.DateLayout = "" },
			wantMsg: "date_layout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %v, want it to contain %q", err, tt.wantMsg)
			}
			if errors.Is(err, ErrMissingField) != tt.wantMissing {
				t.Errorf("errors.Is(err, ErrMissingField) = %v, want %v", !tt.wantMissing, tt.wantMissing)
			}
		})
	}
}

func TestValidateSources(t *testing.T) {
	cfg := validConfig()
	cfg.ToolPath = ""
	cfg.OutputPath = ""

	if err := cfg.ValidateSources(); err != nil {
		t.Errorf("ValidateSources() error = %v, tool and output are not needed", err)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("Validate() error = %v, want ErrMissingField", err)
	}

	cfg.RTDSDirectory = ""
	err := cfg.ValidateSources()
	if !errors.Is(err, ErrMissingField) || !strings.Contains(err.Error(), "rtds_directory") {
		t.Errorf("ValidateSources() error = %v, want missing rtds_directory", err)
	}
}
