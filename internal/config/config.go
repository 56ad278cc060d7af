// Package config loads shim settings from defaults, an optional global file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"

	"github.com/NikitaCOEUR/pshim/internal/derrors"
)

// AppName names the directory holding the global config file
const AppName = "pshim"

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	"config.yml",
	"config.yaml",
	"config.toml",
	"config.json",
}

// envKeys maps environment variables to config keys
var envKeys = map[string]string{
	"PANTS_BIN_NAME":       "bin_name",
	"PSHIM_BUILD_FILE":     "build_file",
	"PSHIM_COMPLETE_GOALS": "complete_goals",
	"PSHIM_ECHO":           "echo",
	"PSHIM_LOG_LEVEL":      "log_level",
	"PSHIM_LOG_FILE":       "log_file",
}

// Config holds the shim settings
type Config struct {
	BinName       string `koanf:"bin_name"`
	BuildFile     string `koanf:"build_file"`
	CompleteGoals bool   `koanf:"complete_goals"`
	Echo          bool   `koanf:"echo"`
	LogLevel      string `koanf:"log_level"`
	LogFile       string `koanf:"log_file"`
}

// Defaults returns the lowest precedence layer
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"bin_name":       "pants",
		"build_file":     "BUILD",
		"complete_goals": true,
		"echo":           true,
		"log_level":      "warn",
		"log_file":       "",
	}
}

// EnvKey maps an environment variable to its config key. Unknown variables and
// empty values map to "" and are ignored.
func EnvKey(name, value string) (string, interface{}) {
	key, ok := envKeys[name]
	if !ok || value == "" {
		return "", nil
	}
	return key, value
}

// Load merges defaults, the config file at path (skipped when path is empty)
// and the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load defaults", err)
	}

	if path != "" {
		if err := loadFile(k, path); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", EnvKey), nil); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load environment", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, derrors.NewConfigurationError(path, "invalid configuration", err)
	}

	return cfg, nil
}

// LoadDefault loads the global config file if one exists
func LoadDefault() (*Config, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return Load("")
	}
	return Load(FindConfigFile(dir))
}

func loadFile(k *koanf.Koanf, path string) error {
	parser, err := parserFor(path)
	if err != nil {
		return derrors.NewConfigurationError(path, err.Error(), nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return derrors.NewConfigurationError(path, "failed to read config", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return derrors.NewConfigurationError(path, "failed to validate config", err)
	}
	if !result.Valid {
		return derrors.NewConfigurationError(path, result.String(), nil)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return derrors.NewConfigurationError(path, "failed to load config", err)
	}
	return nil
}

// parserFor determines the koanf parser based on file extension
func parserFor(path string) (koanf.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Validate checks values that can also come from the environment
func (c *Config) Validate() error {
	if err := plainName("bin_name", c.BinName); err != nil {
		return err
	}
	if err := plainName("build_file", c.BuildFile); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return derrors.NewValidationError("log_level", fmt.Sprintf("unknown log level %q", c.LogLevel), err)
	}
	return nil
}

func plainName(field, value string) error {
	if value == "" {
		return derrors.NewValidationError(field, field+" must not be empty", nil)
	}
	if strings.ContainsAny(value, `/\`) || value == "." || value == ".." {
		return derrors.NewValidationError(field, fmt.Sprintf("%s must be a file name, got %q", field, value), nil)
	}
	return nil
}

// GlobalConfigDir returns the directory of the global config file
func GlobalConfigDir() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		// Fallback to ~/.config
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, AppName), nil
}

// FindConfigFile returns the first supported config file in dir, or ""
func FindConfigFile(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}
