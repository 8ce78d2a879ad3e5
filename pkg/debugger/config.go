package debugger

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultPrompt is shown when no prompt is configured.
const DefaultPrompt = "dbg> "

// Config controls the interactive session. Values resolve in order: defaults,
// then the config file, then STUPID_DBG_* environment variables. Command line
// flags are applied by the caller on top of the loaded Config.
type Config struct {
	Prompt      string `yaml:"prompt" env:"STUPID_DBG_PROMPT"`
	HistoryFile string `yaml:"historyFile" env:"STUPID_DBG_HISTORY_FILE"`
	LogLevel    string `yaml:"logLevel" env:"STUPID_DBG_LOG_LEVEL"`
}

func defaultConfig() Config {
	return Config{
		Prompt:   DefaultPrompt,
		LogLevel: "info",
	}
}

// DefaultConfigFile returns the conventional config location,
// $XDG_CONFIG_HOME/stupid-dbg/config.yml. Empty when the user's config
// directory cannot be determined.
func DefaultConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stupid-dbg", "config.yml")
}

// LoadConfig resolves the configuration. An empty file means the default
// location, where a missing file is fine; an explicitly named file must
// exist.
func LoadConfig(file string) (Config, error) {
	cfg := defaultConfig()

	explicit := file != ""
	if !explicit {
		file = DefaultConfigFile()
	}

	if file != "" {
		b, err := os.ReadFile(file)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file (%s): %w", file, err)
			}
		case explicit || !os.IsNotExist(err):
			return Config{}, fmt.Errorf("failed to read config file (%s): %w", file, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return cfg, nil
}
