package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds the connection section of playlog.yaml.
// Passwords never live here; they come from $PGPASSWORD, .pgpass,
// or a connection string.
type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// DataConfig holds the data section of playlog.yaml.
type DataConfig struct {
	// Path is the dataset root holding song_data/ and log_data/.
	Path string `yaml:"path"`
}

// ProjectConfig is the full playlog.yaml structure.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Data       DataConfig       `yaml:"data"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "playlog.yaml"

// Load reads playlog.yaml from dir. Returns ErrConfigNotFound when the
// file is absent, which callers treat as "use flags and environment only".
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
