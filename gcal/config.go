package gcal

import (
	"encoding/json"
	"os"
)

const configFile = "config.json"

// Config is the persistent application configuration.
type Config struct {
	// CalendarIDs limits the calendars offered in the event form.
	CalendarIDs []string `json:"calendar_ids"`
	// DictFile is a TOML file merged over the built-in dictionaries.
	DictFile string `json:"dict_file,omitempty"`
}

func defaultConfig() *Config {
	return &Config{CalendarIDs: []string{"primary"}}
}

// LoadConfig reads the configuration. A missing or unreadable file yields
// the defaults.
func LoadConfig() (*Config, error) {
	configPath, err := Path(configFile)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(configPath)
	if err != nil {
		return defaultConfig(), nil
	}
	defer f.Close()

	config := &Config{}
	if err := json.NewDecoder(f).Decode(config); err != nil {
		return defaultConfig(), nil
	}

	if len(config.CalendarIDs) == 0 {
		config.CalendarIDs = []string{"primary"}
	}

	return config, nil
}

// SaveConfig writes config.
func SaveConfig(config *Config) error {
	configPath, err := Path(configFile)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(configPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(config)
}
