package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/piwi3910/MillPool/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.millpool/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".millpool")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// BacklogPathFor resolves where the backlog lives for a config loaded from configPath.
func BacklogPathFor(config model.AppConfig, configPath string) string {
	if config.BacklogPath != "" {
		return config.BacklogPath
	}
	return filepath.Join(filepath.Dir(configPath), "backlog.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveAppConfig persists an AppConfig to the given path. Files ending in
// .yaml or .yml are written as YAML, everything else as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &config)
	} else {
		err = json.Unmarshal(data, &config)
	}
	if err != nil {
		return model.AppConfig{}, &model.OpError{
			Op:   "config.load",
			Kind: model.KindInvalidData,
			Path: path,
			Err:  err,
		}
	}
	return config.Normalize(), nil
}
