package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"kubedash/internal/tui/layout"
	"kubedash/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/kubedash"
	projectConfigDir = ".kubedash"
	configFileName   = "config.yaml"
)

// LoadConfig layers the default, user, project and explicit configuration.
// explicitPath may be empty; when set the file must exist.
func LoadConfig(explicitPath string) (Config, error) {
	config := GetDefaultConfig()

	for _, layer := range []struct {
		name string
		path func() (string, error)
	}{
		{"user", getUserConfigPath},
		{"project", getProjectConfigPath},
	} {
		path, err := layer.path()
		if err != nil {
			// Optional layers; a missing home or working directory is not fatal.
			logging.Warn("Config", "Could not determine %s config path: %v", layer.name, err)
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		overlay, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading %s config from %s: %w", layer.name, path, err)
		}
		logging.Debug("Config", "Merged %s config from %s", layer.name, path)
		config = mergeConfigs(config, overlay)
	}

	if explicitPath != "" {
		overlay, err := loadConfigFromFile(explicitPath)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", explicitPath, err)
		}
		config = mergeConfigs(config, overlay)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base untouched.
func mergeConfigs(base, overlay Config) Config {
	merged := base

	if overlay.UI.TickInterval > 0 {
		merged.UI.TickInterval = overlay.UI.TickInterval
	}
	if overlay.UI.Split != "" {
		merged.UI.Split = overlay.UI.Split
	}
	if overlay.UI.FollowLogs != nil {
		merged.UI.FollowLogs = overlay.UI.FollowLogs
	}
	if overlay.UI.CarryStyle != nil {
		merged.UI.CarryStyle = overlay.UI.CarryStyle
	}
	if overlay.UI.Mouse != nil {
		merged.UI.Mouse = overlay.UI.Mouse
	}

	if overlay.Kube.Kubeconfig != "" {
		merged.Kube.Kubeconfig = overlay.Kube.Kubeconfig
	}
	if overlay.Kube.Context != "" {
		merged.Kube.Context = overlay.Kube.Context
	}
	if len(overlay.Kube.Namespaces) > 0 {
		merged.Kube.Namespaces = append([]string(nil), overlay.Kube.Namespaces...)
	}
	if overlay.Kube.PollInterval > 0 {
		merged.Kube.PollInterval = overlay.Kube.PollInterval
	}
	if overlay.Kube.LogTailLines > 0 {
		merged.Kube.LogTailLines = overlay.Kube.LogTailLines
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	if overlay.Logging.File != "" {
		merged.Logging.File = overlay.Logging.File
	}

	merged.Theme = mergeTheme(base.Theme, overlay.Theme)

	if len(overlay.Layouts) > 0 {
		layouts := make(map[string]layout.Node, len(base.Layouts)+len(overlay.Layouts))
		for name, n := range base.Layouts {
			layouts[name] = n
		}
		for name, n := range overlay.Layouts {
			layouts[name] = n // Replace if name exists, otherwise adds
		}
		merged.Layouts = layouts
	}

	return merged
}

func mergeTheme(base, overlay ThemeConfig) ThemeConfig {
	pick := func(b, o string) string {
		if o != "" {
			return o
		}
		return b
	}
	return ThemeConfig{
		Border:       pick(base.Border, overlay.Border),
		BorderActive: pick(base.BorderActive, overlay.BorderActive),
		BorderHover:  pick(base.BorderHover, overlay.BorderHover),
		Header:       pick(base.Header, overlay.Header),
		Selected:     pick(base.Selected, overlay.Selected),
		TabActive:    pick(base.TabActive, overlay.TabActive),
		Status:       pick(base.Status, overlay.Status),
		Error:        pick(base.Error, overlay.Error),
	}
}

// Validate checks values that cannot be verified while parsing.
func (c Config) Validate() error {
	if _, err := c.SplitDirection(); err != nil {
		return fmt.Errorf("invalid ui.split: %w", err)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %w", err)
	}
	return nil
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
