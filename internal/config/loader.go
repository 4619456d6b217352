package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"perkgrid/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/perkgrid"
	projectConfigDir = ".perkgrid"
	configFileName   = "config.yaml"
	dotEnvFileName   = ".env"

	// EnvAPIRoot overrides api.root.
	EnvAPIRoot = "PERKGRID_API_ROOT"
	// EnvDemoPort overrides demo.port.
	EnvDemoPort = "PERKGRID_DEMO_PORT"
)

// LoadConfig loads the perkgrid configuration by layering default, user and
// project settings, then environment overrides (a .env file in the working
// directory is read first). The result is validated.
func LoadConfig() (PerkGridConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if config, err = overlayFile(config, userConfigPath); err != nil {
		return PerkGridConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
	}

	// 3. Project configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if config, err = overlayFile(config, projectConfigPath); err != nil {
		return PerkGridConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
	}

	// 4. Environment
	if err := loadDotEnv(); err != nil {
		return PerkGridConfig{}, fmt.Errorf("error loading %s: %w", dotEnvFileName, err)
	}
	config, err = applyEnv(config)
	if err != nil {
		return PerkGridConfig{}, err
	}

	if err := Validate(config); err != nil {
		return PerkGridConfig{}, err
	}
	return config, nil
}

// overlayFile merges the file at path into base. A missing file is not an
// error.
func overlayFile(base PerkGridConfig, path string) (PerkGridConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return base, nil
	}
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return base, err
	}
	logging.Debug("Config", "Loaded configuration from %s", path)
	return mergeConfigs(base, overlay), nil
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

var getDotEnvPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, dotEnvFileName), nil
}

// loadDotEnv exports the variables of ./.env that are not already set.
func loadDotEnv() error {
	path, err := getDotEnvPath()
	if err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func applyEnv(config PerkGridConfig) (PerkGridConfig, error) {
	if root := strings.TrimSpace(os.Getenv(EnvAPIRoot)); root != "" {
		config.API.Root = root
	}
	if port := strings.TrimSpace(os.Getenv(EnvDemoPort)); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return PerkGridConfig{}, fmt.Errorf("invalid %s %q: %w", EnvDemoPort, port, err)
		}
		config.Demo.Port = p
	}
	return config, nil
}

// loadConfigFromFile loads a PerkGridConfig from a YAML file.
func loadConfigFromFile(filePath string) (PerkGridConfig, error) {
	var config PerkGridConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return PerkGridConfig{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return PerkGridConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// the overlay leave the base untouched.
func mergeConfigs(base, overlay PerkGridConfig) PerkGridConfig {
	merged := base

	// API
	if overlay.API.Root != "" {
		merged.API.Root = overlay.API.Root
	}
	if overlay.API.Timeout != 0 {
		merged.API.Timeout = overlay.API.Timeout
	}
	if overlay.API.RetryMax != 0 {
		merged.API.RetryMax = overlay.API.RetryMax
	}

	// Widget
	mergeString(&merged.Widget.GridTitle, overlay.Widget.GridTitle)
	mergeString(&merged.Widget.PlaceholderText, overlay.Widget.PlaceholderText)
	mergeString(&merged.Widget.ErrorText, overlay.Widget.ErrorText)
	mergeString(&merged.Widget.LimitedText, overlay.Widget.LimitedText)
	mergeString(&merged.Widget.SoldOutText, overlay.Widget.SoldOutText)
	mergeString(&merged.Widget.Display, overlay.Widget.Display)
	if overlay.Widget.MinWidthPerk != 0 {
		merged.Widget.MinWidthPerk = overlay.Widget.MinWidthPerk
	}
	if overlay.Widget.MinWidthPackage != 0 {
		merged.Widget.MinWidthPackage = overlay.Widget.MinWidthPackage
	}
	if overlay.Widget.AllowKeyboardNavigation != nil {
		allow := *overlay.Widget.AllowKeyboardNavigation
		merged.Widget.AllowKeyboardNavigation = &allow
	}

	// Demo
	mergeString(&merged.Demo.Host, overlay.Demo.Host)
	if overlay.Demo.Port != 0 {
		merged.Demo.Port = overlay.Demo.Port
	}
	mergeString(&merged.Demo.FixturesDir, overlay.Demo.FixturesDir)
	if len(overlay.Demo.AllowedOrigins) > 0 {
		merged.Demo.AllowedOrigins = append([]string(nil), overlay.Demo.AllowedOrigins...)
	}

	// TUI
	if overlay.TUI.PxPerColumn != 0 {
		merged.TUI.PxPerColumn = overlay.TUI.PxPerColumn
	}
	if overlay.TUI.Debounce != 0 {
		merged.TUI.Debounce = overlay.TUI.Debounce
	}

	return merged
}

func mergeString(dst *string, overlay string) {
	if overlay != "" {
		*dst = overlay
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration against its field constraints.
func Validate(config PerkGridConfig) error {
	err := validate.Struct(config)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.ActualTag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
