package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuntimeConfig carries the widget construction values and the host
// settings. Keys absent from a yaml file keep the base value; explicit zero
// values overwrite it.
type RuntimeConfig struct {
	DayCount             int    `yaml:"day_count"`
	GridOffset           int    `yaml:"grid_offset"`
	MinEnabledIndex      int    `yaml:"min_enabled_index"`
	MaxEnabledIndex      int    `yaml:"max_enabled_index"`
	SelectedDayIndex     int    `yaml:"selected_day_index"`
	Month                string `yaml:"month,omitempty"`
	WeekStart            string `yaml:"week_start"`
	ReflectSelection     bool   `yaml:"reflect_selection"`
	RestoreSnapshot      bool   `yaml:"restore_snapshot"`
	DesktopNotifications bool   `yaml:"desktop_notifications"`
	DatabasePath         string `yaml:"database_path,omitempty"`
	RecorderBuffer       int    `yaml:"recorder_buffer"`
	VimKeys              bool   `yaml:"vim_keys"`
	LogFile              string `yaml:"log_file,omitempty"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DayCount:             31,
		GridOffset:           1,
		MinEnabledIndex:      0,
		MaxEnabledIndex:      32,
		SelectedDayIndex:     -1,
		WeekStart:            "sunday",
		ReflectSelection:     true,
		RestoreSnapshot:      true,
		DesktopNotifications: false,
		RecorderBuffer:       64,
	}
}

// DefaultConfigPath is ~/.config/daygrid/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "daygrid", "config.yaml"), nil
}

// LoadConfigFile layers the yaml file at path over base. A missing file
// yields base unchanged.
func LoadConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

func SaveConfigFile(path string, cfg RuntimeConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvInt("DAYGRID_DAYS"); ok && v >= 0 {
		cfg.DayCount = v
	}
	if v, ok := getEnvInt("DAYGRID_OFFSET"); ok {
		cfg.GridOffset = v
	}
	if v, ok := getEnvInt("DAYGRID_MIN"); ok {
		cfg.MinEnabledIndex = v
	}
	if v, ok := getEnvInt("DAYGRID_MAX"); ok {
		cfg.MaxEnabledIndex = v
	}
	if v, ok := getEnvInt("DAYGRID_SELECTED"); ok {
		cfg.SelectedDayIndex = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYGRID_MONTH")); v != "" {
		cfg.Month = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYGRID_WEEK_START")); v != "" {
		cfg.WeekStart = v
	}
	if v, ok := getEnvBool("DAYGRID_REFLECT"); ok {
		cfg.ReflectSelection = v
	}
	if v, ok := getEnvBool("DAYGRID_RESTORE"); ok {
		cfg.RestoreSnapshot = v
	}
	if v, ok := getEnvBool("DAYGRID_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYGRID_DB")); v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := getEnvInt("DAYGRID_RECORDER_BUFFER"); ok && v > 0 {
		cfg.RecorderBuffer = v
	}
	if v, ok := getEnvBool("DAYGRID_VIM_KEYS"); ok {
		cfg.VimKeys = v
	}
	if v := strings.TrimSpace(os.Getenv("DAYGRID_LOG_FILE")); v != "" {
		cfg.LogFile = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
