// Package config loads and persists the cursormetrics settings file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// AuthConfig holds dashboard login settings. Auth is disabled when Username
// or PasswordHash is empty.
type AuthConfig struct {
	Username          string `json:"username"`
	PasswordHash      string `json:"password_hash"` // bcrypt hash
	SessionTTLMinutes int    `json:"session_ttl_minutes"`
}

type Config struct {
	SnapshotDir       string     `json:"snapshot_dir"`
	SnapshotBasename  string     `json:"snapshot_basename"`
	LogsDir           string     `json:"logs_dir"`
	DebugCountsPath   string     `json:"debug_counts_path"`
	Listen            string     `json:"listen"`
	DefaultWindowDays int        `json:"default_window_days"`
	Watch             bool       `json:"watch"`
	Auth              AuthConfig `json:"auth"`
}

func DefaultConfig() Config {
	return Config{
		SnapshotBasename:  "state.vscdb",
		LogsDir:           "cursorlogs",
		DebugCountsPath:   "debug_sensitive_counts.json",
		Listen:            ":3000",
		DefaultWindowDays: 5,
		Auth: AuthConfig{
			SessionTTLMinutes: 60,
		},
	}
}

func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), "cursormetrics")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "cursormetrics")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "settings.json")
}

func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnv(cfg), nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.SnapshotBasename == "" {
		cfg.SnapshotBasename = "state.vscdb"
	}
	if cfg.LogsDir == "" {
		cfg.LogsDir = "cursorlogs"
	}
	if cfg.DebugCountsPath == "" {
		cfg.DebugCountsPath = "debug_sensitive_counts.json"
	}
	if cfg.Listen == "" {
		cfg.Listen = ":3000"
	}
	if cfg.DefaultWindowDays <= 0 {
		cfg.DefaultWindowDays = 5
	}
	if cfg.Auth.SessionTTLMinutes <= 0 {
		cfg.Auth.SessionTTLMinutes = 60
	}

	return applyEnv(cfg), nil
}

// applyEnv layers environment overrides on top of the file config.
// SQLITE_FOLDER_PATH is honored for compatibility with older deployments.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("SQLITE_FOLDER_PATH"); v != "" {
		cfg.SnapshotDir = v
	}
	if v := os.Getenv("CURSORMETRICS_SNAPSHOT_DIR"); v != "" {
		cfg.SnapshotDir = v
	}
	if v := os.Getenv("CURSORMETRICS_LOGS_DIR"); v != "" {
		cfg.LogsDir = v
	}
	if v := os.Getenv("CURSORMETRICS_LISTEN"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("LOGIN_USERNAME"); v != "" {
		cfg.Auth.Username = v
	}
	if v := os.Getenv("LOGIN_PASSWORD_HASH"); v != "" {
		cfg.Auth.PasswordHash = v
	}
	return cfg
}

// saveMu guards read-modify-write cycles on the config file.
var saveMu sync.Mutex

func Save(cfg Config) error {
	return SaveTo(ConfigPath(), cfg)
}

func SaveTo(path string, cfg Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SaveAuth persists login credentials into the config file (read-modify-write).
func SaveAuth(auth AuthConfig) error {
	return SaveAuthTo(ConfigPath(), auth)
}

func SaveAuthTo(path string, auth AuthConfig) error {
	saveMu.Lock()
	defer saveMu.Unlock()

	cfg, err := LoadFrom(path)
	if err != nil {
		cfg = DefaultConfig()
	}
	cfg.Auth = auth
	return SaveTo(path, cfg)
}
