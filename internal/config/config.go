// Package config loads builder configuration from an optional
// builderd config file and BUILDER_* environment overrides, with
// hot-reload support for the tunable settings.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the server, admin and CLI
// binaries.
type Config struct {
	APIPort   string `mapstructure:"api_port"`
	AdminPort string `mapstructure:"admin_port"`

	// DataDir is the base directory of the JSON store.
	DataDir string `mapstructure:"data_dir"`

	// AutosaveInterval is the debounce delay between the last edit and
	// the persisted snapshot.
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`

	// StorageQuotaBytes caps the JSON store; 0 disables the quota.
	// The default is in the range browsers allow for local storage.
	StorageQuotaBytes int64 `mapstructure:"storage_quota_bytes"`

	// PresenceBuffer is the per-subscriber message buffer of the
	// presence hub.
	PresenceBuffer int `mapstructure:"presence_buffer"`
}

// Load reads builderd.(yaml|json|toml) from the project root, applies
// BUILDER_* environment overrides, and falls back to defaults for
// anything unset. A missing config file is not an error.
func Load(projectRoot string) (*Config, *viper.Viper, error) {
	v := viper.New()
	v.SetConfigName("builderd")
	v.AddConfigPath(projectRoot)
	v.SetEnvPrefix("BUILDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_port", "8080")
	v.SetDefault("admin_port", "8081")
	v.SetDefault("data_dir", ".builder_data")
	v.SetDefault("autosave_interval", "1500ms")
	v.SetDefault("storage_quota_bytes", int64(5*1024*1024))
	v.SetDefault("presence_buffer", 16)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: defaults + env only.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v, nil
}

// Watch re-reads the config file on change and hands the fresh Config
// to onChange. Settings that can't be applied live (ports, data dir)
// require a restart; callers pick out the hot-tunable ones.
func Watch(v *viper.Viper, onChange func(*Config)) {
	v.OnConfigChange(func(fsnotify.Event) {
		cfg := &Config{}
		if err := v.Unmarshal(cfg); err != nil {
			return // keep running on the previous settings
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
