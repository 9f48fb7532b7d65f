package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// GlobalConfig holds the global configuration instance
var GlobalConfig *Config

// LoadConfig loads configuration from file and environment variables.
// Environment variables use the SOCIALMALL_ prefix with dots replaced
// by underscores (e.g. SOCIALMALL_DATABASE_HOST).
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("/etc/socialmall")
	}

	v.SetEnvPrefix("SOCIALMALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	GlobalConfig = config
	return config, nil
}

// WatchConfig re-reads the config file on change and invokes onChange
// with the freshly parsed configuration. Invalid updates are dropped.
func WatchConfig(configPath string, onChange func(*Config)) error {
	v := viper.New()
	if configPath == "" {
		return fmt.Errorf("config path is required for watching")
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		config := &Config{}
		if err := v.Unmarshal(config); err != nil {
			return
		}
		config.SetDefaults()
		if err := config.Validate(); err != nil {
			return
		}
		onChange(config)
	})
	v.WatchConfig()

	return nil
}
