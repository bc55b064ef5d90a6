// Package config loads and validates the configuration surface the core
// accepts: k, frame, time_step, m_pri, lp_hp_ratio and log_debug.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the complete configuration for a scheduling run.
type Config struct {
	K         int     `yaml:"k" mapstructure:"k"`
	Frame     float64 `yaml:"frame" mapstructure:"frame"`
	TimeStep  float64 `yaml:"time_step" mapstructure:"time_step"`
	MPri      int     `yaml:"m_pri" mapstructure:"m_pri"`
	LPHPRatio float64 `yaml:"lp_hp_ratio" mapstructure:"lp_hp_ratio"`
	LogDebug  bool    `yaml:"log_debug" mapstructure:"log_debug"`
}

// DefaultConfig returns the configuration used when neither a config file
// nor CLI flags override a field.
func DefaultConfig() *Config {
	return &Config{
		K:         1,
		Frame:     200,
		TimeStep:  0.01,
		MPri:      1,
		LPHPRatio: 0.8,
		LogDebug:  false,
	}
}

// Load reads configuration from configFile (if set) or the standard search
// path, then from ENSURE_-prefixed environment variables, mirroring the
// teacher's viper.SetConfigName/AddConfigPath/SetEnvPrefix sequence.
func Load(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.ensure-sched")
		viper.AddConfigPath("/etc/ensure-sched")
	}

	viper.SetEnvPrefix("ENSURE")
	viper.AutomaticEnv()
	for _, key := range []string{"k", "frame", "time_step", "m_pri", "lp_hp_ratio", "log_debug"} {
		_ = viper.BindEnv(key)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to filename in YAML via viper.
func (c *Config) Save(filename string) error {
	viper.Set("config", c)
	return viper.WriteConfigAs(filename)
}
