package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	minfraud "github.com/hugochinchilla79/minfraud_sdk"
)

// fileConfig is the YAML layout of the config file.
type fileConfig struct {
	Host        string `mapstructure:"host"`
	Path        string `mapstructure:"path"`
	LicenseKey  string `mapstructure:"license_key"`
	PoolSize    int    `mapstructure:"pool_size"`
	P12Path     string `mapstructure:"p12_path"`
	P12Password string `mapstructure:"p12_password"`
	Timeouts    struct {
		Open  time.Duration `mapstructure:"open"`
		Idle  time.Duration `mapstructure:"idle"`
		Read  time.Duration `mapstructure:"read"`
		Write time.Duration `mapstructure:"write"`
	} `mapstructure:"timeouts"`
}

// defaultConfigPath returns ~/.minfraud.yaml.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".minfraud.yaml")
}

// loadConfig merges, in increasing priority: package defaults, environment
// (and .env), the config file, and the --host flag.
func loadConfig(opts *rootOptions) (minfraud.Config, error) {
	cfg := minfraud.LoadConfigFromDotEnv()

	path := opts.configPath
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
	}
	if path != "" {
		err := loadFile(path, &cfg)
		if err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if opts.host != "" {
		cfg.Host = opts.host
	}
	return cfg, cfg.Validate()
}

func loadFile(path string, cfg *minfraud.Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return err
	}
	applyFileConfig(fc, cfg)
	return nil
}

func applyFileConfig(fc fileConfig, cfg *minfraud.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Host, fc.Host)
	set(&cfg.Path, fc.Path)
	set(&cfg.LicenseKey, fc.LicenseKey)
	set(&cfg.P12Path, fc.P12Path)
	set(&cfg.P12Password, fc.P12Password)

	setDuration := func(dst *time.Duration, v time.Duration) {
		if v > 0 {
			*dst = v
		}
	}
	setDuration(&cfg.OpenTimeout, fc.Timeouts.Open)
	setDuration(&cfg.IdleTimeout, fc.Timeouts.Idle)
	setDuration(&cfg.ReadTimeout, fc.Timeouts.Read)
	setDuration(&cfg.WriteTimeout, fc.Timeouts.Write)
	if fc.PoolSize > 0 {
		cfg.PoolSize = fc.PoolSize
	}
}
