package config

import (
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/matzehuels/reqcheck/pkg/errors"
)

const (
	// DefaultConfigPath is the conventional config file name at the
	// project root.
	DefaultConfigPath = ".reqcheck.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "REQCHECK"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
//
// With an empty path, a missing DefaultConfigPath is not an error: the tool
// runs on its built-in defaults. An explicitly named file must exist.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config file not found: %s", path)
		}
		cfg := Default()
		l.applyEnvOverrides(cfg)
		return cfg, nil
	}

	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to read config file %s", path)
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config file %s", path)
	}

	l.applyEnvOverrides(cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid configuration in %s", path)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "_ROOT"); v != "" {
		cfg.Root = v
	}
	if v := os.Getenv(EnvPrefix + "_SETUP_SOURCE"); v != "" {
		cfg.Setup.Source = Source(v)
	}
	if v := os.Getenv(EnvPrefix + "_SETUP_INTERPRETER"); v != "" {
		cfg.Setup.Interpreter = v
	}
	if v := os.Getenv(EnvPrefix + "_MANIFESTS_USER"); v != "" {
		cfg.Manifests.User = v
	}
	if v := os.Getenv(EnvPrefix + "_MANIFESTS_DEV"); v != "" {
		cfg.Manifests.Dev = v
	}
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		stringToSourceHookFunc(),
	)
}

// stringToSourceHookFunc decodes plain strings into the Source type.
func stringToSourceHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		if to == reflect.TypeOf(Source("")) {
			return Source(data.(string)), nil
		}
		return data, nil
	}
}

// Load is a convenience function that creates a new Loader and loads
// configuration. An empty path means DefaultConfigPath-or-defaults.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}
