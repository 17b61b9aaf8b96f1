// Package config loads the lfd CLI settings.
//
// Values come, in increasing priority, from built-in defaults, an optional
// config file, LFD_* environment variables and bound command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/statlearn/lfd/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "LFD"

// Keys of the settings. Flags use the same names with '-' for '_'.
const (
	KeyRuns      = "runs"
	KeySeed      = "seed"
	KeyWorkers   = "workers"
	KeyRepeat    = "repeat"
	KeyClear     = "clear"
	KeyColor     = "color"
	KeyLogLevel  = "log_level"
	KeyLogFormat = "log_format"
)

// Config holds the settings of one CLI invocation.
type Config struct {
	Runs      int    `mapstructure:"runs" validate:"gte=1"`
	Seed      uint64 `mapstructure:"seed"`
	Workers   int    `mapstructure:"workers" validate:"gte=0"`
	Repeat    int    `mapstructure:"repeat" validate:"gte=1"`
	Clear     bool   `mapstructure:"clear"`
	Color     bool   `mapstructure:"color"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"oneof=json text console"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Runs:      1000,
		Seed:      1,
		Workers:   0,
		Repeat:    1,
		Color:     true,
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyRuns, d.Runs)
	v.SetDefault(KeySeed, d.Seed)
	v.SetDefault(KeyWorkers, d.Workers)
	v.SetDefault(KeyRepeat, d.Repeat)
	v.SetDefault(KeyClear, d.Clear)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds every flag of fs whose name matches a setting key.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isKey(key) || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = errors.Wrapf(bindErr, "bind flag %q", f.Name)
		}
	})
	return err
}

// Load reads settings from v, from the file at path when path is non-empty,
// and validates them.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.NewConfigurationError("config", err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks c against its field constraints. The first violation is
// reported as a ConfigurationError keyed by the setting name.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.NewConfigurationError(keyOf(fe.StructField()), describe(fe))
	}
	return errors.NewConfigurationError("config", err.Error())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), fe.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}

var fieldKeys = map[string]string{
	"Runs":      KeyRuns,
	"Seed":      KeySeed,
	"Workers":   KeyWorkers,
	"Repeat":    KeyRepeat,
	"Clear":     KeyClear,
	"Color":     KeyColor,
	"LogLevel":  KeyLogLevel,
	"LogFormat": KeyLogFormat,
}

func keyOf(field string) string {
	if k, ok := fieldKeys[field]; ok {
		return k
	}
	return field
}

func isKey(key string) bool {
	return lo.Contains(lo.Values(fieldKeys), key)
}
