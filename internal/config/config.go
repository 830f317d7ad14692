// Package config resolves run settings from flags, environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Configuration keys. Each is also a flag name and, upper-cased with the
// COVMERGE_ prefix, an environment variable.
const (
	KeyInput    = "input"
	KeyOutput   = "output"
	KeyMask     = "mask"
	KeyParallel = "parallel"
	KeyVerbose  = "verbose"
	KeyConfig   = "config"
)

// EnvPrefix prefixes every environment variable read by covmerge.
const EnvPrefix = "COVMERGE"

// DefaultMask selects every JSON report in the input folder.
const DefaultMask = "*.json"

// ErrMissingInput is returned when a required folder is not configured.
var ErrMissingInput = errors.New("missing required setting")

// Config holds the settings of one aggregation run.
type Config struct {
	Input    string
	Output   string
	Mask     string
	Parallel int
	Verbose  bool
}

// New returns a viper instance with covmerge defaults and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyMask, DefaultMask)
	v.SetDefault(KeyParallel, 0)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// BindFlags binds every known flag present in flags to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyInput, KeyOutput, KeyMask, KeyParallel, KeyVerbose, KeyConfig} {
		flag := flags.Lookup(key)
		if flag == nil {
			continue
		}

		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	return nil
}

// ReadFile loads the config file named by the config key, if any.
func ReadFile(v *viper.Viper) error {
	path := v.GetString(KeyConfig)
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	return nil
}

// Load validates the settings held by v. Folders are made absolute so that
// output path length limits apply to the full path.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Input:    v.GetString(KeyInput),
		Output:   v.GetString(KeyOutput),
		Mask:     v.GetString(KeyMask),
		Parallel: v.GetInt(KeyParallel),
		Verbose:  v.GetBool(KeyVerbose),
	}

	if cfg.Input == "" {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingInput, KeyInput)
	}

	if cfg.Output == "" {
		return Config{}, fmt.Errorf("%w: %s", ErrMissingInput, KeyOutput)
	}

	if cfg.Mask == "" {
		cfg.Mask = DefaultMask
	}

	var err error

	if cfg.Input, err = filepath.Abs(cfg.Input); err != nil {
		return Config{}, fmt.Errorf("resolve input folder: %w", err)
	}

	if cfg.Output, err = filepath.Abs(cfg.Output); err != nil {
		return Config{}, fmt.Errorf("resolve output folder: %w", err)
	}

	return cfg, nil
}
