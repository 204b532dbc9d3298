// Package config loads the optional .truth.yaml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the settings file looked up from the working directory upwards.
	FileName = ".truth.yaml"
	// EnvVar names an explicit settings file, overriding the lookup.
	EnvVar = "TRUTH_CONFIG"
)

// LifecycleMode decides what the unresolved-subject checkpoint does.
type LifecycleMode string

const (
	LifecycleFail LifecycleMode = "fail"
	LifecycleWarn LifecycleMode = "warn"
	LifecycleOff  LifecycleMode = "off"
)

// ColorMode controls colored report output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config represents the settings file.
type Config struct {
	Lifecycle LifecycleMode `yaml:"lifecycle"`
	LogLevel  string        `yaml:"log_level"`
	Color     ColorMode     `yaml:"color"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		Lifecycle: LifecycleFail,
		LogLevel:  "warn",
		Color:     ColorAuto,
	}
}

// Load reads the settings file at path. Unset keys keep their defaults.
func Load(path string) (Config, error) {
	config := Default()

	f, err := os.Open(path)
	if err != nil {
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return config, errors.Wrapf(err, "parse %s", path)
	}

	return config, config.Validate()
}

// Discover finds and loads the settings file for the current process: the
// file named by $TRUTH_CONFIG, else the nearest .truth.yaml from dir upwards.
// A missing file yields the defaults and found is false.
func Discover(dir string) (c Config, found bool, err error) {
	if path := os.Getenv(EnvVar); path != "" {
		c, err = Load(path)
		return c, true, err
	}

	path, ok := find(dir)
	if !ok {
		return Default(), false, nil
	}
	c, err = Load(path)
	return c, true, err
}

func find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Validate reports unknown enumeration values.
func (c Config) Validate() error {
	switch c.Lifecycle {
	case LifecycleFail, LifecycleWarn, LifecycleOff:
	default:
		return fmt.Errorf("invalid lifecycle mode %q: want fail, warn or off", c.Lifecycle)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: want auto, always or never", c.Color)
	}
	return nil
}

// Write stores c as YAML at path, replacing any existing file.
func Write(path string, c Config) error {
	if path == "" {
		path = FileName
	}

	d, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	return err
}
