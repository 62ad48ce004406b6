package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Settings are the resolved values one command runs with.
type Settings struct {
	DatabasePath string
	LogLevel     string
	Color        string
}

// FlagKeys maps command-line flag names to the config keys they override.
var FlagKeys = map[string]string{
	"db":        KeyDatabasePath,
	"log-level": KeyLogLevel,
	"color":     KeyOutputColor,
}

// Resolve layers flags over REIS_* environment variables over the values
// in s over the built-in defaults. flags may be nil.
func Resolve(s Store, flags *pflag.FlagSet) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for k, val := range DefaultValues() {
		v.SetDefault(k, val)
	}
	if s != nil {
		for k, val := range s.All() {
			v.SetDefault(k, val)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Settings{}, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	settings := Settings{
		DatabasePath: v.GetString(KeyDatabasePath),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Color:        strings.ToLower(strings.TrimSpace(v.GetString(KeyOutputColor))),
	}
	if err := Validate(map[string]string{
		KeyDatabasePath: settings.DatabasePath,
		KeyLogLevel:     settings.LogLevel,
		KeyOutputColor:  settings.Color,
	}); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
