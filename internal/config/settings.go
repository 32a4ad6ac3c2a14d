package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/san-kum/reentry/internal/aero"
	"github.com/san-kum/reentry/internal/integrators"
	"github.com/san-kum/reentry/internal/trajectory"
)

const (
	SettingsName = "reentry"
	EnvPrefix    = "REENTRY"
)

type StorageSettings struct {
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Settings are the runtime settings shared by every command.
type Settings struct {
	Simulation trajectory.Settings `mapstructure:",squash"`
	Storage    StorageSettings     `mapstructure:"storage"`
	Log        LogSettings         `mapstructure:"log"`
}

func setDefaults() {
	viper.SetDefault("step_size", trajectory.DefaultStepSize)
	viper.SetDefault("max_steps", trajectory.DefaultMaxSteps)
	viper.SetDefault("integrator", integrators.DefaultName)

	viper.SetDefault("heating.gain_rate", aero.DefaultGainRate)
	viper.SetDefault("heating.runaway_threshold", aero.DefaultRunawayThreshold)
	viper.SetDefault("heating.cooling_interval", aero.DefaultCoolingInterval)
	viper.SetDefault("heating.cooling_constant", aero.DefaultCoolingConstant)
	viper.SetDefault("heating.cooling_factor", aero.DefaultCoolingFactor)

	viper.SetDefault("storage.backend", "fs")
	viper.SetDefault("storage.dir", ".reentry")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

// LoadSettings reads reentry.yaml from dir, if present, over the defaults.
// REENTRY_* environment variables override both, e.g. REENTRY_STEP_SIZE
// or REENTRY_HEATING_GAIN_RATE.
func LoadSettings(dir string) (*Settings, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(SettingsName)
	viper.SetConfigType("yaml")
	if dir != "" {
		viper.AddConfigPath(dir)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading settings file: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding settings: %w", err)
	}
	if err := s.Simulation.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// SettingsFile reports the settings file in use, or "" for defaults only.
func SettingsFile() string {
	return viper.ConfigFileUsed()
}
