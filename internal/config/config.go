package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures the full configuration surface for the simulator.
type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Simulator SimulatorConfig `mapstructure:"simulator"`
	Log       LogConfig       `mapstructure:"log"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type SimulatorConfig struct {
	// Synthetic endpoint announced for injected incoming calls.
	IncomingScheme string `mapstructure:"incoming_scheme"`
	IncomingNumber string `mapstructure:"incoming_number"`
	// Whether detaching stops a still-playing tone before dropping it.
	// False reproduces the historical leak of a playing resource.
	StopAudioOnDetach bool `mapstructure:"stop_audio_on_detach"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// Load reads configuration from an optional yaml file and CALLSIM_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.idle_timeout", time.Minute)
	v.SetDefault("simulator.incoming_scheme", "tel")
	v.SetDefault("simulator.incoming_number", "5551234")
	v.SetDefault("simulator.stop_audio_on_detach", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)

	v.AutomaticEnv()
	v.SetEnvPrefix("CALLSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal config: %w", err)
	}

	return cfg, nil
}
