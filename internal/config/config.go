package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTP     HTTPConfig
	Database DatabaseConfig
	Presence PresenceConfig
}

type HTTPConfig struct {
	Address string `env:"HTTP_ADDRESS" env-default:":5000"`
}

type DatabaseConfig struct {
	URL  string `env:"DATABASE_URL" env-required:"true"`
	Name string `env:"DATABASE_NAME" env-default:"batepapo"`
}

type PresenceConfig struct {
	// LivenessWindow is how long a participant may go without pinging
	// before the sweeper evicts it.
	LivenessWindow time.Duration `env:"LIVENESS_WINDOW" env-default:"10s"`
	// SweepPeriod is the cadence of the eviction sweep.
	SweepPeriod time.Duration `env:"SWEEP_PERIOD" env-default:"15s"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}
