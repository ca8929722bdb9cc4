package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Port     string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	Amadeus   AmadeusConfig
	Scheduler SchedulerConfig
	Retry     RetryConfig
}

type AmadeusConfig struct {
	BaseURL           string        `env:"AMADEUS_BASE_URL" env-default:"https://test.api.amadeus.com"`
	APIKey            string        `env:"AMADEUS_API_KEY"`
	APISecret         string        `env:"AMADEUS_API_SECRET"`
	Currency          string        `env:"AMADEUS_CURRENCY" env-default:"INR"`
	MaxResults        int           `env:"AMADEUS_MAX_RESULTS" env-default:"5"`
	Timeout           time.Duration `env:"AMADEUS_TIMEOUT" env-default:"15s"`
	RequestsPerSecond float64       `env:"AMADEUS_RPS" env-default:"10"`
	Burst             int           `env:"AMADEUS_BURST" env-default:"20"`
}

type SchedulerConfig struct {
	BatchSize       int           `env:"CALENDAR_BATCH_SIZE" env-default:"8"`
	InterBatchPause time.Duration `env:"CALENDAR_BATCH_PAUSE" env-default:"500ms"`
}

type RetryConfig struct {
	MaxAttempts int           `env:"CALENDAR_RETRY_ATTEMPTS" env-default:"3"`
	Delay       time.Duration `env:"CALENDAR_RETRY_DELAY" env-default:"2s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
