package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Default NEA endpoints on data.gov.sg.
const (
	DefaultAirTemperatureURL         = "https://api.data.gov.sg/v1/environment/air-temperature"
	DefaultFourDayForecastURL        = "https://api.data.gov.sg/v1/environment/4-day-weather-forecast"
	DefaultTwentyFourHourForecastURL = "https://api.data.gov.sg/v1/environment/24-hour-weather-forecast"
)

type AppConfig struct {
	Port     string `env:"PORT" validate:"required,numeric"`
	Location string `env:"WEATHER_LOCATION" validate:"required"`

	AirTemperatureURL         string `env:"NEA_AIR_TEMPERATURE_URL" validate:"required,url"`
	FourDayForecastURL        string `env:"NEA_FOUR_DAY_FORECAST_URL" validate:"required,url"`
	TwentyFourHourForecastURL string `env:"NEA_TWENTY_FOUR_HOUR_FORECAST_URL" validate:"required,url"`

	// FetchTimeout bounds the combined fetch of all three endpoints.
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" validate:"gt=0"`
	// HTTPTimeout bounds every single outbound request, including abandoned ones.
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" validate:"gt=0"`
	FetchMaxRetries int           `env:"FETCH_MAX_RETRIES" validate:"min=0,max=5"`

	// RefreshInterval controls how often the scheduler refreshes the report.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" validate:"gt=0"`

	// In-memory store retention.
	StoreMaxHistory int           `env:"STORE_MAX_HISTORY" validate:"min=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `env:"STORE_MAX_AGE" validate:"min=0"`     // 0 = unlimited

	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=json text"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report failures by environment variable name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults, then validates it.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	cfg := &AppConfig{
		Port:                      getenvDefault("PORT", "8080"),
		Location:                  getenvDefault("WEATHER_LOCATION", "Singapore"),
		AirTemperatureURL:         getenvDefault("NEA_AIR_TEMPERATURE_URL", DefaultAirTemperatureURL),
		FourDayForecastURL:        getenvDefault("NEA_FOUR_DAY_FORECAST_URL", DefaultFourDayForecastURL),
		TwentyFourHourForecastURL: getenvDefault("NEA_TWENTY_FOUR_HOUR_FORECAST_URL", DefaultTwentyFourHourForecastURL),
		LogLevel:                  strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		LogFormat:                 strings.ToLower(getenvDefault("LOG_FORMAT", "json")),
	}

	var err error
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	// Roughly 24h at 15-minute intervals.
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchMaxRetries, err = getenvInt("FETCH_MAX_RETRIES", 0); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, describe(err)
	}
	return cfg, nil
}

// describe flattens validator errors into one message naming each variable.
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
