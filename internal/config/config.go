package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the checkout configuration, loaded from the environment with an
// optional .env file.
type Config struct {
	BackendURL     string `validate:"required,url"`
	PublishableKey string `validate:"required"`
	PageURL        string `validate:"required,url"`

	Country string `validate:"required,iso3166_1_alpha2"`
	// Currency is the lowercase ISO 4217 code used on the wire.
	Currency string `validate:"required,len=3,lowercase"`
	// PaymentMethods are the alternative methods enabled for this store;
	// card is always available and need not be listed.
	PaymentMethods []string `validate:"required,min=1"`

	RequestTimeout time.Duration `validate:"gt=0"`
	PollInterval   time.Duration `validate:"gt=0"`
	PollTimeout    time.Duration `validate:"gt=0"`
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// Load reads the configuration from the environment. A missing .env file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:31314/api/web/stores"),
		PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", "pk_test_qJPsZ4dLNoMLpUPIvkBFzOeD"),
		PageURL:        getEnv("CHECKOUT_URL", "http://localhost:8000/checkout"),
		Country:        getEnv("COUNTRY", "US"),
		Currency:       strings.ToLower(getEnv("CURRENCY", "usd")),
	}

	for _, m := range strings.Split(getEnv("PAYMENT_METHODS", "card"), ",") {
		if m = strings.TrimSpace(m); m != "" {
			cfg.PaymentMethods = append(cfg.PaymentMethods, m)
		}
	}

	var err error
	if cfg.RequestTimeout, err = getDurationEnv("REQUEST_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = getDurationEnv("POLL_INTERVAL", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.PollTimeout, err = getDurationEnv("POLL_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
