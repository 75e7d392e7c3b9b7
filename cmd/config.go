package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"laundry"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// RedisURL enables the per-order transition lock when set.
	RedisURL          string        `env:"REDIS_URL"`
	TransitionLockTTL time.Duration `env:"TRANSITION_LOCK_TTL" envDefault:"10s"`

	// KafkaBrokers enables status change events when set.
	KafkaBrokers           string `env:"KAFKA_BROKERS"`
	KafkaOrderChangedTopic string `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order.status_changed"`

	RoutingBaseURL string        `env:"ROUTING_BASE_URL"`
	RoutingProfile string        `env:"ROUTING_PROFILE" envDefault:"driving"`
	RoutingAPIKey  string        `env:"ROUTING_API_KEY"`
	RoutingTimeout time.Duration `env:"ROUTING_TIMEOUT" envDefault:"10s"`

	DefaultDeliveryFee        string  `env:"DEFAULT_DELIVERY_FEE" envDefault:"200"`
	DefaultDistanceKm         float64 `env:"DEFAULT_DISTANCE_KM" envDefault:"5"`
	DefaultSortingWindowHours int     `env:"DEFAULT_SORTING_WINDOW_HOURS" envDefault:"6"`
	ExpiringSoonHours         int     `env:"EXPIRING_SOON_HOURS" envDefault:"2"`
	BusinessTimezone          string  `env:"BUSINESS_TIMEZONE" envDefault:"UTC"`
	FeeRulesFile              string  `env:"FEE_RULES_FILE"`
	AllowRewash               bool    `env:"ALLOW_REWASH" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	BatchAssignmentCron  string `env:"BATCH_ASSIGNMENT_CRON" envDefault:"*/30 * * * * *"`
	BatchAssignmentLimit int    `env:"BATCH_ASSIGNMENT_LIMIT" envDefault:"50"`
	SortingReportCron    string `env:"SORTING_REPORT_CRON" envDefault:"0 */15 * * * *"`
}

// LoadConfig reads .env when present and then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing env config: %w", err)
	}
	return cfg, nil
}

// DSN is the PostgreSQL connection string of the configured database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location resolves BUSINESS_TIMEZONE.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}
