package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   secrets)
// - default: Values common across all environments (fee policy, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Venue   VenueConfig
	Fees    FeeConfig
	Gateway GatewayConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

// VenueConfig describes the single bookable venue.
type VenueConfig struct {
	Name              string `envconfig:"VENUE_NAME" default:"Community Hall"`
	Capacity          int    `envconfig:"VENUE_CAPACITY" default:"200"`
	AdvanceNoticeDays int    `envconfig:"VENUE_ADVANCE_NOTICE_DAYS" default:"3"`
}

// FeeConfig fixes the fee-type policy: amounts, tiers and due-date offsets.
// The deposit is refundable and due on approval; facility and cleaning fees
// are non-refundable and due a fixed number of days before the event.
type FeeConfig struct {
	DepositCents          int64 `envconfig:"FEE_DEPOSIT_CENTS" default:"50000"`
	FacilityBaseCents     int64 `envconfig:"FEE_FACILITY_BASE_CENTS" default:"150000"`
	FacilityPremiumCents  int64 `envconfig:"FEE_FACILITY_PREMIUM_CENTS" default:"250000"`
	CleaningCents         int64 `envconfig:"FEE_CLEANING_CENTS" default:"30000"`
	FacilityDueDaysBefore int   `envconfig:"FEE_FACILITY_DUE_DAYS_BEFORE" default:"14"`
	CleaningDueDaysBefore int   `envconfig:"FEE_CLEANING_DUE_DAYS_BEFORE" default:"7"`
}

type GatewayConfig struct {
	BaseURL string        `envconfig:"GATEWAY_BASE_URL" default:"http://localhost:9090"`
	APIKey  string        `envconfig:"GATEWAY_API_KEY" default:""`
	Timeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "24h",
		},
		Venue: VenueConfig{
			Name:              "Community Hall",
			Capacity:          200,
			AdvanceNoticeDays: 3,
		},
		Fees: FeeConfig{
			DepositCents:          50000,
			FacilityBaseCents:     150000,
			FacilityPremiumCents:  250000,
			CleaningCents:         30000,
			FacilityDueDaysBefore: 14,
			CleaningDueDaysBefore: 7,
		},
	}
}
