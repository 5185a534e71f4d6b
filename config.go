package minfraud

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	// DefaultHost is the global minFraud endpoint.
	DefaultHost = "https://minfraud.maxmind.com"

	// DefaultPath is the legacy minFraud scoring endpoint.
	DefaultPath = "/app/ccv2r"

	DefaultOpenTimeout  = 1 * time.Second
	DefaultIdleTimeout  = 5 * time.Second
	DefaultReadTimeout  = 5 * time.Second
	DefaultWriteTimeout = 5 * time.Second
	DefaultPoolSize     = 10
)

// ServiceHosts are the regional minFraud endpoints selectable by name.
var ServiceHosts = map[string]string{
	"us_east": "https://minfraud-us-east.maxmind.com",
	"us_west": "https://minfraud-us-west.maxmind.com",
	"eu_west": "https://minfraud-eu-west.maxmind.com",
}

// Config holds the connection settings of a Client.
type Config struct {
	// Host is a region name from ServiceHosts or a full base URL.
	// When empty, DefaultHost is used.
	Host string `validate:"omitempty,region|url"`

	// Path is the scoring endpoint path. When empty, DefaultPath is used.
	Path string `validate:"omitempty,startswith=/"`

	// OpenTimeout bounds connection establishment.
	OpenTimeout time.Duration `validate:"gte=0"`

	// IdleTimeout is how long an unused pooled connection is kept open.
	IdleTimeout time.Duration `validate:"gte=0"`

	// ReadTimeout bounds the wait for response headers.
	ReadTimeout time.Duration `validate:"gte=0"`

	// WriteTimeout bounds writing the request.
	WriteTimeout time.Duration `validate:"gte=0"`

	// PoolSize is the maximum number of connections per host.
	PoolSize int `validate:"gte=0"`

	// P12Path optionally points to a P12/PFX client certificate presented
	// during the TLS handshake.
	P12Path string

	// P12Password is the password that protects the P12 file.
	P12Password string

	// LicenseKey is not sent by the client itself; it is the default for
	// callers that build transactions from configuration.
	LicenseKey string

	// Logger receives debug records about requests. Nil disables logging.
	Logger *slog.Logger `validate:"-"`
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		Host:         DefaultHost,
		Path:         DefaultPath,
		OpenTimeout:  DefaultOpenTimeout,
		IdleTimeout:  DefaultIdleTimeout,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		PoolSize:     DefaultPoolSize,
	}
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		_, ok := ServiceHosts[fl.Field().String()]
		return ok
	})
	return v
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("minfraud: invalid config: %w", err)
	}
	return nil
}

// BaseURL resolves Host to the base URL requests are sent to.
func (c Config) BaseURL() string {
	if c.Host == "" {
		return DefaultHost
	}
	if u, ok := ServiceHosts[c.Host]; ok {
		return u
	}
	return strings.TrimRight(c.Host, "/")
}

// EndpointPath returns Path or DefaultPath.
func (c Config) EndpointPath() string {
	if c.Path == "" {
		return DefaultPath
	}
	return c.Path
}

// withDefaults fills zero values with the package defaults.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.OpenTimeout == 0 {
		c.OpenTimeout = d.OpenTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = d.IdleTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.PoolSize == 0 {
		c.PoolSize = d.PoolSize
	}
	return c
}

// LoadConfigFromEnv creates a Config from environment variables:
//
//	MINFRAUD_HOST            – region name (us_east, us_west, eu_west) or base URL
//	MINFRAUD_PATH            – endpoint path, default /app/ccv2r
//	MINFRAUD_LICENSE_KEY     – license key for transactions built from config
//	MINFRAUD_OPEN_TIMEOUT    – duration, e.g. "1s"
//	MINFRAUD_IDLE_TIMEOUT    – duration
//	MINFRAUD_READ_TIMEOUT    – duration
//	MINFRAUD_WRITE_TIMEOUT   – duration
//	MINFRAUD_POOL_SIZE       – maximum connections per host
//	MINFRAUD_P12_PATH        – optional client certificate
//	MINFRAUD_P12_PASSWORD    – client certificate password
//
// Malformed durations and sizes are ignored in favour of the defaults.
func LoadConfigFromEnv() Config {
	return configFromEnv()
}

// LoadConfigFromDotEnv loads environment variables from a .env file and then
// reads the Config from them. If the file does not exist it silently falls
// back to the current process environment.
func LoadConfigFromDotEnv(filenames ...string) Config {
	// godotenv.Load does NOT override existing env vars.
	_ = godotenv.Load(filenames...)
	return configFromEnv()
}

func configFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("MINFRAUD_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("MINFRAUD_PATH"); v != "" {
		cfg.Path = v
	}
	cfg.LicenseKey = os.Getenv("MINFRAUD_LICENSE_KEY")
	cfg.P12Path = os.Getenv("MINFRAUD_P12_PATH")
	cfg.P12Password = os.Getenv("MINFRAUD_P12_PASSWORD")

	envDuration("MINFRAUD_OPEN_TIMEOUT", &cfg.OpenTimeout)
	envDuration("MINFRAUD_IDLE_TIMEOUT", &cfg.IdleTimeout)
	envDuration("MINFRAUD_READ_TIMEOUT", &cfg.ReadTimeout)
	envDuration("MINFRAUD_WRITE_TIMEOUT", &cfg.WriteTimeout)
	if v := os.Getenv("MINFRAUD_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PoolSize = n
		}
	}
	return cfg
}

func envDuration(name string, dst *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil && d >= 0 {
		*dst = d
	}
}
