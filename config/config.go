package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Image backends.
const (
	BackendInline = "inline"
	BackendS3     = "s3"
	BackendLocal  = "local"
)

// Image failure policies.
const (
	OnErrorFail = "fail"
	OnErrorDrop = "drop"
)

// Config is the process configuration, read from the environment.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"60s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"10485760"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"text"`

	DB    DB    `envPrefix:"DB_"`
	Image Image `envPrefix:"IMAGE_"`
	S3    S3    `envPrefix:"S3_"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./public/uploads"`
	UploadURLPath string `env:"UPLOAD_URL_PATH" envDefault:"/uploads/"`
}

type DB struct {
	Host            string        `env:"HOST" envDefault:"127.0.0.1"`
	Port            int           `env:"PORT" envDefault:"3306"`
	User            string        `env:"USER"`
	Password        string        `env:"PASSWORD"`
	Name            string        `env:"NAME"`
	TLS             string        `env:"TLS" envDefault:"skip-verify"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	DialTimeout     time.Duration `env:"DIAL_TIMEOUT" envDefault:"10s"`
	CreateTable     bool          `env:"CREATE_TABLE" envDefault:"false"`
}

type Image struct {
	Backend string `env:"BACKEND" envDefault:"inline"`
	// OnError is "fail" or "drop". Empty picks the backend's default.
	OnError string `env:"ON_ERROR"`
}

type S3 struct {
	Bucket        string `env:"BUCKET"`
	Region        string `env:"REGION"`
	Endpoint      string `env:"ENDPOINT"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
	KeyPrefix     string `env:"KEY_PREFIX" envDefault:"schools/"`
	// Static credentials, falling back to AWS_ACCESS_KEY_ID and
	// AWS_SECRET_ACCESS_KEY. When both are empty the default AWS credential
	// chain is used.
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// Load reads .env if present and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}
	return Parse()
}

// Parse parses the environment into a Config and validates it.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.S3.Region == "" {
		cfg.S3.Region = os.Getenv("AWS_REGION")
	}
	if cfg.S3.AccessKeyID == "" {
		cfg.S3.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
		cfg.S3.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Image.Backend {
	case BackendInline, BackendLocal:
	case BackendS3:
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for the %s image backend", BackendS3)
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3_REGION or AWS_REGION is required for the %s image backend", BackendS3)
		}
	default:
		return fmt.Errorf("unknown IMAGE_BACKEND %q", c.Image.Backend)
	}
	switch c.Image.OnError {
	case "", OnErrorFail, OnErrorDrop:
	default:
		return fmt.Errorf("unknown IMAGE_ON_ERROR %q", c.Image.OnError)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.DB.MaxOpenConns < 1 {
		return fmt.Errorf("DB_MAX_OPEN_CONNS must be positive")
	}
	return nil
}

// DropImageOnError reports whether backend failures degrade to "no image".
// The object store drops by default, the other backends fail.
func (c *Config) DropImageOnError() bool {
	if c.Image.OnError != "" {
		return c.Image.OnError == OnErrorDrop
	}
	return c.Image.Backend == BackendS3
}
