package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable the service reads.
const EnvPrefix = "shoploft"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Catalog      CatalogConfig
	Cart         CartConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPLOFT_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPLOFT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPLOFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPLOFT_LOG_WARN_STACK" default:"false"`
	CORSOrigins  string `envconfig:"SHOPLOFT_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// AllowedOrigins splits the configured comma-separated origin list.
func (a AppConfig) AllowedOrigins() []string {
	if strings.TrimSpace(a.CORSOrigins) == "" {
		return nil
	}
	parts := strings.Split(a.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPLOFT_DB_DSN"`
	Driver string `envconfig:"SHOPLOFT_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"SHOPLOFT_DB_HOST"`
	Port     int    `envconfig:"SHOPLOFT_DB_PORT" default:"5432"`
	User     string `envconfig:"SHOPLOFT_DB_USER"`
	Password string `envconfig:"SHOPLOFT_DB_PASSWORD"`
	Name     string `envconfig:"SHOPLOFT_DB_NAME"`
	SSLMode  string `envconfig:"SHOPLOFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPLOFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPLOFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPLOFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPLOFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPLOFT_REDIS_URL"`
	Address      string        `envconfig:"SHOPLOFT_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPLOFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPLOFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPLOFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPLOFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPLOFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPLOFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPLOFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SHOPLOFT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SHOPLOFT_JWT_ISSUER" default:"shoploft"`
	ExpirationMinutes int    `envconfig:"SHOPLOFT_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"SHOPLOFT_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the server-side session lifetime.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPLOFT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPLOFT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPLOFT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPLOFT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPLOFT_ARGON_KEY_LEN" default:"32"`
}

type CatalogConfig struct {
	FeedBaseURL   string        `envconfig:"SHOPLOFT_CATALOG_FEED_URL" default:"https://fakestoreapi.com"`
	FetchTimeout  time.Duration `envconfig:"SHOPLOFT_CATALOG_FETCH_TIMEOUT" default:"10s"`
	FeaturedLimit int           `envconfig:"SHOPLOFT_CATALOG_FEATURED_LIMIT" default:"8"`
}

type CartConfig struct {
	SessionTTL    time.Duration `envconfig:"SHOPLOFT_CART_SESSION_TTL" default:"24h"`
	SweepInterval time.Duration `envconfig:"SHOPLOFT_CART_SWEEP_INTERVAL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SHOPLOFT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SHOPLOFT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if strings.EqualFold(db.Driver, "sqlite") {
		db.DSN = "file:shoploft.db?cache=shared"
		return nil
	}

	missing := []string{}
	required := map[string]string{
		"SHOPLOFT_DB_HOST": db.Host,
		"SHOPLOFT_DB_USER": db.User,
		"SHOPLOFT_DB_NAME": db.Name,
	}
	for _, key := range []string{"SHOPLOFT_DB_HOST", "SHOPLOFT_DB_USER", "SHOPLOFT_DB_NAME"} {
		if required[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SHOPLOFT_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
