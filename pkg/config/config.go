package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	GCP           GCPConfig
	GCS           GCSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GREENCYCLE_APP_ENV" required:"true"`
	Port         string `envconfig:"GREENCYCLE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GREENCYCLE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GREENCYCLE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GREENCYCLE_DB_DSN"`
	Driver string `envconfig:"GREENCYCLE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"GREENCYCLE_DB_HOST"`
	Port     int    `envconfig:"GREENCYCLE_DB_PORT" default:"5432"`
	User     string `envconfig:"GREENCYCLE_DB_USER"`
	Password string `envconfig:"GREENCYCLE_DB_PASSWORD"`
	Name     string `envconfig:"GREENCYCLE_DB_NAME"`
	SSLMode  string `envconfig:"GREENCYCLE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GREENCYCLE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GREENCYCLE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GREENCYCLE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GREENCYCLE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GREENCYCLE_REDIS_URL"`
	Address      string        `envconfig:"GREENCYCLE_REDIS_ADDR"`
	Password     string        `envconfig:"GREENCYCLE_REDIS_PASSWORD"`
	DB           int           `envconfig:"GREENCYCLE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GREENCYCLE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GREENCYCLE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GREENCYCLE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GREENCYCLE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GREENCYCLE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GREENCYCLE_JWT_SECRET" required:"true"`
	RefreshSecret          string `envconfig:"GREENCYCLE_JWT_REFRESH_SECRET" required:"true"`
	Issuer                 string `envconfig:"GREENCYCLE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GREENCYCLE_JWT_EXPIRATION_MINUTES" default:"15"`
	RefreshTokenTTLMinutes int    `envconfig:"GREENCYCLE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GREENCYCLE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GREENCYCLE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GREENCYCLE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GREENCYCLE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GREENCYCLE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	SigninWindow     time.Duration `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNIN_WINDOW" default:"1m"`
	SigninEmailLimit int           `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNIN_EMAIL_LIMIT" default:"5"`
	SigninIPLimit    int           `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNIN_IP_LIMIT" default:"20"`
	SignupWindow     time.Duration `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNUP_WINDOW" default:"5m"`
	SignupEmailLimit int           `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNUP_EMAIL_LIMIT" default:"3"`
	SignupIPLimit    int           `envconfig:"GREENCYCLE_AUTH_RATE_LIMIT_SIGNUP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GREENCYCLE_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"GREENCYCLE_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"GREENCYCLE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"GREENCYCLE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName   string `envconfig:"GREENCYCLE_GCS_BUCKET_NAME"`
	PublicHost   string `envconfig:"GREENCYCLE_GCS_PUBLIC_HOST" default:"https://storage.googleapis.com"`
	MaxUploadMB  int    `envconfig:"GREENCYCLE_MAX_UPLOAD_MB" default:"10"`
	ObjectPrefix string `envconfig:"GREENCYCLE_GCS_OBJECT_PREFIX" default:"uploads"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
