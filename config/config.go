package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppName      string `env:"USERS_APP_NAME" envDefault:"user-service"`
	AppEnv       string `env:"USERS_APP_ENV" envDefault:"local"`
	HTTPHost     string `env:"USERS_HTTP_HOST" envDefault:"0.0.0.0"`
	HTTPPort     string `env:"USERS_HTTP_PORT" envDefault:"3001"`
	HTTPBasePath string `env:"USERS_HTTP_BASE_PATH" envDefault:"/api"`

	CORSOrigins []string `env:"USERS_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	DBHost     string `env:"USERS_DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"USERS_DB_PORT" envDefault:"5432"`
	DBUser     string `env:"USERS_DB_USER" envDefault:"app"`
	DBPassword string `env:"USERS_DB_PASSWORD" envDefault:"app_password"`
	DBName     string `env:"USERS_DB_NAME" envDefault:"usersdb"`
	DBSSLMode  string `env:"USERS_DB_SSLMODE" envDefault:"disable"`

	JWTSecret  string        `env:"USERS_JWT_SECRET"`
	JWTIssuer  string        `env:"USERS_JWT_ISSUER" envDefault:"user-service"`
	AccessTTL  time.Duration `env:"USERS_JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"USERS_JWT_REFRESH_TTL" envDefault:"168h"`

	NATSURL                string `env:"NATS_URL"`
	NATSVerifySubject      string `env:"NATS_SUBJECT_VERIFY_JWT" envDefault:"auth.verifyJWT"`
	NATSUserCreatedSubject string `env:"NATS_SUBJECT_USER_CREATED" envDefault:"users.created"`
	NATSUserDeletedSubject string `env:"NATS_SUBJECT_USER_DELETED" envDefault:"users.deleted"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// SecureCookies reports whether auth cookies should carry the Secure flag.
// Local development runs over plain http.
func (c *Config) SecureCookies() bool {
	return c.AppEnv != "local" && c.AppEnv != "test"
}
