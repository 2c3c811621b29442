package config

import (
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
	"net/http"
	"os"
)

type AppConfig struct {
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
	ServerAddr     string         `yaml:"serverAddr"`
	S3Config       S3Config       `yaml:"s3Config"`
	JWT            JWTConfig      `yaml:"jwt"`
	Webhook        WebhookConfig  `yaml:"webhook"`
	Holiday        HolidayConfig  `yaml:"holiday"`
	LDAP           LDAPConfig     `yaml:"ldap"`
	Admin          AdminConfig    `yaml:"admin"`
	TTL            TTL            `yaml:"TTL"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides : секреты и DSN можно переопределить через окружение (.env)
func applyEnvOverrides(cfg *AppConfig) {
	if dsn := os.Getenv("PORTAL_DB_DSN"); dsn != "" {
		cfg.DatabaseConfig.DSN = dsn
	}
	if addr := os.Getenv("PORTAL_REDIS_ADDR"); addr != "" {
		cfg.RedisConfig.Addr = addr
	}
	if secret := os.Getenv("PORTAL_JWT_SECRET"); secret != "" {
		cfg.JWT.SecretKey = secret
	}
	if token := os.Getenv("PORTAL_ADMIN_TOKEN"); token != "" {
		cfg.Admin.AdminToken = token
	}
}

func SetupServer(serverAddress string) (*http.Server, *chi.Mux) {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:    serverAddress,
		Handler: router,
	}

	return server, router
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
