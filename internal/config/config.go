package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	PublicBaseURL      string   `mapstructure:"public_base_url"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	JoinCodeSalt       string   `mapstructure:"join_code_salt"`
	AdminEmails        string   `mapstructure:"admin_emails"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	conf.applyEnvOverrides()

	return &conf, nil
}

// applyEnvOverrides lets deployment environments win over config.yml
// without having to ship a new file.
func (c *AppConfig) applyEnvOverrides() {
	overrideString(&c.API.Environment, "API_ENVIRONMENT")
	overrideString(&c.API.Port, "PORT")
	overrideString(&c.API.PublicBaseURL, "PUBLIC_BASE_URL")
	overrideString(&c.API.JWTSigningKey, "JWT_SIGNING_KEY")
	overrideString(&c.API.JoinCodeSalt, "JOIN_CODE_SALT")
	overrideString(&c.API.AdminEmails, "ADMIN_EMAILS")
	overrideString(&c.Redis.Addr, "REDIS_ADDR")
	overrideString(&c.Redis.Password, "REDIS_PASSWORD")
}

func overrideString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// AdminAllowlist returns the parsed admin email allowlist.
func (c *APIConfig) AdminAllowlist() Allowlist {
	return ParseAllowlist(c.AdminEmails)
}

// Allowlist is a set of admin emails, matched case-insensitively.
type Allowlist []string

func ParseAllowlist(raw string) Allowlist {
	var list Allowlist
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry != "" {
			list = append(list, entry)
		}
	}

	return list
}

func (a Allowlist) Contains(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, entry := range a {
		if entry == email {
			return true
		}
	}

	return false
}
