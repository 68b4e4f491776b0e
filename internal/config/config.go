// Package config loads the service configuration from a YAML file with
// secrets overlaid from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type GitHubConfig struct {
	GraphQLEndpoint string        `yaml:"graphql_endpoint"`
	RESTBaseURL     string        `yaml:"rest_base_url"`
	MaxRetries      *int          `yaml:"max_retries"`
	RetryBackoff    time.Duration `yaml:"retry_backoff"`
	// Token is used for webhook lookups that act on behalf of no user.
	Token         string `yaml:"token"`
	WebhookSecret string `yaml:"webhook_secret"`
}

type PushConfig struct {
	Subject         string        `yaml:"vapid_subject"`
	VAPIDPublicKey  string        `yaml:"vapid_public_key"`
	VAPIDPrivateKey string        `yaml:"vapid_private_key"`
	TTL             time.Duration `yaml:"ttl"`
	Icon            string        `yaml:"icon"`
}

func (p PushConfig) Enabled() bool {
	return p.VAPIDPublicKey != "" && p.VAPIDPrivateKey != ""
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	HTTP   *HTTPConfig    `yaml:"http"`
	DB     DatabaseConfig `yaml:"database"`
	GitHub GitHubConfig   `yaml:"github"`
	Push   PushConfig     `yaml:"push"`
	Log    LogConfig      `yaml:"log"`
}

func (c Config) HTTPAddr() string {
	if c.HTTP == nil || c.HTTP.Addr == "" {
		return ":8080"
	}
	return c.HTTP.Addr
}

func (c Config) ShutdownTimeout() time.Duration {
	if c.HTTP == nil || c.HTTP.ShutdownTimeout == 0 {
		return 10 * time.Second
	}
	return c.HTTP.ShutdownTimeout
}

// RequestTimeout bounds a single API request including its GitHub calls.
func (c Config) RequestTimeout() time.Duration {
	if c.HTTP == nil || c.HTTP.RequestTimeout == 0 {
		return 30 * time.Second
	}
	return c.HTTP.RequestTimeout
}

func (c Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (db DatabaseConfig) ConnString() string {
	host := db.Host
	if host == "" {
		host = "localhost"
	}

	port := db.Port
	if port == 0 {
		port = 5432
	}

	sslMode := db.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		db.User,
		db.Password,
		host,
		port,
		db.Name,
		sslMode,
	)
}

// secretEnv maps environment variables onto the fields they override.
func (c *Config) secretEnv() map[string]*string {
	return map[string]*string{
		"DATABASE_PASSWORD":     &c.DB.Password,
		"GITHUB_TOKEN":          &c.GitHub.Token,
		"GITHUB_WEBHOOK_SECRET": &c.GitHub.WebhookSecret,
		"VAPID_PRIVATE_KEY":     &c.Push.VAPIDPrivateKey,
	}
}

// Load reads the YAML file at path. Values from envFile, when it exists,
// are exported to the environment unless already set there, and the secret
// variables then override the file.
func Load(path, envFile string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	// #nosec G304 -- config file path is provided via command line flag
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config yaml: %w", err)
	}

	if envFile != "" {
		if envMap, err := godotenv.Read(envFile); err == nil {
			for k, v := range envMap {
				if _, exists := os.LookupEnv(k); !exists {
					_ = os.Setenv(k, v)
				}
			}
		}
	}
	for name, field := range cfg.secretEnv() {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DB.User == "" || c.DB.Password == "" {
		errs = append(errs, errors.New("database user and password must be set"))
	}
	if c.DB.Name == "" {
		errs = append(errs, errors.New("database name must be set"))
	}
	if c.GitHub.MaxRetries != nil && *c.GitHub.MaxRetries < 0 {
		errs = append(errs, errors.New("github max_retries must not be negative"))
	}
	if (c.Push.VAPIDPublicKey == "") != (c.Push.VAPIDPrivateKey == "") {
		errs = append(errs, errors.New("push vapid keys must be set together"))
	}
	if c.Push.Enabled() && c.Push.Subject == "" {
		errs = append(errs, errors.New("push vapid_subject must be set"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
