package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Port string `mapstructure:"port"`

	DB struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"db"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	Auth struct {
		SigningKey    string        `mapstructure:"signing_key"`
		SessionTTL    time.Duration `mapstructure:"session_ttl"`
		CSRFTTL       time.Duration `mapstructure:"csrf_ttl"`
		SweepInterval time.Duration `mapstructure:"sweep_interval"`
		CookieSecure  bool          `mapstructure:"cookie_secure"`
		BcryptCost    int           `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`

	Server struct {
		ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
		WriteTimeout      time.Duration `mapstructure:"write_timeout"`
		IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
		ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"server"`
}

const envPrefix = "NOTES"

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "notes.db")
	v.SetDefault("log.level", "info")

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.session_ttl", time.Hour)
	v.SetDefault("auth.csrf_ttl", time.Hour)
	v.SetDefault("auth.sweep_interval", 5*time.Minute)
	v.SetDefault("auth.cookie_secure", false)
	v.SetDefault("auth.bcrypt_cost", 0)

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// Load reads configuration from configs/config.yml (optional) and NOTES_* environment variables.
// Environment variables win over the file.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	if len(paths) == 0 {
		paths = []string{"configs", "."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be positive, got %s", c.Auth.SessionTTL)
	}
	if c.Auth.SweepInterval <= 0 {
		return fmt.Errorf("auth.sweep_interval must be positive, got %s", c.Auth.SweepInterval)
	}
	if c.DB.Path == "" {
		return errors.New("db.path must not be empty")
	}
	return nil
}
