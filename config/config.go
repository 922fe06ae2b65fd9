package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr            string        // TCP address the query server listens on
	AdminAddr       string        // HTTP address for health/stats/ws, empty disables it
	DBPath          string        // sqlite path for the connection log, empty disables it
	MaxLineBytes    int           // pending-line cap before a connection is faulted
	ReadBufferBytes int           // per-connection read chunk size
	IdleTimeout     time.Duration // per-line read deadline, 0 means none
}

// Load reads configuration from defaults, an optional primetime.yaml in the
// working directory, and PRIMETIME_* environment variables, in increasing
// order of precedence.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("addr", ":9002")
	v.SetDefault("admin_addr", ":9003")
	v.SetDefault("db", "")
	v.SetDefault("max_line_bytes", 64*1024)
	v.SetDefault("read_buffer_bytes", 4*1024)
	v.SetDefault("idle_timeout", time.Duration(0))

	v.SetConfigName("primetime")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("primetime")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Addr:            v.GetString("addr"),
		AdminAddr:       v.GetString("admin_addr"),
		DBPath:          v.GetString("db"),
		MaxLineBytes:    v.GetInt("max_line_bytes"),
		ReadBufferBytes: v.GetInt("read_buffer_bytes"),
		IdleTimeout:     v.GetDuration("idle_timeout"),
	}
	if cfg.MaxLineBytes <= 0 {
		return nil, errors.New("max_line_bytes must be positive")
	}
	if cfg.ReadBufferBytes <= 0 {
		return nil, errors.New("read_buffer_bytes must be positive")
	}
	return cfg, nil
}
