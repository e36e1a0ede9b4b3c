// Package config loads server settings from the environment and an optional
// YAML file.
//
// Every key can be set as FOLLOWGRAPH_<KEY> in the environment or as <key> in
// followgraph.yaml, searched in the working directory and ./config. The
// environment wins over the file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "FOLLOWGRAPH"

// Keys.
const (
	KeyAddr         = "addr"
	KeyLogLevel     = "log_level"
	KeyReadTimeout  = "read_timeout"
	KeyWriteTimeout = "write_timeout"
	KeyMaxBodyBytes = "max_body_bytes"
	KeyDefaultTop   = "default_top"
	KeyCORSOrigins  = "cors_origins"

	KeyRedisAddr     = "redis_addr"
	KeyRedisPassword = "redis_password"
	KeyRedisDB       = "redis_db"
	KeyCacheTTL      = "cache_ttl"
)

// Config holds settings for the HTTP server.
type Config struct {
	Addr         string
	LogLevel     log.Level
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxBodyBytes int64
	DefaultTop   int
	CORSOrigins  []string

	// RedisAddr enables the shared render cache when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	// File is the config file that was read, empty if none.
	File string
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:         ":8080",
		LogLevel:     log.InfoLevel,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxBodyBytes: 1 << 20,
		DefaultTop:   10,
		CORSOrigins:  []string{"*"},
		CacheTTL:     time.Hour,
	}
}

// Load reads configuration. If file is non-empty it must exist; otherwise
// followgraph.yaml is looked up and skipped silently when absent.
func Load(file string) (Config, error) {
	v := viper.New()
	def := Defaults()
	v.SetDefault(KeyAddr, def.Addr)
	v.SetDefault(KeyLogLevel, def.LogLevel.String())
	v.SetDefault(KeyReadTimeout, def.ReadTimeout.String())
	v.SetDefault(KeyWriteTimeout, def.WriteTimeout.String())
	v.SetDefault(KeyMaxBodyBytes, def.MaxBodyBytes)
	v.SetDefault(KeyDefaultTop, def.DefaultTop)
	v.SetDefault(KeyCORSOrigins, strings.Join(def.CORSOrigins, ","))
	v.SetDefault(KeyRedisAddr, "")
	v.SetDefault(KeyRedisPassword, "")
	v.SetDefault(KeyRedisDB, 0)
	v.SetDefault(KeyCacheTTL, def.CacheTTL.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("followgraph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	level, err := log.ParseLevel(v.GetString(KeyLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	readTO, err := parseDuration(v, KeyReadTimeout)
	if err != nil {
		return Config{}, err
	}
	writeTO, err := parseDuration(v, KeyWriteTimeout)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := parseDuration(v, KeyCacheTTL)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         strings.TrimSpace(v.GetString(KeyAddr)),
		LogLevel:     level,
		ReadTimeout:  readTO,
		WriteTimeout: writeTO,
		MaxBodyBytes: v.GetInt64(KeyMaxBodyBytes),
		DefaultTop:   v.GetInt(KeyDefaultTop),
		CORSOrigins:  splitList(v.GetString(KeyCORSOrigins)),

		RedisAddr:     strings.TrimSpace(v.GetString(KeyRedisAddr)),
		RedisPassword: v.GetString(KeyRedisPassword),
		RedisDB:       v.GetInt(KeyRedisDB),
		CacheTTL:      cacheTTL,

		File: v.ConfigFileUsed(),
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%s must not be empty", KeyAddr)
	case c.ReadTimeout <= 0:
		return fmt.Errorf("%s must be positive", KeyReadTimeout)
	case c.WriteTimeout <= 0:
		return fmt.Errorf("%s must be positive", KeyWriteTimeout)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%s must be positive", KeyMaxBodyBytes)
	case c.DefaultTop < 0:
		return fmt.Errorf("%s must not be negative", KeyDefaultTop)
	case c.RedisDB < 0:
		return fmt.Errorf("%s must not be negative", KeyRedisDB)
	case c.CacheTTL < 0:
		return fmt.Errorf("%s must not be negative", KeyCacheTTL)
	}
	return nil
}

func parseDuration(v *viper.Viper, key string) (time.Duration, error) {
	s := v.GetString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q (e.g., 250ms, 2s, 1h)", key, s)
	}
	return d, nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
