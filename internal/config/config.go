// Package config loads storefront settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-via/storefront/via"
	"gopkg.in/yaml.v3"
)

// Config is the storefront.yaml file.
type Config struct {
	Addr      string         `yaml:"addr"`
	LogLevel  string         `yaml:"log_level"`
	DevMode   bool           `yaml:"dev_mode,omitempty"`
	Title     string         `yaml:"title"`
	Language  string         `yaml:"language"`
	LoginPath string         `yaml:"login_path"`
	Session   SessionConfig  `yaml:"session"`
	Database  DatabaseConfig `yaml:"database"`
	Identity  IdentityConfig `yaml:"identity"`
}

// SessionConfig selects how the session marker is validated.
type SessionConfig struct {
	// Validator is "jwt" or "flag".
	Validator  string `yaml:"validator"`
	CookieName string `yaml:"cookie_name"`
	JWTSecret  string `yaml:"jwt_secret,omitempty"`
	JWTIssuer  string `yaml:"jwt_issuer,omitempty"`
	// VisitTTL is how long, in seconds, an idle page visit is kept.
	VisitTTL int `yaml:"visit_ttl,omitempty"`
}

// DatabaseConfig points at the SQLite file. Empty Path keeps favorites in memory.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"`
	Seed bool   `yaml:"seed,omitempty"`
}

// IdentityConfig describes the external identity provider.
type IdentityConfig struct {
	LoginURL string `yaml:"login_url,omitempty"`
}

const (
	ValidatorJWT  = "jwt"
	ValidatorFlag = "flag"
)

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Addr:      ":3000",
		LogLevel:  "info",
		Title:     "アカウント",
		Language:  "ja",
		LoginPath: "/auth/login",
		Session: SessionConfig{
			Validator:  ValidatorFlag,
			CookieName: "auth",
			VisitTTL:   30 * 60,
		},
	}
}

// Load reads path over the defaults, expands ${VAR} references and applies
// STOREFRONT_* overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"STOREFRONT_ADDR":              &c.Addr,
		"STOREFRONT_LOG_LEVEL":         &c.LogLevel,
		"STOREFRONT_LOGIN_PATH":        &c.LoginPath,
		"STOREFRONT_SESSION_VALIDATOR": &c.Session.Validator,
		"STOREFRONT_SESSION_COOKIE":    &c.Session.CookieName,
		"STOREFRONT_JWT_SECRET":        &c.Session.JWTSecret,
		"STOREFRONT_JWT_ISSUER":        &c.Session.JWTIssuer,
		"STOREFRONT_DB_PATH":           &c.Database.Path,
		"STOREFRONT_LOGIN_URL":         &c.Identity.LoginURL,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	if v, ok := lookup("STOREFRONT_DEV_MODE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("STOREFRONT_DEV_MODE: %w", err)
		}
		c.DevMode = b
	}
	return nil
}

// Validate checks that the settings can start a server.
func (c *Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		errs = append(errs, fmt.Errorf("login_path %q must be an absolute path", c.LoginPath))
	}
	if c.Session.CookieName == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	switch c.Session.Validator {
	case ValidatorFlag:
	case ValidatorJWT:
		if c.Session.JWTSecret == "" {
			errs = append(errs, errors.New("session.jwt_secret is required for the jwt validator"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown session.validator %q", c.Session.Validator))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel maps error, warn, info and debug to via levels.
func ParseLogLevel(s string) (via.LogLevel, error) {
	switch strings.ToLower(s) {
	case "error":
		return via.LogLevelError, nil
	case "warn", "warning":
		return via.LogLevelWarn, nil
	case "info", "":
		return via.LogLevelInfo, nil
	case "debug":
		return via.LogLevelDebug, nil
	}
	return 0, fmt.Errorf("unknown log_level %q", s)
}

// ViaOptions maps the file onto runtime options.
func (c *Config) ViaOptions() via.Options {
	lvl, _ := ParseLogLevel(c.LogLevel)
	return via.Options{
		DevMode:          c.DevMode,
		ServerAddress:    c.Addr,
		LogLvl:           lvl,
		DocumentTitle:    c.Title,
		DocumentLanguage: c.Language,
		SessionTTL:       c.Session.VisitTTL,
	}
}
