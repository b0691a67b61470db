package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const envPrefix = "TERMINALSKY_"

// Config holds application-level configuration.
type Config struct {
	ServiceURL     string `env:"SERVICE" validate:"required,url,startswith=https://"`
	Identifier     string `env:"IDENTIFIER"`
	Password       string `env:"APP_PASSWORD"`
	DefaultDomain  string `env:"DEFAULT_DOMAIN" validate:"required,hostname"`
	TimelineLimit  int    `env:"TIMELINE_LIMIT" validate:"min=1,max=100"`
	ActorLimit     int    `env:"ACTOR_LIMIT" validate:"min=1,max=100"`
	RefreshSeconds int    `env:"REFRESH_SECONDS" validate:"min=5,max=3600"`
	FullTextSearch bool   `env:"FULLTEXT_SEARCH"`
	ImagePreview   bool   `env:"IMAGE_PREVIEW"`
	UIStatePath    string `env:"STATE" validate:"required"`
	LogPath        string `env:"LOG_FILE" validate:"required"`
	LogLevel       string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn warning error fatal panic"`
}

// RefreshInterval is the period of the background timeline refresh.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// HasCredentials reports whether both login fields came from the environment.
func (c Config) HasCredentials() bool {
	return c.Identifier != "" && c.Password != ""
}

// Load reads configuration from environment variables.
//
//	TERMINALSKY_SERVICE          PDS URL, https only (default: https://bsky.social)
//	TERMINALSKY_IDENTIFIER       Handle or email to pre-fill the login form
//	TERMINALSKY_APP_PASSWORD     App password; with IDENTIFIER logs in automatically
//	TERMINALSKY_DEFAULT_DOMAIN   Domain appended to bare usernames (default: bsky.social)
//	TERMINALSKY_TIMELINE_LIMIT   Posts per timeline fetch (default: 50)
//	TERMINALSKY_ACTOR_LIMIT      Accounts per search (default: 10)
//	TERMINALSKY_REFRESH_SECONDS  Background refresh period (default: 30)
//	TERMINALSKY_FULLTEXT_SEARCH  Use the service's post search (default: false)
//	TERMINALSKY_IMAGE_PREVIEW    Draw image thumbnails in the terminal (default: true)
//	TERMINALSKY_STATE            UI state file (default: ~/.config/terminalsky/ui_state.json)
//	TERMINALSKY_LOG_FILE         Log file (default: ~/.config/terminalsky/terminalsky.log)
//	TERMINALSKY_LOG_LEVEL        Log level (default: info)
func Load() (Config, error) {
	dir, err := configDir()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ServiceURL:    getenv("SERVICE", "https://bsky.social"),
		Identifier:    getenv("IDENTIFIER", ""),
		Password:      os.Getenv(envPrefix + "APP_PASSWORD"),
		DefaultDomain: strings.ToLower(getenv("DEFAULT_DOMAIN", "bsky.social")),
		UIStatePath:   getenv("STATE", filepath.Join(dir, "ui_state.json")),
		LogPath:       getenv("LOG_FILE", filepath.Join(dir, "terminalsky.log")),
		LogLevel:      strings.ToLower(getenv("LOG_LEVEL", "info")),
	}
	if cfg.TimelineLimit, err = getint("TIMELINE_LIMIT", 50); err != nil {
		return Config{}, err
	}
	if cfg.ActorLimit, err = getint("ACTOR_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.RefreshSeconds, err = getint("REFRESH_SECONDS", 30); err != nil {
		return Config{}, err
	}
	if cfg.FullTextSearch, err = getbool("FULLTEXT_SEARCH", false); err != nil {
		return Config{}, err
	}
	if cfg.ImagePreview, err = getbool("IMAGE_PREVIEW", true); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	parsed, err := url.Parse(cfg.ServiceURL)
	if err != nil || parsed.Host == "" {
		return Config{}, fmt.Errorf("invalid %sSERVICE: must be an absolute URL", envPrefix)
	}
	cfg.ServiceURL = strings.TrimRight(parsed.String(), "/")
	return cfg, nil
}

var validate = func() func(Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report env names rather than Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if tag := fld.Tag.Get("env"); tag != "" {
			return envPrefix + tag
		}
		return fld.Name
	})
	return func(cfg Config) error {
		err := v.Struct(cfg)
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return errors.New(strings.Join(msgs, "; "))
	}
}()

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("invalid %s: must be an absolute URL", fe.Field())
	case "startswith":
		return fmt.Sprintf("invalid %s: only https is allowed", fe.Field())
	case "min", "max":
		return fmt.Sprintf("invalid %s: must be between bounds (%s %s)", fe.Field(), fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("invalid %s: %v", fe.Field(), fe.Value())
	}
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "terminalsky"), nil
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	if v == "" {
		return def
	}
	return v
}

func getint(key string, def int) (int, error) {
	s := getenv(key, "")
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: must be an integer", envPrefix, key)
	}
	return n, nil
}

func getbool(key string, def bool) (bool, error) {
	s := getenv(key, "")
	if s == "" {
		return def, nil
	}
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s%s: must be true or false", envPrefix, key)
}
