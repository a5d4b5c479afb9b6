package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

var ErrConfigExists = errors.New("config file already exists")

// fileSchema is the on-disk layout. Secrets (cookie, notify token) are never
// written; they come from the environment.
type fileSchema struct {
	Version   int             `toml:"version"`
	Endpoint  string          `toml:"endpoint"`
	AppName   string          `toml:"app_name"`
	Retry     retrySchema     `toml:"retry"`
	Transport transportSchema `toml:"transport"`
	Ledger    pathSchema      `toml:"ledger"`
	Changelog pathSchema      `toml:"changelog"`
	Journal   pathSchema      `toml:"journal"`
	Git       gitSchema       `toml:"git"`
	Notify    notifySchema    `toml:"notify"`
	Log       logSchema       `toml:"log"`
	Targets   []targetSchema  `toml:"targets"`
}

type retrySchema struct {
	Max     int    `toml:"max"`
	Timeout string `toml:"timeout"`
}

type transportSchema struct {
	Insecure bool `toml:"insecure"`
}

type pathSchema struct {
	Path string `toml:"path"`
}

type gitSchema struct {
	Enabled   bool   `toml:"enabled"`
	Remote    string `toml:"remote"`
	UserName  string `toml:"user_name"`
	UserEmail string `toml:"user_email"`
}

type notifySchema struct {
	URL        string `toml:"url"`
	ServerURL  string `toml:"server_url"`
	Repository string `toml:"repository"`
}

type logSchema struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type targetSchema struct {
	PackageFamilyName string `toml:"package_family_name"`
	CategoryID        string `toml:"category_id"`
	Channel           string `toml:"channel"`
}

func toSchema(cfg Config) fileSchema {
	targets := make([]targetSchema, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		targets = append(targets, targetSchema(target))
	}

	return fileSchema{
		Version:   currentFileVersion,
		Endpoint:  cfg.Endpoint,
		AppName:   cfg.AppName,
		Retry:     retrySchema{Max: cfg.Retry.Max, Timeout: cfg.Retry.Timeout.String()},
		Transport: transportSchema{Insecure: cfg.Transport.Insecure},
		Ledger:    pathSchema{Path: cfg.Ledger.Path},
		Changelog: pathSchema{Path: cfg.Changelog.Path},
		Journal:   pathSchema{Path: cfg.Journal.Path},
		Git: gitSchema{
			Enabled:   cfg.Git.Enabled,
			Remote:    cfg.Git.Remote,
			UserName:  cfg.Git.UserName,
			UserEmail: cfg.Git.UserEmail,
		},
		Notify: notifySchema{
			URL:        cfg.Notify.URL,
			ServerURL:  cfg.Notify.ServerURL,
			Repository: cfg.Notify.Repository,
		},
		Log:     logSchema{Level: cfg.Log.Level, Format: cfg.Log.Format},
		Targets: targets,
	}
}

// Encode renders cfg as a TOML config file.
func Encode(cfg Config) ([]byte, error) {
	data, err := toml.Marshal(toSchema(cfg))
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// WriteFile writes cfg to path. An existing file is only replaced with force.
func WriteFile(path string, cfg Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("stat config file: %w", err)
		}
	}

	data, err := Encode(cfg)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}
