// Package config resolves run settings from defaults, an optional TOML file,
// environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/spf13/viper"
)

const (
	FileName = "versiondb.toml"

	DefaultEndpoint    = "https://fe3.delivery.mp.microsoft.com/ClientWebService/client.asmx"
	DefaultAppName     = "Minecraft"
	DefaultRetryMax    = 3
	DefaultTimeout     = 20 * time.Second
	DefaultNotifyURL   = "https://ntfy.projectxero.top/mc-w10-versiondb-auto-update"
	DefaultServerURL   = "https://github.com"
	DefaultRepository  = "ddf8196/mc-w10-versiondb-auto-update"
	DefaultGitRemote   = "origin"
	DefaultGitUser     = "github-actions[bot]"
	DefaultGitEmail    = "github-actions[bot]@users.noreply.github.com"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultLedgerPath  = "versions.json.min"
	DefaultChangelog   = "versions.txt"
	journalDirName     = "versiondb"
	journalFileName    = "journal.db"
	envPrefix          = "VERSIONDB"
	currentFileVersion = 1
)

type Config struct {
	Endpoint  string          `mapstructure:"endpoint"`
	AppName   string          `mapstructure:"app_name"`
	Cookie    string          `mapstructure:"cookie"`
	Retry     RetryConfig     `mapstructure:"retry"`
	Transport TransportConfig `mapstructure:"transport"`
	Ledger    PathConfig      `mapstructure:"ledger"`
	Changelog PathConfig      `mapstructure:"changelog"`
	Journal   PathConfig      `mapstructure:"journal"`
	Git       GitConfig       `mapstructure:"git"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Targets   []TargetConfig  `mapstructure:"targets"`
	Log       LogConfig       `mapstructure:"log"`
}

type RetryConfig struct {
	Max     int           `mapstructure:"max"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TransportConfig struct {
	Insecure bool `mapstructure:"insecure"`
}

type PathConfig struct {
	Path string `mapstructure:"path"`
}

type GitConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Remote    string `mapstructure:"remote"`
	UserName  string `mapstructure:"user_name"`
	UserEmail string `mapstructure:"user_email"`
}

type NotifyConfig struct {
	// Enabled is set from a presence flag; see Load.
	Enabled    bool   `mapstructure:"-"`
	URL        string `mapstructure:"url"`
	Token      string `mapstructure:"token"`
	ServerURL  string `mapstructure:"server_url"`
	Repository string `mapstructure:"repository"`
}

// Active reports whether a notification should be sent after a publish.
func (n NotifyConfig) Active() bool {
	return n.Enabled && strings.TrimSpace(n.Token) != ""
}

type TargetConfig struct {
	PackageFamilyName string `mapstructure:"package_family_name"`
	CategoryID        string `mapstructure:"category_id"`
	Channel           string `mapstructure:"channel"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	targets := make([]TargetConfig, 0, 2)
	for _, target := range domain.DefaultTargets() {
		targets = append(targets, TargetConfig{
			PackageFamilyName: target.PackageFamilyName,
			CategoryID:        target.CategoryID,
			Channel:           target.Channel.String(),
		})
	}

	return Config{
		Endpoint:  DefaultEndpoint,
		AppName:   DefaultAppName,
		Retry:     RetryConfig{Max: DefaultRetryMax, Timeout: DefaultTimeout},
		Transport: TransportConfig{Insecure: true},
		Ledger:    PathConfig{Path: DefaultLedgerPath},
		Changelog: PathConfig{Path: DefaultChangelog},
		Journal:   PathConfig{Path: defaultJournalPath()},
		Git: GitConfig{
			Enabled:   true,
			Remote:    DefaultGitRemote,
			UserName:  DefaultGitUser,
			UserEmail: DefaultGitEmail,
		},
		Notify: NotifyConfig{
			URL:        DefaultNotifyURL,
			ServerURL:  DefaultServerURL,
			Repository: DefaultRepository,
		},
		Targets: targets,
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	}
}

func defaultJournalPath() string {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".versiondb", journalFileName)
	}
	return filepath.Join(cacheDir, journalDirName, journalFileName)
}

// SetDefaults registers Default() on v and binds the environment variables
// the scheduled workflow provides.
func SetDefaults(v *viper.Viper) {
	def := Default()

	v.SetDefault("endpoint", def.Endpoint)
	v.SetDefault("app_name", def.AppName)
	v.SetDefault("retry.max", def.Retry.Max)
	v.SetDefault("retry.timeout", def.Retry.Timeout)
	v.SetDefault("transport.insecure", def.Transport.Insecure)
	v.SetDefault("ledger.path", def.Ledger.Path)
	v.SetDefault("changelog.path", def.Changelog.Path)
	v.SetDefault("journal.path", def.Journal.Path)
	v.SetDefault("git.enabled", def.Git.Enabled)
	v.SetDefault("git.remote", def.Git.Remote)
	v.SetDefault("git.user_name", def.Git.UserName)
	v.SetDefault("git.user_email", def.Git.UserEmail)
	v.SetDefault("notify.url", def.Notify.URL)
	v.SetDefault("notify.server_url", def.Notify.ServerURL)
	v.SetDefault("notify.repository", def.Notify.Repository)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	targets := make([]map[string]any, 0, len(def.Targets))
	for _, target := range def.Targets {
		targets = append(targets, map[string]any{
			"package_family_name": target.PackageFamilyName,
			"category_id":         target.CategoryID,
			"channel":             target.Channel,
		})
	}
	v.SetDefault("targets", targets)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("cookie", "COOKIE", envPrefix+"_COOKIE")
	_ = v.BindEnv("notify.enabled", "ENABLE_NOTIFICATION", envPrefix+"_NOTIFY_ENABLED")
	_ = v.BindEnv("notify.token", "NTFY_TOKEN", envPrefix+"_NOTIFY_TOKEN")
	_ = v.BindEnv("notify.server_url", "GITHUB_SERVER_URL", envPrefix+"_NOTIFY_SERVER_URL")
	_ = v.BindEnv("notify.repository", "GITHUB_REPOSITORY", envPrefix+"_NOTIFY_REPOSITORY")
}

// Load reads configFile (or versiondb.toml in the working directory when it
// exists) into v and returns the validated settings.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	if version := v.GetInt("version"); version > currentFileVersion {
		return Config{}, fmt.Errorf("unsupported config version %d (current %d)", version, currentFileVersion)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Cookie = strings.TrimSpace(cfg.Cookie)
	cfg.Notify.Enabled = presenceFlag(v.GetString("notify.enabled"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// presenceFlag treats any non-empty value as on, except explicit booleans.
func presenceFlag(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	if parsed, err := strconv.ParseBool(raw); err == nil {
		return parsed
	}
	return true
}

func (c Config) Validate() error {
	endpoint, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return errors.New("endpoint must use http or https")
	}
	if endpoint.Host == "" {
		return errors.New("endpoint host is required")
	}

	if strings.TrimSpace(c.AppName) == "" {
		return errors.New("app_name is required")
	}
	if c.Retry.Max < 0 {
		return fmt.Errorf("retry.max must not be negative, got %d", c.Retry.Max)
	}
	if c.Retry.Timeout <= 0 {
		return fmt.Errorf("retry.timeout must be positive, got %s", c.Retry.Timeout)
	}
	if c.Ledger.Path == "" || c.Changelog.Path == "" {
		return errors.New("ledger.path and changelog.path are required")
	}

	if _, err := c.MonitorTargets(); err != nil {
		return err
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// MonitorTargets converts the configured targets, keeping their order.
func (c Config) MonitorTargets() ([]domain.MonitorTarget, error) {
	if len(c.Targets) == 0 {
		return nil, domain.ErrNoMonitorTargets
	}

	targets := make([]domain.MonitorTarget, 0, len(c.Targets))
	for i, raw := range c.Targets {
		channel, err := domain.ParseReleaseChannel(raw.Channel)
		if err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}

		target := domain.MonitorTarget{
			PackageFamilyName: strings.TrimSpace(raw.PackageFamilyName),
			CategoryID:        strings.TrimSpace(raw.CategoryID),
			Channel:           channel,
		}
		if err := target.Validate(); err != nil {
			return nil, fmt.Errorf("targets[%d]: %w", i, err)
		}
		targets = append(targets, target)
	}

	return targets, nil
}
