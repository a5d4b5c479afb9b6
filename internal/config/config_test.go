package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"COOKIE", "ENABLE_NOTIFICATION", "NTFY_TOKEN", "GITHUB_SERVER_URL", "GITHUB_REPOSITORY"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "Minecraft", cfg.AppName)
	assert.Equal(t, 3, cfg.Retry.Max)
	assert.Equal(t, 20*time.Second, cfg.Retry.Timeout)
	assert.True(t, cfg.Transport.Insecure)
	assert.True(t, cfg.Git.Enabled)
	assert.False(t, cfg.Notify.Active())
	assert.Empty(t, cfg.Cookie)

	targets, err := cfg.MonitorTargets()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTargets(), targets)
}

func TestLoadBindsWorkflowEnvironment(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("COOKIE", "  cookie-from-env ")
	t.Setenv("ENABLE_NOTIFICATION", "yes")
	t.Setenv("NTFY_TOKEN", "tk_123")
	t.Setenv("GITHUB_SERVER_URL", "https://github.example")
	t.Setenv("GITHUB_REPOSITORY", "owner/versiondb")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "cookie-from-env", cfg.Cookie)
	assert.True(t, cfg.Notify.Enabled)
	assert.True(t, cfg.Notify.Active())
	assert.Equal(t, "tk_123", cfg.Notify.Token)
	assert.Equal(t, "https://github.example", cfg.Notify.ServerURL)
	assert.Equal(t, "owner/versiondb", cfg.Notify.Repository)
}

func TestLoadNotificationNeedsToken(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("ENABLE_NOTIFICATION", "1")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.True(t, cfg.Notify.Enabled)
	assert.False(t, cfg.Notify.Active())
}

func TestPresenceFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want bool
	}{
		{raw: "", want: false},
		{raw: "  ", want: false},
		{raw: "false", want: false},
		{raw: "0", want: false},
		{raw: "true", want: true},
		{raw: "1", want: true},
		{raw: "on", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, presenceFlag(tt.raw))
		})
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	content := `version = 1
app_name = "Minecraft Bedrock"

[retry]
max = 5
timeout = "45s"

[git]
enabled = false

[[targets]]
package_family_name = "Microsoft.MinecraftWindowsBeta_8wekyb3d8bbwe"
category_id = "188f32fc-5eaa-45a8-9f78-7dde4322d131"
channel = "preview"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "Minecraft Bedrock", cfg.AppName)
	assert.Equal(t, 5, cfg.Retry.Max)
	assert.Equal(t, 45*time.Second, cfg.Retry.Timeout)
	assert.False(t, cfg.Git.Enabled)
	assert.Equal(t, DefaultGitRemote, cfg.Git.Remote)

	targets, err := cfg.MonitorTargets()
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, domain.ChannelPreview, targets[0].Channel)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "read config file")
}

func TestLoadRejectsNewerFileVersion(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = 2\n"), 0o644))

	_, err := Load(viper.New(), path)
	assert.ErrorContains(t, err, "unsupported config version 2")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "endpoint scheme", mutate: func(c *Config) { c.Endpoint = "ftp://fe3.example/x" }, wantErr: "http or https"},
		{name: "endpoint host", mutate: func(c *Config) { c.Endpoint = "https:///client.asmx" }, wantErr: "host is required"},
		{name: "negative retries", mutate: func(c *Config) { c.Retry.Max = -1 }, wantErr: "must not be negative"},
		{name: "zero timeout", mutate: func(c *Config) { c.Retry.Timeout = 0 }, wantErr: "must be positive"},
		{name: "no targets", mutate: func(c *Config) { c.Targets = nil }, wantErr: "no monitor targets"},
		{name: "bad channel", mutate: func(c *Config) { c.Targets[0].Channel = "nightly" }, wantErr: "targets[0]"},
		{name: "missing category", mutate: func(c *Config) { c.Targets[1].CategoryID = "" }, wantErr: "category id is required"},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "trace" }, wantErr: "unknown log level"},
		{name: "log format", mutate: func(c *Config) { c.Log.Format = "xml" }, wantErr: "unknown log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWriteFileRoundTripsThroughLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "conf", FileName)

	cfg := Default()
	cfg.Retry.Timeout = 90 * time.Second
	cfg.Notify.Token = "never-written"
	cfg.Cookie = "never-written"
	require.NoError(t, WriteFile(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1m30s")
	assert.Contains(t, string(data), "[[targets]]")
	assert.NotContains(t, string(data), "never-written")

	loaded, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, loaded.Retry.Timeout)
	assert.Equal(t, cfg.Targets, loaded.Targets)

	err = WriteFile(path, cfg, false)
	require.ErrorIs(t, err, ErrConfigExists)
	require.NoError(t, WriteFile(path, cfg, true))
}
