package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bnema/versiondb-watch/internal/ports"
)

const (
	DefaultRemote    = "origin"
	DefaultUserName  = "github-actions[bot]"
	DefaultUserEmail = "github-actions[bot]@users.noreply.github.com"
)

var ErrUnavailable = errors.New("git command unavailable")

type runFunc func(ctx context.Context, dir string, args ...string) (stdout string, stderr string, err error)

type Config struct {
	Enabled   bool
	Dir       string
	Remote    string
	UserName  string
	UserEmail string
}

// Publisher commits the given paths as the bot identity and pushes them.
type Publisher struct {
	cfg Config
	run runFunc
}

var _ ports.Publisher = (*Publisher)(nil)

func NewPublisher(cfg Config) *Publisher {
	if cfg.Remote == "" {
		cfg.Remote = DefaultRemote
	}
	if cfg.UserName == "" {
		cfg.UserName = DefaultUserName
	}
	if cfg.UserEmail == "" {
		cfg.UserEmail = DefaultUserEmail
	}

	return &Publisher{cfg: cfg, run: runGitCommand}
}

func (p *Publisher) Publish(ctx context.Context, message string, paths ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.cfg.Enabled {
		return "", ports.ErrPublishDisabled
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("git publish: commit message is required")
	}
	if len(paths) == 0 {
		return "", errors.New("git publish: no paths to commit")
	}

	steps := [][]string{
		append([]string{"add", "--"}, paths...),
		{
			"-c", "user.name=" + p.cfg.UserName,
			"-c", "user.email=" + p.cfg.UserEmail,
			"commit", "-m", message,
		},
		{"push", p.cfg.Remote},
	}
	for _, args := range steps {
		if _, stderr, err := p.run(ctx, p.cfg.Dir, args...); err != nil {
			return "", formatError(args, err, stderr)
		}
	}

	args := []string{"rev-parse", "HEAD"}
	stdout, stderr, err := p.run(ctx, p.cfg.Dir, args...)
	if err != nil {
		return "", formatError(args, err, stderr)
	}

	return strings.TrimSpace(stdout), nil
}

func runGitCommand(ctx context.Context, dir string, args ...string) (string, string, error) {
	path, err := exec.LookPath("git")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate git command: %w", err)
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

// formatError names the git subcommand, skipping leading -c options.
func formatError(args []string, err error, stderr string) error {
	op := args[0]
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		op = args[i]
		break
	}

	if stderr == "" {
		return fmt.Errorf("git %s: %w", op, err)
	}

	return fmt.Errorf("git %s: %w: %s", op, err, stderr)
}
