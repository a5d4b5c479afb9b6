package file

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/spf13/viper"
)

// ChangelogRepository edits the plain text changelog. Each channel has a
// section that starts at the channel name and ends at the first blank line.
type ChangelogRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.ChangelogRepository = (*ChangelogRepository)(nil)

func NewChangelogRepository(cfg *viper.Viper) (*ChangelogRepository, error) {
	path, err := resolvePath(cfg, changelogPathKey, DefaultChangelogPath)
	if err != nil {
		return nil, err
	}

	return &ChangelogRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *ChangelogRepository) Path() string {
	return r.path
}

func (r *ChangelogRepository) Prepare(ctx context.Context, channel domain.ReleaseChannel) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	text, err := r.read()
	if err != nil {
		return err
	}

	_, err = insertionPoint(text, channel)
	return err
}

// Insert places lines at the end of the channel's section.
func (r *ChangelogRepository) Insert(ctx context.Context, channel domain.ReleaseChannel, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	text, err := r.read()
	if err != nil {
		return err
	}

	updated, err := insertLines(text, channel, lines)
	if err != nil {
		return err
	}

	if err := writeFileAtomic(r.path, []byte(updated)); err != nil {
		return fmt.Errorf("write changelog file: %w", err)
	}

	return nil
}

func (r *ChangelogRepository) read() (string, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return "", fmt.Errorf("read changelog file: %w", err)
	}
	return string(data), nil
}

// insertionPoint returns the offset just after the first "\n" of the first
// blank line following the channel header, or -1 when the section runs to
// the end of the text.
func insertionPoint(text string, channel domain.ReleaseChannel) (int, error) {
	header := headerOffset(text, channel.String())
	if header < 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrSectionNotFound, channel)
	}

	blank := strings.Index(text[header:], "\n\n")
	if blank < 0 {
		return -1, nil
	}

	return header + blank + 1, nil
}

// headerOffset returns the start of the first line that is exactly name, or
// -1. Names inside package monikers never count as headers.
func headerOffset(text, name string) int {
	for start := 0; start < len(text); {
		line := text[start:]
		end := strings.IndexByte(line, '\n')
		if end >= 0 {
			line = line[:end]
		}
		if strings.TrimRight(line, " \r") == name {
			return start
		}
		if end < 0 {
			break
		}
		start += end + 1
	}
	return -1
}

func insertLines(text string, channel domain.ReleaseChannel, lines []string) (string, error) {
	at, err := insertionPoint(text, channel)
	if err != nil {
		return "", err
	}

	block := strings.Join(lines, "\n") + "\n"
	if at < 0 {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text + block, nil
	}

	return text[:at] + block + text[at:], nil
}
