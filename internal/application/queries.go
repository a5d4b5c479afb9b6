package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
)

var ErrJournalUnavailable = errors.New("run journal unavailable")

type ChannelVersions struct {
	Channel domain.ReleaseChannel
	Entries []domain.LedgerEntry
}

// ListVersions groups the ledger by channel in channel order. A nil filter
// selects every channel; channels without entries are omitted.
func (s *Service) ListVersions(ctx context.Context, filter *domain.ReleaseChannel) ([]ChannelVersions, error) {
	ledger, err := s.ledger.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	groups := []ChannelVersions{}
	for _, channel := range domain.Channels() {
		if filter != nil && *filter != channel {
			continue
		}
		entries := ledger.ByChannel(channel)
		if len(entries) == 0 {
			continue
		}
		groups = append(groups, ChannelVersions{Channel: channel, Entries: entries})
	}

	return groups, nil
}

// History returns the most recent journal entries, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]ports.JournalEntry, error) {
	if s.journal == nil {
		return nil, ErrJournalUnavailable
	}

	entries, err := s.journal.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	return entries, nil
}
