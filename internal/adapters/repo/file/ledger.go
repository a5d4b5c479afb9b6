package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/bnema/versiondb-watch/internal/domain"
	"github.com/bnema/versiondb-watch/internal/ports"
	"github.com/spf13/viper"
)

// LedgerRepository stores the ledger as a JSON array of
// [version, updateId, channel] triples.
type LedgerRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.LedgerRepository = (*LedgerRepository)(nil)

func NewLedgerRepository(cfg *viper.Viper) (*LedgerRepository, error) {
	path, err := resolvePath(cfg, ledgerPathKey, DefaultLedgerPath)
	if err != nil {
		return nil, err
	}

	return &LedgerRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *LedgerRepository) Path() string {
	return r.path
}

// Load reads the ledger. A missing file is an empty ledger.
func (r *LedgerRepository) Load(ctx context.Context) (domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ledger{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Ledger{}, nil
		}
		return domain.Ledger{}, fmt.Errorf("read ledger file: %w", err)
	}

	return decodeLedger(data)
}

func (r *LedgerRepository) Save(ctx context.Context, ledger domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeLedger(ledger)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeFileAtomic(r.path, data); err != nil {
		return fmt.Errorf("write ledger file: %w", err)
	}

	return nil
}

type ledgerEntrySchema domain.LedgerEntry

func (e ledgerEntrySchema) MarshalJSON() ([]byte, error) {
	return marshalCompact([]any{e.Version, e.UpdateID, int(e.Channel)})
}

func (e *ledgerEntrySchema) UnmarshalJSON(data []byte) error {
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if len(fields) != 3 {
		return fmt.Errorf("ledger entry has %d fields, want 3", len(fields))
	}

	var (
		version  string
		updateID string
		value    int
	)
	if err := json.Unmarshal(fields[0], &version); err != nil {
		return fmt.Errorf("ledger entry version: %w", err)
	}
	if err := json.Unmarshal(fields[1], &updateID); err != nil {
		return fmt.Errorf("ledger entry update id: %w", err)
	}
	if err := json.Unmarshal(fields[2], &value); err != nil {
		return fmt.Errorf("ledger entry channel: %w", err)
	}

	channel, err := domain.ReleaseChannelFromValue(value)
	if err != nil {
		return err
	}

	*e = ledgerEntrySchema{Version: version, UpdateID: updateID, Channel: channel}
	return nil
}

func decodeLedger(data []byte) (domain.Ledger, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.Ledger{}, nil
	}

	var entries []ledgerEntrySchema
	if err := json.Unmarshal(data, &entries); err != nil {
		return domain.Ledger{}, fmt.Errorf("decode ledger file: %w", err)
	}

	ledger := domain.Ledger{Entries: make([]domain.LedgerEntry, 0, len(entries))}
	for _, entry := range entries {
		ledger.Entries = append(ledger.Entries, domain.LedgerEntry(entry))
	}

	return ledger, nil
}

func encodeLedger(ledger domain.Ledger) ([]byte, error) {
	entries := make([]ledgerEntrySchema, 0, len(ledger.Entries))
	for _, entry := range ledger.Entries {
		if !entry.Channel.Valid() {
			return nil, fmt.Errorf("encode ledger file: %w value %d", domain.ErrUnknownChannel, int(entry.Channel))
		}
		entries = append(entries, ledgerEntrySchema(entry))
	}

	data, err := marshalCompact(entries)
	if err != nil {
		return nil, fmt.Errorf("encode ledger file: %w", err)
	}

	return data, nil
}

// marshalCompact encodes without HTML escaping and without the trailing
// newline json.Encoder adds.
func marshalCompact(value any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(value); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
