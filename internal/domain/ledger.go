package domain

import "fmt"

// LedgerEntry records one observed version on one channel.
type LedgerEntry struct {
	Version  string
	UpdateID string
	Channel  ReleaseChannel
}

// Ledger is the append-only record of observed versions, in file order.
type Ledger struct {
	Entries []LedgerEntry
}

func (l Ledger) Contains(version string, channel ReleaseChannel) bool {
	for _, entry := range l.Entries {
		if entry.Channel == channel && entry.Version == version {
			return true
		}
	}
	return false
}

// Append adds an entry unless the (version, channel) pair is already present.
func (l *Ledger) Append(entry LedgerEntry) error {
	if !entry.Channel.Valid() {
		return fmt.Errorf("%w value %d", ErrUnknownChannel, int(entry.Channel))
	}
	if l.Contains(entry.Version, entry.Channel) {
		return fmt.Errorf("%w: %s on %s", ErrDuplicateEntry, entry.Version, entry.Channel)
	}

	l.Entries = append(l.Entries, entry)
	return nil
}

func (l Ledger) ByChannel(channel ReleaseChannel) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(l.Entries))
	for _, entry := range l.Entries {
		if entry.Channel == channel {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Clone returns a copy whose entries can be appended to without touching l.
func (l Ledger) Clone() Ledger {
	entries := make([]LedgerEntry, len(l.Entries))
	copy(entries, l.Entries)
	return Ledger{Entries: entries}
}
