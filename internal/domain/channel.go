package domain

import (
	"fmt"
	"strings"
)

// ReleaseChannel identifies an independent release track. The numeric values
// are persisted in the ledger file and must not change.
type ReleaseChannel int

const (
	ChannelRelease ReleaseChannel = 0
	ChannelBeta    ReleaseChannel = 1
	ChannelPreview ReleaseChannel = 2
)

func (c ReleaseChannel) String() string {
	switch c {
	case ChannelRelease:
		return "Release"
	case ChannelBeta:
		return "Beta"
	case ChannelPreview:
		return "Preview"
	default:
		return fmt.Sprintf("ReleaseChannel(%d)", int(c))
	}
}

func (c ReleaseChannel) Valid() bool {
	switch c {
	case ChannelRelease, ChannelBeta, ChannelPreview:
		return true
	default:
		return false
	}
}

func ParseReleaseChannel(raw string) (ReleaseChannel, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "release":
		return ChannelRelease, nil
	case "beta":
		return ChannelBeta, nil
	case "preview":
		return ChannelPreview, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrUnknownChannel, raw)
	}
}

func ReleaseChannelFromValue(value int) (ReleaseChannel, error) {
	channel := ReleaseChannel(value)
	if !channel.Valid() {
		return 0, fmt.Errorf("%w value %d", ErrUnknownChannel, value)
	}
	return channel, nil
}

// Channels lists every known channel in ledger order.
func Channels() []ReleaseChannel {
	return []ReleaseChannel{ChannelRelease, ChannelBeta, ChannelPreview}
}
