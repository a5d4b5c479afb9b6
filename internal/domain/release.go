package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const ArchX64 = "x64"

// UpdateRecord is one update entry returned by the vendor service.
type UpdateRecord struct {
	UpdateID       string
	PackageMoniker string
	InternalID     string
}

// ChangelogLine renders the record the way the changelog stores it.
func (r UpdateRecord) ChangelogLine() string {
	return r.UpdateID + " " + r.PackageMoniker + " " + r.InternalID
}

type PackageIdentity struct {
	Version string
	Arch    string
}

// SplitMoniker extracts version and architecture from a moniker such as
// "Microsoft.MinecraftUWP_1.21.4101.0_x64__8wekyb3d8bbwe".
func SplitMoniker(moniker string) (PackageIdentity, error) {
	parts := strings.Split(moniker, "_")
	if len(parts) < 3 {
		return PackageIdentity{}, fmt.Errorf("%w %q", ErrMalformedMoniker, moniker)
	}

	return PackageIdentity{Version: parts[1], Arch: parts[2]}, nil
}

// Canonicalize converts a vendor version into its public form. The third
// vendor segment packs two fields into its last two digits:
// "1.21.4101.0" becomes "1.21.41.1", or "1.21.41.1.0" with the fifth segment.
func Canonicalize(version string, withFifth bool) (string, error) {
	parts := strings.Split(version, ".")
	if len(parts) != 4 {
		return "", fmt.Errorf("%w %q: want 4 segments", ErrMalformedVersion, version)
	}

	packed := parts[2]
	if n := 4 - len(packed); n > 0 {
		packed = strings.Repeat("0", n) + packed
	}

	head, err := decimal(packed[:len(packed)-2])
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrMalformedVersion, version, err)
	}
	tail, err := decimal(packed[len(packed)-2:])
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrMalformedVersion, version, err)
	}

	canonical := parts[0] + "." + parts[1] + "." + head + "." + tail
	if withFifth {
		canonical += "." + parts[3]
	}

	return canonical, nil
}

func decimal(raw string) (string, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}
