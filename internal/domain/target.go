package domain

import (
	"fmt"
	"strings"
)

type MonitorTarget struct {
	PackageFamilyName string
	CategoryID        string
	Channel           ReleaseChannel
}

// IdentityName strips the publisher id suffix from the package family name.
func (t MonitorTarget) IdentityName() string {
	return IdentityName(t.PackageFamilyName)
}

func (t MonitorTarget) Validate() error {
	if strings.TrimSpace(t.PackageFamilyName) == "" {
		return fmt.Errorf("package family name is required")
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return fmt.Errorf("category id is required")
	}
	if !t.Channel.Valid() {
		return fmt.Errorf("%w value %d", ErrUnknownChannel, int(t.Channel))
	}

	return nil
}

// IdentityName returns the text before the last underscore, or the whole
// name when it has none.
func IdentityName(packageFamilyName string) string {
	if i := strings.LastIndex(packageFamilyName, "_"); i >= 0 {
		return packageFamilyName[:i]
	}
	return packageFamilyName
}

// DefaultTargets are checked in order: the release build first, then the
// preview build published under its own package family.
func DefaultTargets() []MonitorTarget {
	return []MonitorTarget{
		{
			PackageFamilyName: "Microsoft.MinecraftUWP_8wekyb3d8bbwe",
			CategoryID:        "d25480ca-36aa-46e6-b76b-39608d49558c",
			Channel:           ChannelRelease,
		},
		{
			PackageFamilyName: "Microsoft.MinecraftWindowsBeta_8wekyb3d8bbwe",
			CategoryID:        "188f32fc-5eaa-45a8-9f78-7dde4322d131",
			Channel:           ChannelPreview,
		},
	}
}
