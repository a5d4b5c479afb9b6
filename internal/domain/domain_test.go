package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		version   string
		withFifth bool
		want      string
	}{
		{name: "release build", version: "1.21.4101.0", want: "1.21.41.1"},
		{name: "release build with fifth", version: "1.21.4101.0", withFifth: true, want: "1.21.41.1.0"},
		{name: "short third segment is padded", version: "1.20.1.0", want: "1.20.0.1"},
		{name: "two digit third segment", version: "1.20.12.0", want: "1.20.0.12"},
		{name: "five digit third segment", version: "1.21.10001.0", want: "1.21.100.1"},
		{name: "preview build", version: "1.21.5020.0", withFifth: true, want: "1.21.50.20.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize(tt.version, tt.withFifth)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanonicalizeIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Canonicalize("1.21.4101.0", false)
	require.NoError(t, err)
	second, err := Canonicalize("1.21.4101.0", false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCanonicalizeRejectsMalformedVersions(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"", "1.21.4101", "1.21.4101.0.0", "1.21.41x1.0"} {
		_, err := Canonicalize(version, false)
		require.Error(t, err, version)
		assert.ErrorIs(t, err, ErrMalformedVersion)
	}
}

func TestSplitMoniker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		moniker string
		want    PackageIdentity
	}{
		{
			name:    "x86 release",
			moniker: "Microsoft.MinecraftUWP_1.21.4101.0_x86__8wekyb3d8bbwe",
			want:    PackageIdentity{Version: "1.21.4101.0", Arch: "x86"},
		},
		{
			name:    "x64 preview",
			moniker: "Microsoft.MinecraftWindowsBeta_1.21.5020.0_x64__8wekyb3d8bbwe",
			want:    PackageIdentity{Version: "1.21.5020.0", Arch: "x64"},
		},
		{
			name:    "exactly three segments",
			moniker: "Name_1.0.0.0_arm",
			want:    PackageIdentity{Version: "1.0.0.0", Arch: "arm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitMoniker(tt.moniker)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitMonikerRequiresThreeSegments(t *testing.T) {
	t.Parallel()

	_, err := SplitMoniker("Microsoft.MinecraftUWP_1.21.4101.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedMoniker)
}

func TestIdentityName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Microsoft.MinecraftUWP", IdentityName("Microsoft.MinecraftUWP_8wekyb3d8bbwe"))
	assert.Equal(t, "Some_Long_Name", IdentityName("Some_Long_Name_publisher"))
	assert.Equal(t, "NoSuffix", IdentityName("NoSuffix"))
}

func TestUpdateRecordChangelogLine(t *testing.T) {
	t.Parallel()

	record := UpdateRecord{
		UpdateID:       "4b95a4cd-d471-45c8-bd01-9cd448dfda94",
		PackageMoniker: "Microsoft.MinecraftUWP_1.21.4101.0_x86__8wekyb3d8bbwe",
		InternalID:     "307700497",
	}

	assert.Equal(t, "4b95a4cd-d471-45c8-bd01-9cd448dfda94 Microsoft.MinecraftUWP_1.21.4101.0_x86__8wekyb3d8bbwe 307700497", record.ChangelogLine())
}

func TestReleaseChannelNamesAndValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw   string
		want  ReleaseChannel
		name  string
		value int
	}{
		{raw: "release", want: ChannelRelease, name: "Release", value: 0},
		{raw: "Beta", want: ChannelBeta, name: "Beta", value: 1},
		{raw: " PREVIEW ", want: ChannelPreview, name: "Preview", value: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReleaseChannel(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.String())

			fromValue, err := ReleaseChannelFromValue(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fromValue)
		})
	}

	_, err := ParseReleaseChannel("nightly")
	assert.ErrorIs(t, err, ErrUnknownChannel)
	_, err = ReleaseChannelFromValue(7)
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestLedgerAppendRespectsChannelIndependence(t *testing.T) {
	t.Parallel()

	ledger := Ledger{Entries: []LedgerEntry{{Version: "1.21.41.1", UpdateID: "id-release", Channel: ChannelRelease}}}

	assert.True(t, ledger.Contains("1.21.41.1", ChannelRelease))
	assert.False(t, ledger.Contains("1.21.41.1", ChannelPreview))

	require.NoError(t, ledger.Append(LedgerEntry{Version: "1.21.41.1", UpdateID: "id-preview", Channel: ChannelPreview}))
	err := ledger.Append(LedgerEntry{Version: "1.21.41.1", UpdateID: "id-again", Channel: ChannelRelease})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	assert.Len(t, ledger.Entries, 2)
	assert.Equal(t, []LedgerEntry{{Version: "1.21.41.1", UpdateID: "id-preview", Channel: ChannelPreview}}, ledger.ByChannel(ChannelPreview))
}

func TestLedgerCloneDoesNotShareEntries(t *testing.T) {
	t.Parallel()

	original := Ledger{Entries: []LedgerEntry{{Version: "1.0.0.0", UpdateID: "a", Channel: ChannelRelease}}}
	clone := original.Clone()
	require.NoError(t, clone.Append(LedgerEntry{Version: "1.0.0.1", UpdateID: "b", Channel: ChannelRelease}))

	assert.Len(t, original.Entries, 1)
	assert.Len(t, clone.Entries, 2)
}

func TestMonitorTargetValidate(t *testing.T) {
	t.Parallel()

	for _, target := range DefaultTargets() {
		assert.NoError(t, target.Validate())
	}

	err := MonitorTarget{CategoryID: "c", Channel: ChannelRelease}.Validate()
	assert.ErrorContains(t, err, "package family name is required")

	err = MonitorTarget{PackageFamilyName: "p_x", Channel: ChannelRelease}.Validate()
	assert.ErrorContains(t, err, "category id is required")

	err = MonitorTarget{PackageFamilyName: "p_x", CategoryID: "c", Channel: 9}.Validate()
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
