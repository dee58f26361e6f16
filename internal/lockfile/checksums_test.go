package lockfile

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChecksums(t *testing.T) {
	section := "SPEC CHECKSUMS:\n" +
		"  A: " + digestA + "\n" +
		"  Sub/Spec: " + digestB + "\n" +
		"  A: " + digestB

	assert.Equal(t, map[string]string{"A": digestB, "Sub/Spec": digestB}, parseChecksums(section))
}

func TestParseChecksums_ExactDigestLength(t *testing.T) {
	short := digestA[:39]
	long := digestA + "8"
	upper := strings.ToUpper(digestA)

	section := "  Short: " + short + "\n  Long: " + long + "\n  Upper: " + upper + "\n  Ok: " + digestA
	got := parseChecksums(section)

	assert.Equal(t, map[string]string{"Ok": digestA}, got)
}

func TestParsePodfileChecksum(t *testing.T) {
	got, err := parsePodfileChecksum("PODFILE CHECKSUM: " + digestB)
	require.NoError(t, err)
	assert.Equal(t, digestB, got)

	for _, section := range []string{
		"PODFILE CHECKSUM: " + digestB[:39],
		"PODFILE CHECKSUM: " + digestB + "0",
		"PODFILE CHECKSUM:",
		"",
	} {
		_, err := parsePodfileChecksum(section)
		require.Error(t, err, section)
		assert.Equal(t, domain.ErrCodePatternNotFound, domain.ErrorCode(err))
	}
}

func TestParseCocoaPodsVersion(t *testing.T) {
	tests := []struct {
		name    string
		section string
		want    domain.ToolVersion
		wantErr bool
	}{
		{name: "plain", section: "COCOAPODS: 1.10.0", want: domain.ToolVersion{Major: 1, Minor: 10, Patch: 0}},
		{name: "trailing newline", section: "COCOAPODS: 1.11.2\n", want: domain.ToolVersion{Major: 1, Minor: 11, Patch: 2}},
		{name: "not a version", section: "COCOAPODS: abc", wantErr: true},
		{name: "two components", section: "COCOAPODS: 1.10", wantErr: true},
		{name: "prerelease", section: "COCOAPODS: 1.11.0-beta.2", wantErr: true},
		{name: "missing", section: "SOMETHING ELSE", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCocoaPodsVersion(tt.section)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, domain.ErrCodePatternNotFound, domain.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, strings.TrimSpace(strings.TrimPrefix(tt.section, "COCOAPODS: ")), got.String())
		})
	}
}

func TestParse_InvalidToolVersionAbortsParse(t *testing.T) {
	lock, err := Parse(withSection(sectionCocoaPods, "COCOAPODS: abc"))
	assert.Nil(t, lock)
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodePatternNotFound, domain.ErrorCode(err))
	assert.Contains(t, err.Error(), "COCOAPODS")
}
