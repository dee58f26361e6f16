package lockfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input      string
		segments   []int
		prerelease string
		wantErr    bool
	}{
		{input: "1", segments: []int{1}},
		{input: "1.2", segments: []int{1, 2}},
		{input: "5.4.3", segments: []int{5, 4, 3}},
		{input: "2.30908.0", segments: []int{2, 30908, 0}},
		{input: "1.2.3.4", segments: []int{1, 2, 3, 4}},
		{input: "1.0.0-beta.1", segments: []int{1, 0, 0}, prerelease: "beta.1"},
		{input: "3-rc1", segments: []int{3}, prerelease: "rc1"},
		{input: "1.2.3.4.5", wantErr: true},
		{input: "v1.0", wantErr: true},
		{input: "1.", wantErr: true},
		{input: "", wantErr: true},
		{input: "1.0-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := parseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.segments, v.Segments)
			assert.Equal(t, tt.prerelease, v.Prerelease)
			assert.Equal(t, tt.input, v.String())
			assert.Equal(t, tt.prerelease != "", v.IsPrerelease())
		})
	}
}

func TestParseToolVersion(t *testing.T) {
	v, err := parseToolVersion("1.12.1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v.Major)
	assert.Equal(t, uint64(12), v.Minor)
	assert.Equal(t, uint64(1), v.Patch)

	for _, bad := range []string{"abc", "1.12", "1.12.1.0", "01.2.3", "1.2.3+meta"} {
		_, err := parseToolVersion(bad)
		assert.Error(t, err, bad)
	}
}
