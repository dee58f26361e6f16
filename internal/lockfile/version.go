package lockfile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ludo-technologies/podlock/domain"
)

// podVersionPattern: 1-4 numeric groups, optional "-" pre-release tag
var podVersionPattern = regexp.MustCompile(`^(\d+(?:\.\d+){0,3})(?:-([\w.]+))?$`)

func parseVersion(text string) (domain.Version, error) {
	m, ok := matchLine(podVersionPattern, text)
	if !ok {
		return domain.Version{}, fmt.Errorf("invalid version %q", text)
	}

	groups := strings.Split(m.group(1), ".")
	segments := make([]int, len(groups))
	for i, g := range groups {
		n, err := strconv.Atoi(g)
		if err != nil {
			return domain.Version{}, fmt.Errorf("invalid version %q: %w", text, err)
		}
		segments[i] = n
	}

	return domain.NewVersion(text, segments, m.group(2)), nil
}

// parseToolVersion accepts only a plain major.minor.patch version
func parseToolVersion(text string) (domain.ToolVersion, error) {
	v, err := semver.StrictNewVersion(text)
	if err != nil {
		return domain.ToolVersion{}, fmt.Errorf("invalid version %q: %w", text, err)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return domain.ToolVersion{}, fmt.Errorf("invalid version %q: expected major.minor.patch", text)
	}
	return domain.ToolVersion{Major: v.Major(), Minor: v.Minor(), Patch: v.Patch()}, nil
}
