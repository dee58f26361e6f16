package lockfile

import (
	"regexp"

	"github.com/ludo-technologies/podlock/domain"
)

var (
	specChecksumPattern    = regexp.MustCompile(`^  (` + namePattern + `): ([0-9a-f]{40})$`)
	podfileChecksumPattern = regexp.MustCompile(`^PODFILE CHECKSUM: ([0-9a-f]{40})$`)
	cocoaPodsPattern       = regexp.MustCompile(`^COCOAPODS: (\S+)$`)
)

// parseChecksums collects "name: digest" lines. Lines whose digest is not
// exactly 40 lowercase hex characters never match.
func parseChecksums(section string) map[string]string {
	checksums := make(map[string]string)
	for _, ln := range sectionLines(section) {
		if m, ok := matchLine(specChecksumPattern, ln.text); ok {
			checksums[m.group(1)] = m.group(2)
		}
	}
	return checksums
}

func parsePodfileChecksum(section string) (string, error) {
	m, ok := findScalar(podfileChecksumPattern, section)
	if !ok {
		return "", domain.NewPatternNotFoundError(sectionNames[sectionPodfileChecksum], "40-character digest", nil)
	}
	return m.group(1), nil
}

func parseCocoaPodsVersion(section string) (domain.ToolVersion, error) {
	name := sectionNames[sectionCocoaPods]
	m, ok := findScalar(cocoaPodsPattern, section)
	if !ok {
		return domain.ToolVersion{}, domain.NewPatternNotFoundError(name, "tool version", nil)
	}
	v, err := parseToolVersion(m.group(1))
	if err != nil {
		return domain.ToolVersion{}, domain.NewPatternNotFoundError(name, "valid tool version", err)
	}
	return v, nil
}

// findScalar returns the first line of section matching re
func findScalar(re *regexp.Regexp, section string) (match, bool) {
	for _, raw := range splitTrimmed(section) {
		if m, ok := matchLine(re, raw); ok {
			return m, true
		}
	}
	return match{}, false
}
