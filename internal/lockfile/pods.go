package lockfile

import (
	"fmt"
	"regexp"

	"github.com/ludo-technologies/podlock/domain"
)

var (
	// "  - Name (1.2.3)" with an optional trailing ':' opening a dependency block
	podEntryPattern = regexp.MustCompile(`^  - (` + namePattern + `) \(([^()]+)\)(:)?$`)

	// "    - Name" or "    - Name (~> 1.2)"
	podDependencyPattern = regexp.MustCompile(`^    - (` + namePattern + `)(?: \((.+)\))?$`)

	// "  - Name" or "  - Name (requirement)" in DEPENDENCIES
	declaredDependencyPattern = regexp.MustCompile(`^  - (` + namePattern + `)(?: \((.+)\))?$`)
)

// parsePods parses the PODS section. Every line must fit the grammar.
func parsePods(section string) ([]domain.Pod, error) {
	name := sectionNames[sectionPods]
	pods := []domain.Pod{}

	// open is true while the last entry ended with ':'; lastLine is its line
	open := false
	lastLine := 0
	closeEntry := func() error {
		if open && len(pods[len(pods)-1].Dependencies) == 0 {
			return domain.NewMalformedEntryError(name, lastLine,
				fmt.Sprintf("%s opens a dependency block with no dependencies", pods[len(pods)-1].Name))
		}
		return nil
	}

	for _, ln := range sectionLines(section) {
		if m, ok := matchLine(podEntryPattern, ln.text); ok {
			if err := closeEntry(); err != nil {
				return nil, err
			}
			version, err := parseVersion(m.group(2))
			if err != nil {
				return nil, domain.NewMalformedEntryError(name, ln.num, fmt.Sprintf("%s: %v", m.group(1), err))
			}
			pods = append(pods, domain.Pod{
				Name:         m.group(1),
				Version:      version,
				Dependencies: []domain.Dependency{},
			})
			open = m.has(3)
			lastLine = ln.num
			continue
		}

		if m, ok := matchLine(podDependencyPattern, ln.text); ok {
			switch {
			case len(pods) == 0:
				return nil, domain.NewMalformedEntryError(name, ln.num,
					fmt.Sprintf("dependency %s has no owning pod", m.group(1)))
			case !open:
				return nil, domain.NewMalformedEntryError(name, ln.num,
					fmt.Sprintf("dependency %s follows %s, which has no ':'", m.group(1), pods[len(pods)-1].Name))
			}
			last := &pods[len(pods)-1]
			last.Dependencies = append(last.Dependencies, domain.Dependency{
				Name:       m.group(1),
				Constraint: m.optional(2),
			})
			continue
		}

		return nil, domain.NewMalformedEntryError(name, ln.num,
			fmt.Sprintf("unexpected line %q (indent %d)", ln.text, indent(ln.text)))
	}

	if err := closeEntry(); err != nil {
		return nil, err
	}
	return pods, nil
}

// parseDeclaredDependencies parses the DEPENDENCIES section, skipping lines
// that do not match
func parseDeclaredDependencies(section string) []domain.Dependency {
	deps := []domain.Dependency{}
	for _, ln := range sectionLines(section) {
		m, ok := matchLine(declaredDependencyPattern, ln.text)
		if !ok {
			continue
		}
		deps = append(deps, domain.Dependency{
			Name:       m.group(1),
			Constraint: m.optional(2),
		})
	}
	return deps
}
