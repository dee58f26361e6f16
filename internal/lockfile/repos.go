package lockfile

import (
	"regexp"
)

var (
	specRepoHeadingPattern = regexp.MustCompile(`^  (\S+):$`)
	specRepoPodPattern     = regexp.MustCompile(`^    - (` + namePattern + `)$`)
)

// parseSpecRepos groups pod names under their registry URL. A repeated
// heading replaces the earlier list. Pod lines only attach to the heading
// directly above them.
func parseSpecRepos(section string) map[string][]string {
	repos := make(map[string][]string)
	current := ""
	inRepo := false

	for _, ln := range sectionLines(section) {
		if m, ok := matchLine(specRepoHeadingPattern, ln.text); ok {
			current = m.group(1)
			repos[current] = []string{}
			inRepo = true
			continue
		}
		if m, ok := matchLine(specRepoPodPattern, ln.text); ok && inRepo {
			repos[current] = append(repos[current], m.group(1))
			continue
		}
		// a skipped heading-level line closes the open list
		if indent(ln.text) < 4 {
			inRepo = false
		}
	}
	return repos
}
