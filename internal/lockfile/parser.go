package lockfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/podlock/domain"
)

// Section positions are fixed by the format
const (
	sectionPods = iota
	sectionDependencies
	sectionSpecRepos
	sectionExternalSources
	sectionCheckoutOptions
	sectionSpecChecksums
	sectionPodfileChecksum
	sectionCocoaPods

	sectionCount
)

var sectionNames = [sectionCount]string{
	"PODS",
	"DEPENDENCIES",
	"SPEC REPOS",
	"EXTERNAL SOURCES",
	"CHECKOUT OPTIONS",
	"SPEC CHECKSUMS",
	"PODFILE CHECKSUM",
	"COCOAPODS",
}

// namePattern matches a pod name: word characters, '/', '-' and '+'
const namePattern = `[+\w/-]+`

// Parser parses Podfile.lock documents. The zero value is ready to use.
type Parser struct{}

// New creates a new Parser
func New() *Parser {
	return &Parser{}
}

// Parse parses a complete lock file document
func Parse(source []byte) (*domain.Lockfile, error) {
	return New().Parse(source)
}

// Parse parses a complete lock file document. Any failure aborts the whole
// parse; no partial result is returned.
func (p *Parser) Parse(source []byte) (*domain.Lockfile, error) {
	sections, err := splitSections(normalize(string(source)))
	if err != nil {
		return nil, err
	}

	pods, err := parsePods(sections[sectionPods])
	if err != nil {
		return nil, err
	}

	checkouts, err := parseCheckouts(sections[sectionExternalSources], sections[sectionCheckoutOptions])
	if err != nil {
		return nil, err
	}

	podfileChecksum, err := parsePodfileChecksum(sections[sectionPodfileChecksum])
	if err != nil {
		return nil, err
	}

	toolVersion, err := parseCocoaPodsVersion(sections[sectionCocoaPods])
	if err != nil {
		return nil, err
	}

	return &domain.Lockfile{
		Pods:             pods,
		Dependencies:     parseDeclaredDependencies(sections[sectionDependencies]),
		SpecRepos:        parseSpecRepos(sections[sectionSpecRepos]),
		Checkouts:        checkouts,
		Checksums:        parseChecksums(sections[sectionSpecChecksums]),
		PodfileChecksum:  podfileChecksum,
		CocoaPodsVersion: toolVersion,
	}, nil
}

// ParseReader reads a document from r and parses it
func (p *Parser) ParseReader(r io.Reader) (*domain.Lockfile, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read lock file: %w", err)
	}
	return p.Parse(source)
}

// normalize converts line endings, drops a byte order mark and removes every
// double quote in the document. CocoaPods quotes names containing special
// characters, so values such as :path: lose their quotes too.
func normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, `"`, "")
	return strings.TrimRight(text, "\n")
}

// splitSections splits on blank lines and requires exactly sectionCount parts,
// each opening with its own header in the fixed order
func splitSections(text string) ([]string, error) {
	sections := strings.Split(text, "\n\n")
	if len(sections) != sectionCount {
		return nil, domain.NewMalformedDocumentError(sectionCount, len(sections))
	}
	for i, section := range sections {
		if section == "" || strings.HasPrefix(section, "\n") || strings.HasSuffix(section, "\n") {
			return nil, domain.NewSectionSpacingError(i + 1)
		}
		if err := checkHeader(i, section); err != nil {
			return nil, err
		}
	}
	return sections, nil
}

// checkHeader accepts "NAME:" alone or, for scalar sections, "NAME: value"
func checkHeader(i int, section string) error {
	first, _, _ := strings.Cut(section, "\n")
	first = strings.TrimRight(first, " \t")
	name := sectionNames[i]
	if first == name+":" || strings.HasPrefix(first, name+": ") {
		return nil
	}
	return domain.NewSectionHeaderError(name, first)
}
