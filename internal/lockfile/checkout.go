package lockfile

import (
	"fmt"
	"regexp"

	"github.com/ludo-technologies/podlock/domain"
)

var (
	// "  Name:" opens a source block
	sourceBlockPattern = regexp.MustCompile(`^  (` + namePattern + `):$`)

	// "    :key: value" is one attribute of the open block
	sourceAttributePattern = regexp.MustCompile(`^    :(\w+): (.+)$`)
)

// Attribute keys used by EXTERNAL SOURCES and CHECKOUT OPTIONS
const (
	attrPath   = "path"
	attrGit    = "git"
	attrCommit = "commit"
	attrTag    = "tag"
)

// sourceBlock is one named entry of EXTERNAL SOURCES or CHECKOUT OPTIONS
type sourceBlock struct {
	name  string
	line  int
	keys  []string
	attrs map[string]string
}

func (b sourceBlock) get(key string) (string, bool) {
	v, ok := b.attrs[key]
	return v, ok
}

// parseSourceBlocks reads a section into blocks in document order, plus an
// index by name. A name may only appear once per section. Attribute lines
// belong to the heading directly above them; a heading-level line that is
// not a valid heading fails the parse instead of merging into the previous
// block. Deeper lines that are not attributes are skipped.
func parseSourceBlocks(section string, sectionIndex int) ([]sourceBlock, map[string]sourceBlock, error) {
	sectionName := sectionNames[sectionIndex]
	var blocks []sourceBlock
	byName := make(map[string]int)

	for _, ln := range sectionLines(section) {
		if m, ok := matchLine(sourceBlockPattern, ln.text); ok {
			name := m.group(1)
			if first, dup := byName[name]; dup {
				return nil, nil, domain.NewMalformedEntryError(sectionName, ln.num,
					fmt.Sprintf("%s already declared on line %d", name, blocks[first].line))
			}
			byName[name] = len(blocks)
			blocks = append(blocks, sourceBlock{name: name, line: ln.num, attrs: make(map[string]string)})
			continue
		}
		m, ok := matchLine(sourceAttributePattern, ln.text)
		if !ok {
			if indent(ln.text) < 4 {
				return nil, nil, domain.NewMalformedEntryError(sectionName, ln.num,
					fmt.Sprintf("unexpected line %q", ln.text))
			}
			continue
		}
		if len(blocks) == 0 {
			return nil, nil, domain.NewMalformedEntryError(sectionName, ln.num,
				fmt.Sprintf("attribute %q has no owning source", ln.text))
		}
		b := &blocks[len(blocks)-1]
		key := m.group(1)
		if _, seen := b.attrs[key]; !seen {
			b.keys = append(b.keys, key)
		}
		b.attrs[key] = m.group(2)
	}

	index := make(map[string]sourceBlock, len(blocks))
	for _, b := range blocks {
		index[b.name] = b
	}
	return blocks, index, nil
}

// parseCheckouts joins EXTERNAL SOURCES with CHECKOUT OPTIONS by pod name
func parseCheckouts(externalSection, optionsSection string) ([]domain.ExternalCheckout, error) {
	external, _, err := parseSourceBlocks(externalSection, sectionExternalSources)
	if err != nil {
		return nil, err
	}
	_, options, err := parseSourceBlocks(optionsSection, sectionCheckoutOptions)
	if err != nil {
		return nil, err
	}

	checkouts := make([]domain.ExternalCheckout, 0, len(external))
	for _, b := range external {
		source, err := resolveSource(b, options)
		if err != nil {
			return nil, err
		}
		checkouts = append(checkouts, domain.ExternalCheckout{Name: b.name, Source: source})
	}
	return checkouts, nil
}

func resolveSource(b sourceBlock, options map[string]sourceBlock) (domain.CheckoutSource, error) {
	if path, ok := b.get(attrPath); ok {
		return domain.PathSource(path), nil
	}

	declaredURL, ok := b.get(attrGit)
	if !ok {
		kind := ""
		if len(b.keys) > 0 {
			kind = b.keys[0]
		}
		return domain.CheckoutSource{}, domain.NewUnrecognizedSourceError(b.name, kind)
	}

	pin, ok := options[b.name]
	if !ok {
		return domain.CheckoutSource{}, domain.NewMissingCheckoutOptionError(b.name)
	}
	url := declaredURL
	if u, ok := pin.get(attrGit); ok {
		url = u
	}
	if commit, ok := pin.get(attrCommit); ok {
		return domain.GitCommitSource(commit, url), nil
	}
	if tag, ok := pin.get(attrTag); ok {
		return domain.GitTagSource(tag, url), nil
	}
	return domain.CheckoutSource{}, domain.NewMissingCheckoutOptionError(b.name)
}
