package domain

import (
	"sort"
	"strconv"
	"strings"
)

// Lockfile is the structured form of a Podfile.lock document
type Lockfile struct {
	// Pods lists the resolved packages in document order
	Pods []Pod `json:"pods" yaml:"pods"`

	// Dependencies lists the top-level declared dependencies (DEPENDENCIES section)
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`

	// SpecRepos maps a registry URL to the pod names sourced from it
	SpecRepos map[string][]string `json:"spec_repos" yaml:"spec_repos"`

	// Checkouts lists pinned non-registry sources in EXTERNAL SOURCES order
	Checkouts []ExternalCheckout `json:"checkouts" yaml:"checkouts"`

	// Checksums maps a pod name to its 40-character podspec digest
	Checksums map[string]string `json:"checksums" yaml:"checksums"`

	// PodfileChecksum is the digest of the Podfile that produced this lock
	PodfileChecksum string `json:"podfile_checksum" yaml:"podfile_checksum"`

	// CocoaPodsVersion is the version of the tool that wrote the lock
	CocoaPodsVersion ToolVersion `json:"cocoapods_version" yaml:"cocoapods_version"`
}

// Pod is a resolved package with its transitive dependency constraints
type Pod struct {
	Name         string       `json:"name" yaml:"name"`
	Version      Version      `json:"version" yaml:"version"`
	Dependencies []Dependency `json:"dependencies" yaml:"dependencies"`
}

// Dependency names a package and an optional version requirement.
// Constraint is nil when the lock file gives none, which is distinct from empty text.
type Dependency struct {
	Name       string  `json:"name" yaml:"name"`
	Constraint *string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// HasConstraint reports whether a requirement was declared
func (d Dependency) HasConstraint() bool {
	return d.Constraint != nil
}

// String renders the dependency the way the lock file spells it
func (d Dependency) String() string {
	if d.Constraint == nil {
		return d.Name
	}
	return d.Name + " (" + *d.Constraint + ")"
}

// CheckoutKind identifies how a pinned source is resolved
type CheckoutKind string

const (
	CheckoutKindPath      CheckoutKind = "path"
	CheckoutKindGitTag    CheckoutKind = "git_tag"
	CheckoutKindGitCommit CheckoutKind = "git_commit"
)

// CheckoutSource is one of Path, GitTag or GitCommit.
// URL is only set for git sources.
type CheckoutSource struct {
	Kind  CheckoutKind `json:"kind" yaml:"kind"`
	Value string       `json:"value" yaml:"value"`
	URL   string       `json:"url,omitempty" yaml:"url,omitempty"`
}

// PathSource builds a local path checkout
func PathSource(path string) CheckoutSource {
	return CheckoutSource{Kind: CheckoutKindPath, Value: path}
}

// GitTagSource builds a checkout pinned to a git tag
func GitTagSource(tag, url string) CheckoutSource {
	return CheckoutSource{Kind: CheckoutKindGitTag, Value: tag, URL: url}
}

// GitCommitSource builds a checkout pinned to a git commit
func GitCommitSource(commit, url string) CheckoutSource {
	return CheckoutSource{Kind: CheckoutKindGitCommit, Value: commit, URL: url}
}

// IsGit reports whether the source is a git reference
func (s CheckoutSource) IsGit() bool {
	return s.Kind == CheckoutKindGitTag || s.Kind == CheckoutKindGitCommit
}

func (s CheckoutSource) String() string {
	switch s.Kind {
	case CheckoutKindPath:
		return "path " + s.Value
	case CheckoutKindGitTag:
		return "git " + s.URL + " tag " + s.Value
	case CheckoutKindGitCommit:
		return "git " + s.URL + " commit " + s.Value
	default:
		return string(s.Kind) + " " + s.Value
	}
}

// ExternalCheckout pins a pod to a non-registry source
type ExternalCheckout struct {
	Name   string         `json:"name" yaml:"name"`
	Source CheckoutSource `json:"source" yaml:"source"`
}

// Version is a pod version: 1-4 dot-separated numeric groups and an optional
// pre-release suffix
type Version struct {
	Segments   []int
	Prerelease string
	raw        string
}

// NewVersion builds a Version from already-validated parts
func NewVersion(raw string, segments []int, prerelease string) Version {
	return Version{Segments: segments, Prerelease: prerelease, raw: raw}
}

// String returns the version exactly as written in the lock file
func (v Version) String() string {
	if v.raw != "" {
		return v.raw
	}
	parts := make([]string, len(v.Segments))
	for i, s := range v.Segments {
		parts[i] = strconv.Itoa(s)
	}
	out := strings.Join(parts, ".")
	if v.Prerelease != "" {
		out += "-" + v.Prerelease
	}
	return out
}

// IsPrerelease reports whether the version carries a pre-release tag
func (v Version) IsPrerelease() bool {
	return v.Prerelease != ""
}

// MarshalText renders the version as its original text
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// ToolVersion is the major.minor.patch version of CocoaPods
type ToolVersion struct {
	Major uint64
	Minor uint64
	Patch uint64
}

func (v ToolVersion) String() string {
	return strconv.FormatUint(v.Major, 10) + "." +
		strconv.FormatUint(v.Minor, 10) + "." +
		strconv.FormatUint(v.Patch, 10)
}

// MarshalText renders the version as major.minor.patch
func (v ToolVersion) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Pod returns the resolved pod with the given name
func (l *Lockfile) Pod(name string) (Pod, bool) {
	for _, p := range l.Pods {
		if p.Name == name {
			return p, true
		}
	}
	return Pod{}, false
}

// Checkout returns the pinned source for the given pod name
func (l *Lockfile) Checkout(name string) (CheckoutSource, bool) {
	for _, c := range l.Checkouts {
		if c.Name == name {
			return c.Source, true
		}
	}
	return CheckoutSource{}, false
}

// SpecRepoFor returns the registry URL a pod was declared under
func (l *Lockfile) SpecRepoFor(name string) (string, bool) {
	for _, url := range l.SpecRepoURLs() {
		for _, n := range l.SpecRepos[url] {
			if n == name {
				return url, true
			}
		}
	}
	return "", false
}

// SpecRepoURLs returns the registry URLs in sorted order
func (l *Lockfile) SpecRepoURLs() []string {
	urls := make([]string, 0, len(l.SpecRepos))
	for url := range l.SpecRepos {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// LockfileSummary holds aggregate counts for reports
type LockfileSummary struct {
	Pods                  int    `json:"pods" yaml:"pods"`
	TransitiveConstraints int    `json:"transitive_constraints" yaml:"transitive_constraints"`
	DeclaredDependencies  int    `json:"declared_dependencies" yaml:"declared_dependencies"`
	SpecRepos             int    `json:"spec_repos" yaml:"spec_repos"`
	Checkouts             int    `json:"checkouts" yaml:"checkouts"`
	Checksums             int    `json:"checksums" yaml:"checksums"`
	Prereleases           int    `json:"prereleases" yaml:"prereleases"`
	CocoaPodsVersion      string `json:"cocoapods_version" yaml:"cocoapods_version"`
}

// Summary computes aggregate counts over the lock file
func (l *Lockfile) Summary() LockfileSummary {
	s := LockfileSummary{
		Pods:                 len(l.Pods),
		DeclaredDependencies: len(l.Dependencies),
		SpecRepos:            len(l.SpecRepos),
		Checkouts:            len(l.Checkouts),
		Checksums:            len(l.Checksums),
		CocoaPodsVersion:     l.CocoaPodsVersion.String(),
	}
	for _, p := range l.Pods {
		s.TransitiveConstraints += len(p.Dependencies)
		if p.Version.IsPrerelease() {
			s.Prereleases++
		}
	}
	return s
}
