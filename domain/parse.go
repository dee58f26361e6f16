package domain

import (
	"context"
	"io"
	"time"
)

// Default lock file discovery settings
const (
	DefaultLockfileName   = "Podfile.lock"
	DefaultMaxConcurrency = 4
	DefaultTimeoutSeconds = 60
)

// DefaultIncludePatterns returns the glob patterns matched during a scan
func DefaultIncludePatterns() []string {
	return []string{"**/" + DefaultLockfileName}
}

// DefaultExcludePatterns returns the glob patterns skipped during a scan
func DefaultExcludePatterns() []string {
	return []string{"**/Pods/**", "**/node_modules/**", "**/.git/**"}
}

// ParseRequest asks for a single lock file to be parsed and reported
type ParseRequest struct {
	// Path of the lock file
	Path string

	// Report options
	ShowDependencies bool
	ShowChecksums    bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// ParseResponse is the result of parsing one lock file
type ParseResponse struct {
	Path        string          `json:"path" yaml:"path"`
	Lockfile    *Lockfile       `json:"lockfile" yaml:"lockfile"`
	Summary     LockfileSummary `json:"summary" yaml:"summary"`
	GeneratedAt string          `json:"generated_at" yaml:"generated_at"`
	Version     string          `json:"version" yaml:"version"`

	// Report options carried through to the formatter
	ShowDependencies bool `json:"-" yaml:"-"`
	ShowChecksums    bool `json:"-" yaml:"-"`
}

// ScanRequest asks for every lock file under Paths to be parsed
type ScanRequest struct {
	// Input files or directories
	Paths []string

	// Discovery options
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Execution options
	MaxConcurrency int
	Timeout        time.Duration
	Verbose        bool

	// Output configuration
	OutputFormat OutputFormat
	OutputWriter io.Writer
	OutputPath   string
}

// ScanFileResult records the outcome of parsing one discovered file.
// Exactly one of Lockfile and Error is set.
type ScanFileResult struct {
	Path      string    `json:"path" yaml:"path"`
	Lockfile  *Lockfile `json:"lockfile,omitempty" yaml:"lockfile,omitempty"`
	Error     string    `json:"error,omitempty" yaml:"error,omitempty"`
	ErrorCode string    `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Failed reports whether the file could not be parsed
func (r ScanFileResult) Failed() bool {
	return r.Lockfile == nil
}

// ScanSummary aggregates a scan
type ScanSummary struct {
	FilesFound  int `json:"files_found" yaml:"files_found"`
	FilesParsed int `json:"files_parsed" yaml:"files_parsed"`
	FilesFailed int `json:"files_failed" yaml:"files_failed"`
	TotalPods   int `json:"total_pods" yaml:"total_pods"`
	UniquePods  int `json:"unique_pods" yaml:"unique_pods"`
	Checkouts   int `json:"checkouts" yaml:"checkouts"`
}

// ScanResponse is the result of a scan
type ScanResponse struct {
	Files       []ScanFileResult `json:"files" yaml:"files"`
	Summary     ScanSummary      `json:"summary" yaml:"summary"`
	GeneratedAt string           `json:"generated_at" yaml:"generated_at"`
	Version     string           `json:"version" yaml:"version"`
}

// HasFailures reports whether any scanned file failed to parse
func (r *ScanResponse) HasFailures() bool {
	return r.Summary.FilesFailed > 0
}

// LockfileParser turns lock file text into a Lockfile
type LockfileParser interface {
	Parse(source []byte) (*Lockfile, error)
}

// LockfileService defines the core business logic for lock file parsing
type LockfileService interface {
	// Parse reads and parses a single lock file
	Parse(ctx context.Context, req ParseRequest) (*ParseResponse, error)

	// Scan parses every file in req.Paths, recording failures per file
	Scan(ctx context.Context, req ScanRequest) (*ScanResponse, error)
}

// FileReader defines the interface for reading and collecting lock files
type FileReader interface {
	// CollectLockfiles finds lock files in the given paths
	CollectLockfiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// IsLockfile checks if a path names a lock file
	IsLockfile(path string) bool

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// LockfileOutputFormatter defines the interface for formatting parse and scan results
type LockfileOutputFormatter interface {
	Write(response *ParseResponse, format OutputFormat, writer io.Writer) error
	WriteScan(response *ScanResponse, format OutputFormat, writer io.Writer) error
}
