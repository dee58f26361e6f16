package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/ludo-technologies/podlock/internal/lockfile"
	"github.com/ludo-technologies/podlock/internal/version"
)

// LockfileServiceImpl reads lock files from disk and parses them
type LockfileServiceImpl struct {
	fileReader domain.FileReader
	parser     domain.LockfileParser
	progress   domain.ProgressManager
	verbose    io.Writer
}

// NewLockfileService creates a service with the default reader and parser
// and no progress output
func NewLockfileService() *LockfileServiceImpl {
	return &LockfileServiceImpl{
		fileReader: NewFileReader(),
		parser:     lockfile.New(),
		progress:   NewNoopProgressManager(),
	}
}

// WithFileReader replaces the file reader
func (s *LockfileServiceImpl) WithFileReader(fr domain.FileReader) *LockfileServiceImpl {
	s.fileReader = fr
	return s
}

// WithParser replaces the parser
func (s *LockfileServiceImpl) WithParser(p domain.LockfileParser) *LockfileServiceImpl {
	s.parser = p
	return s
}

// WithProgress sets the progress manager used by Scan
func (s *LockfileServiceImpl) WithProgress(pm domain.ProgressManager) *LockfileServiceImpl {
	s.progress = pm
	return s
}

// WithVerboseWriter sets where Scan reports each file when req.Verbose is set
func (s *LockfileServiceImpl) WithVerboseWriter(w io.Writer) *LockfileServiceImpl {
	s.verbose = w
	return s
}

// Parse reads and parses the lock file at req.Path
func (s *LockfileServiceImpl) Parse(ctx context.Context, req domain.ParseRequest) (*domain.ParseResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lock, err := s.parseFile(req.Path)
	if err != nil {
		return nil, err
	}

	return &domain.ParseResponse{
		Path:             req.Path,
		Lockfile:         lock,
		Summary:          lock.Summary(),
		GeneratedAt:      time.Now().Format(time.RFC3339),
		Version:          version.Version,
		ShowDependencies: req.ShowDependencies,
		ShowChecksums:    req.ShowChecksums,
	}, nil
}

// Scan collects lock files under req.Paths and parses them concurrently. A
// file that fails to parse is recorded in its ScanFileResult and does not
// stop the others.
func (s *LockfileServiceImpl) Scan(ctx context.Context, req domain.ScanRequest) (*domain.ScanResponse, error) {
	files, err := s.fileReader.CollectLockfiles(req.Paths, req.Recursive, req.IncludePatterns, req.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no lock files found in the specified paths", nil)
	}

	results := make([]domain.ScanFileResult, len(files))
	parser := NewParseCache(s.parser)
	var processed atomic.Int64
	var progressMu sync.Mutex

	s.progress.Initialize(len(files))
	s.progress.Start()
	defer s.progress.Close()

	tasks := make([]domain.ExecutableTask, len(files))
	for i, path := range files {
		tasks[i] = NewSimpleTask(path, true, func(ctx context.Context) (interface{}, error) {
			results[i] = s.scanFile(parser, path)

			n := processed.Add(1)
			progressMu.Lock()
			s.progress.Update(int(n), len(files))
			if req.Verbose {
				s.report(results[i])
			}
			progressMu.Unlock()
			return nil, nil
		})
	}

	executor := NewParallelExecutor()
	executor.SetMaxConcurrency(req.MaxConcurrency)
	if req.Timeout > 0 {
		executor.SetTimeout(req.Timeout)
	}
	if err := executor.Execute(ctx, tasks); err != nil {
		s.progress.Complete(false)
		return nil, err
	}
	s.progress.Complete(true)

	return &domain.ScanResponse{
		Files:       results,
		Summary:     summarizeScan(results),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

func (s *LockfileServiceImpl) parseFile(path string) (*domain.Lockfile, error) {
	content, err := s.fileReader.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lock, err := s.parser.Parse(content)
	if err != nil {
		return nil, domain.NewParseError(path, err)
	}
	return lock, nil
}

func (s *LockfileServiceImpl) scanFile(parser domain.LockfileParser, path string) domain.ScanFileResult {
	content, err := s.fileReader.ReadFile(path)
	if err == nil {
		var lock *domain.Lockfile
		if lock, err = parser.Parse(content); err == nil {
			return domain.ScanFileResult{Path: path, Lockfile: lock}
		}
	}
	return domain.ScanFileResult{
		Path:      path,
		Error:     err.Error(),
		ErrorCode: domain.ErrorCode(err),
	}
}

// report writes one verbose line for a scanned file
func (s *LockfileServiceImpl) report(r domain.ScanFileResult) {
	if s.verbose == nil {
		return
	}
	if r.Failed() {
		fmt.Fprintf(s.verbose, "failed  %s: %s\n", r.Path, r.Error)
		return
	}
	fmt.Fprintf(s.verbose, "parsed  %s (%d pods)\n", r.Path, len(r.Lockfile.Pods))
}

func summarizeScan(results []domain.ScanFileResult) domain.ScanSummary {
	summary := domain.ScanSummary{FilesFound: len(results)}
	unique := make(map[string]struct{})

	for _, r := range results {
		if r.Failed() {
			summary.FilesFailed++
			continue
		}
		summary.FilesParsed++
		summary.TotalPods += len(r.Lockfile.Pods)
		summary.Checkouts += len(r.Lockfile.Checkouts)
		for _, pod := range r.Lockfile.Pods {
			unique[pod.Name] = struct{}{}
		}
	}
	summary.UniquePods = len(unique)
	return summary
}
