package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ludo-technologies/podlock/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockfileService_Parse(t *testing.T) {
	svc := NewLockfileService()

	resp, err := svc.Parse(context.Background(), domain.ParseRequest{
		Path:             fixturePath("complete"),
		ShowDependencies: true,
	})
	require.NoError(t, err)

	assert.Equal(t, fixturePath("complete"), resp.Path)
	assert.Equal(t, 14, resp.Summary.Pods)
	assert.True(t, resp.ShowDependencies)
	assert.False(t, resp.ShowChecksums)
	assert.NotEmpty(t, resp.GeneratedAt)
	_, err = time.Parse(time.RFC3339, resp.GeneratedAt)
	assert.NoError(t, err)
}

func TestLockfileService_ParseErrors(t *testing.T) {
	svc := NewLockfileService()

	_, err := svc.Parse(context.Background(), domain.ParseRequest{Path: filepath.Join(t.TempDir(), "Podfile.lock")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))

	_, err = svc.Parse(context.Background(), domain.ParseRequest{Path: fixturePath("broken")})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeParseError, domain.ErrorCode(err))
	assert.True(t, domain.HasErrorCode(err, domain.ErrCodeMissingCheckoutOption))
	assert.Contains(t, err.Error(), fixturePath("broken"))
}

func TestLockfileService_ParseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLockfileService().Parse(ctx, domain.ParseRequest{Path: fixturePath("minimal")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLockfileService_ScanFixtures(t *testing.T) {
	root := filepath.Join("..", "testdata", "lockfiles")

	resp, err := NewLockfileService().Scan(context.Background(), domain.ScanRequest{
		Paths:           []string{root},
		Recursive:       true,
		IncludePatterns: domain.DefaultIncludePatterns(),
		ExcludePatterns: domain.DefaultExcludePatterns(),
		MaxConcurrency:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ScanSummary{
		FilesFound:  4,
		FilesParsed: 3,
		FilesFailed: 1,
		TotalPods:   18,
		UniquePods:  16,
		Checkouts:   3,
	}, resp.Summary)
	assert.True(t, resp.HasFailures())

	paths := make([]string, len(resp.Files))
	for i, f := range resp.Files {
		paths[i] = filepath.ToSlash(f.Path)
	}
	assert.Equal(t, []string{
		"../testdata/lockfiles/app/ios/Podfile.lock",
		"../testdata/lockfiles/broken/Podfile.lock",
		"../testdata/lockfiles/complete/Podfile.lock",
		"../testdata/lockfiles/minimal/Podfile.lock",
	}, paths, "results keep discovery order")

	broken := resp.Files[1]
	assert.True(t, broken.Failed())
	assert.Equal(t, domain.ErrCodeMissingCheckoutOption, broken.ErrorCode)
	assert.Contains(t, broken.Error, "Tagged")
}

func TestLockfileService_ScanVerbose(t *testing.T) {
	var out bytes.Buffer
	svc := NewLockfileService().WithVerboseWriter(&out)

	_, err := svc.Scan(context.Background(), domain.ScanRequest{
		Paths:     []string{filepath.Join("..", "testdata", "lockfiles", "minimal", "Podfile.lock"), filepath.Join("..", "testdata", "lockfiles", "broken", "Podfile.lock")},
		Recursive: true,
		Verbose:   true,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "parsed  ")
	assert.Contains(t, text, "failed  ")
	assert.Equal(t, 2, strings.Count(text, "\n"))
}

func TestLockfileService_ScanNoFiles(t *testing.T) {
	_, err := NewLockfileService().Scan(context.Background(), domain.ScanRequest{
		Paths:           []string{t.TempDir()},
		Recursive:       true,
		IncludePatterns: domain.DefaultIncludePatterns(),
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}

// stubReader serves in-memory files and fails reads for paths in failing
type stubReader struct {
	files   map[string][]byte
	failing map[string]bool
}

func (r *stubReader) CollectLockfiles(paths []string, _ bool, _, _ []string) ([]string, error) {
	return paths, nil
}

func (r *stubReader) ReadFile(path string) ([]byte, error) {
	if r.failing[path] {
		return nil, domain.NewFileNotFoundError(path, errors.New("gone"))
	}
	return r.files[path], nil
}

func (r *stubReader) IsLockfile(string) bool { return true }

func (r *stubReader) FileExists(path string) (bool, error) {
	_, ok := r.files[path]
	return ok, nil
}

// countingParser records how many documents it parsed
type countingParser struct {
	mu    sync.Mutex
	calls int
}

func (p *countingParser) Parse(source []byte) (*domain.Lockfile, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if string(source) == "bad" {
		return nil, domain.NewMalformedDocumentError(8, 1)
	}
	return &domain.Lockfile{Pods: []domain.Pod{{Name: string(source)}}}, nil
}

// recordingProgress captures the calls made by Scan
type recordingProgress struct {
	mu        sync.Mutex
	total     int
	updates   int
	completed *bool
	closed    bool
}

func (p *recordingProgress) Initialize(maxValue int) { p.total = maxValue }

func (p *recordingProgress) Start() {}

func (p *recordingProgress) Complete(success bool) { p.completed = &success }

func (p *recordingProgress) Update(processed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates++
}

func (p *recordingProgress) SetWriter(io.Writer) {}

func (p *recordingProgress) IsInteractive() bool { return false }

func (p *recordingProgress) Close() { p.closed = true }

func TestLockfileService_ScanRecordsFailuresPerFile(t *testing.T) {
	reader := &stubReader{
		files:   map[string][]byte{"a": []byte("A"), "b": []byte("bad"), "d": []byte("A")},
		failing: map[string]bool{"c": true},
	}
	parser := &countingParser{}
	progress := &recordingProgress{}

	svc := NewLockfileService().WithFileReader(reader).WithParser(parser).WithProgress(progress)
	resp, err := svc.Scan(context.Background(), domain.ScanRequest{Paths: []string{"a", "b", "c", "d"}, MaxConcurrency: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, parser.calls, "unreadable files are never parsed and identical content is parsed once")
	assert.Equal(t, domain.ScanSummary{FilesFound: 4, FilesParsed: 2, FilesFailed: 2, TotalPods: 2, UniquePods: 1}, resp.Summary)
	assert.Equal(t, domain.ErrCodeMalformedDocument, resp.Files[1].ErrorCode)
	assert.Equal(t, domain.ErrCodeFileNotFound, resp.Files[2].ErrorCode)

	assert.Equal(t, 4, progress.total)
	assert.Equal(t, 4, progress.updates)
	require.NotNil(t, progress.completed)
	assert.True(t, *progress.completed)
	assert.True(t, progress.closed)
}
