package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/podlock/domain"
)

// manifestLockName is the copy of Podfile.lock that CocoaPods keeps under Pods/
const manifestLockName = "Manifest.lock"

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectLockfiles finds lock files in the given paths.
//
// Files named on the command line are taken as-is unless an exclude pattern
// matches them. Directories are walked and each file is matched against the
// include patterns, relative to the directory being walked. With no include
// patterns, any file IsLockfile accepts is collected.
func (f *FileReaderImpl) CollectLockfiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	if err := validatePatterns(includePatterns, excludePatterns); err != nil {
		return nil, err
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if !matchesAny(excludePatterns, filepath.ToSlash(filepath.Clean(path))) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// IsLockfile reports whether path names a CocoaPods lock file
func (f *FileReaderImpl) IsLockfile(path string) bool {
	base := filepath.Base(path)
	return base == domain.DefaultLockfileName || base == manifestLockName
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(root string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped; the rest of the tree is still walked
			if d != nil && d.IsDir() && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		if d.IsDir() {
			if !recursive || strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if f.shouldIncludeFile(filepath.ToSlash(rel), includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(root, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", root, err)
	}
	return files, nil
}

// shouldIncludeFile applies exclude patterns first, then include patterns.
// rel is slash-separated and relative to the walk root.
func (f *FileReaderImpl) shouldIncludeFile(rel string, includePatterns, excludePatterns []string) bool {
	if matchesAny(excludePatterns, rel) {
		return false
	}
	if len(includePatterns) == 0 {
		return f.IsLockfile(rel)
	}
	return matchesAny(includePatterns, rel)
}

// matchesAny matches path, and its base name, against each glob
func matchesAny(patterns []string, path string) bool {
	base := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

// validatePatterns rejects globs doublestar cannot compile
func validatePatterns(groups ...[]string) error {
	for _, patterns := range groups {
		for _, pattern := range patterns {
			if !doublestar.ValidatePattern(pattern) {
				return domain.NewInvalidInputError(fmt.Sprintf("invalid glob pattern: %s", pattern), nil)
			}
		}
	}
	return nil
}
