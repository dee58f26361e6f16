package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/podlock/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns []categoryPattern
}

type categoryPattern struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		codes:    initializeErrorCodes(),
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorCodes() map[string]domain.ErrorCategory {
	return map[string]domain.ErrorCategory{
		domain.ErrCodeInvalidInput:          domain.ErrorCategoryInput,
		domain.ErrCodeFileNotFound:          domain.ErrorCategoryInput,
		domain.ErrCodeConfigError:           domain.ErrorCategoryConfig,
		domain.ErrCodeOutputError:           domain.ErrorCategoryOutput,
		domain.ErrCodeUnsupportedFormat:     domain.ErrorCategoryOutput,
		domain.ErrCodeParseError:            domain.ErrorCategoryProcessing,
		domain.ErrCodeMalformedDocument:     domain.ErrorCategoryProcessing,
		domain.ErrCodePatternNotFound:       domain.ErrorCategoryProcessing,
		domain.ErrCodeUnrecognizedSource:    domain.ErrorCategoryProcessing,
		domain.ErrCodeMissingCheckoutOption: domain.ErrorCategoryProcessing,
		domain.ErrCodeMalformedEntry:        domain.ErrorCategoryProcessing,
	}
}

// initializeErrorPatterns covers errors that carry no domain code.
// Order matters: the first matching category wins.
func initializeErrorPatterns() []categoryPattern {
	return []categoryPattern{
		{domain.ErrorCategoryTimeout, []string{"timeout", "timed out", "deadline", "context canceled"}},
		{domain.ErrorCategoryConfig, []string{"config", "toml"}},
		{domain.ErrorCategoryInput, []string{"no such file", "not found", "permission denied", "cannot access", "no lock files"}},
		{domain.ErrorCategoryOutput, []string{"write", "output", "cannot create"}},
		{domain.ErrorCategoryProcessing, []string{"parse", "section", "malformed"}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	category := ec.categoryOf(err)
	message := err.Error()
	if category != domain.ErrorCategoryUnknown {
		message = ec.getCategoryMessage(category)
	}
	return &domain.CategorizedError{
		Category: category,
		Message:  message,
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categoryOf(err error) domain.ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.ErrorCategoryTimeout
	}

	if c, ok := ec.codes[domain.ErrorCode(err)]; ok {
		return c
	}

	msg := strings.ToLower(err.Error())
	for _, p := range ec.patterns {
		if containsAnyPattern(msg, p.patterns) {
			return p.category
		}
	}
	return domain.ErrorCategoryUnknown
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the path exists and points at a Podfile.lock",
			"Try: podlock scan . --verbose to see which files are discovered",
			"Ensure you have read permissions for the target files",
		},
		domain.ErrorCategoryConfig: {
			"Verify the configuration file format and values",
			"Try: podlock init to generate a valid .podlock.toml",
		},
		domain.ErrorCategoryTimeout: {
			"Scan a smaller directory or raise scan.timeout_seconds",
		},
		domain.ErrorCategoryOutput: {
			"Check write permissions for the output directory",
			"Supported formats are text, json, yaml and csv",
		},
		domain.ErrorCategoryProcessing: {
			"The lock file does not follow the format written by CocoaPods",
			"Regenerate it with: pod install",
			"Check for hand edits or merge conflict markers around the reported line",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

// getCategoryMessage returns a user-friendly message for an error category
func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input files or directories",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Scan timed out",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Lock file could not be parsed",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

// containsAnyPattern checks if a string contains any of the given patterns
func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
