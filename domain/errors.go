package domain

import (
	"errors"
	"fmt"
)

// DomainError represents errors in the domain layer
type DomainError struct {
	Code    string
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Domain error codes
const (
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeFileNotFound      = "FILE_NOT_FOUND"
	ErrCodeParseError        = "PARSE_ERROR"
	ErrCodeConfigError       = "CONFIG_ERROR"
	ErrCodeOutputError       = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
)

// Lock file parse error codes
const (
	// ErrCodeMalformedDocument: the document did not split into the expected sections
	ErrCodeMalformedDocument = "MALFORMED_DOCUMENT"

	// ErrCodePatternNotFound: a required scalar line is absent or invalid
	ErrCodePatternNotFound = "PATTERN_NOT_FOUND"

	// ErrCodeUnrecognizedSource: an external source is neither path nor git
	ErrCodeUnrecognizedSource = "UNRECOGNIZED_SOURCE"

	// ErrCodeMissingCheckoutOption: a git source has no commit or tag pin
	ErrCodeMissingCheckoutOption = "MISSING_CHECKOUT_OPTION"

	// ErrCodeMalformedEntry: a line inside a section does not fit its grammar
	ErrCodeMalformedEntry = "MALFORMED_ENTRY"
)

// NewDomainError creates a new domain error
func NewDomainError(code, message string, cause error) error {
	return DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(message string, cause error) error {
	return NewDomainError(ErrCodeInvalidInput, message, cause)
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string, cause error) error {
	return NewDomainError(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path), cause)
}

// NewParseError creates a parse error
func NewParseError(file string, cause error) error {
	return NewDomainError(ErrCodeParseError, fmt.Sprintf("failed to parse file: %s", file), cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) error {
	return NewDomainError(ErrCodeConfigError, message, cause)
}

// NewOutputError creates an output error
func NewOutputError(message string, cause error) error {
	return NewDomainError(ErrCodeOutputError, message, cause)
}

// NewUnsupportedFormatError creates an unsupported format error
func NewUnsupportedFormatError(format string) error {
	return NewDomainError(ErrCodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) error {
	return NewDomainError(ErrCodeInvalidInput, message, nil)
}

// NewMalformedDocumentError reports a wrong section count
func NewMalformedDocumentError(expected, actual int) error {
	return NewDomainError(ErrCodeMalformedDocument,
		fmt.Sprintf("expected %d sections separated by blank lines, found %d", expected, actual), nil)
}

// NewSectionSpacingError reports a section that is empty or surrounded by
// more than one blank line
func NewSectionSpacingError(position int) error {
	return NewDomainError(ErrCodeMalformedDocument,
		fmt.Sprintf("section %d is not separated from its neighbours by exactly one blank line", position), nil)
}

// NewSectionHeaderError reports a section whose first line is not the expected header
func NewSectionHeaderError(expected, found string) error {
	return NewDomainError(ErrCodeMalformedDocument,
		fmt.Sprintf("expected section %s, found %q", expected, found), nil)
}

// NewPatternNotFoundError reports a required line missing from a section
func NewPatternNotFoundError(section, field string, cause error) error {
	return NewDomainError(ErrCodePatternNotFound,
		fmt.Sprintf("%s: %s not found", section, field), cause)
}

// NewUnrecognizedSourceError reports an external source kind outside {path, git}
func NewUnrecognizedSourceError(name, kind string) error {
	return NewDomainError(ErrCodeUnrecognizedSource,
		fmt.Sprintf("EXTERNAL SOURCES: %s uses unrecognized source %q", name, kind), nil)
}

// NewMissingCheckoutOptionError reports a git source with no commit/tag pin
func NewMissingCheckoutOptionError(name string) error {
	return NewDomainError(ErrCodeMissingCheckoutOption,
		fmt.Sprintf("CHECKOUT OPTIONS: no commit or tag for git source %s", name), nil)
}

// NewMalformedEntryError reports a line that does not fit its section's grammar
func NewMalformedEntryError(section string, line int, message string) error {
	return NewDomainError(ErrCodeMalformedEntry,
		fmt.Sprintf("%s line %d: %s", section, line, message), nil)
}

// ErrorCode returns the code of the outermost DomainError in the chain
func ErrorCode(err error) string {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// HasErrorCode reports whether any DomainError in the chain carries code
func HasErrorCode(err error, code string) bool {
	for err != nil {
		var de DomainError
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Cause
	}
	return false
}
