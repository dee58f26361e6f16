package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/podlock/domain"
	svc "github.com/ludo-technologies/podlock/service"
)

// ParseUseCase parses a single lock file and writes the report
type ParseUseCase struct {
	service   domain.LockfileService
	formatter domain.LockfileOutputFormatter
	output    domain.ReportWriter
}

// NewParseUseCase creates a parse use case writing status lines to stderr
func NewParseUseCase(service domain.LockfileService, formatter domain.LockfileOutputFormatter) *ParseUseCase {
	return &ParseUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute parses req.Path and writes the formatted result
func (uc *ParseUseCase) Execute(ctx context.Context, req domain.ParseRequest) error {
	if err := validateOutput(req.Path, req.OutputFormat, req.OutputWriter, req.OutputPath); err != nil {
		return err
	}

	response, err := uc.service.Parse(ctx, req)
	if err != nil {
		return err
	}

	return writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.Write(response, req.OutputFormat, w)
	})
}

// validateOutput checks the fields every request shares
func validateOutput(input string, format domain.OutputFormat, writer io.Writer, path string) error {
	if input == "" {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("no input path specified"))
	}
	if _, err := domain.ParseOutputFormat(string(format)); err != nil {
		return err
	}
	if writer == nil && path == "" {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer or output path is required"))
	}
	return nil
}

func writeReport(output domain.ReportWriter, writer io.Writer, path string, format domain.OutputFormat, writeFunc func(io.Writer) error) error {
	var out io.Writer
	if path == "" {
		out = writer
	}
	if err := output.Write(out, path, format, writeFunc); err != nil {
		if domain.ErrorCode(err) != "" {
			return err
		}
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// ParseUseCaseBuilder provides a fluent builder for ParseUseCase
type ParseUseCaseBuilder struct {
	service   domain.LockfileService
	formatter domain.LockfileOutputFormatter
	output    domain.ReportWriter
}

func NewParseUseCaseBuilder() *ParseUseCaseBuilder { return &ParseUseCaseBuilder{} }

func (b *ParseUseCaseBuilder) WithService(s domain.LockfileService) *ParseUseCaseBuilder {
	b.service = s
	return b
}

func (b *ParseUseCaseBuilder) WithFormatter(f domain.LockfileOutputFormatter) *ParseUseCaseBuilder {
	b.formatter = f
	return b
}

func (b *ParseUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *ParseUseCaseBuilder {
	b.output = w
	return b
}

func (b *ParseUseCaseBuilder) Build() (*ParseUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &ParseUseCase{
		service:   b.service,
		formatter: b.formatter,
		output:    b.output,
	}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
