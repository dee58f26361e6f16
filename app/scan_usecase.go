package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/podlock/domain"
	svc "github.com/ludo-technologies/podlock/service"
)

// ScanUseCase parses every lock file under a set of paths
type ScanUseCase struct {
	service   domain.LockfileService
	formatter domain.LockfileOutputFormatter
	output    domain.ReportWriter
}

// NewScanUseCase creates a scan use case writing status lines to stderr
func NewScanUseCase(service domain.LockfileService, formatter domain.LockfileOutputFormatter) *ScanUseCase {
	return &ScanUseCase{
		service:   service,
		formatter: formatter,
		output:    svc.NewFileOutputWriter(nil),
	}
}

// Execute scans and writes the report. The report is written even when some
// files fail; the failure count is then returned as an error.
func (uc *ScanUseCase) Execute(ctx context.Context, req domain.ScanRequest) error {
	first := ""
	if len(req.Paths) > 0 {
		first = req.Paths[0]
	}
	if err := validateOutput(first, req.OutputFormat, req.OutputWriter, req.OutputPath); err != nil {
		return err
	}
	if req.MaxConcurrency < 0 {
		return domain.NewValidationError(fmt.Sprintf("max concurrency must be >= 0, got %d", req.MaxConcurrency))
	}

	response, err := uc.service.Scan(ctx, req)
	if err != nil {
		return err
	}

	if err := writeReport(uc.output, req.OutputWriter, req.OutputPath, req.OutputFormat, func(w io.Writer) error {
		return uc.formatter.WriteScan(response, req.OutputFormat, w)
	}); err != nil {
		return err
	}

	if response.HasFailures() {
		return domain.NewDomainError(domain.ErrCodeParseError,
			fmt.Sprintf("%d of %d lock files failed to parse", response.Summary.FilesFailed, response.Summary.FilesFound), nil)
	}
	return nil
}

// ScanUseCaseBuilder provides a fluent builder for ScanUseCase
type ScanUseCaseBuilder struct {
	service   domain.LockfileService
	formatter domain.LockfileOutputFormatter
	output    domain.ReportWriter
}

func NewScanUseCaseBuilder() *ScanUseCaseBuilder { return &ScanUseCaseBuilder{} }

func (b *ScanUseCaseBuilder) WithService(s domain.LockfileService) *ScanUseCaseBuilder {
	b.service = s
	return b
}

func (b *ScanUseCaseBuilder) WithFormatter(f domain.LockfileOutputFormatter) *ScanUseCaseBuilder {
	b.formatter = f
	return b
}

func (b *ScanUseCaseBuilder) WithOutputWriter(w domain.ReportWriter) *ScanUseCaseBuilder {
	b.output = w
	return b
}

func (b *ScanUseCaseBuilder) Build() (*ScanUseCase, error) {
	if b.service == nil || b.formatter == nil {
		return nil, fmt.Errorf("missing required dependencies")
	}
	uc := &ScanUseCase{
		service:   b.service,
		formatter: b.formatter,
		output:    b.output,
	}
	if uc.output == nil {
		uc.output = svc.NewFileOutputWriter(nil)
	}
	return uc, nil
}
