package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ludo-technologies/podlock/domain"
)

// csvHeader lists one column per pod attribute
var csvHeader = []string{"name", "version", "dependencies", "checksum", "source"}

// LockfileFormatterImpl implements domain.LockfileOutputFormatter
type LockfileFormatterImpl struct {
	color bool
}

// NewLockfileFormatter creates a formatter with plain text output
func NewLockfileFormatter() *LockfileFormatterImpl { return &LockfileFormatterImpl{} }

// WithColor enables ANSI colors in text output
func (f *LockfileFormatterImpl) WithColor(enabled bool) *LockfileFormatterImpl {
	f.color = enabled
	return f
}

// Write renders a single parsed lock file
func (f *LockfileFormatterImpl) Write(resp *domain.ParseResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		for _, row := range podRows(resp.Lockfile) {
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteScan renders the result of scanning many lock files
func (f *LockfileFormatterImpl) WriteScan(resp *domain.ScanResponse, format domain.OutputFormat, w io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		_, err := io.WriteString(w, f.formatScanText(resp))
		return err
	case domain.OutputFormatJSON:
		return WriteJSON(w, resp)
	case domain.OutputFormatYAML:
		return WriteYAML(w, resp)
	case domain.OutputFormatCSV:
		// Failed files have no pods and produce no rows
		cw := csv.NewWriter(w)
		if err := cw.Write(append([]string{"file"}, csvHeader...)); err != nil {
			return err
		}
		for _, file := range resp.Files {
			if file.Failed() {
				continue
			}
			for _, row := range podRows(file.Lockfile) {
				if err := cw.Write(append([]string{file.Path}, row...)); err != nil {
					return err
				}
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *LockfileFormatterImpl) utils() *FormatUtils {
	if f.color {
		return NewColorFormatUtils()
	}
	return NewFormatUtils()
}

func (f *LockfileFormatterImpl) formatText(resp *domain.ParseResponse) string {
	u := f.utils()
	lock := resp.Lockfile
	var b strings.Builder

	b.WriteString(u.FormatMainHeader("Podfile.lock Report"))
	b.WriteString(u.FormatLabel("File", resp.Path))
	b.WriteString(u.FormatLabel("CocoaPods", lock.CocoaPodsVersion))
	b.WriteString(u.FormatLabel("Podfile checksum", lock.PodfileChecksum))
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Summary"))
	b.WriteString(u.FormatLabel("Pods", resp.Summary.Pods))
	b.WriteString(u.FormatLabel("Declared", resp.Summary.DeclaredDependencies))
	b.WriteString(u.FormatLabel("Constraints", resp.Summary.TransitiveConstraints))
	b.WriteString(u.FormatLabel("Spec repos", resp.Summary.SpecRepos))
	b.WriteString(u.FormatLabel("External sources", resp.Summary.Checkouts))
	if resp.Summary.Prereleases > 0 {
		b.WriteString(u.FormatLabel("Pre-releases", u.Colorize(ColorYellow, fmt.Sprint(resp.Summary.Prereleases))))
	}
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Pods"))
	for _, pod := range lock.Pods {
		b.WriteString(u.FormatItem(SectionPadding, pod.Name+" "+pod.Version.String()))
		if resp.ShowDependencies {
			for _, dep := range pod.Dependencies {
				b.WriteString(u.FormatItem(ItemPadding, "- "+dep.String()))
			}
		}
	}
	b.WriteString(u.FormatSectionSeparator())

	if len(lock.Dependencies) > 0 {
		b.WriteString(u.FormatSectionHeader("Dependencies"))
		for _, dep := range lock.Dependencies {
			b.WriteString(u.FormatItem(SectionPadding, dep.String()))
		}
		b.WriteString(u.FormatSectionSeparator())
	}

	if len(lock.SpecRepos) > 0 {
		b.WriteString(u.FormatSectionHeader("Spec Repos"))
		for _, url := range lock.SpecRepoURLs() {
			fmt.Fprintf(&b, "%s%s (%d)\n", strings.Repeat(" ", SectionPadding), url, len(lock.SpecRepos[url]))
		}
		b.WriteString(u.FormatSectionSeparator())
	}

	if len(lock.Checkouts) > 0 {
		b.WriteString(u.FormatSectionHeader("External Sources"))
		for _, c := range lock.Checkouts {
			b.WriteString(u.FormatItem(SectionPadding, c.Name+": "+c.Source.String()))
		}
		b.WriteString(u.FormatSectionSeparator())
	}

	if resp.ShowChecksums && len(lock.Checksums) > 0 {
		b.WriteString(u.FormatSectionHeader("Spec Checksums"))
		for _, pod := range lock.Pods {
			if sum, ok := lock.Checksums[pod.Name]; ok {
				b.WriteString(u.FormatItem(SectionPadding, pod.Name+": "+sum))
			}
		}
		b.WriteString(u.FormatSectionSeparator())
	}

	return b.String()
}

func (f *LockfileFormatterImpl) formatScanText(resp *domain.ScanResponse) string {
	u := f.utils()
	var b strings.Builder

	b.WriteString(u.FormatMainHeader("Podfile.lock Scan"))
	b.WriteString(u.FormatSectionHeader("Summary"))
	b.WriteString(u.FormatLabel("Files found", resp.Summary.FilesFound))
	b.WriteString(u.FormatLabel("Parsed", resp.Summary.FilesParsed))
	b.WriteString(u.FormatLabel("Failed", resp.Summary.FilesFailed))
	b.WriteString(u.FormatLabel("Total pods", resp.Summary.TotalPods))
	b.WriteString(u.FormatLabel("Unique pods", resp.Summary.UniquePods))
	b.WriteString(u.FormatLabel("External sources", resp.Summary.Checkouts))
	b.WriteString(u.FormatSectionSeparator())

	b.WriteString(u.FormatSectionHeader("Files"))
	for _, file := range resp.Files {
		if file.Failed() {
			fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat(" ", SectionPadding), u.FormatStatus(false), file.Path)
			b.WriteString(u.FormatItem(ItemPadding+SectionPadding, file.Error))
			continue
		}
		fmt.Fprintf(&b, "%s%s %s (%d pods, CocoaPods %s)\n",
			strings.Repeat(" ", SectionPadding), u.FormatStatus(true), file.Path,
			len(file.Lockfile.Pods), file.Lockfile.CocoaPodsVersion)
	}
	b.WriteString(u.FormatSectionSeparator())

	return b.String()
}

// podRows flattens a lock file into one CSV row per pod
func podRows(lock *domain.Lockfile) [][]string {
	rows := make([][]string, 0, len(lock.Pods))
	for _, pod := range lock.Pods {
		deps := make([]string, len(pod.Dependencies))
		for i, dep := range pod.Dependencies {
			deps[i] = dep.String()
		}
		rows = append(rows, []string{
			pod.Name,
			pod.Version.String(),
			strings.Join(deps, "; "),
			lock.Checksums[pod.Name],
			podSource(lock, pod.Name),
		})
	}
	return rows
}

// podSource describes where a pod comes from. Subspecs ("Core/Logger")
// resolve through their root pod.
func podSource(lock *domain.Lockfile, name string) string {
	root, _, _ := strings.Cut(name, "/")
	for _, n := range []string{name, root} {
		if src, ok := lock.Checkout(n); ok {
			return src.String()
		}
		if url, ok := lock.SpecRepoFor(n); ok {
			return "repo " + url
		}
	}
	return ""
}
