// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: check :: preflight a project without building or flashing
//
//  Looks at everything build and upload would need (target, SDK, tools,
//  artifact) and reports every problem at once instead of stopping at the
//  first one.
// ─────────────────────────────────────────────────────────────────────────────

package check

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/flash"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/target"
	"github.com/picotools/cli/internal/toolchain"
	"github.com/picotools/cli/internal/uf2"
	"github.com/picotools/cli/internal/ui"
)

// Options controls the check command.
type Options struct {
	ProjectDir string
	BuildDir   string
	Target     string
	SDKPath    string
	SDKFrom    string
	// Tools are the binaries that must be on PATH.
	Tools []string
	// Unknown lists manifest keys picotools ignored.
	Unknown []string
}

// Issue is a single warning or error found during check.
type Issue struct {
	Subject string
	Message string
	IsError bool
	// Err is set on errors and decides the exit code.
	Err error
}

// Report holds the results of a check run.
type Report struct {
	Target   string
	Artifact *uf2.Info
	Warnings []Issue
	Errors   []Issue
}

func (r *Report) warn(subject, msg string) {
	r.Warnings = append(r.Warnings, Issue{Subject: subject, Message: msg})
}

func (r *Report) fail(subject string, err error) {
	r.Errors = append(r.Errors, Issue{Subject: subject, Message: err.Error(), IsError: true, Err: err})
}

// Err returns the first error found, or nil.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	first := r.Errors[0].Err
	if len(r.Errors) == 1 {
		return first
	}
	var e *errs.Error
	if errors.As(first, &e) {
		return &errs.Error{
			Kind:    e.Kind,
			Message: fmt.Sprintf("%d problems found, first: %s", len(r.Errors), e.Message),
			Path:    e.Path,
			Err:     e.Err,
		}
	}
	return fmt.Errorf("%d problems found, first: %w", len(r.Errors), first)
}

// Run inspects the project without stopping early. Every problem lands in
// the report.
func Run(opts Options) *Report {
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = options.DefaultBuildDir
	}
	report := &Report{}

	for _, k := range opts.Unknown {
		report.warn("picotools.toml", fmt.Sprintf("unknown key %q ignored", k))
	}

	// target
	tgt, err := target.Resolve(projectDir, opts.Target)
	if err != nil {
		report.fail("target", err)
	} else {
		report.Target = tgt.Name
		if tgt.Ambiguous() {
			report.warn("target", fmt.Sprintf("%s declares %v; upload picks '%s' unless -t is given",
				tgt.Source, tgt.Declared, tgt.Name))
		}
	}

	// sdk
	b := options.Build{BuildDir: buildDir, SDKPath: opts.SDKPath, SDKFrom: opts.SDKFrom}
	if err := b.Validate(projectDir); err != nil {
		report.fail("sdk", err)
	}

	// tools
	for _, tool := range opts.Tools {
		if !toolchain.Installed(tool) {
			report.fail("toolchain", &errs.Error{
				Kind:    errs.KindExternalTool,
				Message: fmt.Sprintf("'%s' not found on PATH", tool),
				Tool:    tool,
			})
		}
	}

	// artifact
	if report.Target != "" {
		rel := flash.ArtifactPath(buildDir, report.Target)
		abs := rel
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(projectDir, rel)
		}
		if info, err := os.Stat(abs); err != nil || info.IsDir() {
			report.warn("artifact", fmt.Sprintf("'%s' not built yet", rel))
		} else if img, err := uf2.InspectFile(abs); err != nil {
			report.warn("artifact", fmt.Sprintf("'%s' is not a UF2 image: %v", rel, err))
		} else {
			report.Artifact = img
		}
	}
	return report
}

// PrintReport renders the check report.
func PrintReport(report *Report) {
	if report.Target != "" {
		ui.Step("target", report.Target)
	}
	if report.Artifact != nil {
		ui.Step("image", report.Artifact.String())
	}

	if len(report.Warnings) > 0 {
		ui.SectionTitle(fmt.Sprintf("Warnings (%d)", len(report.Warnings)))
		for _, w := range report.Warnings {
			ui.Warn(fmt.Sprintf("%s  %s", w.Subject, w.Message))
		}
	}
	if len(report.Errors) > 0 {
		ui.SectionTitle(fmt.Sprintf("Errors (%d)", len(report.Errors)))
		for _, e := range report.Errors {
			ui.Fail(fmt.Sprintf("%s  %s", e.Subject, e.Message))
		}
		return
	}

	summary := fmt.Sprintf("Project ready - %d warning(s)", len(report.Warnings))
	ui.Success(summary)
}
