// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: build :: cmake configure + make
//
//    1. mkdir -p <build-dir>
//    2. PICO_SDK_PATH=<sdk> cmake -S <project> -B <build-dir>
//    3. make -C <build-dir>
//
//  The first failing step ends the run; its raw stderr is handed back in
//  the returned error. Nothing is retried.
// ─────────────────────────────────────────────────────────────────────────────

package build

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	paths "github.com/arduino/go-paths-helper"

	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/toolchain"
	"github.com/picotools/cli/internal/ui"
)

// SDKEnv is the variable the Pico SDK's CMake scripts read.
const SDKEnv = "PICO_SDK_PATH"

// Options controls one build.
type Options struct {
	// ProjectDir holds CMakeLists.txt. Relative BuildDir values are
	// resolved against it.
	ProjectDir string
	BuildDir   string
	SDKPath    string

	CMake string // defaults to "cmake"
	Make  string // defaults to "make"
	Jobs  int    // make -j; 0 leaves make's default

	// Verbose prints each command line before it runs.
	Verbose bool
}

// Result holds the outputs of a successful build.
type Result struct {
	BuildDir string
	Warnings []string
}

// step is one external tool call of the build.
type step struct {
	title string // progress line, e.g. "Updating CMake"
	tool  string // name used in diagnostics
	inv   toolchain.Invocation
}

// Run configures and builds the project with r.
func Run(r toolchain.Runner, opts Options) (*Result, error) {
	if opts.SDKPath == "" {
		return nil, errs.MissingArgument(
			"no path given to Pico SDK. Please supply one using: '-s <path-to-sdk>' or run 'picotools attach-sdk <path>'")
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = options.DefaultBuildDir
	}
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	absBuild := buildDir
	if !filepath.IsAbs(absBuild) {
		absBuild = filepath.Join(projectDir, buildDir)
	}

	if err := paths.New(absBuild).MkdirAll(); err != nil {
		return nil, errs.BuildDir(buildDir, err)
	}

	result := &Result{BuildDir: buildDir}
	for _, s := range steps(projectDir, absBuild, opts) {
		// echoed before the spinner owns the line
		if opts.Verbose {
			ui.Step("exec", s.inv.String())
		}
		sp := ui.NewSpinner(s.title + "...")
		sp.Start()

		res, err := r.Run(s.inv)
		if err != nil {
			sp.Stop(false, s.title+"... failed.")
			return nil, toolFailure(s, res, err)
		}
		sp.Stop(true, s.title+"... done.")
		result.Warnings = append(result.Warnings, res.Warnings()...)
	}
	return result, nil
}

func steps(projectDir, buildDir string, opts Options) []step {
	cmake := opts.CMake
	if cmake == "" {
		cmake = "cmake"
	}
	mk := opts.Make
	if mk == "" {
		mk = "make"
	}
	makeArgs := []string{"-C", buildDir}
	if opts.Jobs > 0 {
		makeArgs = append(makeArgs, "-j", strconv.Itoa(opts.Jobs))
	}

	return []step{
		{
			title: "Updating CMake",
			tool:  "CMake",
			inv: toolchain.Invocation{
				Binary: cmake,
				Args:   []string{"-S", projectDir, "-B", buildDir},
				Env:    []string{SDKEnv + "=" + opts.SDKPath},
			},
		},
		{
			title: "Building",
			tool:  "make",
			inv: toolchain.Invocation{
				Binary: mk,
				Args:   makeArgs,
			},
		},
	}
}

func toolFailure(s step, res *toolchain.Result, err error) error {
	diag := ""
	if res != nil {
		diag = res.Stderr
	}
	var exitErr *toolchain.ExitError
	if errors.As(err, &exitErr) {
		return errs.ExternalTool(s.tool,
			fmt.Sprintf("%s failed with return code %d", s.title, exitErr.Code), exitErr.Stderr, err)
	}
	return errs.ExternalTool(s.tool, s.title+" failed", diag, err)
}
