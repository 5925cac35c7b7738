// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: flash :: put a built .uf2 onto the Pico's mass-storage volume
//
//  validate → resolve target → [build] → check artifact → copy
//
//  The Pico's bootloader watches its RPI-RP2 volume and reboots into the new
//  firmware once a complete UF2 has been written, so a plain byte copy is
//  the whole transfer. There is no rollback: a failed copy after a
//  successful --build-first leaves the build output in place.
// ─────────────────────────────────────────────────────────────────────────────

package flash

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	paths "github.com/arduino/go-paths-helper"

	"github.com/picotools/cli/internal/build"
	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/options"
	"github.com/picotools/cli/internal/target"
	"github.com/picotools/cli/internal/toolchain"
	"github.com/picotools/cli/internal/uf2"
	"github.com/picotools/cli/internal/ui"
)

// Extension is the artifact file extension, fixed by the UF2 format.
const Extension = ".uf2"

// ErrSameFile is wrapped in the TransferError raised when the destination
// is the artifact itself, e.g. -p pointing at the build directory.
var ErrSameFile = errors.New("source and destination are the same file")

// Options controls one upload.
type Options struct {
	// ProjectDir holds CMakeLists.txt; relative paths resolve against it.
	ProjectDir  string
	BuildDir    string
	BuildDirSet bool
	Target      string
	DevicePath  string

	// BuildFirst runs the build with Build and Runner before copying.
	BuildFirst bool
	Build      build.Options
	Runner     toolchain.Runner
}

// Result describes a completed upload.
type Result struct {
	Target      *target.Target
	Artifact    string // as shown to the user, e.g. build/blinky.uf2
	Destination string
	Bytes       int64
	// Image is nil when the artifact could not be read as UF2.
	Image *uf2.Info
	Build *build.Result
}

// ArtifactPath returns <buildDir>/<name>.uf2.
func ArtifactPath(buildDir, name string) string {
	return filepath.Join(buildDir, name+Extension)
}

// Run performs the upload.
func Run(opts Options) (*Result, error) {
	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = "."
	}
	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = options.DefaultBuildDir
	}

	// ── 1. inputs ─────────────────────────────────────────────────────────
	if opts.DevicePath == "" {
		return nil, errs.MissingArgument("no path supplied to Pico. Please supply one using -p")
	}
	if err := options.RequireDir("Pico", projectDir, opts.DevicePath); err != nil {
		return nil, err
	}
	if opts.BuildDirSet {
		if err := options.RequireDir("build directory", projectDir, buildDir); err != nil {
			return nil, err
		}
	}

	// ── 2. target ─────────────────────────────────────────────────────────
	tgt, err := target.Resolve(projectDir, opts.Target)
	if err != nil {
		return nil, err
	}
	if tgt.Source != target.SourceExplicit {
		ui.Info(fmt.Sprintf("No target provided - using target '%s' from %s", tgt.Name, tgt.Source))
		if tgt.Ambiguous() {
			ui.Warn(fmt.Sprintf("%s declares %d executables %v; flashing the first. Use -t to choose another",
				tgt.Source, len(tgt.Declared), tgt.Declared))
		}
	}
	res := &Result{Target: tgt}

	// ── 3. optional build ─────────────────────────────────────────────────
	if opts.BuildFirst {
		b := opts.Build
		b.ProjectDir = projectDir
		b.BuildDir = buildDir
		ui.SectionTitle("Building")
		br, err := build.Run(opts.Runner, b)
		if err != nil {
			return nil, err
		}
		res.Build = br
	}

	// ── 4. artifact ───────────────────────────────────────────────────────
	res.Artifact = ArtifactPath(buildDir, tgt.Name)
	src := resolve(projectDir, res.Artifact)
	info, err := os.Stat(src)
	if err != nil || info.IsDir() {
		return nil, errs.ArtifactNotFound(res.Artifact)
	}

	if img, err := uf2.InspectFile(src); err != nil {
		ui.Warn(fmt.Sprintf("'%s' does not look like a UF2 image (%v); copying anyway", res.Artifact, err))
	} else {
		res.Image = img
		ui.Step("image", img.String())
	}

	// ── 5. transfer ───────────────────────────────────────────────────────
	res.Destination = filepath.Join(opts.DevicePath, tgt.Name+Extension)
	dst := resolve(projectDir, res.Destination)
	// Creating dst would truncate src before a single byte is read.
	if di, err := os.Stat(dst); err == nil && os.SameFile(info, di) {
		return nil, errs.Transfer(res.Artifact, res.Destination, ErrSameFile)
	}

	ui.SectionTitle(fmt.Sprintf("Flashing '%s' to Pico at '%s'", res.Artifact, opts.DevicePath))
	sp := ui.NewSpinner("Copying...")
	sp.Start()
	n, err := copyFile(src, dst)
	if err != nil {
		sp.Stop(false, "Copying... failed.")
		return nil, errs.Transfer(res.Artifact, res.Destination, err)
	}
	sp.Stop(true, fmt.Sprintf("Copying... done. %d bytes written to %s", n, res.Destination))
	res.Bytes = n
	return res, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return paths.New(base).Join(p).String()
}

// copyFile writes src over dst byte for byte. The device volume may vanish
// as soon as the last block lands, so nothing is done to dst after Close.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
