// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: manifest :: optional per-project picotools.toml
//
//  Lets a project pin the values otherwise passed on every invocation:
//
//    [project]
//    target = "blinky"
//
//    [build]
//    directory = "build"
//    sdk_path  = "../pico-sdk"
//
//    [toolchain]
//    cmake = "cmake"
//    make  = "make"
//    jobs  = 4
//
//  Command-line flags always win over the manifest. Relative sdk_path values
//  are taken relative to the manifest's directory.
// ─────────────────────────────────────────────────────────────────────────────

package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/picotools/cli/internal/errs"
)

// FileName is the manifest file looked up in the project directory.
const FileName = "picotools.toml"

// Manifest is the in-memory representation of picotools.toml.
type Manifest struct {
	Project   ProjectConfig   `toml:"project"`
	Build     BuildConfig     `toml:"build"`
	Toolchain ToolchainConfig `toml:"toolchain"`

	// Path is the file the manifest was read from; empty when absent.
	Path string `toml:"-"`
	// Unknown lists keys present in the file that picotools does not use.
	Unknown []string `toml:"-"`
}

// ProjectConfig maps to [project].
type ProjectConfig struct {
	Target string `toml:"target"`
}

// BuildConfig maps to [build].
type BuildConfig struct {
	Directory string `toml:"directory"`
	SDKPath   string `toml:"sdk_path"`
}

// ToolchainConfig maps to [toolchain].
type ToolchainConfig struct {
	CMake string `toml:"cmake"`
	Make  string `toml:"make"`
	Jobs  int    `toml:"jobs"`
}

// Load reads picotools.toml from dir. A missing file yields an empty
// manifest, not an error.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errs.Manifest(path, err)
	}

	m := &Manifest{}
	undecoded, err := decodeTOML(data, m)
	if err != nil {
		return nil, errs.Manifest(path, fmt.Errorf("parsing: %w", err))
	}
	m.Path = path
	m.Unknown = undecoded
	sort.Strings(m.Unknown)

	if m.Toolchain.Jobs < 0 {
		return nil, errs.Manifest(path, errors.New("toolchain.jobs must not be negative"))
	}
	if m.Build.SDKPath != "" && !filepath.IsAbs(m.Build.SDKPath) {
		m.Build.SDKPath = filepath.Join(dir, m.Build.SDKPath)
	}
	m.Project.Target = strings.TrimSpace(m.Project.Target)
	return m, nil
}

// Found reports whether the manifest was read from a file.
func (m *Manifest) Found() bool {
	return m != nil && m.Path != ""
}
