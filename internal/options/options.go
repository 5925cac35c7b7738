// ─────────────────────────────────────────────────────────────────────────────
//  picotools :: options :: typed, validated command options
//
//  cobra parses the flags; the structs here hold the result and decide
//  whether it is usable before anything touches the toolchain or the device.
// ─────────────────────────────────────────────────────────────────────────────

package options

import (
	"path/filepath"

	paths "github.com/arduino/go-paths-helper"

	"github.com/picotools/cli/internal/errs"
)

// DefaultBuildDir is used when no build directory is given.
const DefaultBuildDir = "build"

// Build holds the options of `picotools build`.
type Build struct {
	BuildDir string
	SDKPath  string
	// SDKFrom names where SDKPath came from, for messages.
	SDKFrom string
}

// Validate checks that an SDK path was given and is a directory, then makes
// it absolute. base resolves relative paths.
func (b *Build) Validate(base string) error {
	if b.BuildDir == "" {
		b.BuildDir = DefaultBuildDir
	}
	if b.SDKPath == "" {
		return errs.MissingArgument(
			"no path given to Pico SDK. Please supply one using: '-s <path-to-sdk>' or run 'picotools attach-sdk <path>'")
	}
	if err := RequireDir(sdkWhat(b.SDKFrom), base, b.SDKPath); err != nil {
		return err
	}
	b.SDKPath = absolute(base, b.SDKPath)
	return nil
}

// Upload holds the options of `picotools upload`.
type Upload struct {
	BuildDir string
	// BuildDirSet is true when the build directory was given explicitly;
	// only then must it already exist.
	BuildDirSet bool
	Target      string
	DevicePath  string
	BuildFirst  bool
	// SDKPath is only consulted when BuildFirst is set.
	SDKPath string
	SDKFrom string
}

// Validate checks the device path and, if explicit, the build directory.
// base resolves relative paths.
func (u *Upload) Validate(base string) error {
	if u.BuildDir == "" {
		u.BuildDir = DefaultBuildDir
	}
	if u.DevicePath == "" {
		return errs.MissingArgument("no path supplied to Pico. Please supply one using -p")
	}
	if err := RequireDir("Pico", base, u.DevicePath); err != nil {
		return err
	}
	if u.BuildDirSet {
		if err := RequireDir("build directory", base, u.BuildDir); err != nil {
			return err
		}
	}
	if u.BuildFirst {
		if u.SDKPath == "" {
			return errs.MissingArgument(
				"--build-first needs the Pico SDK. Please supply one using: '-s <path-to-sdk>' or run 'picotools attach-sdk <path>'")
		}
		if err := RequireDir(sdkWhat(u.SDKFrom), base, u.SDKPath); err != nil {
			return err
		}
		u.SDKPath = absolute(base, u.SDKPath)
	}
	return nil
}

// AttachSDK validates the positional arguments of `picotools attach-sdk`
// and returns the SDK path to store, absolute and cleaned.
func AttachSDK(base string, args []string) (string, error) {
	switch {
	case len(args) == 0:
		return "", errs.MissingArgument("a path to the Pico SDK was not provided. Please supply one")
	case len(args) >= 2:
		return "", errs.ExcessArguments("excessive arguments provided: expected 1, got %d", len(args))
	}
	if err := RequireDir("Pico SDK", base, args[0]); err != nil {
		return "", err
	}
	return absolute(base, args[0]), nil
}

// absolute joins a relative p onto base and cleans the result. cmake
// resolves a relative PICO_SDK_PATH against the build directory, so the
// SDK path always leaves here absolute.
func absolute(base, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Clean(p)
}

// RequireDir fails with PathNotFoundError unless path (relative to base)
// is an existing directory. The error reports path as the user gave it.
func RequireDir(what, base, path string) error {
	if path == "" {
		return errs.PathNotFound(what, path)
	}
	p := paths.New(path)
	if !p.IsAbs() && base != "" {
		p = paths.New(base).JoinPath(p)
	}
	if !p.IsDir() {
		return errs.PathNotFound(what, path)
	}
	return nil
}

// SDKCandidate is one possible source of the SDK path.
type SDKCandidate struct {
	From string
	Path string
}

// FirstSDK returns the first candidate with a non-empty path.
func FirstSDK(candidates ...SDKCandidate) (SDKCandidate, bool) {
	for _, c := range candidates {
		if c.Path != "" {
			return c, true
		}
	}
	return SDKCandidate{}, false
}

func sdkWhat(from string) string {
	if from == "" {
		return "Pico SDK"
	}
	return "Pico SDK (from " + from + ")"
}
