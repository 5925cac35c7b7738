package options

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/testutil"
)

func TestBuildValidate(t *testing.T) {
	base := t.TempDir()
	sdk := testutil.Mkdir(t, base, "pico-sdk")

	t.Run("defaults build dir", func(t *testing.T) {
		b := &Build{SDKPath: sdk}
		require.NoError(t, b.Validate(base))
		assert.Equal(t, DefaultBuildDir, b.BuildDir)
	})

	t.Run("relative sdk path", func(t *testing.T) {
		b := &Build{SDKPath: "pico-sdk"}
		require.NoError(t, b.Validate(base))
		assert.Equal(t, sdk, b.SDKPath)
	})

	t.Run("missing sdk", func(t *testing.T) {
		err := (&Build{}).Validate(base)
		assert.Equal(t, errs.KindMissingArgument, errs.KindOf(err))
	})

	t.Run("sdk not a directory", func(t *testing.T) {
		file := testutil.WriteFile(t, base, "not-a-dir", "x")
		err := (&Build{SDKPath: file}).Validate(base)
		require.Error(t, err)
		assert.Equal(t, errs.KindPathNotFound, errs.KindOf(err))
		assert.Contains(t, err.Error(), "'"+file+"'")
	})

	t.Run("sdk source named", func(t *testing.T) {
		err := (&Build{SDKPath: "/nope/sdk", SDKFrom: "PICO_SDK_PATH"}).Validate(base)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Pico SDK (from PICO_SDK_PATH)")
	})
}

func TestUploadValidate(t *testing.T) {
	base := t.TempDir()
	device := testutil.Mkdir(t, base, "PICO")
	sdk := testutil.Mkdir(t, base, "sdk")

	tests := []struct {
		name string
		opts Upload
		kind errs.Kind
	}{
		{"ok", Upload{DevicePath: device}, errs.KindUnknown},
		{"missing device", Upload{}, errs.KindMissingArgument},
		{"device absent", Upload{DevicePath: filepath.Join(base, "NOPE")}, errs.KindPathNotFound},
		{"default build dir need not exist", Upload{DevicePath: device, BuildDir: "build"}, errs.KindUnknown},
		{"explicit build dir must exist", Upload{DevicePath: device, BuildDir: "out", BuildDirSet: true}, errs.KindPathNotFound},
		{"build first without sdk", Upload{DevicePath: device, BuildFirst: true}, errs.KindMissingArgument},
		{"build first bad sdk", Upload{DevicePath: device, BuildFirst: true, SDKPath: "/nope"}, errs.KindPathNotFound},
		{"build first ok", Upload{DevicePath: device, BuildFirst: true, SDKPath: sdk}, errs.KindUnknown},
		{"sdk ignored without build first", Upload{DevicePath: device, SDKPath: "/nope"}, errs.KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.Validate(base)
			if tt.kind == errs.KindUnknown {
				require.NoError(t, err)
				assert.Equal(t, DefaultBuildDir, opts.BuildDir)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.kind, errs.KindOf(err))
		})
	}
}

func TestUploadValidateExplicitBuildDirRelative(t *testing.T) {
	base := t.TempDir()
	device := testutil.Mkdir(t, base, "PICO")
	testutil.Mkdir(t, base, "out")

	u := &Upload{DevicePath: device, BuildDir: "out", BuildDirSet: true}
	require.NoError(t, u.Validate(base))
	assert.Equal(t, "out", u.BuildDir)
}

func TestAttachSDK(t *testing.T) {
	base := t.TempDir()
	sdk := testutil.Mkdir(t, base, "pico-sdk")

	t.Run("no args", func(t *testing.T) {
		_, err := AttachSDK(base, nil)
		assert.Equal(t, errs.KindMissingArgument, errs.KindOf(err))
	})

	t.Run("two args", func(t *testing.T) {
		_, err := AttachSDK(base, []string{sdk, sdk})
		assert.Equal(t, errs.KindExcessArguments, errs.KindOf(err))
	})

	t.Run("not a directory", func(t *testing.T) {
		_, err := AttachSDK(base, []string{filepath.Join(base, "missing")})
		assert.Equal(t, errs.KindPathNotFound, errs.KindOf(err))
	})

	t.Run("trailing separator normalized", func(t *testing.T) {
		got, err := AttachSDK(base, []string{sdk + string(filepath.Separator)})
		require.NoError(t, err)
		assert.Equal(t, sdk, got)
	})

	t.Run("relative made absolute", func(t *testing.T) {
		got, err := AttachSDK(base, []string{"pico-sdk"})
		require.NoError(t, err)
		assert.Equal(t, sdk, got)
	})
}

func TestFirstSDK(t *testing.T) {
	got, ok := FirstSDK(
		SDKCandidate{From: "-s", Path: ""},
		SDKCandidate{From: "picotools.toml", Path: "/a"},
		SDKCandidate{From: "PICO_SDK_PATH", Path: "/b"},
	)
	require.True(t, ok)
	assert.Equal(t, SDKCandidate{From: "picotools.toml", Path: "/a"}, got)

	_, ok = FirstSDK(SDKCandidate{From: "-s"})
	assert.False(t, ok)
}
