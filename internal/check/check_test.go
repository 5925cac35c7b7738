package check

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotools/cli/internal/errs"
	"github.com/picotools/cli/internal/testutil"
	"github.com/picotools/cli/internal/uf2"
)

func TestRunReadyProject(t *testing.T) {
	stdout, _ := testutil.CaptureUI(t)
	dir := t.TempDir()
	sdk := testutil.Mkdir(t, dir, "sdk")
	testutil.WriteFile(t, dir, "CMakeLists.txt", "add_executable(blinky main.c)\n")
	testutil.WriteFile(t, dir, "build/blinky.uf2", string(testutil.UF2Image([]byte("x"), 0x10000000, uf2.FamilyRP2040)))

	r := Run(Options{ProjectDir: dir, SDKPath: sdk, Tools: []string{"sh"}})
	require.NoError(t, r.Err())
	assert.Equal(t, "blinky", r.Target)
	require.NotNil(t, r.Artifact)
	assert.Empty(t, r.Warnings)

	PrintReport(r)
	assert.Contains(t, stdout.String(), "Project ready")
}

func TestRunCollectsEveryProblem(t *testing.T) {
	_, stderr := testutil.CaptureUI(t)
	dir := t.TempDir()

	r := Run(Options{
		ProjectDir: dir,
		Tools:      []string{"picotools-no-such-tool"},
		Unknown:    []string{"build.jbos"},
	})
	require.Len(t, r.Errors, 3)
	assert.Equal(t, errs.KindDescriptorNotFound, errs.KindOf(r.Errors[0].Err))
	assert.Equal(t, errs.KindMissingArgument, errs.KindOf(r.Errors[1].Err))
	assert.Equal(t, errs.KindExternalTool, errs.KindOf(r.Errors[2].Err))
	require.Len(t, r.Warnings, 1)

	err := r.Err()
	assert.Equal(t, errs.KindDescriptorNotFound, errs.KindOf(err))
	assert.Contains(t, err.Error(), "3 problems found")

	PrintReport(r)
	assert.Contains(t, stderr.String(), "picotools-no-such-tool")
}

func TestRunArtifactWarnings(t *testing.T) {
	testutil.CaptureUI(t)
	dir := t.TempDir()
	sdk := testutil.Mkdir(t, dir, "sdk")

	r := Run(Options{ProjectDir: dir, SDKPath: sdk, Target: "app", BuildDir: "out"})
	require.NoError(t, r.Err())
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0].Message, filepath.Join("out", "app.uf2"))

	testutil.WriteFile(t, dir, "out/app.uf2", "not uf2")
	r = Run(Options{ProjectDir: dir, SDKPath: sdk, Target: "app", BuildDir: "out"})
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0].Message, "not a UF2 image")
}

func TestRunAmbiguousTarget(t *testing.T) {
	testutil.CaptureUI(t)
	dir := t.TempDir()
	sdk := testutil.Mkdir(t, dir, "sdk")
	testutil.WriteFile(t, dir, "CMakeLists.txt", "add_executable(a a.c)\nadd_executable(b b.c)\n")

	r := Run(Options{ProjectDir: dir, SDKPath: sdk})
	assert.Equal(t, "a", r.Target)
	require.Len(t, r.Warnings, 2, "ambiguous target plus missing artifact")
	assert.Contains(t, r.Warnings[0].Message, "[a b]")
}
