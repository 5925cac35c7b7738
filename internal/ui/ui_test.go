package ui

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr, oldNoColor, oldAnimate := Stdout, Stderr, color.NoColor, Animate
	Stdout, Stderr, color.NoColor, Animate = &out, &errOut, true, false
	t.Cleanup(func() {
		Stdout, Stderr, color.NoColor, Animate = oldOut, oldErr, oldNoColor, oldAnimate
	})
	return &out, &errOut
}

func TestStatusLines(t *testing.T) {
	out, errOut := capture(t)

	Success("done")
	Info("checking")
	Warn("careful")
	Step("target", "blinky")
	Fail("nope")

	assert.Equal(t, "  ✓ done\n  • checking\n  ⚠ careful\n  target → blinky\n", out.String())
	assert.Equal(t, "  ✗ nope\n", errOut.String())
}

func TestSpinnerWithoutAnimation(t *testing.T) {
	out, errOut := capture(t)

	sp := NewSpinner("Building")
	sp.Start()
	sp.Stop(true, "Building... done.")

	assert.Equal(t, "  ✓ Building... done.\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestDiagnosticKeepsToolOutput(t *testing.T) {
	_, errOut := capture(t)

	Diagnostic("ExternalToolFailure", "Updating CMake failed", "cmake",
		"CMake Error at CMakeLists.txt:4 (include):\n  include could not find pico_sdk_import.cmake\n")

	s := errOut.String()
	assert.Contains(t, s, "cmake output")
	assert.Contains(t, s, "CMake Error at CMakeLists.txt:4 (include):")
	assert.Contains(t, s, "include could not find pico_sdk_import.cmake")
	assert.Contains(t, s, "ExternalToolFailure: Updating CMake failed\n")
}

func TestPrintConfigRaw(t *testing.T) {
	out, _ := capture(t)

	PrintConfig("~/.picotools", []ConfigEntry{{Key: "pico-sdk", Value: "/opt/pico-sdk"}}, true)

	assert.Equal(t, "pico-sdk = /opt/pico-sdk\n", out.String())
}

func TestPrintConfigTable(t *testing.T) {
	out, _ := capture(t)

	PrintConfig("config", []ConfigEntry{{Key: "pico-sdk", Value: "/opt/pico-sdk", Comment: "attached SDK"}}, false)

	s := out.String()
	assert.Contains(t, s, " config ")
	assert.Contains(t, s, `pico-sdk  =  "/opt/pico-sdk"  # attached SDK`)
}

func TestPrintConfigTypedValues(t *testing.T) {
	out, _ := capture(t)
	entries := []ConfigEntry{
		{Key: "retries", Value: 3},
		{Key: "ratio", Value: 1.1},
		{Key: "verbose", Value: true},
		{Key: "nothing", Value: nil},
	}

	PrintConfig("config", entries, true)
	assert.Equal(t, "retries = 3\nratio = 1.1\nverbose = true\nnothing = null\n", out.String())

	out.Reset()
	PrintConfig("config", entries, false)
	s := out.String()
	assert.Contains(t, s, "retries  =  3 ")
	assert.Contains(t, s, "verbose  =  true ")
	assert.Contains(t, s, "nothing  =  null ")
	assert.NotContains(t, s, `"3"`)
}
