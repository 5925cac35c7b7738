// Package testutil holds helpers shared by picotools tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"

	"github.com/picotools/cli/internal/uf2"
	"github.com/picotools/cli/internal/ui"
)

// CaptureUI redirects ui output into buffers with colour and spinner
// animation off, restoring everything when the test ends.
func CaptureUI(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	oldOut, oldErr, oldNoColor, oldAnimate := ui.Stdout, ui.Stderr, color.NoColor, ui.Animate
	ui.Stdout, ui.Stderr, color.NoColor, ui.Animate = stdout, stderr, true, false
	t.Cleanup(func() {
		ui.Stdout, ui.Stderr, color.NoColor, ui.Animate = oldOut, oldErr, oldNoColor, oldAnimate
	})
	return stdout, stderr
}

// WriteFile creates dir/rel (and its parents) with content.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Mkdir creates dir/rel and returns its path.
func Mkdir(t *testing.T, dir, rel string) string {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	return path
}

// UF2Image splits data into 256-byte payload blocks starting at addr,
// tagged with family, the way the Pico SDK's elf2uf2 lays them out.
func UF2Image(data []byte, addr, family uint32) []byte {
	const payload = 256
	total := (len(data) + payload - 1) / payload
	out := make([]byte, 0, total*uf2.BlockSize)
	for i := 0; i < total; i++ {
		chunk := data[i*payload : min((i+1)*payload, len(data))]
		var block [uf2.BlockSize]byte
		binary.LittleEndian.PutUint32(block[0:], uf2.Magic0)
		binary.LittleEndian.PutUint32(block[4:], uf2.Magic1)
		binary.LittleEndian.PutUint32(block[8:], uf2.FlagFamilyIDPresent)
		binary.LittleEndian.PutUint32(block[12:], addr+uint32(i*payload))
		binary.LittleEndian.PutUint32(block[16:], payload)
		binary.LittleEndian.PutUint32(block[20:], uint32(i))
		binary.LittleEndian.PutUint32(block[24:], uint32(total))
		binary.LittleEndian.PutUint32(block[28:], family)
		copy(block[32:], chunk)
		binary.LittleEndian.PutUint32(block[uf2.BlockSize-4:], uf2.MagicEnd)
		out = append(out, block[:]...)
	}
	return out
}
