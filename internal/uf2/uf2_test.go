package uf2_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picotools/cli/internal/testutil"
	"github.com/picotools/cli/internal/uf2"
)

func TestInspectEncodedImage(t *testing.T) {
	img := testutil.UF2Image(bytes.Repeat([]byte{0xAA}, 600), 0x10000000, uf2.FamilyRP2040)
	require.Len(t, img, 3*uf2.BlockSize)

	info, err := uf2.Inspect(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 3, info.Blocks)
	assert.Equal(t, int64(3*256), info.PayloadSize)
	assert.Equal(t, uint32(0x10000000), info.StartAddr)
	assert.Equal(t, []uint32{uf2.FamilyRP2040}, info.Families)
	assert.Equal(t, "rp2040, 3 blocks, 768 bytes at 0x10000000", info.String())
}

func TestInspectSkipsNotMainFlashBlocks(t *testing.T) {
	img := testutil.UF2Image(make([]byte, 512), 0x10000000, uf2.FamilyRP2350ArmS)
	// Mark the first block as not destined for main flash.
	binary.LittleEndian.PutUint32(img[8:], uf2.FlagNotMainFlash|uf2.FlagFamilyIDPresent)

	info, err := uf2.Inspect(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, 2, info.Blocks)
	assert.Equal(t, int64(256), info.PayloadSize)
	assert.Equal(t, uint32(0x10000100), info.StartAddr)
}

func TestInspectRejectsNonUF2(t *testing.T) {
	tests := map[string][]byte{
		"empty":     nil,
		"text":      bytes.Repeat([]byte("hello"), 200),
		"truncated": testutil.UF2Image(make([]byte, 256), 0x10000000, uf2.FamilyRP2040)[:300],
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := uf2.Inspect(bytes.NewReader(data))
			assert.ErrorIs(t, err, uf2.ErrNotUF2)
		})
	}
}

func TestInspectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blinky.uf2")
	require.NoError(t, os.WriteFile(path, testutil.UF2Image([]byte{1, 2, 3}, 0x10000000, uf2.FamilyRP2040), 0644))

	info, err := uf2.InspectFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, info.Blocks)

	_, err = uf2.InspectFile(filepath.Join(t.TempDir(), "missing.uf2"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFamilyName(t *testing.T) {
	assert.Equal(t, "rp2350-riscv", uf2.FamilyName(uf2.FamilyRP2350RiscV))
	assert.Equal(t, "0x12345678", uf2.FamilyName(0x12345678))
}
