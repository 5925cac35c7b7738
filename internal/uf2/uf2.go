// Package uf2 reads the block headers of a UF2 firmware image.
//
// A UF2 file is a sequence of 512-byte blocks, each carrying up to 476
// bytes of payload destined for a flash address. picotools only inspects
// the headers to tell the user what is about to be flashed; the device's
// bootloader does the actual validation.
package uf2

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// BlockSize is the fixed size of one UF2 block.
const BlockSize = 512

// Block magic numbers: two at the start of every block, one at the end.
const (
	Magic0   = 0x0a324655
	Magic1   = 0x9e5d5157
	MagicEnd = 0x0ab16f30
)

// Block flags.
const (
	FlagNotMainFlash    = 0x00000001
	FlagFileContainer   = 0x00001000
	FlagFamilyIDPresent = 0x00002000
	FlagMD5Present      = 0x00004000
	FlagExtensionTags   = 0x00008000
)

// Family IDs used by the Raspberry Pi microcontrollers.
const (
	FamilyRP2040      = 0xe48bff56
	FamilyAbsolute    = 0xe48bff57
	FamilyData        = 0xe48bff58
	FamilyRP2350ArmS  = 0xe48bff59
	FamilyRP2350RiscV = 0xe48bff5a
	FamilyRP2350ArmNS = 0xe48bff5b
)

var familyNames = map[uint32]string{
	FamilyRP2040:      "rp2040",
	FamilyAbsolute:    "absolute",
	FamilyData:        "data",
	FamilyRP2350ArmS:  "rp2350-arm-s",
	FamilyRP2350RiscV: "rp2350-riscv",
	FamilyRP2350ArmNS: "rp2350-arm-ns",
}

// FamilyName returns a readable name for a family ID.
func FamilyName(id uint32) string {
	if n, ok := familyNames[id]; ok {
		return n
	}
	return fmt.Sprintf("%#08x", id)
}

// ErrNotUF2 is returned for data that is not a sequence of UF2 blocks.
var ErrNotUF2 = errors.New("not a UF2 image")

type header struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32
	Len    uint32
	Seq    uint32
	Total  uint32
	Family uint32
}

// Info summarises an image.
type Info struct {
	Blocks      int
	PayloadSize int64
	// StartAddr is the target address of the first main-flash block.
	StartAddr uint32
	// Families lists family IDs in order of first appearance.
	Families []uint32
}

// Inspect reads UF2 blocks from r until EOF.
func Inspect(r io.Reader) (*Info, error) {
	info := &Info{}
	seen := map[uint32]bool{}
	var block [BlockSize]byte
	haveStart := false

	for {
		n, err := io.ReadFull(r, block[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: trailing %d bytes after block %d", ErrNotUF2, n, info.Blocks)
		}
		if err != nil {
			return nil, err
		}

		var h header
		if err := binary.Read(bytes.NewReader(block[:32]), binary.LittleEndian, &h); err != nil {
			return nil, err
		}
		end := binary.LittleEndian.Uint32(block[BlockSize-4:])
		if h.Magic0 != Magic0 || h.Magic1 != Magic1 || end != MagicEnd {
			return nil, fmt.Errorf("%w: bad magic in block %d", ErrNotUF2, info.Blocks)
		}
		if h.Len > 476 {
			return nil, fmt.Errorf("%w: block %d payload length %d", ErrNotUF2, info.Blocks, h.Len)
		}

		info.Blocks++
		if h.Flags&FlagNotMainFlash != 0 {
			continue
		}
		info.PayloadSize += int64(h.Len)
		if !haveStart {
			info.StartAddr = h.Addr
			haveStart = true
		}
		if h.Flags&FlagFamilyIDPresent != 0 && !seen[h.Family] {
			seen[h.Family] = true
			info.Families = append(info.Families, h.Family)
		}
	}

	if info.Blocks == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrNotUF2)
	}
	return info, nil
}

// InspectFile opens path and inspects it.
func InspectFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(f)
}

// String renders a one-line summary such as
// "rp2040, 42 blocks, 10752 bytes at 0x10000000".
func (i *Info) String() string {
	fam := "no family"
	if len(i.Families) > 0 {
		fam = FamilyName(i.Families[0])
		for _, f := range i.Families[1:] {
			fam += "+" + FamilyName(f)
		}
	}
	return fmt.Sprintf("%s, %d blocks, %d bytes at %#08x", fam, i.Blocks, i.PayloadSize, i.StartAddr)
}
