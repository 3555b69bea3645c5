// Package testutil builds registry hive fixtures for tests.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf16"
)

const (
	baseBlockSize  = 4096
	hbinHeaderSize = 32
	minorVersion   = 5
	nkSize         = 76
	vkSize         = 20
	dbSize         = 12
	hbinAlignment  = 4096
	segmentPadding = 4

	// BigDataSegment is the payload size of each big-data segment.
	BigDataSegment = 16344

	KeyCompName  = 0x0020
	KeyHiveEntry = 0x0004

	valueCompName = 0x0001
	dataInline    = 0x80000000

	filetimeEpochDelta = 11644473600
)

// Hive assembles a single-bin REGF image in memory. Offsets returned by its
// methods are relative to the start of the hive bins, as stored on disk.
type Hive struct {
	bins []byte
}

// NewHive returns an empty builder producing a version 1.5 hive.
func NewHive() *Hive {
	h := &Hive{bins: make([]byte, hbinHeaderSize)}
	copy(h.bins, "hbin")
	return h
}

// filetime converts t to a Windows FILETIME.
func filetime(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.Unix()+filetimeEpochDelta)*10_000_000 + uint64(t.Nanosecond()/100)
}

// UTF16LE encodes s the way the registry stores strings.
func UTF16LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, len(units)*2)
	for i, u := range units {
		binary.LittleEndian.PutUint16(out[i*2:], u)
	}
	return out
}

// NodeID maps a key cell offset to the node identity reported by the reader.
func NodeID(cell uint32) int64 {
	return int64(baseBlockSize) + int64(cell)
}

// alloc appends an allocated cell holding payload and returns its offset.
func (h *Hive) alloc(payload []byte) uint32 {
	off := uint32(len(h.bins))
	size := 4 + len(payload)
	if size%8 != 0 {
		size += 8 - size%8
	}
	cell := make([]byte, size)
	binary.LittleEndian.PutUint32(cell, uint32(int32(-size)))
	copy(cell[4:], payload)
	h.bins = append(h.bins, cell...)
	return off
}

func (h *Hive) put32(cell uint32, field int, v uint32) {
	binary.LittleEndian.PutUint32(h.bins[int(cell)+4+field:], v)
}

// RawKey adds a key node with name stored verbatim.
func (h *Hive) RawKey(name []byte, flags uint16, parent uint32, lastWrite time.Time) uint32 {
	p := make([]byte, nkSize+len(name))
	copy(p, "nk")
	binary.LittleEndian.PutUint16(p[2:], flags)
	binary.LittleEndian.PutUint64(p[4:], filetime(lastWrite))
	binary.LittleEndian.PutUint32(p[16:], parent)
	binary.LittleEndian.PutUint16(p[72:], uint16(len(name)))
	copy(p[nkSize:], name)
	return h.alloc(p)
}

// Key adds a key with an ASCII name beneath parent.
func (h *Hive) Key(name string, parent uint32, lastWrite time.Time) uint32 {
	return h.RawKey([]byte(name), KeyCompName, parent, lastWrite)
}

// RootKey adds a key flagged as the hive entry point.
func (h *Hive) RootKey(name string, lastWrite time.Time) uint32 {
	return h.RawKey([]byte(name), KeyCompName|KeyHiveEntry, 0, lastWrite)
}

// List builds an lf, lh, li or ri cell over entries.
func (h *Hive) List(sig string, entries ...uint32) uint32 {
	stride := 4
	if sig == "lf" || sig == "lh" {
		stride = 8
	}
	p := make([]byte, 4+len(entries)*stride)
	copy(p, sig)
	binary.LittleEndian.PutUint16(p[2:], uint16(len(entries)))
	for i, e := range entries {
		binary.LittleEndian.PutUint32(p[4+i*stride:], e)
	}
	return h.alloc(p)
}

// SetSubkeys points key at a subkey list holding count keys.
func (h *Hive) SetSubkeys(key uint32, count int, list uint32) {
	h.put32(key, 20, uint32(count))
	h.put32(key, 28, list)
}

// Children adds an lf list of keys under parent.
func (h *Hive) Children(parent uint32, keys ...uint32) {
	h.SetSubkeys(parent, len(keys), h.List("lf", keys...))
}

// Value adds a value cell; payloads of four bytes or fewer are stored inline.
func (h *Hive) Value(name string, typ uint32, data []byte) uint32 {
	size := uint32(len(data))
	var dataOff uint32
	switch {
	case len(data) == 0:
	case len(data) <= 4:
		var inline [4]byte
		copy(inline[:], data)
		dataOff = binary.LittleEndian.Uint32(inline[:])
		size |= dataInline
	default:
		dataOff = h.alloc(data)
	}
	return h.RawValue(name, typ, size, dataOff)
}

// RawValue adds a value cell with the size and data offset fields as given.
func (h *Hive) RawValue(name string, typ, size, dataOff uint32) uint32 {
	p := make([]byte, vkSize+len(name))
	copy(p, "vk")
	binary.LittleEndian.PutUint16(p[2:], uint16(len(name)))
	binary.LittleEndian.PutUint32(p[4:], size)
	binary.LittleEndian.PutUint32(p[8:], dataOff)
	binary.LittleEndian.PutUint32(p[12:], typ)
	binary.LittleEndian.PutUint16(p[16:], valueCompName)
	copy(p[vkSize:], name)
	return h.alloc(p)
}

// BigData stores data as padded segments behind a db cell and returns the
// db cell offset.
func (h *Hive) BigData(data []byte) uint32 {
	var segments []uint32
	for rest := data; len(rest) > 0; {
		n := min(len(rest), BigDataSegment)
		segment := make([]byte, n+segmentPadding)
		copy(segment, rest[:n])
		segments = append(segments, h.alloc(segment))
		rest = rest[n:]
	}
	segList := make([]byte, len(segments)*4)
	for i, s := range segments {
		binary.LittleEndian.PutUint32(segList[i*4:], s)
	}
	listOff := h.alloc(segList)
	db := make([]byte, dbSize)
	copy(db, "db")
	binary.LittleEndian.PutUint16(db[2:], uint16(len(segments)))
	binary.LittleEndian.PutUint32(db[4:], listOff)
	return h.alloc(db)
}

// BigValue stores data through a db cell split into segments.
func (h *Hive) BigValue(name string, typ uint32, data []byte) uint32 {
	return h.RawValue(name, typ, uint32(len(data)), h.BigData(data))
}

// SetValues attaches a value list to key.
func (h *Hive) SetValues(key uint32, values ...uint32) {
	p := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(p[i*4:], v)
	}
	h.put32(key, 36, uint32(len(values)))
	h.put32(key, 40, h.alloc(p))
}

// Bytes renders the base block followed by the bin, with root as the root
// key cell. The bin is padded to a whole number of pages with a free cell.
func (h *Hive) Bytes(root uint32) []byte {
	size := len(h.bins)
	if rem := size % hbinAlignment; rem != 0 {
		size += hbinAlignment - rem
	}
	bins := make([]byte, size)
	copy(bins, h.bins)
	if free := size - len(h.bins); free > 0 {
		binary.LittleEndian.PutUint32(bins[len(h.bins):], uint32(free))
	}
	binary.LittleEndian.PutUint32(bins[8:], uint32(size))

	out := make([]byte, baseBlockSize, baseBlockSize+size)
	copy(out, "regf")
	binary.LittleEndian.PutUint32(out[0x14:], 1)
	binary.LittleEndian.PutUint32(out[0x18:], minorVersion)
	binary.LittleEndian.PutUint32(out[0x24:], root)
	binary.LittleEndian.PutUint32(out[0x28:], uint32(size))
	return append(out, bins...)
}

// Write saves the hive into a temporary directory and returns its path.
func (h *Hive) Write(t testing.TB, root uint32) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hive.dat")
	if err := os.WriteFile(path, h.Bytes(root), 0o600); err != nil {
		t.Fatalf("write hive: %v", err)
	}
	return path
}
