// Package hive exposes Windows registry hive files (REGF) as a
// tree.Provider, reading cells through hivekit.
//
// Node identities are absolute file offsets of key (nk) cells, which stay
// unique and stable for the life of a Hive.
package hive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	regf "github.com/joshuapare/hivekit/pkg/hive"

	"github.com/atomicstack/hiview/internal/logging/events"
	"github.com/atomicstack/hiview/internal/tree"
)

// Hive is an opened registry hive.
type Hive struct {
	path string
	data []byte
	r    regf.Reader
}

var _ tree.Provider = (*Hive)(nil)

// Open reads the hive at path into memory and validates it.
func Open(path string) (*Hive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read hive: %w", err)
	}
	h, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.path = path
	events.Hive.Open(path, nodeID(regf.NodeID(h.r.Info().RootCellOffset)))
	return h, nil
}

// Parse validates the base block and hive bins of data and returns a Hive
// over it. The slice is retained, not copied.
func Parse(data []byte) (*Hive, error) {
	r, err := regf.OpenBytes(data, regf.OpenOptions{})
	if err != nil {
		if !errors.Is(err, ErrNotHive) {
			err = fmt.Errorf("%w: %w", ErrNotHive, err)
		}
		return nil, err
	}
	return &Hive{data: data, r: r}, nil
}

// Path returns the file the hive was opened from, if any.
func (h *Hive) Path() string {
	return h.path
}

// MinorVersion reports the REGF format minor version from the base block.
func (h *Hive) MinorVersion() uint32 {
	return h.r.Info().MinorVersion
}

// Close releases the reader. The Hive must not be used afterwards.
func (h *Hive) Close() error {
	return h.r.Close()
}

// Root returns the hive's root key.
func (h *Hive) Root() (tree.Node, error) {
	off, err := h.r.Root()
	if err != nil {
		return tree.Node{}, fmt.Errorf("%w: %w", tree.ErrNoRoot, err)
	}
	n, err := h.node(off)
	if err != nil {
		return tree.Node{}, fmt.Errorf("%w: %w", tree.ErrNoRoot, err)
	}
	return n, nil
}

// Children returns the subkeys of n in on-disk order. Unreadable subkeys are
// skipped and reported in the returned error alongside the readable ones.
func (h *Hive) Children(n tree.Node) ([]tree.Node, error) {
	ids, err := h.r.Subkeys(cellOffset(n.ID))
	if err != nil {
		return nil, fmt.Errorf("subkeys of %q: %w", n.Name, err)
	}
	nodes := make([]tree.Node, 0, len(ids))
	var errs []error
	for _, id := range ids {
		child, err := h.node(id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		nodes = append(nodes, child)
	}
	return nodes, errors.Join(errs...)
}

// Values returns the values of n in on-disk order. A value whose data cannot
// be read is returned with Kind tree.KindError instead of failing the list.
func (h *Hive) Values(n tree.Node) ([]tree.Value, error) {
	ids, err := h.r.Values(cellOffset(n.ID))
	if err != nil {
		return nil, fmt.Errorf("values of %q: %w", n.Name, err)
	}
	values := make([]tree.Value, 0, len(ids))
	var errs []error
	for _, id := range ids {
		if err := h.checkCell(uint32(id)); err != nil {
			errs = append(errs, err)
			continue
		}
		meta, err := h.r.StatValue(id)
		if err != nil {
			errs = append(errs, fmt.Errorf("value %#x: %w", uint32(id), err))
			continue
		}
		values = append(values, h.decodeValue(id, meta))
	}
	return values, errors.Join(errs...)
}

// Parent returns the key above n. The root, and keys whose parent cell is
// unreadable, have none.
func (h *Hive) Parent(n tree.Node) (tree.Node, bool) {
	off := cellOffset(n.ID)
	if uint32(off) == h.r.Info().RootCellOffset {
		return tree.Node{}, false
	}
	detail, err := h.r.DetailKey(off)
	if err != nil {
		events.Hive.Error("parent", n.ID, err)
		return tree.Node{}, false
	}
	if detail.Flags&keyHiveEntry != 0 {
		return tree.Node{}, false
	}
	parent, err := h.node(regf.NodeID(detail.ParentOffset))
	if err != nil {
		events.Hive.Error("parent", n.ID, err)
		return tree.Node{}, false
	}
	return parent, true
}

func (h *Hive) node(off regf.NodeID) (tree.Node, error) {
	if err := h.checkCell(uint32(off)); err != nil {
		return tree.Node{}, err
	}
	meta, err := h.r.StatKey(off)
	if err != nil {
		return tree.Node{}, fmt.Errorf("key %#x: %w", uint32(off), err)
	}
	return tree.Node{
		ID:          nodeID(off),
		Name:        meta.Name,
		Descendants: meta.SubkeyN,
		ValueCount:  meta.ValueN,
		LastWrite:   lastWrite(meta.LastWrite),
	}, nil
}

// checkCell rejects a key or value cell whose size field reaches past the
// end of the file, before the reader sizes a buffer from it.
func (h *Hive) checkCell(off uint32) error {
	abs := int64(baseBlockSize) + int64(off)
	if abs+4 > int64(len(h.data)) {
		return fmt.Errorf("%w: cell offset %#x out of range", ErrCorrupt, off)
	}
	size := int64(int32(binary.LittleEndian.Uint32(h.data[abs:])))
	if size < 0 {
		size = -size
	}
	if size < 4 || abs+size > int64(len(h.data)) {
		return fmt.Errorf("%w: cell %#x size %d out of range", ErrCorrupt, off, size)
	}
	return nil
}

func nodeID(off regf.NodeID) int64 {
	return int64(baseBlockSize) + int64(off)
}

func cellOffset(id int64) regf.NodeID {
	return regf.NodeID(id - baseBlockSize)
}

// lastWrite maps stamps at or before the Unix epoch, which the reader
// produces for empty FILETIMEs, to the zero time.
func lastWrite(t time.Time) time.Time {
	if !t.After(time.Unix(0, 0)) {
		return time.Time{}
	}
	return t
}
