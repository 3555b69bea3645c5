package hive

import (
	"fmt"
	"strings"

	regf "github.com/joshuapare/hivekit/pkg/hive"
	"golang.org/x/text/encoding/unicode"

	"github.com/atomicstack/hiview/internal/tree"
)

var utf16Decoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeValue reads the payload of the value cell id and classifies it by
// its declared type. Failures are carried in the value as tree.KindError.
func (h *Hive) decodeValue(id regf.ValueID, meta regf.ValueMeta) tree.Value {
	v := tree.Value{Name: meta.Name, Type: uint32(meta.Type)}
	if limit := int(h.r.Info().HiveBinsDataSize); !meta.Inline && meta.Size > limit {
		return failed(v, fmt.Errorf("%w: declares %d bytes, hive bins hold %d", ErrCorrupt, meta.Size, limit))
	}

	switch meta.Type {
	case regf.REG_DWORD, regf.REG_DWORD_BE:
		n, err := h.r.ValueDWORD(id)
		if err != nil {
			return failed(v, err)
		}
		v.Kind, v.Int = tree.KindInt, uint64(n)
		return v
	case regf.REG_QWORD:
		n, err := h.r.ValueQWORD(id)
		if err != nil {
			return failed(v, err)
		}
		v.Kind, v.Int = tree.KindInt, n
		return v
	}

	data, err := h.r.ValueBytes(id, regf.ReadOptions{CopyData: true})
	if err != nil {
		return failed(v, err)
	}
	switch meta.Type {
	case regf.REG_SZ, regf.REG_EXPAND_SZ, regf.REG_LINK:
		v.Kind = tree.KindString
		v.String = strings.TrimRight(decodeUTF16(data), "\x00")
	case regf.REG_MULTI_SZ:
		v.Kind = tree.KindMultiString
		v.Strings = splitMultiString(decodeUTF16(data))
	case regf.REG_NONE:
		if len(data) == 0 {
			v.Kind = tree.KindNone
			return v
		}
		v.Kind, v.Data = tree.KindBinary, data
	default:
		v.Kind, v.Data = tree.KindBinary, data
	}
	return v
}

func failed(v tree.Value, err error) tree.Value {
	v.Kind = tree.KindError
	v.Err = fmt.Errorf("value %q: %w", v.Name, err)
	return v
}

// splitMultiString drops the empty entries left by the double terminator.
func splitMultiString(s string) []string {
	parts := strings.Split(s, "\x00")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// decodeUTF16 tolerates an odd trailing byte, which hivekit's typed string
// accessors reject.
func decodeUTF16(b []byte) string {
	if len(b)%2 == 1 {
		b = b[:len(b)-1]
	}
	out, err := utf16Decoder.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
