// Package value renders registry values for the values and inspector panes.
package value

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/hiview/internal/hive"
	"github.com/atomicstack/hiview/internal/tree"
)

// DefaultName labels the unnamed default value of a key.
const DefaultName = "(Default)"

var typeNames = map[uint32]string{
	hive.RegNone:                     "REG_NONE",
	hive.RegSZ:                       "REG_SZ",
	hive.RegExpandSZ:                 "REG_EXPAND_SZ",
	hive.RegBinary:                   "REG_BINARY",
	hive.RegDword:                    "REG_DWORD",
	hive.RegDwordBigEndian:           "REG_DWORD_BIG_ENDIAN",
	hive.RegLink:                     "REG_LINK",
	hive.RegMultiSZ:                  "REG_MULTI_SZ",
	hive.RegResourceList:             "REG_RESOURCE_LIST",
	hive.RegFullResourceDescriptor:   "REG_FULL_RESOURCE_DESCRIPTOR",
	hive.RegResourceRequirementsList: "REG_RESOURCE_REQUIREMENTS_LIST",
	hive.RegQword:                    "REG_QWORD",
}

// TypeName returns the REG_* name of a raw data type.
func TypeName(t uint32) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("REG_UNKNOWN(%#x)", t)
}

// Name returns the display name of v.
func Name(v tree.Value) string {
	if v.Name == "" {
		return DefaultName
	}
	return v.Name
}

// Preview returns a single-line summary of v.
func Preview(v tree.Value) string {
	switch v.Kind {
	case tree.KindNone:
		return "<NO VALUE>"
	case tree.KindInt:
		if v.Type == hive.RegQword {
			return "REG_QWORD: " + strconv.FormatUint(v.Int, 10)
		}
		return "REG_DWORD: " + strconv.FormatUint(v.Int, 10)
	case tree.KindString:
		name := "REG_SZ"
		if v.Type == hive.RegExpandSZ || v.Type == hive.RegLink {
			name = TypeName(v.Type)
		}
		return fmt.Sprintf("%s: %q", name, v.String)
	case tree.KindMultiString:
		return "REG_MULTI_SZ: " + quoteAll(v.Strings)
	case tree.KindBinary:
		return "BINARY DATA"
	default:
		return "ERROR DECODING VALUE"
	}
}

// Inspect returns the multi-line body shown in the inspector pane.
func Inspect(v tree.Value) string {
	var b strings.Builder
	b.WriteString("Data Type: ")
	b.WriteString(TypeName(v.Type))
	b.WriteString("\nValue Data: ")
	switch v.Kind {
	case tree.KindNone:
		b.WriteString("<NO VALUE>")
	case tree.KindInt:
		fmt.Fprintf(&b, "%d (%#x)", v.Int, v.Int)
	case tree.KindString:
		b.WriteString(strconv.Quote(v.String))
	case tree.KindMultiString:
		for _, s := range v.Strings {
			b.WriteString("\n  ")
			b.WriteString(strconv.Quote(s))
		}
	case tree.KindBinary:
		fmt.Fprintf(&b, "%d bytes\n", len(v.Data))
		b.WriteString(strings.TrimRight(hex.Dump(v.Data), "\n"))
	default:
		b.WriteString("ERROR DECODING VALUE")
		if v.Err != nil {
			b.WriteString("\n")
			b.WriteString(v.Err.Error())
		}
	}
	return b.String()
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, ", ")
}
