package hive

import regf "github.com/joshuapare/hivekit/pkg/hive"

// Sentinel errors returned (wrapped) by the reader.
var (
	ErrNotHive = regf.ErrNotHive
	ErrCorrupt = regf.ErrCorrupt
)

const (
	baseBlockSize = 4096

	keyHiveEntry = 0x0004
)

// Registry value data types.
const (
	RegNone                     = uint32(regf.REG_NONE)
	RegSZ                       = uint32(regf.REG_SZ)
	RegExpandSZ                 = uint32(regf.REG_EXPAND_SZ)
	RegBinary                   = uint32(regf.REG_BINARY)
	RegDword                    = uint32(regf.REG_DWORD)
	RegDwordBigEndian           = uint32(regf.REG_DWORD_BE)
	RegLink                     = uint32(regf.REG_LINK)
	RegMultiSZ                  = uint32(regf.REG_MULTI_SZ)
	RegResourceList             uint32 = 8
	RegFullResourceDescriptor   uint32 = 9
	RegResourceRequirementsList uint32 = 10
	RegQword                    = uint32(regf.REG_QWORD)
)
