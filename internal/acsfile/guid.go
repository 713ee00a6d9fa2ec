package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// GUID is a 16-byte Windows GUID, stored on disk as
// {Data1 u32, Data2 u16, Data3 u16, Data4 [8]byte}.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// String renders the GUID in the canonical 8-4-4-4-12 hyphenated hex form.
func (g GUID) String() string {
	return fmt.Sprintf("%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		g.Data1, g.Data2, g.Data3,
		g.Data4[0], g.Data4[1], g.Data4[2], g.Data4[3],
		g.Data4[4], g.Data4[5], g.Data4[6], g.Data4[7])
}

func readGUID(c *binreader.Cursor) (GUID, error) {
	var g GUID
	var err error
	if g.Data1, err = c.U32(); err != nil {
		return GUID{}, fmt.Errorf("guid data1: %w", err)
	}
	if g.Data2, err = c.U16(); err != nil {
		return GUID{}, fmt.Errorf("guid data2: %w", err)
	}
	if g.Data3, err = c.U16(); err != nil {
		return GUID{}, fmt.Errorf("guid data3: %w", err)
	}
	tail, err := c.Bytes(8)
	if err != nil {
		return GUID{}, fmt.Errorf("guid data4: %w", err)
	}
	copy(g.Data4[:], tail)
	return g, nil
}
