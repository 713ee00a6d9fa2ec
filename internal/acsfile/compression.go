package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
	"github.com/msagent/acs/internal/rle"
)

// readCompressedPlane decodes the `{u32 csize, u32 usize, byte[csize]}`
// outer block and runs both decompression stages to recover exactly
// planeLen bytes.
func readCompressedPlane(c *binreader.Cursor, planeLen int) ([]byte, error) {
	csize, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("compressed size: %w", err)
	}
	usize, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("uncompressed size: %w", err)
	}
	payload, err := c.Bytes(int(csize))
	if err != nil {
		return nil, fmt.Errorf("compressed payload: %w", err)
	}
	return rle.Decode(payload, int(usize), planeLen)
}
