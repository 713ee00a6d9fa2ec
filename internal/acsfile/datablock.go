package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// readDataBlock reads a u32 byte count followed by that many raw bytes —
// the generic "DataBlock" shape used wherever the format embeds an
// uncompressed blob inline rather than through a Locator.
func readDataBlock(c *binreader.Cursor) ([]byte, error) {
	n, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("data block size: %w", err)
	}
	b, err := c.Bytes(int(n))
	if err != nil {
		return nil, fmt.Errorf("data block payload: %w", err)
	}
	return b, nil
}
