package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// AudioEntry is one archive sound: a checksum (unused by the core) and
// the locator of its opaque payload, typically a complete RIFF/WAVE file.
type AudioEntry struct {
	Checksum uint32
	Data     Locator
}

// readAudioInfoList decodes an AudioInfoList: u32 count, then count
// {data_locator, checksum} entries, same shape as ImageInfoList.
func readAudioInfoList(c *binreader.Cursor) ([]AudioEntry, error) {
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("audio list count: %w", err)
	}
	entries := make([]AudioEntry, count)
	for i := range entries {
		loc, err := readLocator(c)
		if err != nil {
			return nil, fmt.Errorf("audio[%d] data locator: %w", i, err)
		}
		checksum, err := c.U32()
		if err != nil {
			return nil, fmt.Errorf("audio[%d] checksum: %w", i, err)
		}
		entries[i] = AudioEntry{Checksum: checksum, Data: loc}
	}
	return entries, nil
}

// readAudioPayload returns index's raw bytes, dereferenced fresh each
// call; audio blobs are not cached since the facade hands them out once
// per request and the core does not replay sound itself.
func readAudioPayload(full *binreader.Cursor, entry AudioEntry) ([]byte, error) {
	sub, err := deref(full, entry.Data)
	if err != nil {
		return nil, fmt.Errorf("audio payload: %w", err)
	}
	return sub.Bytes(sub.Remaining())
}
