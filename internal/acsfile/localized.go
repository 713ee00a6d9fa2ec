package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// LocalizedInfo is one LANGID-keyed name/description/extra triple from the
// character's localized-info list. The on-disk shape isn't pinned down by
// the external byte layout in §6 (only the list's existence and its
// locator are); this mirrors the sibling StateInfoList/AnimationInfoList
// shape — a count followed by fixed-shape entries — since that is the
// only list convention the rest of the format uses.
type LocalizedInfo struct {
	LangID      uint16
	Name        string
	Description string
	Extra       string
}

func readLocalizedInfoList(c *binreader.Cursor) ([]LocalizedInfo, error) {
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("localized info count: %w", err)
	}
	list := make([]LocalizedInfo, count)
	for i := range list {
		langID, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("localized[%d] lang id: %w", i, err)
		}
		name, err := readString(c)
		if err != nil {
			return nil, fmt.Errorf("localized[%d] name: %w", i, err)
		}
		desc, err := readString(c)
		if err != nil {
			return nil, fmt.Errorf("localized[%d] description: %w", i, err)
		}
		extra, err := readString(c)
		if err != nil {
			return nil, fmt.Errorf("localized[%d] extra: %w", i, err)
		}
		list[i] = LocalizedInfo{LangID: langID, Name: name, Description: desc, Extra: extra}
	}
	return list, nil
}
