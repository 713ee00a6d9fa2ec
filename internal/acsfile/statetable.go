package acsfile

import (
	"fmt"

	"github.com/msagent/acs/animation"
	"github.com/msagent/acs/internal/binreader"
)

// readStateTable decodes a StateInfoList: u16 count, then count entries of
// {String name, u16 anim_count, String[anim_count]}.
func readStateTable(c *binreader.Cursor) (animation.StateTable, error) {
	count, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("state table count: %w", err)
	}
	table := make(animation.StateTable, count)
	for i := range table {
		name, err := readString(c)
		if err != nil {
			return nil, fmt.Errorf("state[%d] name: %w", i, err)
		}
		animCount, err := c.U16()
		if err != nil {
			return nil, fmt.Errorf("state[%d] anim_count: %w", i, err)
		}
		members := make([]string, animCount)
		for j := range members {
			m, err := readString(c)
			if err != nil {
				return nil, fmt.Errorf("state[%d] member[%d]: %w", i, j, err)
			}
			members[j] = m
		}
		table[i] = animation.StateEntry{Name: name, Members: members}
	}
	return table, nil
}
