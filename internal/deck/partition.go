package deck

import (
	"fmt"

	"github.com/phrazzld/wordflip/internal/domain"
)

// DefaultUnitSize is the chunk size used to partition flat lists.
const DefaultUnitSize = 20

// UnitLabel formats the label of the ordinal-th unit spanning the inclusive
// 1-based range [start, end].
func UnitLabel(ordinal, start, end int) string {
	return fmt.Sprintf("Unit %d (%d-%d)", ordinal, start, end)
}

// Partition splits entries into contiguous units of at most size entries.
// A non-positive size falls back to DefaultUnitSize.
func Partition(entries []domain.WordEntry, size int) []domain.Unit {
	if size <= 0 {
		size = DefaultUnitSize
	}

	units := make([]domain.Unit, 0, (len(entries)+size-1)/size)
	for start := 0; start < len(entries); start += size {
		end := min(start+size, len(entries))
		units = append(units, domain.Unit{
			Label:   UnitLabel(len(units)+1, start+1, end),
			Entries: entries[start:end:end],
		})
	}
	return units
}
