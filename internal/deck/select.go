package deck

import (
	"github.com/phrazzld/wordflip/internal/domain"
)

// Selection is the outcome of resolving a unit selection against a set of
// units.
type Selection struct {
	// Labels are the labels actually in effect, in the order applied.
	Labels []string
	// Deck is the concatenation of the selected units' entries, each tagged
	// with its unit label.
	Deck domain.Deck
	// Defaulted is true when the first unit was used because the selection
	// was unset or matched no known unit.
	Defaulted bool
	// Dropped lists requested labels that matched no unit.
	Dropped []string
}

// Select resolves the selection. A nil selection means "unset" and picks the
// first unit. A non-nil empty selection returns domain.ErrEmptySelection with
// an empty deck. Unknown labels are dropped; when none remain the first unit
// is used. Repeated labels are applied once.
func Select(units []domain.Unit, selected []string) (Selection, error) {
	if selected != nil && len(selected) == 0 {
		return Selection{Labels: []string{}}, domain.ErrEmptySelection
	}
	if len(units) == 0 {
		return Selection{}, domain.ErrEmptyDeck
	}

	byLabel := make(map[string]domain.Unit, len(units))
	for _, u := range units {
		byLabel[u.Label] = u
	}

	var sel Selection
	applied := make(map[string]bool)
	for _, label := range selected {
		if applied[label] {
			continue
		}
		u, ok := byLabel[label]
		if !ok {
			sel.Dropped = append(sel.Dropped, label)
			continue
		}
		applied[label] = true
		sel.Labels = append(sel.Labels, label)
		sel.Deck.Entries = appendTagged(sel.Deck.Entries, u)
	}

	if len(sel.Labels) == 0 {
		first := units[0]
		sel.Labels = []string{first.Label}
		sel.Deck.Entries = appendTagged(nil, first)
		sel.Defaulted = true
	}

	return sel, nil
}

func appendTagged(dst []domain.WordEntry, u domain.Unit) []domain.WordEntry {
	for _, e := range u.Entries {
		dst = append(dst, e.WithUnit(u.Label))
	}
	return dst
}
