package deck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phrazzld/wordflip/internal/domain"
)

// PayloadKind tags the shape of a parsed deck document.
type PayloadKind int

// Payload shapes.
const (
	// FlatList is a JSON array of entries, partitioned automatically.
	FlatList PayloadKind = iota + 1
	// UnitMap is a JSON object mapping unit labels to entry arrays.
	UnitMap
)

func (k PayloadKind) String() string {
	switch k {
	case FlatList:
		return "flat_list"
	case UnitMap:
		return "unit_map"
	default:
		return "unknown"
	}
}

// Payload is a parsed deck document. Entries is set for FlatList, Units
// for UnitMap, in document order.
type Payload struct {
	Kind    PayloadKind
	Entries []domain.WordEntry
	Units   []domain.Unit
}

// UnitsOf partitions the payload into labeled units. Flat lists are chunked
// by size; unit maps are returned as parsed.
func (p Payload) UnitsOf(size int) []domain.Unit {
	if p.Kind == UnitMap {
		return p.Units
	}
	return Partition(p.Entries, size)
}

var (
	errEmptyPayload   = errors.New("payload contains no entries")
	errUnknownShape   = errors.New("payload must be a JSON array or object")
	errDuplicateLabel = errors.New("duplicate unit label")
	errEmptyLabel     = errors.New("empty unit label")
)

// ParsePayload decides the payload shape once and decodes it. Object keys
// keep their document order. Any structural problem, entry missing its word
// or meaning, or an empty document yields a *DataFormatError.
func ParsePayload(source string, data []byte) (Payload, error) {
	p, err := parsePayload(data)
	if err != nil {
		return Payload{}, &DataFormatError{Source: source, Err: err}
	}
	return p, nil
}

func parsePayload(data []byte) (Payload, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Payload{}, errEmptyPayload
	}

	switch trimmed[0] {
	case '[':
		entries, err := decodeEntries(trimmed)
		if err != nil {
			return Payload{}, err
		}
		if len(entries) == 0 {
			return Payload{}, errEmptyPayload
		}
		return Payload{Kind: FlatList, Entries: entries}, nil
	case '{':
		units, err := decodeUnitMap(trimmed)
		if err != nil {
			return Payload{}, err
		}
		return Payload{Kind: UnitMap, Units: units}, nil
	default:
		return Payload{}, errUnknownShape
	}
}

func decodeEntries(data []byte) ([]domain.WordEntry, error) {
	var entries []domain.WordEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}
	return entries, nil
}

// decodeUnitMap walks the object token by token so unit order follows the
// document rather than Go map iteration.
func decodeUnitMap(data []byte) ([]domain.Unit, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var units []domain.Unit
	seen := make(map[string]bool)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		label, ok := tok.(string)
		if !ok {
			return nil, errUnknownShape
		}
		if label == "" {
			return nil, errEmptyLabel
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: %q", errDuplicateLabel, label)
		}
		seen[label] = true

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("unit %q: %w", label, err)
		}
		entries, err := decodeEntries(raw)
		if err != nil {
			return nil, fmt.Errorf("unit %q: %w", label, err)
		}
		if len(entries) == 0 {
			continue
		}
		units = append(units, domain.Unit{Label: label, Entries: entries})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after payload")
	}
	if len(units) == 0 {
		return nil, errEmptyPayload
	}
	return units, nil
}
