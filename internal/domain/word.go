package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// WordEntry is a single vocabulary item. Entries are immutable once a deck
// has been loaded; uniqueness by Word is assumed but not enforced.
type WordEntry struct {
	Word       string `json:"word"                  validate:"required"`
	Meaning    string `json:"meaning"               validate:"required"`
	Example    string `json:"example,omitempty"`
	ExampleCN  string `json:"example_cn,omitempty"`
	Reading    string `json:"reading,omitempty"`
	SourceUnit string `json:"source_unit,omitempty"`
}

// Validate checks that the entry carries both a word and a meaning.
func (w WordEntry) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("%w: word entry requires word and meaning", ErrValidation)
	}
	return nil
}

// WithUnit returns a copy of the entry tagged with the given unit label.
func (w WordEntry) WithUnit(label string) WordEntry {
	w.SourceUnit = label
	return w
}
