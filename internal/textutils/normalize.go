// Package textutils normalizes the free-text label columns of a sales record.
package textutils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer upper-cases regions and title-cases product categories. Both
// transforms are fixed points: applying them to their own output is a no-op.
//
// A Normalizer is not safe for concurrent use; the underlying casers keep state.
type Normalizer struct {
	upper cases.Caser
	title cases.Caser
}

// NewNormalizer returns a Normalizer using language-neutral casing rules.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		upper: cases.Upper(language.Und),
		title: cases.Title(language.Und),
	}
}

// Region trims surrounding whitespace and upper-cases s.
func (n *Normalizer) Region(s string) string {
	return n.upper.String(strings.TrimSpace(s))
}

// Category trims surrounding whitespace and title-cases s: the first letter of
// every word upper, the rest lower.
func (n *Normalizer) Category(s string) string {
	return n.title.String(strings.TrimSpace(s))
}
