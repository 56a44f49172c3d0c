package render

import (
	"strings"

	"github.com/mithrel/catalogsync/internal/catalog"
)

// PriceSentences renders every shape present on p, in the fixed order
// fixed, recurring, per-session, ranged, custom quote. Shapes with nothing
// to say are skipped.
func PriceSentences(p catalog.Pricing) []string {
	if p.Empty() {
		return nil
	}
	var out []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if p.Fixed != nil {
		add(joinWords(p.Fixed.Amount, p.Fixed.Currency))
	}
	if p.Recurring != nil {
		s := joinWords(p.Recurring.Amount, p.Recurring.Currency)
		if p.Recurring.Frequency != "" {
			s = joinWords(s, "per", p.Recurring.Frequency)
		}
		add(s)
	}
	if p.PerSession != nil {
		if s := joinWords(p.PerSession.Amount, p.PerSession.Currency); s != "" {
			add(s + " per session")
		}
	}
	if p.Ranged != nil {
		r := p.Ranged
		if r.HasBounds() {
			add(joinWords(r.Min+"-"+r.Max, r.Currency, r.Basis))
		} else {
			add(r.Basis)
		}
	}
	if p.CustomQuote != nil {
		add(p.CustomQuote.Basis)
	}
	return out
}

// PriceLine joins PriceSentences with ", ".
func PriceLine(p catalog.Pricing) string {
	return strings.Join(PriceSentences(p), ", ")
}

func joinWords(words ...string) string {
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			parts = append(parts, w)
		}
	}
	return strings.Join(parts, " ")
}
