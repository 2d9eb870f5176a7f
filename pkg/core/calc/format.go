package calc

import (
	"fmt"
	"strings"
)

// Display formatting for insight and derivation strings. Kept apart from the
// numeric core so the arithmetic can be tested without caring about
// currency-symbol rendering.

// groupThousands inserts comma separators into the integer digits of s.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	var b strings.Builder
	n := len(intPart)
	for i, c := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// eur formats a whole-euro amount, e.g. "€5,000,000".
func eur(v float64) string {
	return "€" + groupThousands(fmt.Sprintf("%.0f", v))
}

// eur2 formats a per-unit amount with cents, e.g. "€500.00".
func eur2(v float64) string {
	return "€" + groupThousands(fmt.Sprintf("%.2f", v))
}

// eurM formats an amount in millions, e.g. "€5.00M".
func eurM(v float64) string {
	return fmt.Sprintf("€%.2fM", v/1_000_000)
}

// count formats a unit count, e.g. "8,000".
func count(v float64) string {
	return groupThousands(fmt.Sprintf("%.0f", v))
}

// pct formats a percentage with one decimal, e.g. "12.3%".
func pct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// pctRaw formats a percentage the way it was given (no forced decimals).
func pctRaw(v float64) string {
	return fmt.Sprintf("%g%%", v)
}
