// Package value extracts and classifies tender value magnitudes.
//
// Magnitudes are unit-less: "₹30 Cr", "30 Cr" and "30" all parse to 30.
// Callers infer the unit (crore, in practice) from context.
package value

import "strconv"

// NotDisclosed is the tender value used when the amount is only given in the tender documents.
const NotDisclosed = "Ref Document"

// Tier thresholds.
const (
	HighThreshold   = 30
	MediumThreshold = 10
)

// Magnitude is the result of parsing a tender value: either Parsed(v) or Unparseable.
type Magnitude struct {
	value  float64
	parsed bool
}

// Parsed creates a parsed magnitude.
func Parsed(v float64) Magnitude { return Magnitude{value: v, parsed: true} }

// Unparseable returns the magnitude of a value that carries no usable number.
func Unparseable() Magnitude { return Magnitude{} }

// IsParsed reports whether a number was extracted.
func (m Magnitude) IsParsed() bool { return m.parsed }

// Value returns the number and whether the magnitude was parsed.
func (m Magnitude) Value() (float64, bool) { return m.value, m.parsed }

// Parse extracts the first unsigned decimal number from s: digits with an optional
// single decimal point, at least one digit. Dots without digits ("Rs. 30") are skipped.
// NotDisclosed, strings without digits and overflowing numbers yield Unparseable. Parse never fails.
func Parse(s string) Magnitude {
	if s == NotDisclosed {
		return Unparseable()
	}

	num := firstNumber(s)
	if num == "" {
		return Unparseable()
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Unparseable()
	}
	return Parsed(v)
}

// firstNumber returns the leftmost longest match of `[0-9]+(\.[0-9]*)?|\.[0-9]+`, or "".
func firstNumber(s string) string {
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]):
			end := skipDigits(s, i)
			if end < len(s) && s[end] == '.' {
				end = skipDigits(s, end+1)
			}
			return s[i:end]
		case s[i] == '.' && i+1 < len(s) && isDigit(s[i+1]):
			return s[i:skipDigits(s, i+1)]
		}
	}
	return ""
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Tier is a coarse display classification of a magnitude.
type Tier string

// Tier values.
const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierNeutral Tier = "neutral"
)

// Classify parses s and maps the magnitude to a tier.
func Classify(s string) Tier {
	return ClassifyMagnitude(Parse(s))
}

// ClassifyMagnitude maps a magnitude to a tier. Unparseable values are neutral.
func ClassifyMagnitude(m Magnitude) Tier {
	v, ok := m.Value()
	switch {
	case !ok:
		return TierNeutral
	case v >= HighThreshold:
		return TierHigh
	case v >= MediumThreshold:
		return TierMedium
	default:
		return TierNeutral
	}
}

// DisplayClass returns the CSS utility classes the web client renders the value with.
func (t Tier) DisplayClass() string {
	switch t {
	case TierHigh:
		return "text-green-600 font-semibold"
	case TierMedium:
		return "text-blue-600 font-semibold"
	default:
		return "text-muted-foreground"
	}
}
