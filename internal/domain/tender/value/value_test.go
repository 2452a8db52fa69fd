package value

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"rupee crore", "₹30 Cr", 30, true},
		{"decimal", "₹8.2 Cr", 8.2, true},
		{"plain", "45", 45, true},
		{"no symbol", "12.5 Cr", 12.5, true},
		{"first number wins", "₹4.5 Cr - ₹6 Cr", 4.5, true},
		{"leading dot", "approx .5 Cr", 0.5, true},
		{"trailing dot", "5. Cr", 5, true},
		{"second dot stops", "8.2.3", 8.2, true},
		{"zero", "₹0 Cr", 0, true},
		{"not disclosed", NotDisclosed, 0, false},
		{"empty", "", 0, false},
		{"no digits", "TBD", 0, false},
		{"rupee abbreviation", "Rs. 30 Cr", 30, true},
		{"dot before number", "No. 12 / 45 Cr", 12, true},
		{"only dots", "₹. Cr", 0, false},
		{"overflow", "1" + strings.Repeat("0", 400), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in).Value()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	for _, s := range []string{"₹30 Cr", "Ref Document", "₹8.2 Cr", ""} {
		assert.Equal(t, Parse(s), Parse(s), s)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want Tier
	}{
		{"₹45 Cr", TierHigh},
		{"₹30 Cr", TierHigh},
		{"₹29.9 Cr", TierMedium},
		{"₹10 Cr", TierMedium},
		{"₹9.99 Cr", TierNeutral},
		{"₹0 Cr", TierNeutral},
		{NotDisclosed, TierNeutral},
		{"", TierNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyMagnitude_Unparseable(t *testing.T) {
	assert.Equal(t, TierNeutral, ClassifyMagnitude(Unparseable()))
}

func TestTier_DisplayClass(t *testing.T) {
	assert.Equal(t, "text-green-600 font-semibold", TierHigh.DisplayClass())
	assert.Equal(t, "text-blue-600 font-semibold", TierMedium.DisplayClass())
	assert.Equal(t, "text-muted-foreground", TierNeutral.DisplayClass())
	assert.Equal(t, "text-muted-foreground", Tier("bogus").DisplayClass())
}
