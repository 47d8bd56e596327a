package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmToFeetInches(t *testing.T) {
	tests := []struct {
		cm     float64
		feet   int
		inches int
	}{
		{180, 5, 11},
		{152, 5, 0},
		{183, 6, 0},
		{0, 0, 0},
		// 71.9 inches rounds to 72 and carries
		{182.6, 6, 0},
		{165, 5, 5},
	}

	for _, tt := range tests {
		feet, inches := CmToFeetInches(tt.cm)
		assert.Equal(t, tt.feet, feet, "feet for %v cm", tt.cm)
		assert.Equal(t, tt.inches, inches, "inches for %v cm", tt.cm)
	}
}

func TestFeetInchesToCm(t *testing.T) {
	assert.Equal(t, 180.0, FeetInchesToCm(5, 11))
	assert.Equal(t, 152.0, FeetInchesToCm(5, 0))
	assert.Equal(t, 183.0, FeetInchesToCm(6, 0))
}

func TestHeightRoundTrip(t *testing.T) {
	for feet := 3; feet <= 7; feet++ {
		for inches := 0; inches < InchesPerFoot; inches++ {
			gotFeet, gotInches := CmToFeetInches(FeetInchesToCm(feet, inches))
			want := feet*InchesPerFoot + inches
			got := gotFeet*InchesPerFoot + gotInches
			assert.InDelta(t, want, got, 1, "%d'%d\"", feet, inches)
			assert.Less(t, gotInches, InchesPerFoot)
		}
	}
}

func TestWeightRoundTrip(t *testing.T) {
	for _, x := range []float64{0.5, 1, 45.3, 70, 82.5, 100.1, 150, 300.7} {
		assert.InDelta(t, x, Round1(KgToLbs(LbsToKg(x))), 0.05)
		assert.InDelta(t, x, Round1(LbsToKg(KgToLbs(x))), 0.05)
	}
}

func TestWeightToKg(t *testing.T) {
	assert.Equal(t, 72.35, WeightToKg(72.35, Kg))
	assert.Equal(t, 81.6, WeightToKg(180, Lbs))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "80.0 kg", FormatWeight(80, Kg))
	assert.Equal(t, "176.4 lbs", FormatWeight(80, Lbs))
	assert.Equal(t, "180 cm", FormatHeight(180, Cm))
	assert.Equal(t, `5'11"`, FormatHeight(180, Ft))
}

func TestParseUnits(t *testing.T) {
	w, err := ParseWeightUnit("LB")
	require.NoError(t, err)
	assert.Equal(t, Lbs, w)
	_, err = ParseWeightUnit("stone")
	assert.Error(t, err)

	h, err := ParseHeightUnit("ft")
	require.NoError(t, err)
	assert.Equal(t, Ft, h)
	_, err = ParseHeightUnit("m")
	assert.Error(t, err)
}
