package baggage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeeFromTotalWeight(t *testing.T) {
	tests := []struct {
		name    string
		airline Airline
		totalKg float64
		want    int
	}{
		{"korean air 2kg over", KoreanAir, 25, 20000},
		{"korean air under allowance", KoreanAir, 20, 0},
		{"korean air exactly at allowance", KoreanAir, 23, 0},
		{"tway 5kg over", TwayAir, 25, 50000},
		{"jeju 10kg over cheap rate", JejuAir, 25, 20000},
		{"jin air 1kg over", JinAir, 21, 2000},
		{"unknown airline is free", Airline("UnknownAir"), 30, 0},
		{"zero weight is valid", KoreanAir, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FeeFromTotalWeight(tt.airline, tt.totalKg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFeeFromExcessWeight(t *testing.T) {
	got, err := FeeFromExcessWeight(JejuAir, 3)
	require.NoError(t, err)
	assert.Equal(t, 6000, got)

	got, err = FeeFromExcessWeight(KoreanAir, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = FeeFromExcessWeight(Airline("UnknownAir"), 12)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestInvalidWeightRejected(t *testing.T) {
	var invalid *ErrInvalidWeight

	_, err := FeeFromTotalWeight(KoreanAir, -1)
	require.ErrorAs(t, err, &invalid)

	_, err = FeeFromExcessWeight(KoreanAir, math.NaN())
	require.ErrorAs(t, err, &invalid)

	_, err = FeeFromTotalWeight(KoreanAir, math.Inf(1))
	require.ErrorAs(t, err, &invalid)
}

func TestParseAirline(t *testing.T) {
	a, ok := ParseAirline("korean air")
	assert.True(t, ok)
	assert.Equal(t, KoreanAir, a)

	a, ok = ParseAirline("제주항공")
	assert.True(t, ok)
	assert.Equal(t, JejuAir, a)

	a, ok = ParseAirline("  Jin Air  ")
	assert.True(t, ok)
	assert.Equal(t, JinAir, a)

	a, ok = ParseAirline("UnknownAir")
	assert.False(t, ok)
	assert.Equal(t, Airline("UnknownAir"), a)
}

func TestLookupUnknownIsZeroRow(t *testing.T) {
	a := Lookup(Airline("UnknownAir"))
	assert.Zero(t, a.FreeKg)
	assert.Zero(t, a.FeePerKgKRW)
}

func TestAllowancesOrder(t *testing.T) {
	all := Allowances()
	require.Len(t, all, 5)
	assert.Equal(t, KoreanAir, all[0].Airline)
	assert.Equal(t, JinAir, all[4].Airline)
}
