package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeBaseRental(t *testing.T) {
	// 2 full days at 89.00, no extras
	quote, err := Compute(89.00, date("2025-06-01T10:00:00Z"), date("2025-06-03T10:00:00Z"), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, quote.Days)
	assert.InDelta(t, 178.00, quote.CarCost, 0.001)
	assert.InDelta(t, 0.0, quote.ExtrasCost, 0.001)
	assert.InDelta(t, 30.0, quote.Insurance, 0.001)
	assert.InDelta(t, 208.00, quote.Subtotal, 0.001)
	assert.Equal(t, "255.84", FormatAmount(quote.Total))
}

func TestComputeWithExtras(t *testing.T) {
	// 4 days at 119.00 with GPS and CASCO
	quote, err := Compute(119.00, date("2025-06-01T09:00:00Z"), date("2025-06-05T09:00:00Z"), []string{"gps", "insurance"})
	require.NoError(t, err)

	assert.Equal(t, 4, quote.Days)
	assert.InDelta(t, 476.00, quote.CarCost, 0.001)
	assert.InDelta(t, 240.00, quote.ExtrasCost, 0.001)
	assert.InDelta(t, 746.00, quote.Subtotal, 0.001)
	assert.Equal(t, "917.58", FormatAmount(quote.Total))
}

func TestComputePartialDayRoundsUp(t *testing.T) {
	// 2 days 8 hours is billed as 3 days
	quote, err := Compute(100.00, date("2025-06-01T10:00:00Z"), date("2025-06-03T18:00:00Z"), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Days)
	assert.InDelta(t, 300.00, quote.CarCost, 0.001)
}

func TestComputeDegenerateRange(t *testing.T) {
	tests := []struct {
		name   string
		pickup string
		ret    string
	}{
		{"equal timestamps", "2025-06-01T10:00:00Z", "2025-06-01T10:00:00Z"},
		{"inverted range", "2025-06-03T10:00:00Z", "2025-06-01T10:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := Compute(89.00, date(tt.pickup), date(tt.ret), []string{"gps"})
			require.NoError(t, err)
			assert.LessOrEqual(t, quote.Days, 0)
			assert.Zero(t, quote.Total)
		})
	}
}

func TestComputeUnknownExtra(t *testing.T) {
	_, err := Compute(89.00, date("2025-06-01T10:00:00Z"), date("2025-06-03T10:00:00Z"), []string{"jetpack"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownExtra)
}

func TestValidateRange(t *testing.T) {
	pickup := date("2025-06-01T10:00:00Z")

	assert.NoError(t, ValidateRange(pickup, pickup.Add(time.Hour)))
	assert.ErrorIs(t, ValidateRange(pickup, pickup), ErrInvalidDateRange)
	assert.ErrorIs(t, ValidateRange(pickup, pickup.Add(-time.Hour)), ErrInvalidDateRange)
}

func TestExtraCatalog(t *testing.T) {
	prices := map[string]float64{
		"gps":               15,
		"additional_driver": 25,
		"child_seat":        20,
		"insurance":         45,
	}

	for id, want := range prices {
		extra, ok := ExtraByID(id)
		require.True(t, ok, id)
		assert.Equal(t, want, extra.PricePerDay)
	}

	_, ok := ExtraByID("unknown")
	assert.False(t, ok)
}

func TestAmountRoundTrip(t *testing.T) {
	assert.Equal(t, "89.00", FormatAmount(89))
	assert.Equal(t, "917.58", FormatAmount(917.58))
	assert.Equal(t, 289.0, ParseAmount("289.00"))
	assert.Equal(t, 0.0, ParseAmount("not-a-number"))
	assert.Equal(t, 0.0, ParseAmount(""))
}
