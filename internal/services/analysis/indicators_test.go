package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinpulse/coinpulse/internal/domain"
)

func ascending(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = float64(i + 1)
	}
	return prices
}

func TestSMA(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		period   int
		expected float64
		wantErr  error
	}{
		{
			name:     "mean of last period values",
			prices:   []float64{1, 2, 3, 4, 5, 6},
			period:   3,
			expected: 5, // (4+5+6)/3
		},
		{
			name:     "whole slice",
			prices:   []float64{2, 4},
			period:   2,
			expected: 3,
		},
		{
			name:     "rounds to four decimals",
			prices:   []float64{1, 1, 1.0001},
			period:   3,
			expected: 1.0, // 1.00003333 rounds down
		},
		{
			name:    "insufficient data",
			prices:  []float64{1, 2},
			period:  3,
			wantErr: domain.ErrInsufficientData,
		},
		{
			name:    "non-positive period",
			prices:  []float64{1, 2, 3},
			period:  0,
			wantErr: domain.ErrInvalidSeries,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SMA(tt.prices, tt.period)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestEMA(t *testing.T) {
	t.Run("constant series stays constant", func(t *testing.T) {
		got, err := EMA([]float64{42, 42, 42, 42, 42}, 3)
		require.NoError(t, err)
		assert.InDelta(t, 42, got, 1e-9)
	})

	t.Run("seeded with first element", func(t *testing.T) {
		// mult = 2/3: 1 -> 5/3 -> 23/9 -> 95/27
		got, err := EMA([]float64{1, 2, 3, 4}, 2)
		require.NoError(t, err)
		assert.InDelta(t, 3.5185, got, 1e-4)
	})

	t.Run("tracks recent prices closer than SMA", func(t *testing.T) {
		prices := ascending(30)
		ema, err := EMA(prices, 12)
		require.NoError(t, err)
		sma, err := SMA(prices, 12)
		require.NoError(t, err)
		assert.Greater(t, ema, sma-12) // both near the recent range
		assert.Less(t, ema, 30.0)
	})

	t.Run("insufficient data", func(t *testing.T) {
		got, err := EMA([]float64{1, 2}, 5)
		assert.ErrorIs(t, err, domain.ErrInsufficientData)
		assert.Zero(t, got)
	})
}

func TestRSI(t *testing.T) {
	t.Run("all gains clamps to 100", func(t *testing.T) {
		result := RSI(ascending(20), 14)
		assert.InDelta(t, 100, result.Value, 1e-9)
		assert.Equal(t, domain.SignalSell, result.Signal)
		assert.Equal(t, domain.StrengthStrong, result.Strength)
	})

	t.Run("all losses reads zero", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = float64(100 - i)
		}
		result := RSI(prices, 14)
		assert.InDelta(t, 0, result.Value, 1e-9)
		assert.Equal(t, domain.SignalBuy, result.Signal)
		assert.Equal(t, domain.StrengthStrong, result.Strength)
	})

	t.Run("short series degrades to neutral", func(t *testing.T) {
		result := RSI([]float64{1, 2, 3}, 14)
		assert.Equal(t, domain.NeutralIndicator(50), result)
	})

	t.Run("value stays within bounds", func(t *testing.T) {
		prices := []float64{44, 44.3, 44.1, 43.6, 44.3, 44.8, 45.1, 45.4, 45.8, 46.1, 45.9, 46.3, 46.2, 46.0, 46.6, 46.2, 46.4}
		result := RSI(prices, 14)
		assert.GreaterOrEqual(t, result.Value, 0.0)
		assert.LessOrEqual(t, result.Value, 100.0)
	})

	t.Run("mid-range maps to hold", func(t *testing.T) {
		prices := []float64{10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11, 10, 11}
		result := RSI(prices, 14)
		assert.Equal(t, domain.SignalHold, result.Signal)
		assert.Equal(t, domain.StrengthNeutral, result.Strength)
	})
}

func TestMACD(t *testing.T) {
	t.Run("too short yields zero result", func(t *testing.T) {
		assert.Equal(t, domain.MACDResult{}, MACD(ascending(20)))
	})

	t.Run("constant series has no divergence", func(t *testing.T) {
		prices := make([]float64, 50)
		for i := range prices {
			prices[i] = 100
		}
		result := MACD(prices)
		assert.InDelta(t, 0, result.MACD, 1e-9)
		assert.InDelta(t, 0, result.Signal, 1e-9)
		assert.InDelta(t, 0, result.Histogram, 1e-9)
	})

	t.Run("uptrend pushes macd above zero", func(t *testing.T) {
		result := MACD(ascending(60))
		assert.Greater(t, result.MACD, 0.0)
		assert.InDelta(t, result.MACD-result.Signal, result.Histogram, 1e-4)
	})
}

func TestBollinger(t *testing.T) {
	t.Run("band ordering holds", func(t *testing.T) {
		prices := []float64{10, 12, 11, 13, 12, 14, 13, 15, 14, 16, 15, 17, 16, 18, 17, 19, 18, 20, 19, 21}
		bands, err := Bollinger(prices, 20, 2)
		require.NoError(t, err)
		assert.LessOrEqual(t, bands.Lower, bands.Middle)
		assert.LessOrEqual(t, bands.Middle, bands.Upper)
	})

	t.Run("flat series collapses the envelope", func(t *testing.T) {
		prices := make([]float64, 20)
		for i := range prices {
			prices[i] = 50
		}
		bands, err := Bollinger(prices, 20, 2)
		require.NoError(t, err)
		assert.Equal(t, bands.Middle, bands.Upper)
		assert.Equal(t, bands.Middle, bands.Lower)
	})

	t.Run("insufficient data", func(t *testing.T) {
		_, err := Bollinger([]float64{1, 2, 3}, 20, 2)
		assert.ErrorIs(t, err, domain.ErrInsufficientData)
	})
}

func TestFibonacciRetracement(t *testing.T) {
	levels := FibonacciRetracement(100, 50)

	expected := map[string]float64{
		"0%":    100,
		"23.6%": 88.2,
		"38.2%": 80.9,
		"50%":   75,
		"61.8%": 69.1,
		"78.6%": 60.7,
		"100%":  50,
	}
	require.Len(t, levels.Levels, len(expected))
	for label, want := range expected {
		assert.InDelta(t, want, levels.Levels[label], 1e-9, "level %s", label)
	}

	t.Run("strictly monotonic between high and low", func(t *testing.T) {
		prev := levels.Levels[domain.FibLabels[0]]
		for _, label := range domain.FibLabels[1:] {
			assert.Less(t, levels.Levels[label], prev)
			prev = levels.Levels[label]
		}
	})
}

func TestFindSupportResistance(t *testing.T) {
	t.Run("repeated touches rank the level", func(t *testing.T) {
		prices := []float64{10, 9, 8, 9, 10, 9, 8, 9, 10, 9, 8, 9, 10}
		sr := FindSupportResistance(prices, 2)

		require.Len(t, sr.Support, 1)
		assert.InDelta(t, 8, sr.Support[0], 1e-9)
		require.Len(t, sr.Resistance, 1)
		assert.InDelta(t, 10, sr.Resistance[0], 1e-9)
	})

	t.Run("levels within one percent are grouped", func(t *testing.T) {
		prices := []float64{10, 9, 8.00, 9, 10, 9, 8.05, 9, 10, 9, 8.02, 9, 10}
		sr := FindSupportResistance(prices, 2)

		require.Len(t, sr.Support, 1)
		assert.InDelta(t, 8.0233, sr.Support[0], 1e-3)
	})

	t.Run("single touches filtered by minTouches", func(t *testing.T) {
		prices := []float64{1, 2, 3, 4, 5, 4, 3, 2, 1}
		sr := FindSupportResistance(prices, 2)
		assert.Empty(t, sr.Support)
		assert.Empty(t, sr.Resistance)
	})

	t.Run("at most three per side", func(t *testing.T) {
		var prices []float64
		// four distinct double-touched valleys far enough apart
		for _, base := range []float64{10, 20, 40, 80} {
			for i := 0; i < 2; i++ {
				prices = append(prices, base*1.5, base*1.2, base, base*1.2, base*1.5)
			}
		}
		sr := FindSupportResistance(prices, 2)
		assert.LessOrEqual(t, len(sr.Support), 3)
		assert.LessOrEqual(t, len(sr.Resistance), 3)
	})
}
