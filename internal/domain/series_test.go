package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesFromPairs(t *testing.T) {
	t.Run("valid pairs", func(t *testing.T) {
		series, err := SeriesFromPairs([][2]float64{
			{1000, 10.5},
			{2000, 11},
			{3000, 10.8},
		})
		require.NoError(t, err)
		require.Len(t, series, 3)
		assert.Equal(t, []float64{10.5, 11, 10.8}, series.Prices())

		last, ok := series.Last()
		require.True(t, ok)
		assert.Equal(t, int64(3000), last.Timestamp)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := SeriesFromPairs(nil)
		assert.ErrorIs(t, err, ErrInvalidSeries)
	})

	t.Run("duplicate timestamp", func(t *testing.T) {
		_, err := SeriesFromPairs([][2]float64{{1000, 1}, {1000, 2}})
		assert.ErrorIs(t, err, ErrInvalidSeries)
	})

	t.Run("out of order", func(t *testing.T) {
		_, err := SeriesFromPairs([][2]float64{{2000, 1}, {1000, 2}})
		assert.ErrorIs(t, err, ErrInvalidSeries)
	})
}

func TestSeriesLastEmpty(t *testing.T) {
	var series PriceSeries
	_, ok := series.Last()
	assert.False(t, ok)
}
