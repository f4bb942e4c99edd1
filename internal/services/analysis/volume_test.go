package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeVolume(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		result := AnalyzeVolume(nil)
		assert.Zero(t, result.AverageVolume)
		assert.Zero(t, result.RelativeVolume)
		assert.Empty(t, result.VolumeSpikes)
	})

	t.Run("steady volume reads relative one", func(t *testing.T) {
		volumes := make([]float64, 25)
		for i := range volumes {
			volumes[i] = 10
		}
		result := AnalyzeVolume(volumes)
		assert.InDelta(t, 10, result.AverageVolume, 1e-9)
		assert.InDelta(t, 1, result.RelativeVolume, 1e-9)
		assert.Empty(t, result.VolumeSpikes)
	})

	t.Run("spike candle flagged", func(t *testing.T) {
		volumes := make([]float64, 25)
		for i := range volumes {
			volumes[i] = 10
		}
		volumes[24] = 30

		result := AnalyzeVolume(volumes)
		// average over the last 20 samples: (19*10 + 30) / 20
		assert.InDelta(t, 11, result.AverageVolume, 1e-9)
		assert.InDelta(t, 30.0/11.0, result.RelativeVolume, 1e-9)
		assert.Equal(t, []int{24}, result.VolumeSpikes)
	})

	t.Run("short series averages over what it has", func(t *testing.T) {
		result := AnalyzeVolume([]float64{1, 2, 3, 4, 5})
		assert.InDelta(t, 3, result.AverageVolume, 1e-9)
		assert.InDelta(t, 5.0/3.0, result.RelativeVolume, 1e-9)
		assert.Equal(t, []int{4}, result.VolumeSpikes)
	})
}
