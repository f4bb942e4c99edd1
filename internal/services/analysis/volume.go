package analysis

import (
	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/trend"

	"github.com/coinpulse/coinpulse/internal/domain"
)

const (
	volumePeriod         = 20
	volumeSpikeThreshold = 1.5
)

// AnalyzeVolume computes the 20-period average volume, the relative volume
// of the latest sample and the indices of spike candles (volume above 1.5x
// the average).
func AnalyzeVolume(volumes []float64) domain.VolumeAnalysis {
	if len(volumes) == 0 {
		return domain.VolumeAnalysis{VolumeSpikes: []int{}}
	}

	period := volumePeriod
	if len(volumes) < period {
		period = len(volumes)
	}

	sma := trend.NewSmaWithPeriod[float64](period)
	smoothed := helper.ChanToSlice(sma.Compute(helper.SliceToChan(volumes)))
	average := smoothed[len(smoothed)-1]

	current := volumes[len(volumes)-1]
	relative := 0.0
	if average > 0 {
		relative = current / average
	}

	spikes := []int{}
	threshold := average * volumeSpikeThreshold
	for i, v := range volumes {
		if v > threshold {
			spikes = append(spikes, i)
		}
	}

	return domain.VolumeAnalysis{
		CurrentVolume:  current,
		AverageVolume:  average,
		RelativeVolume: relative,
		VolumeSpikes:   spikes,
	}
}
