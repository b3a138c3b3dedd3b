package indicator

// VolumeTrend classifies current volume against its rolling average.
type VolumeTrend string

const (
	VolumeHigh   VolumeTrend = "high"
	VolumeLow    VolumeTrend = "low"
	VolumeNormal VolumeTrend = "normal"
)

// VolumeResult holds the current/average volume comparison.
type VolumeResult struct {
	Current int64       `json:"current"`
	Average float64     `json:"average"`
	Ratio   float64     `json:"ratio"`
	Trend   VolumeTrend `json:"trend"`
}

// VolumeRatio compares the latest volume to the rolling 20-period average.
// A zero average short-circuits to a ratio of 1 (normal).
func VolumeRatio(volumes []int64) VolumeResult {
	if len(volumes) == 0 {
		return VolumeResult{Ratio: 1, Trend: VolumeNormal}
	}

	period := volumePeriod
	if len(volumes) < period {
		period = len(volumes)
	}

	var sum int64
	for _, v := range volumes[len(volumes)-period:] {
		sum += v
	}
	avg := float64(sum) / float64(period)

	r := VolumeResult{
		Current: volumes[len(volumes)-1],
		Average: avg,
		Ratio:   1,
		Trend:   VolumeNormal,
	}
	if avg > 0 {
		r.Ratio = float64(r.Current) / avg
	}

	switch {
	case r.Ratio > volumeHighRatio:
		r.Trend = VolumeHigh
	case r.Ratio < volumeLowRatio:
		r.Trend = VolumeLow
	}

	return r
}
