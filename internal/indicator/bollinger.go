package indicator

// BandPosition classifies where the latest close sits relative to the bands.
type BandPosition string

const (
	PositionAboveUpper BandPosition = "above_upper"
	PositionUpperHalf  BandPosition = "upper_half"
	PositionMiddle     BandPosition = "middle"
	PositionLowerHalf  BandPosition = "lower_half"
	PositionBelowLower BandPosition = "below_lower"
)

// BollingerResult holds the band levels and latest-close classification.
type BollingerResult struct {
	Upper    float64      `json:"upper"`
	Middle   float64      `json:"middle"`
	Lower    float64      `json:"lower"`
	Position BandPosition `json:"position"`
	PercentB float64      `json:"percent_b"`
}

// Bollinger computes SMA20 +/- 2 standard deviation bands and classifies
// the latest close into one of five buckets. A zero band width short-circuits
// %B to the midpoint.
func Bollinger(closes []float64) BollingerResult {
	if len(closes) == 0 {
		return BollingerResult{Position: PositionMiddle, PercentB: 0.5}
	}

	middle := LastSMA(closes, bollingerPeriod)
	dev := StdDev(closes, bollingerPeriod)

	r := BollingerResult{
		Upper:  middle + bollingerWidth*dev,
		Middle: middle,
		Lower:  middle - bollingerWidth*dev,
	}

	price := closes[len(closes)-1]
	switch {
	case price > r.Upper:
		r.Position = PositionAboveUpper
	case price < r.Lower:
		r.Position = PositionBelowLower
	case price > r.Middle:
		r.Position = PositionUpperHalf
	case price < r.Middle:
		r.Position = PositionLowerHalf
	default:
		r.Position = PositionMiddle
	}

	if width := r.Upper - r.Lower; width > 0 {
		r.PercentB = (price - r.Lower) / width
	} else {
		r.PercentB = 0.5
	}

	return r
}
