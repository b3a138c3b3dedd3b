package indicator

// FibDirection tells whether the retracement runs off a recent high or low.
type FibDirection string

const (
	FibFromHigh FibDirection = "from_high"
	FibFromLow  FibDirection = "from_low"
)

// FibLevel is one retracement level.
type FibLevel struct {
	Ratio float64 `json:"ratio"`
	Price float64 `json:"price"`
}

// FibonacciResult holds the swing extremes and retracement levels.
type FibonacciResult struct {
	High      float64      `json:"high"`
	Low       float64      `json:"low"`
	Direction FibDirection `json:"direction"`
	Levels    []FibLevel   `json:"levels"`
}

// Fibonacci computes retracement levels between the max and min close of
// the series. Direction is inferred from whichever extreme is more recent:
// a later high means price retraces down from the high, and vice versa.
func Fibonacci(closes []float64) FibonacciResult {
	if len(closes) == 0 {
		return FibonacciResult{Direction: FibFromHigh, Levels: []FibLevel{}}
	}

	hiIdx, loIdx := 0, 0
	for i, c := range closes {
		if c > closes[hiIdx] {
			hiIdx = i
		}
		if c < closes[loIdx] {
			loIdx = i
		}
	}

	high, low := closes[hiIdx], closes[loIdx]
	span := high - low

	r := FibonacciResult{
		High:   high,
		Low:    low,
		Levels: make([]FibLevel, 0, len(fibRatios)),
	}

	if hiIdx >= loIdx {
		r.Direction = FibFromHigh
		for _, ratio := range fibRatios {
			r.Levels = append(r.Levels, FibLevel{Ratio: ratio, Price: high - span*ratio})
		}
	} else {
		r.Direction = FibFromLow
		for _, ratio := range fibRatios {
			r.Levels = append(r.Levels, FibLevel{Ratio: ratio, Price: low + span*ratio})
		}
	}

	return r
}
