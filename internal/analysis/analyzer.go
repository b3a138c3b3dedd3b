// Package analysis orchestrates the technical signal engine: it fans the
// candle history out across timeframes, scores confidence, reconciles
// technicals against fundamentals and renders the result.
package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quantive/confluence/internal/confidence"
	"github.com/quantive/confluence/internal/conflict"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/pattern"
	"github.com/quantive/confluence/internal/timeframe"
)

// defaultNewsScore is used when no news summary is supplied.
const defaultNewsScore = 50.0

// Request carries everything one analysis needs. All inputs are resident
// in memory; the engine performs no I/O.
type Request struct {
	Symbol       string
	Series       timeframe.Series
	News         *core.NewsSummary
	Fundamentals *core.Fundamentals
}

// StockAnalysis is the final analysis record. It is the only entity that
// outlives the request; everything inside is recomputed every time.
type StockAnalysis struct {
	ID           string             `json:"id"`
	Symbol       string             `json:"symbol"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Timeframes   timeframe.Set      `json:"timeframes"`
	Candlesticks []pattern.Match    `json:"candlesticks,omitempty"`
	Bias         core.Bias          `json:"bias"`
	Confidence   confidence.Result  `json:"confidence"`
	Conflict     *conflict.Result   `json:"conflict,omitempty"`
	News         *core.NewsSummary  `json:"news,omitempty"`
	Fundamentals *core.Fundamentals `json:"fundamentals,omitempty"`
	Summary      string             `json:"summary"`
}

// Analyzer runs the full pipeline. The clock and ID source are injectable
// so identical inputs produce identical records under test.
type Analyzer struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewAnalyzer creates an analyzer with the real clock and UUID source.
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Analyze runs the engine over the request. Missing or short series
// degrade per timeframe; only an empty symbol is rejected outright.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*StockAnalysis, error) {
	if req.Symbol == "" {
		return nil, core.WrapError(core.ErrAnalysisFailed, errEmptySymbol)
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	set := timeframe.Analyze(req.Series)
	candlesticks := pattern.DetectCandlesticks(req.Series.Daily)
	bias := set.Alignment.Bias()

	var patternConf *float64
	if set.Daily.Chart.Primary != nil {
		patternConf = &set.Daily.Chart.Primary.Confidence
	}

	newsScore := defaultNewsScore
	if req.News != nil {
		newsScore = req.News.Score
	}

	conf := confidence.Score(confidence.Inputs{
		PatternConfidence: patternConf,
		NewsScore:         newsScore,
		AlignmentScore:    set.Alignment.Score,
		VolumeRatio:       set.Daily.Indicators.Volume.Ratio,
		FundamentalScore:  confidence.ScoreFundamentals(req.Fundamentals),
		Bias:              bias,
	})

	var conflictResult *conflict.Result
	if req.Fundamentals != nil {
		r := conflict.Detect(bias, *req.Fundamentals)
		conflictResult = &r
		conf = conf.Adjusted(r.ConfidenceAdjustment, bias)
	}

	result := &StockAnalysis{
		ID:           a.newID(),
		Symbol:       req.Symbol,
		GeneratedAt:  a.now().UTC(),
		Timeframes:   set,
		Candlesticks: candlesticks,
		Bias:         bias,
		Confidence:   conf,
		Conflict:     conflictResult,
		News:         req.News,
		Fundamentals: req.Fundamentals,
	}
	result.Summary = SummaryText(result)

	a.logger.Debug("analysis complete",
		zap.String("symbol", req.Symbol),
		zap.String("bias", string(bias)),
		zap.Float64("confidence", conf.Score),
		zap.String("recommendation", string(conf.Recommendation)),
	)

	return result, nil
}

var errEmptySymbol = &core.Error{Code: "EMPTY_SYMBOL", Message: "symbol is required"}
