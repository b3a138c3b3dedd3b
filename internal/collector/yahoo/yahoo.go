// Package yahoo implements the Yahoo Finance collector.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/quantive/confluence/internal/collector"
	ctxprovider "github.com/quantive/confluence/internal/context"
	"github.com/quantive/confluence/internal/core"
)

const (
	chartURL   = "https://query1.finance.yahoo.com/v8/finance/chart"
	summaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary"
)

// validSymbol matches stock symbols like AAPL, MSFT, 0700.HK
var validSymbol = regexp.MustCompile(`^[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// intervals maps internal timeframes onto Yahoo chart intervals.
var intervals = map[core.Timeframe]string{
	core.TimeframeDaily:   "1d",
	core.TimeframeWeekly:  "1wk",
	core.TimeframeMonthly: "1mo",
}

// ranges maps timeframes onto the chart range covering the lookback.
var ranges = map[core.Timeframe]string{
	core.TimeframeDaily:   "1y",
	core.TimeframeWeekly:  "2y",
	core.TimeframeMonthly: "5y",
}

// Yahoo fetches quotes, candles and fundamentals from Yahoo Finance.
type Yahoo struct {
	client *http.Client
	config collector.Config
}

// New creates a Yahoo collector.
func New() *Yahoo {
	return &Yahoo{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (y *Yahoo) Name() string {
	return "yahoo"
}

func (y *Yahoo) Init(cfg collector.Config) error {
	y.config = cfg
	return nil
}

// FetchQuote fetches the latest quote via the one-day chart endpoint.
func (y *Yahoo) FetchQuote(ctx context.Context, symbol string) (*core.Quote, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrSymbolNotFound, err)
	}
	url := fmt.Sprintf("%s/%s?interval=1d&range=1d", chartURL, symbol)

	var result chartResponse
	if err := y.getJSON(ctx, url, &result); err != nil {
		return nil, err
	}
	r, err := result.first(symbol)
	if err != nil {
		return nil, err
	}

	return quoteFromChart(*r, symbol, y.Name())
}

// quoteFromChart builds a quote off chart metadata. Yahoo serves a chart
// shell with a zeroed meta block for some suspended listings; those are
// rejected rather than passed on as zero-price quotes.
func quoteFromChart(r chartResult, symbol, source string) (*core.Quote, error) {
	q := &core.Quote{
		Symbol: symbol,
		Price:  r.Meta.RegularMarketPrice,
		Volume: int64(r.Meta.RegularMarketVolume),
		Time:   time.Unix(int64(r.Meta.RegularMarketTime), 0),
		Source: source,
	}
	if !q.IsValid() {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("empty quote for %s", symbol))
	}
	return q, nil
}

// FetchCandles fetches up to limit candles for the timeframe, oldest
// first. Rows with missing quotes are skipped.
func (y *Yahoo) FetchCandles(ctx context.Context, symbol string, tf core.Timeframe, limit int) ([]core.Candle, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrSymbolNotFound, err)
	}
	interval, ok := intervals[tf]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe: %s", tf)
	}

	url := fmt.Sprintf("%s/%s?interval=%s&range=%s", chartURL, symbol, interval, ranges[tf])

	var result chartResponse
	if err := y.getJSON(ctx, url, &result); err != nil {
		return nil, err
	}
	r, err := result.first(symbol)
	if err != nil {
		return nil, err
	}

	if len(r.Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no quote data for %s", symbol))
	}
	return r.candles(limit), nil
}

// candles assembles OHLCV rows oldest first. Yahoo occasionally returns
// ragged arrays, so every slice is bounds-checked per row; rows with a
// missing quote are skipped.
func (r chartResult) candles(limit int) []core.Candle {
	quotes := r.Indicators.Quote[0]

	candles := make([]core.Candle, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(quotes.Open) || i >= len(quotes.High) ||
			i >= len(quotes.Low) || i >= len(quotes.Close) {
			continue
		}
		if quotes.Open[i] == nil || quotes.High[i] == nil ||
			quotes.Low[i] == nil || quotes.Close[i] == nil {
			continue
		}
		var volume int64
		if i < len(quotes.Volume) && quotes.Volume[i] != nil {
			volume = int64(*quotes.Volume[i])
		}
		candles = append(candles, core.Candle{
			Date:   time.Unix(int64(ts), 0).UTC(),
			Open:   *quotes.Open[i],
			High:   *quotes.High[i],
			Low:    *quotes.Low[i],
			Close:  *quotes.Close[i],
			Volume: volume,
		})
	}

	if limit > 0 && len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles
}

// FetchFundamentals fetches trailing P/E and earnings growth and labels
// them with the shared classification cutoffs.
func (y *Yahoo) FetchFundamentals(ctx context.Context, symbol string) (*core.Fundamentals, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrSymbolNotFound, err)
	}
	url := fmt.Sprintf("%s/%s?modules=summaryDetail,defaultKeyStatistics,financialData", summaryURL, symbol)

	var result summaryResponse
	if err := y.getJSON(ctx, url, &result); err != nil {
		return nil, err
	}
	if result.QuoteSummary.Error != nil {
		return nil, core.WrapError(core.ErrSymbolNotFound,
			fmt.Errorf("yahoo error: %s", result.QuoteSummary.Error.Description))
	}
	if len(result.QuoteSummary.Result) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no fundamentals for %s", symbol))
	}

	r := result.QuoteSummary.Result[0]
	pe := r.SummaryDetail.TrailingPE.Raw
	// Yahoo reports earnings growth as a fraction
	epsGrowth := r.FinancialData.EarningsGrowth.Raw * 100

	valuation, growth := ctxprovider.Classify(pe, epsGrowth)
	return &core.Fundamentals{
		Valuation: valuation,
		Growth:    growth,
		PERatio:   pe,
		EPSGrowth: epsGrowth,
	}, nil
}

func (y *Yahoo) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return core.WrapError(core.ErrCollectorFailed, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return core.WrapError(core.ErrCollectorFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("status %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return core.WrapError(core.ErrCollectorFailed, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrCollectorFailed, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// Yahoo API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c chartResponse) first(symbol string) (*chartResult, error) {
	if c.Chart.Error != nil {
		desc := c.Chart.Error.Description
		if strings.Contains(c.Chart.Error.Code, "Not Found") || strings.Contains(desc, "delisted") {
			return nil, core.WrapError(core.ErrSymbolNotFound, fmt.Errorf("yahoo error: %s", desc))
		}
		return nil, core.WrapError(core.ErrCollectorFailed, fmt.Errorf("yahoo error: %s", desc))
	}
	if len(c.Chart.Result) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no data for symbol: %s", symbol))
	}
	return &c.Chart.Result[0], nil
}

type chartResult struct {
	Meta       chartMeta  `json:"meta"`
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type chartMeta struct {
	Symbol              string  `json:"symbol"`
	RegularMarketPrice  float64 `json:"regularMarketPrice"`
	RegularMarketVolume int     `json:"regularMarketVolume"`
	RegularMarketTime   int     `json:"regularMarketTime"`
}

type indicators struct {
	Quote []quoteIndicator `json:"quote"`
}

type quoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int     `json:"volume"`
}

type summaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	SummaryDetail struct {
		TrailingPE rawValue `json:"trailingPE"`
	} `json:"summaryDetail"`
	FinancialData struct {
		EarningsGrowth rawValue `json:"earningsGrowth"`
	} `json:"financialData"`
}

type rawValue struct {
	Raw float64 `json:"raw"`
}
