// Package report turns analysis records into narrative reports via the
// configured LLM provider.
package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm"
)

const systemPrompt = `You are an experienced equity analyst. You receive a
mechanical multi-timeframe technical analysis and write a short narrative
report for a retail investor. Stay strictly within the supplied data: do
not invent price levels, news or fundamentals. Two to four paragraphs,
plain language, no financial advice disclaimers.`

const maxHeadlines = 5

// Report is a narrative rendering of one analysis.
type Report struct {
	Symbol     string    `json:"symbol"`
	AnalysisID string    `json:"analysis_id"`
	Narrative  string    `json:"narrative"`
	Usage      llm.Usage `json:"usage"`
}

// Generator writes narrative reports.
type Generator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewGenerator creates a report generator over the given provider.
func NewGenerator(provider llm.Provider, maxTokens int, temperature float64) *Generator {
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}
	return &Generator{
		provider:    provider,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Generate writes a narrative report for the analysis. The deterministic
// summary is always available as a fallback; callers that cannot reach
// the provider can serve a.Summary directly.
func (g *Generator) Generate(ctx context.Context, a *analysis.StockAnalysis) (*Report, error) {
	if g.provider == nil {
		return nil, core.WrapError(core.ErrLLMFailed, fmt.Errorf("no provider configured"))
	}

	resp, err := g.provider.Chat(ctx, llm.ChatRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{
			{Role: "user", Content: buildPrompt(a)},
		},
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}

	return &Report{
		Symbol:     a.Symbol,
		AnalysisID: a.ID,
		Narrative:  strings.TrimSpace(resp.Content),
		Usage:      resp.Usage,
	}, nil
}

// buildPrompt lays the mechanical analysis out for the model. The summary
// already carries every number; the prompt only adds headlines and the
// task framing.
func buildPrompt(a *analysis.StockAnalysis) string {
	var sb strings.Builder

	sb.WriteString("## Technical Analysis\n\n")
	sb.WriteString(a.Summary)
	sb.WriteString("\n")

	if a.News != nil && len(a.News.Headlines) > 0 {
		sb.WriteString("## Recent Headlines\n")
		for i, h := range a.News.Headlines {
			if i >= maxHeadlines {
				break
			}
			sb.WriteString(fmt.Sprintf("- %s\n", h))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Task\n")
	sb.WriteString(fmt.Sprintf("Write the narrative report for %s based only on the data above.\n", a.Symbol))
	if a.Conflict != nil && a.Conflict.HasConflict {
		sb.WriteString("Make sure to explain the tension between the technical picture and the fundamentals.\n")
	}

	return sb.String()
}
