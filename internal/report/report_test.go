package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quantive/confluence/internal/analysis"
	"github.com/quantive/confluence/internal/conflict"
	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm"
)

type fakeProvider struct {
	lastReq llm.ChatRequest
	reply   string
	err     error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.ChatResponse{
		Content: f.reply,
		Usage:   llm.Usage{InputTokens: 100, OutputTokens: 50},
	}, nil
}

func sampleAnalysis() *analysis.StockAnalysis {
	return &analysis.StockAnalysis{
		ID:      "abc-123",
		Symbol:  "AAPL",
		Summary: "AAPL technical analysis (2024-06-03)\nRecommendation: BUY (confidence 75/100)\n",
		News: &core.NewsSummary{
			Sentiment: core.BiasBullish,
			Score:     70,
			Headlines: []string{"Apple beats estimates", "New product line announced"},
		},
	}
}

func TestGenerate(t *testing.T) {
	provider := &fakeProvider{reply: "  Apple looks constructive here.\n"}
	g := NewGenerator(provider, 512, 0.3)

	r, err := g.Generate(context.Background(), sampleAnalysis())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Narrative != "Apple looks constructive here." {
		t.Errorf("narrative = %q", r.Narrative)
	}
	if r.Symbol != "AAPL" || r.AnalysisID != "abc-123" {
		t.Errorf("report identity = %s/%s", r.Symbol, r.AnalysisID)
	}
	if r.Usage.OutputTokens != 50 {
		t.Errorf("usage = %+v", r.Usage)
	}

	prompt := provider.lastReq.Messages[0].Content
	for _, want := range []string{"Recommendation: BUY", "Apple beats estimates", "## Task"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if provider.lastReq.MaxTokens != 512 {
		t.Errorf("max tokens = %d", provider.lastReq.MaxTokens)
	}
}

func TestGenerate_ConflictCallout(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	g := NewGenerator(provider, 0, 0)

	a := sampleAnalysis()
	a.Conflict = &conflict.Result{HasConflict: true, Type: conflict.OvervaluedBullish}

	if _, err := g.Generate(context.Background(), a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(provider.lastReq.Messages[0].Content, "tension between the technical picture") {
		t.Error("prompt should call out the conflict")
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("rate limited")}
	g := NewGenerator(provider, 0, 0)

	_, err := g.Generate(context.Background(), sampleAnalysis())
	if !errors.Is(err, core.ErrLLMFailed) {
		t.Errorf("expected ErrLLMFailed, got %v", err)
	}
}

func TestGenerate_NoProvider(t *testing.T) {
	g := NewGenerator(nil, 0, 0)
	if _, err := g.Generate(context.Background(), sampleAnalysis()); err == nil {
		t.Fatal("expected error with nil provider")
	}
}
