package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quantive/confluence/internal/llm"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Stream {
			t.Error("expected stream=false")
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		json.NewEncoder(w).Encode(ollamaResponse{
			Message:         ollamaMessage{Role: "assistant", Content: "looks bullish"},
			Done:            true,
			DoneReason:      "stop",
			PromptEvalCount: 12,
			EvalCount:       5,
		})
	}))
	defer server.Close()

	p, err := New(server.URL, "test-model")
	if err != nil {
		t.Fatal(err)
	}

	resp, err := p.Chat(context.Background(), llm.ChatRequest{
		SystemPrompt: "You are an analyst.",
		Messages:     []llm.Message{{Role: "user", Content: "Summarize AAPL."}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Content != "looks bullish" {
		t.Errorf("content = %q", resp.Content)
	}
	if resp.Usage.InputTokens != 12 || resp.Usage.OutputTokens != 5 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.FinishReason != "stop" {
		t.Errorf("finish reason = %q", resp.FinishReason)
	}
}

func TestChat_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	p, _ := New(server.URL, "test-model")
	if _, err := p.Chat(context.Background(), llm.ChatRequest{}); err == nil {
		t.Fatal("expected error on server failure")
	}
}

func TestNew_Defaults(t *testing.T) {
	p, err := New("", "")
	if err != nil {
		t.Fatal(err)
	}
	if p.endpoint != defaultEndpoint || p.model != defaultModel {
		t.Errorf("defaults not applied: %s %s", p.endpoint, p.model)
	}
}
