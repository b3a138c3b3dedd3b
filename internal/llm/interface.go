// Package llm abstracts the chat-completion providers used to turn
// analysis records into narrative reports.
package llm

import "context"

// DefaultMaxTokens bounds a completion when the caller does not set one.
const DefaultMaxTokens = 1024

// Provider is one chat-completion backend.
type Provider interface {
	Name() string
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest holds the request parameters.
type ChatRequest struct {
	SystemPrompt string
	Messages     []Message
	MaxTokens    int
	Temperature  float64
	JSONMode     bool
}

// Message is a chat message with role "user" or "assistant".
type Message struct {
	Role    string
	Content string
}

// ChatResponse holds the completion.
type ChatResponse struct {
	Content      string
	Usage        Usage
	FinishReason string
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
