// Package claude implements the Anthropic chat provider.
package claude

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm"
)

const defaultModel = "claude-sonnet-4-20250514"

// Provider calls the Anthropic Messages API.
type Provider struct {
	client anthropic.Client
	model  string
}

// New creates a Claude provider. The API key is required.
func New(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, core.NewError("LLM_CONFIG", "claude API key required")
	}
	if model == "" {
		model = defaultModel
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Provider{client: client, model: model}, nil
}

func (p *Provider) Name() string {
	return "claude"
}

// Chat sends the request to the Messages API.
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	messages := make([]anthropic.MessageParam, len(req.Messages))
	for i, m := range req.Messages {
		if m.Role == "assistant" {
			messages[i] = anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content))
		} else {
			messages[i] = anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content))
		}
	}

	maxTokens := int64(req.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}

	content := ""
	if len(resp.Content) > 0 && resp.Content[0].Type == "text" {
		content = resp.Content[0].Text
	}

	return &llm.ChatResponse{
		Content: content,
		Usage: llm.Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
		FinishReason: string(resp.StopReason),
	}, nil
}
