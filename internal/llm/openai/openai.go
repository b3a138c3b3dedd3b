// Package openai implements the OpenAI chat provider.
package openai

import (
	"context"

	"github.com/sashabaranov/go-openai"

	"github.com/quantive/confluence/internal/core"
	"github.com/quantive/confluence/internal/llm"
)

const defaultModel = "gpt-4o"

// Provider calls the OpenAI chat completions API.
type Provider struct {
	client *openai.Client
	model  string
}

// New creates an OpenAI provider. The API key is required.
func New(apiKey, model string) (*Provider, error) {
	if apiKey == "" {
		return nil, core.NewError("LLM_CONFIG", "openai API key required")
	}
	if model == "" {
		model = defaultModel
	}
	return &Provider{client: openai.NewClient(apiKey), model: model}, nil
}

func (p *Provider) Name() string {
	return "openai"
}

// Chat sends the request to the chat completions API.
func (p *Provider) Chat(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+1)

	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = llm.DefaultMaxTokens
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: float32(req.Temperature),
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, core.WrapError(core.ErrLLMFailed, err)
	}

	var content, finishReason string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
		finishReason = string(resp.Choices[0].FinishReason)
	}

	return &llm.ChatResponse{
		Content: content,
		Usage: llm.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
		FinishReason: finishReason,
	}, nil
}
