package provider

import (
	"context"
	"errors"
	"os"
	"sync"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider backs text generation with the OpenAI chat API.
// It does not do document OCR.
type OpenAIProvider struct {
	settings Settings

	mu     sync.Mutex
	client *openai.Client
}

// NewOpenAIProvider creates the provider; the client is built lazily on
// first use so a missing key surfaces then.
func NewOpenAIProvider(settings Settings) *OpenAIProvider {
	return &OpenAIProvider{settings: settings}
}

// ID returns the provider identifier.
func (p *OpenAIProvider) ID() ID { return IDOpenAI }

// Supports reports capability coverage.
func (p *OpenAIProvider) Supports(capability Capability) bool {
	return capability == CapabilityTextGenerate
}

func (p *OpenAIProvider) ensureClient() (*openai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, &AuthError{Provider: IDOpenAI, Message: "OPENAI_API_KEY is not set"}
	}
	p.client = openai.NewClient(apiKey)
	return p.client, nil
}

// Invoke runs one chat completion call.
func (p *OpenAIProvider) Invoke(ctx context.Context, req Request) (*Result, error) {
	if !p.Supports(req.Capability) {
		return nil, &CallError{Provider: IDOpenAI, Message: "capability " + string(req.Capability) + " not supported"}
	}
	client, err := p.ensureClient()
	if err != nil {
		return nil, err
	}

	messages := []openai.ChatCompletionMessage{}
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: buildPromptWithSchema(req),
	})

	chatReq := openai.ChatCompletionRequest{
		Model:       p.settings.Model,
		Messages:    messages,
		Temperature: 0.1,
	}
	if req.Schema != "" {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, &CallError{Provider: IDOpenAI, Message: "empty completion"}
	}

	return &Result{
		Text:       CleanJSONBlock(resp.Choices[0].Message.Content),
		Structured: req.Schema != "",
		Provider:   IDOpenAI,
		Model:      p.settings.Model,
		Units:      1,
	}, nil
}

// Close is a no-op; the OpenAI client holds no connection state.
func (p *OpenAIProvider) Close() error { return nil }

// classifyOpenAIError maps API failures onto the gateway's retry taxonomy
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case 401, 403:
			return &AuthError{Provider: IDOpenAI, Message: "credentials rejected", Cause: err}
		case 429:
			return &RateLimitError{Provider: IDOpenAI, Cause: err}
		}
	}
	return &CallError{Provider: IDOpenAI, Message: "chat completion failed", Cause: err}
}
