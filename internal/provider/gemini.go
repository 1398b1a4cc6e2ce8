package provider

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider backs both capabilities with Google Gemini: text generation
// directly, OCR extraction through a multimodal call that returns structured
// JSON in one shot.
type GeminiProvider struct {
	settings Settings

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiProvider creates the provider without touching credentials;
// the client is built lazily on first use.
func NewGeminiProvider(settings Settings) *GeminiProvider {
	return &GeminiProvider{settings: settings}
}

// ID returns the provider identifier.
func (p *GeminiProvider) ID() ID { return IDGemini }

// Supports reports capability coverage. Gemini handles both.
func (p *GeminiProvider) Supports(capability Capability) bool {
	return capability == CapabilityTextGenerate || capability == CapabilityOCRExtract
}

func (p *GeminiProvider) ensureClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, &AuthError{Provider: IDGemini, Message: "GEMINI_API_KEY is not set"}
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &AuthError{Provider: IDGemini, Message: "failed to create client", Cause: err}
	}
	p.client = client
	return client, nil
}

// Invoke runs one Gemini call for the requested capability.
func (p *GeminiProvider) Invoke(ctx context.Context, req Request) (*Result, error) {
	client, err := p.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(p.settings.Model)
	model.SetTemperature(0.1) // Low temperature for consistent structured output
	if req.Schema != "" {
		model.ResponseMIMEType = "application/json"
	}
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}

	parts := []genai.Part{genai.Text(buildPromptWithSchema(req))}
	units := 1.0
	if req.Capability == CapabilityOCRExtract {
		parts = append(parts, genai.Blob{MIMEType: req.MimeType, Data: req.Document})
		units = estimatePages(req.Document)
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	text, err := extractGeminiText(resp)
	if err != nil {
		return nil, &CallError{Provider: IDGemini, Message: "empty response", Cause: err}
	}

	return &Result{
		Text:       CleanJSONBlock(text),
		Structured: req.Schema != "",
		Provider:   IDGemini,
		Model:      p.settings.Model,
		Units:      units,
	}, nil
}

// Close releases the underlying client, if one was created.
func (p *GeminiProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// buildPromptWithSchema appends structured-output instructions to the prompt
// when a schema is requested.
func buildPromptWithSchema(req Request) string {
	if req.Schema == "" {
		return req.Prompt
	}
	var sb strings.Builder
	sb.WriteString(req.Prompt)
	sb.WriteString("\n\nReturn ONLY valid JSON matching this JSON Schema. No markdown, no explanation.\n")
	sb.WriteString(req.Schema)
	if req.DetailLevel != "" {
		sb.WriteString(fmt.Sprintf("\n\nExtraction detail level: %s", req.DetailLevel))
	}
	return sb.String()
}

// extractGeminiText extracts the text parts from a Gemini response
func extractGeminiText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}
	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}

// classifyGeminiError maps API failures onto the gateway's retry taxonomy
func classifyGeminiError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "401") ||
		strings.Contains(msg, "403"):
		return &AuthError{Provider: IDGemini, Message: "credentials rejected", Cause: err}
	case strings.Contains(msg, "quota") || strings.Contains(msg, "rate") ||
		strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "429"):
		return &RateLimitError{Provider: IDGemini, Cause: err}
	default:
		return &CallError{Provider: IDGemini, Message: "generate content failed", Cause: err}
	}
}
