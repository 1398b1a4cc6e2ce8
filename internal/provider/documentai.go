package provider

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// DocumentAIProvider backs OCR extraction with Google Document AI. It is a
// pure OCR backend: the result is raw recognized text, which the gateway
// structures through a text-generate call.
type DocumentAIProvider struct {
	settings Settings

	mu     sync.Mutex
	client *documentai.DocumentProcessorClient
	name   string
}

// NewDocumentAIProvider creates the provider; processor configuration is
// resolved from the environment on first use.
func NewDocumentAIProvider(settings Settings) *DocumentAIProvider {
	return &DocumentAIProvider{settings: settings}
}

// ID returns the provider identifier.
func (p *DocumentAIProvider) ID() ID { return IDDocumentAI }

// Supports reports capability coverage.
func (p *DocumentAIProvider) Supports(capability Capability) bool {
	return capability == CapabilityOCRExtract
}

func (p *DocumentAIProvider) ensureClient(ctx context.Context) (*documentai.DocumentProcessorClient, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, p.name, nil
	}

	project := strings.TrimSpace(os.Getenv("DOCAI_PROJECT_ID"))
	processor := strings.TrimSpace(os.Getenv("DOCAI_PROCESSOR_ID"))
	location := strings.TrimSpace(os.Getenv("DOCAI_LOCATION"))
	if location == "" {
		location = "us"
	}
	if project == "" || processor == "" {
		return nil, "", &AuthError{Provider: IDDocumentAI, Message: "DOCAI_PROJECT_ID and DOCAI_PROCESSOR_ID must be set"}
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", location)
	client, err := documentai.NewDocumentProcessorClient(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		return nil, "", &AuthError{Provider: IDDocumentAI, Message: "failed to create client", Cause: err}
	}

	p.client = client
	p.name = fmt.Sprintf("projects/%s/locations/%s/processors/%s", project, location, processor)
	return p.client, p.name, nil
}

// Invoke runs one inline document-processing call and returns the
// recognized text with the reported page count as consumed units.
func (p *DocumentAIProvider) Invoke(ctx context.Context, req Request) (*Result, error) {
	if !p.Supports(req.Capability) {
		return nil, &CallError{Provider: IDDocumentAI, Message: "capability " + string(req.Capability) + " not supported"}
	}
	client, name, err := p.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = "application/pdf"
	}

	resp, err := client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  req.Document,
				MimeType: mimeType,
			},
		},
	})
	if err != nil {
		return nil, classifyDocumentAIError(err)
	}
	if resp == nil || resp.Document == nil || strings.TrimSpace(resp.Document.Text) == "" {
		return nil, &CallError{Provider: IDDocumentAI, Message: "no text recognized"}
	}

	units := float64(len(resp.Document.Pages))
	if units == 0 {
		units = estimatePages(req.Document)
	}

	return &Result{
		Text:       strings.TrimSpace(resp.Document.Text),
		Structured: false,
		Provider:   IDDocumentAI,
		Model:      name,
		Units:      units,
	}, nil
}

// Close releases the underlying client, if one was created.
func (p *DocumentAIProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		err := p.client.Close()
		p.client = nil
		return err
	}
	return nil
}

// classifyDocumentAIError maps API failures onto the gateway's retry taxonomy
func classifyDocumentAIError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "unauthenticated") || strings.Contains(msg, "permission") ||
		strings.Contains(msg, "credential"):
		return &AuthError{Provider: IDDocumentAI, Message: "credentials rejected", Cause: err}
	case strings.Contains(msg, "resource exhausted") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate"):
		return &RateLimitError{Provider: IDDocumentAI, Cause: err}
	default:
		return &CallError{Provider: IDDocumentAI, Message: "process document failed", Cause: err}
	}
}
