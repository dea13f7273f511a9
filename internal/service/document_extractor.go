package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shanexuu/sot-command-center/internal/dto"
	"github.com/shanexuu/sot-command-center/pkg/ai"
)

// Document text larger than this is truncated before parsing; a CV past this
// point is noise for field extraction anyway.
const maxDocumentTextBytes = 1 << 20

// DocumentTextProvider fetches the plain-text content of an uploaded
// document. Binary-to-text conversion happens upstream; the stored artifact
// this reads is already text.
type DocumentTextProvider interface {
	FetchText(ctx context.Context, documentURL string) (string, error)
}

type profileDocumentExtractor struct {
	texts  DocumentTextProvider
	parser ai.ProfileExtractor
	logger zerolog.Logger
}

// NewProfileDocumentExtractor adapts a text provider and a remote-model field
// parser into the extraction seam the batch orchestrator consumes.
func NewProfileDocumentExtractor(texts DocumentTextProvider, parser ai.ProfileExtractor, logger zerolog.Logger) DocumentExtractor {
	return &profileDocumentExtractor{
		texts:  texts,
		parser: parser,
		logger: logger.With().Str("component", "document_extractor").Logger(),
	}
}

func (e *profileDocumentExtractor) Extract(ctx context.Context, documentURL string) (dto.ExtractedFields, error) {
	text, err := e.texts.FetchText(ctx, documentURL)
	if err != nil {
		return dto.ExtractedFields{}, fmt.Errorf("fetch document text: %w", err)
	}

	fields, err := e.parser.ExtractProfile(ctx, text)
	if err != nil {
		return dto.ExtractedFields{}, fmt.Errorf("extract profile fields: %w", err)
	}
	e.logger.Debug().Str("document_url", documentURL).Int("text_bytes", len(text)).Msg("profile fields extracted")

	return dto.ExtractedFields{
		Name:           fields.Name,
		Institution:    fields.Institution,
		Degree:         fields.Degree,
		GraduationYear: fields.GraduationYear,
	}, nil
}

type httpTextProvider struct {
	client *http.Client
}

// NewHTTPTextProvider fetches document text over HTTP. A nil client gets a
// default with a request timeout.
func NewHTTPTextProvider(client *http.Client) DocumentTextProvider {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &httpTextProvider{client: client}
}

func (p *httpTextProvider) FetchText(ctx context.Context, documentURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return "", fmt.Errorf("build document request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch document: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentTextBytes))
	if err != nil {
		return "", fmt.Errorf("read document body: %w", err)
	}

	return string(body), nil
}
