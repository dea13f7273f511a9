package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "sot",
		Subsystem: "ai",
		Name:      "scoring_duration_seconds",
		Help:      "Duration of remote model scoring requests",
	}, []string{"model", "operation"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sot",
		Subsystem: "ai",
		Name:      "scoring_failures_total",
		Help:      "Number of remote model scoring failures",
	}, []string{"model", "operation"})
)

const qualitySchemaJSON = `{
	"type": "object",
	"required": ["score", "notes", "suggestions"],
	"properties": {
		"score": {"type": "integer", "minimum": 0, "maximum": 10},
		"notes": {"type": "array", "items": {"type": "string"}},
		"suggestions": {"type": "array", "items": {"type": "string"}}
	}
}`

var qualitySchema = jsonschema.MustCompileString("quality.schema.json", qualitySchemaJSON)

// Config defines configuration options for the OpenAI scoring client.
type Config struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// Client implements the remote scoring interfaces against the OpenAI chat
// completion API.
type Client struct {
	client *openai.Client
	cfg    Config
	tracer trace.Tracer
	logger zerolog.Logger
}

// NewClient builds a new scoring client using the provided configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 512
	}

	tracer := otel.Tracer("github.com/shanexuu/sot-command-center/pkg/ai")
	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &Client{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		tracer: tracer,
		logger: logger,
	}, nil
}

// ScoreMatch asks the model for a single bounded compatibility score.
func (c *Client) ScoreMatch(ctx context.Context, input MatchInput) (int, error) {
	content, err := c.chat(ctx, "score_match", matchSystemPrompt(), buildMatchPrompt(input), false)
	if err != nil {
		return 0, err
	}

	score, err := parseScoreResponse(content, 0, 100)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "score_match").Inc()
		return 0, err
	}

	return score, nil
}

// ExplainMatch asks the model for a free-form rationale.
func (c *Client) ExplainMatch(ctx context.Context, input MatchInput) (string, error) {
	content, err := c.chat(ctx, "explain_match", matchSystemPrompt(), buildExplainPrompt(input), false)
	if err != nil {
		return "", err
	}

	if content == "" {
		aiFailures.WithLabelValues(c.cfg.Model, "explain_match").Inc()
		return "", fmt.Errorf("empty rationale returned")
	}

	return content, nil
}

// ScorePosting asks the model for a structured quality assessment.
func (c *Client) ScorePosting(ctx context.Context, input PostingInput) (QualityResult, error) {
	content, err := c.chat(ctx, "score_posting", qualitySystemPrompt(), buildQualityPrompt(input), true)
	if err != nil {
		return QualityResult{}, err
	}

	result, err := parseQualityResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "score_posting").Inc()
		return QualityResult{}, err
	}

	return result, nil
}

// EnhanceDescription asks the model for an improved posting description.
func (c *Client) EnhanceDescription(ctx context.Context, input PostingInput) (string, error) {
	content, err := c.chat(ctx, "enhance_description", qualitySystemPrompt(), buildEnhancePrompt(input), false)
	if err != nil {
		return "", err
	}

	if content == "" {
		aiFailures.WithLabelValues(c.cfg.Model, "enhance_description").Inc()
		return "", fmt.Errorf("empty enhanced description returned")
	}

	return content, nil
}

// ExtractProfile asks the model to pull structured fields out of document
// text. The binary-to-text step happens upstream.
func (c *Client) ExtractProfile(ctx context.Context, text string) (ProfileFields, error) {
	if strings.TrimSpace(text) == "" {
		return ProfileFields{}, fmt.Errorf("document text is empty")
	}

	content, err := c.chat(ctx, "extract_profile", extractSystemPrompt(), text, true)
	if err != nil {
		return ProfileFields{}, err
	}

	fields, err := parseProfileResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, "extract_profile").Inc()
		return ProfileFields{}, err
	}

	return fields, nil
}

func (c *Client) chat(parent context.Context, operation, system, user string, jsonMode bool) (string, error) {
	ctx, span := c.tracer.Start(parent, "openai."+operation, trace.WithAttributes(
		attribute.String("model", c.cfg.Model),
	))
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(c.cfg.Model, operation).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(c.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("openai %s: %w", operation, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no choices returned from openai")
		aiFailures.WithLabelValues(c.cfg.Model, operation).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// parseScoreResponse validates that the model returned a bare integer within
// the inclusive range. Anything else is an error so the caller falls back to
// the rule-based tier.
func parseScoreResponse(content string, min, max int) (int, error) {
	trimmed := strings.TrimSpace(strings.Trim(strings.TrimSpace(content), "."))
	score, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("non-numeric score %q: %w", content, err)
	}

	if score < min || score > max {
		return 0, fmt.Errorf("score %d outside range [%d,%d]", score, min, max)
	}

	return score, nil
}

// parseProfileResponse decodes the JSON-mode profile payload. Unknown keys
// are ignored; missing fields stay zero and read as un-extractable downstream.
func parseProfileResponse(content string) (ProfileFields, error) {
	var fields ProfileFields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		return ProfileFields{}, fmt.Errorf("parse profile json: %w", err)
	}

	return fields, nil
}

// parseQualityResponse validates the JSON payload against the quality schema
// before decoding it.
func parseQualityResponse(content string) (QualityResult, error) {
	var payload interface{}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return QualityResult{}, fmt.Errorf("parse quality json: %w", err)
	}

	if err := qualitySchema.Validate(payload); err != nil {
		return QualityResult{}, fmt.Errorf("quality payload schema: %w", err)
	}

	var result QualityResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return QualityResult{}, fmt.Errorf("decode quality json: %w", err)
	}

	return result, nil
}
