package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quotedeck/quotedeck/internal/adapters/clients"
	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/platform/logging"
)

const geminiServiceName = "gemini"

// GeminiClientConfig contains configuration for the Gemini client.
type GeminiClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should point at the Gemini API host and its
	// AuthFunc should inject the API key header.
	Client *clients.Client

	// Model is the generative model identifier (e.g. "gemini-2.0-flash").
	Model string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// GeminiClient implements ports.GenerationClient using the Gemini
// generateContent REST API. It translates the external candidate/part
// response shape into the plain completion text the domain works with.
type GeminiClient struct {
	BaseAdapter
	model  string
	logger *slog.Logger
}

// NewGeminiClient creates a new Gemini client adapter.
// Panics if Client is nil or Model is empty. Defaults logger to
// slog.Default() if nil.
func NewGeminiClient(cfg GeminiClientConfig) *GeminiClient {
	if cfg.Client == nil {
		panic("GeminiClient: Client is required")
	}

	if cfg.Model == "" {
		panic("GeminiClient: Model is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &GeminiClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, geminiServiceName),
		model:       cfg.Model,
		logger:      logger,
	}
}

// External DTOs for the generateContent endpoint. Never exposed outside the ACL.

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

// GenerateText sends the prompt to the model and returns the raw completion
// text. Multi-part candidates are concatenated in order.
// Implements ports.GenerationClient.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ValidateRequired(prompt, "prompt"); err != nil {
		return "", err
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encoding generation request: %w", err)
	}

	path := c.generatePath()
	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", path),
		slog.Int("prompt_len", len(prompt)))
	c.logger.DebugContext(ctx, "requesting completion", slog.String("model", c.model))

	body, err := c.Post(ctx, path, bytes.NewReader(payload), "generate content")
	if err != nil {
		return "", err
	}

	external, err := DecodeResponse[geminiResponse](body)
	if err != nil {
		return "", err
	}

	text, err := c.translateToText(external)
	if err != nil {
		return "", err
	}

	c.logger.Log(ctx, logging.LevelTrace, "translated external DTO to completion",
		slog.Int("candidates", len(external.Candidates)),
		slog.Int("text_len", len(text)))

	return text, nil
}

// translateToText extracts the completion text from the first candidate.
// This is the core ACL translation function.
func (c *GeminiClient) translateToText(ext *geminiResponse) (string, error) {
	if len(ext.Candidates) == 0 {
		return "", domain.NewUnavailableError(geminiServiceName, "response contained no candidates")
	}

	var sb strings.Builder
	for _, part := range ext.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	return sb.String(), nil
}

func (c *GeminiClient) generatePath() string {
	return "/v1beta/models/" + c.model + ":generateContent"
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *GeminiClient) Name() string {
	return geminiServiceName
}

// Check verifies connectivity by fetching the model's metadata, which is
// cheap and does not consume generation quota.
// Implements ports.HealthChecker.
func (c *GeminiClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, "/v1beta/models/"+c.model, "check model")
	if err != nil {
		return err
	}
	_ = body.Close()

	return nil
}
