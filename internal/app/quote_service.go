// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/ports"
)

// quoteOfTheDayPrompt is the fixed prompt for the daily quote.
// Asking for a JSON array keeps the response on the structured parse path;
// the normalizer handles models that answer in prose anyway.
const quoteOfTheDayPrompt = `Give 1 inspirational quote of the day. Return ONLY a JSON array like ["quote"] with no other text.`

// QuoteService orchestrates quote generation use cases.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	generator ports.GenerationClient
	users     ports.UserRepository
	logger    *slog.Logger
}

// QuoteServiceConfig contains the dependencies for the quote service.
type QuoteServiceConfig struct {
	Generator ports.GenerationClient
	Users     ports.UserRepository
	Logger    *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// Panics if Generator or Users is nil. Defaults logger to slog.Default() if nil.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Generator == nil {
		panic("QuoteService: Generator is required")
	}

	if cfg.Users == nil {
		panic("QuoteService: Users is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		generator: cfg.Generator,
		users:     cfg.Users,
		logger:    logger.With(slog.String("component", "app.QuoteService")),
	}
}

// GenerateRequest carries the arguments for a generation call.
// All fields are required.
type GenerateRequest struct {
	Topic    string
	Total    int
	Category string
	UserID   string
}

// GenerateResult is the outcome of a generation call.
type GenerateResult struct {
	// Quotes is the normalized sequence of generated quotes. The model is
	// not guaranteed to produce exactly the requested count; the result is
	// returned as-is without retry or count validation.
	Quotes []string

	// Category echoes the requested category.
	Category string

	// Source records which normalization path produced the quotes.
	Source domain.ParseSource
}

// Generate produces quotes for a topic and category, appends them to the
// user's history, and returns them. Validation happens before any I/O.
// A persistence failure fails the whole operation; the generated quotes
// are not returned in that case.
func (s *QuoteService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "generating quotes",
		slog.String("topic", req.Topic),
		slog.Int("total", req.Total),
		slog.String("category", req.Category),
	)

	prompt := buildGeneratePrompt(req.Topic, req.Total, req.Category)

	raw, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "generation call failed", slog.Any("error", err))
		return nil, fmt.Errorf("generating quotes: %w", err)
	}

	normalized := domain.Normalize(raw)

	s.logger.DebugContext(ctx, "normalized generation response",
		slog.Int("quotes", len(normalized.Quotes)),
		slog.String("source", string(normalized.Source)),
	)

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	user.Quotes = append(user.Quotes, normalized.Quotes...)

	if err := s.users.Save(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist quote history", slog.Any("error", err))
		return nil, fmt.Errorf("saving quote history: %w", err)
	}

	return &GenerateResult{
		Quotes:   normalized.Quotes,
		Category: req.Category,
		Source:   normalized.Source,
	}, nil
}

// QuoteOfTheDay returns a single quote from a fixed daily prompt.
// Malformed model output never fails this call; the normalizer guarantees
// at least the fallback string. Only an unreachable generation service
// surfaces as an error.
func (s *QuoteService) QuoteOfTheDay(ctx context.Context) (string, error) {
	s.logger.InfoContext(ctx, "fetching quote of the day")

	raw, err := s.generator.GenerateText(ctx, quoteOfTheDayPrompt)
	if err != nil {
		s.logger.ErrorContext(ctx, "generation call failed", slog.Any("error", err))
		return "", fmt.Errorf("generating quote of the day: %w", err)
	}

	return domain.NormalizeSingle(raw), nil
}

// validateGenerateRequest checks all required generation arguments.
func validateGenerateRequest(req GenerateRequest) error {
	if req.Topic == "" {
		return domain.NewValidationError("topic", "is required")
	}

	if req.Total <= 0 {
		return domain.NewValidationError("total", "must be positive")
	}

	if req.Category == "" {
		return domain.NewValidationError("category", "is required")
	}

	if req.UserID == "" {
		return domain.NewValidationError("userId", "is required")
	}

	return nil
}

// buildGeneratePrompt constructs the multi-quote generation prompt.
func buildGeneratePrompt(topic string, total int, category string) string {
	return fmt.Sprintf(
		`Generate %d inspirational quotes that are about %q and fall under the category %q. Return ONLY a JSON array like ["quote1", "quote2"] with no other text.`,
		total, topic, category,
	)
}
