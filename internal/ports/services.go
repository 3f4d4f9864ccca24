// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/quotedeck/quotedeck/internal/domain"
)

// GenerationClient is the contract for the external generative-text service.
// The core depends on this single operation; prompt construction and response
// normalization are the caller's responsibility.
type GenerationClient interface {
	// GenerateText produces natural-language text for the given prompt.
	// The raw response text is returned untouched.
	// Returns domain.ErrUnavailable if the service is unreachable or
	// rate limited.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// UserRepository is the document-store contract for User aggregates.
// Implementations persist the user as a whole document: GetByID reads the
// full aggregate and Save writes it back in a single store-level write.
type UserRepository interface {
	// GetByID retrieves a user with their quote history and favorites.
	// Returns domain.ErrNotFound if the user does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// Save persists the user's quotes and favorites in one write.
	// Single-document atomicity is the only consistency guarantee;
	// concurrent saves for the same user are last-write-wins.
	// Returns domain.ErrNotFound if the user does not exist.
	Save(ctx context.Context, user *domain.User) error

	// Create inserts a new, empty user aggregate.
	// Returns domain.ErrConflict if the id is already taken.
	Create(ctx context.Context, user *domain.User) error
}
