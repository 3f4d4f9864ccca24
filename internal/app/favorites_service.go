package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/ports"
)

// FavoritesService manages the lifecycle of a user's favorite quotes.
// Every mutating operation is a full read-modify-write of the user document;
// the store's single-document write is the only consistency boundary.
// Two concurrent Add calls for the same quote may both pass the duplicate
// pre-check and both persist (last-write-wins); this race is accepted.
type FavoritesService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// FavoritesServiceConfig contains the dependencies for the favorites service.
type FavoritesServiceConfig struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

// NewFavoritesService creates a new favorites service.
// Panics if Users is nil. Defaults logger to slog.Default() if nil.
func NewFavoritesService(cfg FavoritesServiceConfig) *FavoritesService {
	if cfg.Users == nil {
		panic("FavoritesService: Users is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FavoritesService{
		users:  cfg.Users,
		logger: logger.With(slog.String("component", "app.FavoritesService")),
	}
}

// List returns the user's favorites. The result is never nil.
func (s *FavoritesService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	if userID == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if user.Favorites == nil {
		return []domain.Favorite{}, nil
	}

	return user.Favorites, nil
}

// Add appends a new favorite with a freshly assigned id and returns the id.
// Duplicate quote text (case-sensitive, exact match) is rejected with a
// conflict error. The check runs against the loaded document, not a store
// constraint.
func (s *FavoritesService) Add(ctx context.Context, userID, quote, category string) (string, error) {
	if userID == "" {
		return "", domain.NewValidationError("userId", "is required")
	}

	if quote == "" {
		return "", domain.NewValidationError("quote", "is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("loading user: %w", err)
	}

	if user.HasFavoriteQuote(quote) {
		return "", domain.NewConflictError("favorite", "quote already in favorites")
	}

	favorite := domain.Favorite{
		ID:       uuid.NewString(),
		Quote:    quote,
		Category: category,
	}
	user.Favorites = append(user.Favorites, favorite)

	if err := s.users.Save(ctx, user); err != nil {
		return "", fmt.Errorf("saving favorites: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.String("user_id", userID),
		slog.String("favorite_id", favorite.ID),
	)

	return favorite.ID, nil
}

// Remove deletes exactly one favorite by id. A missing user and a missing
// favorite are indistinguishable to the caller: both surface as not found.
func (s *FavoritesService) Remove(ctx context.Context, userID, favoriteID string) error {
	if userID == "" {
		return domain.NewValidationError("userId", "is required")
	}

	if favoriteID == "" {
		return domain.NewValidationError("favoriteId", "is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	idx := user.FindFavorite(favoriteID)
	if idx < 0 {
		return domain.NewNotFoundError("favorite", favoriteID)
	}

	user.Favorites = append(user.Favorites[:idx], user.Favorites[idx+1:]...)

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}

	s.logger.InfoContext(ctx, "favorite removed",
		slog.String("user_id", userID),
		slog.String("favorite_id", favoriteID),
	)

	return nil
}

// Clear replaces the favorites collection with an empty one.
// Clearing an already-empty collection succeeds.
func (s *FavoritesService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.NewValidationError("userId", "is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading user: %w", err)
	}

	user.Favorites = []domain.Favorite{}

	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}

	s.logger.InfoContext(ctx, "favorites cleared", slog.String("user_id", userID))

	return nil
}
