package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/ports"
)

// UserService provisions user documents and exposes their quote history.
// Account identity is otherwise owned by an external subsystem; this service
// only creates the empty document the quote and favorites flows operate on.
type UserService struct {
	users  ports.UserRepository
	logger *slog.Logger
}

// UserServiceConfig contains the dependencies for the user service.
type UserServiceConfig struct {
	Users  ports.UserRepository
	Logger *slog.Logger
}

// NewUserService creates a new user service.
// Panics if Users is nil. Defaults logger to slog.Default() if nil.
func NewUserService(cfg UserServiceConfig) *UserService {
	if cfg.Users == nil {
		panic("UserService: Users is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:  cfg.Users,
		logger: logger.With(slog.String("component", "app.UserService")),
	}
}

// Register creates an empty user document and returns it.
func (s *UserService) Register(ctx context.Context) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		Quotes:    []string{},
		Favorites: []domain.Favorite{},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("user_id", user.ID))

	return user, nil
}

// History returns the user's generated-quote history in generation order.
func (s *UserService) History(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, domain.NewValidationError("userId", "is required")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if user.Quotes == nil {
		return []string{}, nil
	}

	return user.Quotes, nil
}
