package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quotedeck/quotedeck/internal/domain"
)

const usersTable = "users"

var userColumns = []string{"id", "quotes", "favorites", "created_at", "updated_at"}

// DB is the minimal pgx surface the repository depends on, satisfied by
// pgxpool.Pool and by pgxmock in tests.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepo persists user documents in a single PostgreSQL row per user.
// The quote history lives in a text array column and favorites in a JSONB
// column, so every Save replaces both collections in one statement.
type UserRepo struct {
	db DB
}

// NewUserRepo creates a user repository on top of the given pool.
func NewUserRepo(db DB) *UserRepo {
	return &UserRepo{db: db}
}

func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetByID loads a user document by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	sql, args, err := builder().
		Select(userColumns...).
		From(usersTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building user query: %w", err)
	}

	var (
		user         domain.User
		favoritesRaw []byte
	)
	row := r.db.QueryRow(ctx, sql, args...)
	if err := row.Scan(&user.ID, &user.Quotes, &favoritesRaw, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, mapError(err, "user", id)
	}

	favorites, err := unmarshalFavorites(favoritesRaw)
	if err != nil {
		return nil, fmt.Errorf("decoding favorites for user %s: %w", id, err)
	}
	user.Favorites = favorites

	if user.Quotes == nil {
		user.Quotes = []string{}
	}

	return &user, nil
}

// Create inserts a new user document. The stored timestamps are written back
// onto the given user.
func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	favoritesRaw, err := marshalFavorites(user.Favorites)
	if err != nil {
		return fmt.Errorf("encoding favorites for user %s: %w", user.ID, err)
	}

	sql, args, err := builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, quotesArray(user.Quotes), favoritesRaw, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("building user insert: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "user", user.ID)
	}

	return nil
}

// Save replaces the user's quote history and favorites in one statement.
// Saving a user that no longer exists reports not found.
func (r *UserRepo) Save(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()

	favoritesRaw, err := marshalFavorites(user.Favorites)
	if err != nil {
		return fmt.Errorf("encoding favorites for user %s: %w", user.ID, err)
	}

	sql, args, err := builder().
		Update(usersTable).
		Set("quotes", quotesArray(user.Quotes)).
		Set("favorites", favoritesRaw).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building user update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapError(err, "user", user.ID)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError("user", user.ID)
	}

	user.UpdatedAt = now

	return nil
}

// mapError converts pgx and pgconn failures into domain errors. Context
// cancellation passes through unchanged so callers can detect it.
func mapError(err error, entity, id string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return domain.NewConflictError(entity, "already exists")
		case "23514": // check_violation
			return domain.NewValidationError(entity, pgErr.Message)
		}
	}

	return domain.NewUnavailableError("database", err.Error())
}

// favoriteRecord is the JSONB shape of a single favorite.
type favoriteRecord struct {
	ID       string `json:"id"`
	Quote    string `json:"quote"`
	Category string `json:"category,omitempty"`
}

func marshalFavorites(favorites []domain.Favorite) ([]byte, error) {
	records := make([]favoriteRecord, 0, len(favorites))
	for _, f := range favorites {
		records = append(records, favoriteRecord(f))
	}

	return json.Marshal(records)
}

func unmarshalFavorites(raw []byte) ([]domain.Favorite, error) {
	if len(raw) == 0 {
		return []domain.Favorite{}, nil
	}

	var records []favoriteRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}

	favorites := make([]domain.Favorite, 0, len(records))
	for _, rec := range records {
		favorites = append(favorites, domain.Favorite(rec))
	}

	return favorites, nil
}

// quotesArray never sends a NULL array to the quotes column.
func quotesArray(quotes []string) []string {
	if quotes == nil {
		return []string{}
	}

	return quotes
}
