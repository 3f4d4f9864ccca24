// Package domain contains core business entities and rules.
package domain

import "time"

// User is the document-store aggregate owning a quote history and favorites.
// Identity lifecycle (creation, deletion of accounts) belongs to an external
// subsystem; this service only reads and mutates Quotes and Favorites.
type User struct {
	// ID is the unique identifier for this user.
	ID string

	// Quotes is the append-only history of generated quote strings,
	// in generation order. Duplicates are allowed.
	Quotes []string

	// Favorites is the user's saved quotes. No two favorites may share
	// the same quote text (case-sensitive, enforced on insert).
	Favorites []Favorite

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Favorite is a user-saved quote with an associated category.
// It is exclusively owned by its parent User.
type Favorite struct {
	// ID is unique within the owning user's collection, assigned at creation.
	ID string

	// Quote is the text of the saved quote.
	Quote string

	// Category is a free-form label, may be empty.
	Category string
}

// FindFavorite returns the index of the favorite with the given id,
// or -1 if no such favorite exists.
func (u *User) FindFavorite(favoriteID string) int {
	for i := range u.Favorites {
		if u.Favorites[i].ID == favoriteID {
			return i
		}
	}

	return -1
}

// HasFavoriteQuote reports whether the user already saved a favorite with
// exactly this quote text. The match is case-sensitive.
func (u *User) HasFavoriteQuote(quote string) bool {
	for i := range u.Favorites {
		if u.Favorites[i].Quote == quote {
			return true
		}
	}

	return false
}
