package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/adapters/http/handlers"
	"github.com/quotedeck/quotedeck/internal/app"
	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/ports"
)

func init() {
	// Set Gin to release mode for accurate benchmarks
	gin.SetMode(gin.ReleaseMode)
}

// createGinContext creates a Gin context for handler testing.
func createGinContext(w http.ResponseWriter, r *http.Request) *gin.Context {
	c, _ := gin.CreateTestContext(w)
	c.Request = r
	return c
}

// setupHealthHandler creates a HealthHandler with a minimal registry for benchmarking.
func setupHealthHandler() *handlers.HealthHandler {
	registry := ports.NewHealthRegistry()
	buildInfo := handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z")
	return handlers.NewHealthHandler(registry, buildInfo)
}

// BenchmarkLivenessHandler measures the performance of the liveness endpoint.
// This is a critical path for Kubernetes probes and should be extremely fast.
func BenchmarkLivenessHandler(b *testing.B) {
	handler := setupHealthHandler()
	req := httptest.NewRequest(http.MethodGet, "/-/live", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Liveness(c)
	}
}

// BenchmarkReadinessHandler_WithChecks measures readiness with registered health checks.
func BenchmarkReadinessHandler_WithChecks(b *testing.B) {
	registry := ports.NewHealthRegistry()

	_ = registry.Register(&simpleHealthChecker{name: "postgres"})
	_ = registry.Register(&simpleHealthChecker{name: "gemini"})

	buildInfo := handlers.NewBuildInfo("1.0.0", "abc123", "2024-01-01T00:00:00Z")
	handler := handlers.NewHealthHandler(registry, buildInfo)
	req := httptest.NewRequest(http.MethodGet, "/-/ready", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.Readiness(c)
	}
}

// BenchmarkGenerateQuotesHandler measures the full generation path: JSON bind,
// validation, prompt build, response normalization, and history persistence.
// The generation client and repository are in-memory stubs so the numbers
// reflect service overhead rather than network latency.
func BenchmarkGenerateQuotesHandler(b *testing.B) {
	const userID = "3f1f0e9a-6a1a-4b4e-9d0f-2a8c41f9d7be"

	repo := newStubUserRepo(userID)
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Generator: &stubGenerator{response: `["Believe in yourself", "Never give up"]`},
		Users:     repo,
	})
	handler := handlers.NewQuoteHandler(service)

	body := `{"topic": "perseverance", "total": 2, "category": "motivation", "userId": "` + userID + `"}`

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.GenerateQuotes(c)

		// History grows on every iteration; trim it so memory stays flat.
		repo.user.Quotes = repo.user.Quotes[:0]
	}
}

// BenchmarkDailyQuoteHandler measures the quote-of-the-day path including
// prose normalization of the model response.
func BenchmarkDailyQuoteHandler(b *testing.B) {
	service := app.NewQuoteService(app.QuoteServiceConfig{
		Generator: &stubGenerator{response: "Just keep going."},
		Users:     newStubUserRepo("unused"),
	})
	handler := handlers.NewQuoteHandler(service)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/daily", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		c := createGinContext(w, req)
		handler.GetDailyQuote(c)
	}
}

// BenchmarkListFavoritesHandler measures listing a populated favorites
// collection through the full handler and service stack.
func BenchmarkListFavoritesHandler(b *testing.B) {
	const userID = "3f1f0e9a-6a1a-4b4e-9d0f-2a8c41f9d7be"

	repo := newStubUserRepo(userID)
	for i := 0; i < 20; i++ {
		repo.user.Favorites = append(repo.user.Favorites, domain.Favorite{
			ID:       "fav-" + string(rune('a'+i)),
			Quote:    "quote number " + string(rune('a'+i)),
			Category: "motivation",
		})
	}

	service := app.NewFavoritesService(app.FavoritesServiceConfig{Users: repo})
	handler := handlers.NewFavoritesHandler(service)

	router := gin.New()
	router.GET("/api/v1/users/:userId/favorites", handler.ListFavorites)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/favorites", http.NoBody)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	}
}

// BenchmarkNormalize measures response normalization for the structured and
// prose parse paths.
func BenchmarkNormalize(b *testing.B) {
	b.Run("json_array", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			domain.Normalize(`["Believe in yourself", "Never give up", "Stay strong"]`)
		}
	})

	b.Run("prose", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			domain.Normalize("Just keep going.\n\nStay strong.\n\nNever quit.")
		}
	})
}

// simpleHealthChecker is a minimal health checker for benchmarking.
type simpleHealthChecker struct {
	name string
}

func (s *simpleHealthChecker) Name() string {
	return s.name
}

func (s *simpleHealthChecker) Check(_ context.Context) error {
	return nil
}

// stubGenerator returns a canned model response.
type stubGenerator struct {
	response string
}

func (s *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return s.response, nil
}

// stubUserRepo holds a single in-memory user aggregate.
type stubUserRepo struct {
	user *domain.User
}

func newStubUserRepo(id string) *stubUserRepo {
	return &stubUserRepo{user: &domain.User{ID: id}}
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if id != r.user.ID {
		return nil, domain.NewNotFoundError("user", id)
	}
	return r.user, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) error {
	r.user = user
	return nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	return domain.NewConflictError("user", "already exists")
}

var _ ports.UserRepository = (*stubUserRepo)(nil)
var _ ports.GenerationClient = (*stubGenerator)(nil)
