package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quotedeck/quotedeck/internal/app"
	"github.com/quotedeck/quotedeck/internal/domain"
	"github.com/quotedeck/quotedeck/internal/mocks"
)

// setupUserHandler creates a UserHandler with a mocked repository.
func setupUserHandler(t *testing.T, setupMock func(*mocks.MockUserRepository)) *UserHandler {
	t.Helper()

	users := mocks.NewMockUserRepository(t)
	if setupMock != nil {
		setupMock(users)
	}

	service := app.NewUserService(app.UserServiceConfig{
		Users:  users,
		Logger: testLogger(),
	})

	return NewUserHandler(service)
}

func TestUserHandler_RegisterUser(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler := setupUserHandler(t, func(u *mocks.MockUserRepository) {
			u.EXPECT().Create(mock.Anything, mock.Anything).Return(nil)
		})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)

		handler.RegisterUser(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("store unavailable", func(t *testing.T) {
		handler := setupUserHandler(t, func(u *mocks.MockUserRepository) {
			u.EXPECT().Create(mock.Anything, mock.Anything).
				Return(domain.NewUnavailableError("database", "connection refused"))
		})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/users", nil)

		handler.RegisterUser(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestUserHandler_GetQuoteHistory(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockUserRepository)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			setupMock: func(u *mocks.MockUserRepository) {
				u.EXPECT().GetByID(mock.Anything, testUserID).Return(&domain.User{
					ID:     testUserID,
					Quotes: []string{"First", "Second"},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"quotes":["First","Second"]}`,
		},
		{
			name: "empty history serializes as empty array",
			setupMock: func(u *mocks.MockUserRepository) {
				u.EXPECT().GetByID(mock.Anything, testUserID).
					Return(&domain.User{ID: testUserID}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"quotes":[]}`,
		},
		{
			name: "unknown user",
			setupMock: func(u *mocks.MockUserRepository) {
				u.EXPECT().GetByID(mock.Anything, testUserID).
					Return(nil, domain.NewNotFoundError("user", testUserID))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := setupUserHandler(t, tt.setupMock)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/"+testUserID+"/quotes", nil)
			c.Params = gin.Params{{Key: "userId", Value: testUserID}}

			handler.GetQuoteHistory(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestUserHandler_RegisterUserRoutes(t *testing.T) {
	handler := setupUserHandler(t, nil)

	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterUserRoutes(api)

	routeMap := make(map[string]bool)
	for _, r := range router.Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	assert.True(t, routeMap["POST /api/v1/users"])
	assert.True(t, routeMap["GET /api/v1/users/:userId/quotes"])
}
