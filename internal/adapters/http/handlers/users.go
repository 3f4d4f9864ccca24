package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/adapters/http/dto"
	"github.com/quotedeck/quotedeck/internal/app"
)

// UserHandler handles user provisioning and history HTTP endpoints.
type UserHandler struct {
	service *app.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *app.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// UserResponse is the HTTP representation of a newly registered user.
type UserResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}

// QuoteHistoryResponse wraps a user's generated quote history.
type QuoteHistoryResponse struct {
	Quotes []string `json:"quotes"`
}

// RegisterUser handles POST /api/v1/users
// Provisions an empty user document and returns its id.
//
// @Summary Register a user
// @Tags users
// @Produce json
// @Success 201 {object} UserResponse
// @Router /api/v1/users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	user, err := h.service.Register(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, UserResponse{
		ID:        user.ID,
		CreatedAt: user.CreatedAt,
	})
}

// GetQuoteHistory handles GET /api/v1/users/:userId/quotes
//
// @Summary Get a user's generated quote history
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} QuoteHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/quotes [get]
func (h *UserHandler) GetQuoteHistory(c *gin.Context) {
	quotes, err := h.service.History(c.Request.Context(), c.Param("userId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteHistoryResponse{Quotes: quotes})
}

// RegisterUserRoutes registers user routes on the given router group.
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.RegisterUser)
	users.GET("/:userId/quotes", h.GetQuoteHistory)
}
