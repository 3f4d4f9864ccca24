package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/adapters/http/dto"
	"github.com/quotedeck/quotedeck/internal/app"
	"github.com/quotedeck/quotedeck/internal/domain"
)

// FavoritesHandler handles favorite quote HTTP endpoints.
type FavoritesHandler struct {
	service *app.FavoritesService
}

// NewFavoritesHandler creates a new favorites handler.
func NewFavoritesHandler(service *app.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		service: service,
	}
}

// AddFavoriteRequest is the request body for saving a favorite.
type AddFavoriteRequest struct {
	Quote    string `json:"quote"    validate:"required,notempty"`
	Category string `json:"category"`
}

// FavoriteResponse is the HTTP representation of a favorite.
type FavoriteResponse struct {
	ID       string `json:"id"`
	Quote    string `json:"quote"`
	Category string `json:"category,omitempty"`
}

// ListFavoritesResponse wraps the favorites collection.
type ListFavoritesResponse struct {
	Favorites []FavoriteResponse `json:"favorites"`
}

func toFavoriteResponse(f domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		ID:       f.ID,
		Quote:    f.Quote,
		Category: f.Category,
	}
}

// ListFavorites handles GET /api/v1/users/:userId/favorites
//
// @Summary List a user's favorites
// @Tags favorites
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} ListFavoritesResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/favorites [get]
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.service.List(c.Request.Context(), c.Param("userId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := ListFavoritesResponse{Favorites: make([]FavoriteResponse, 0, len(favorites))}
	for _, f := range favorites {
		resp.Favorites = append(resp.Favorites, toFavoriteResponse(f))
	}

	c.JSON(http.StatusOK, resp)
}

// AddFavorite handles POST /api/v1/users/:userId/favorites
// Saving the same quote text twice is rejected with a conflict.
//
// @Summary Save a favorite quote
// @Tags favorites
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param request body AddFavoriteRequest true "Favorite to save"
// @Success 201 {object} FavoriteResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/favorites [post]
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	id, err := h.service.Add(c.Request.Context(), c.Param("userId"), req.Quote, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, FavoriteResponse{
		ID:       id,
		Quote:    req.Quote,
		Category: req.Category,
	})
}

// RemoveFavorite handles DELETE /api/v1/users/:userId/favorites/:favoriteId
//
// @Summary Remove one favorite
// @Tags favorites
// @Param userId path string true "User ID"
// @Param favoriteId path string true "Favorite ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/favorites/{favoriteId} [delete]
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	err := h.service.Remove(c.Request.Context(), c.Param("userId"), c.Param("favoriteId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ClearFavorites handles DELETE /api/v1/users/:userId/favorites
// Clearing an already-empty collection succeeds.
//
// @Summary Remove all favorites
// @Tags favorites
// @Param userId path string true "User ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/v1/users/{userId}/favorites [delete]
func (h *FavoritesHandler) ClearFavorites(c *gin.Context) {
	err := h.service.Clear(c.Request.Context(), c.Param("userId"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterFavoriteRoutes registers favorites routes on the given router group.
func (h *FavoritesHandler) RegisterFavoriteRoutes(rg *gin.RouterGroup) {
	favorites := rg.Group("/users/:userId/favorites")
	favorites.GET("", h.ListFavorites)
	favorites.POST("", h.AddFavorite)
	favorites.DELETE("", h.ClearFavorites)
	favorites.DELETE("/:favoriteId", h.RemoveFavorite)
}
