package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quotedeck/quotedeck/internal/adapters/http/dto"
	"github.com/quotedeck/quotedeck/internal/app"
)

// QuoteHandler handles quote generation HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// GenerateQuotesRequest is the request body for quote generation.
type GenerateQuotesRequest struct {
	Topic    string `json:"topic"    validate:"required,notempty"`
	Total    int    `json:"total"    validate:"required,gt=0"`
	Category string `json:"category" validate:"required,notempty"`
	UserID   string `json:"userId"   validate:"required,uuid"`
}

// GenerateQuotesResponse is the HTTP response for generated quotes.
type GenerateQuotesResponse struct {
	Quotes   []string `json:"quotes"`
	Category string   `json:"category"`
}

// DailyQuoteResponse is the HTTP response for the quote of the day.
type DailyQuoteResponse struct {
	Quote string `json:"quote"`
}

// GenerateQuotes handles POST /api/v1/quotes/generate
// Generates quotes for a topic and appends them to the user's history.
//
// @Summary Generate quotes
// @Description Generates quotes about a topic and records them on the user
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body GenerateQuotesRequest true "Generation parameters"
// @Success 200 {object} GenerateQuotesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/generate [post]
func (h *QuoteHandler) GenerateQuotes(c *gin.Context) {
	var req GenerateQuotesRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), app.GenerateRequest{
		Topic:    req.Topic,
		Total:    req.Total,
		Category: req.Category,
		UserID:   req.UserID,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, GenerateQuotesResponse{
		Quotes:   result.Quotes,
		Category: result.Category,
	})
}

// GetDailyQuote handles GET /api/v1/quotes/daily
// Returns a single quote of the day.
//
// @Summary Get the quote of the day
// @Description Returns one freshly generated inspirational quote
// @Tags quotes
// @Produce json
// @Success 200 {object} DailyQuoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/daily [get]
func (h *QuoteHandler) GetDailyQuote(c *gin.Context) {
	quote, err := h.service.QuoteOfTheDay(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, DailyQuoteResponse{Quote: quote})
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("/generate", h.GenerateQuotes)
	quotes.GET("/daily", h.GetDailyQuote)
}

// respondBindError writes a 400 for request binding or validation failures.
// Field-level failures are reported as details; malformed JSON gets a
// generic bad-request envelope.
func respondBindError(c *gin.Context, err error) {
	if fieldErrors := dto.ValidationErrors(err); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
			dto.ErrorCodeValidation,
			"request validation failed",
			fieldErrors,
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
		dto.ErrorCodeBadRequest,
		"invalid request body",
	).WithTraceID(dto.GetTraceID(c)))
}
