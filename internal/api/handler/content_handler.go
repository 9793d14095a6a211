package handler

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/api/metrics"
	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/action"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// ContentHandler exposes content generation and history.
type ContentHandler struct {
	contentService ports.ContentService

	generate *action.Action[generateInput, *domain.Content]
}

type generateInput struct {
	Kind       string `json:"kind" validate:"required,oneof=lesson quiz exercise"`
	Language   string `json:"language" validate:"required,min=1,max=40"`
	Topic      string `json:"topic" validate:"required,min=3,max=200"`
	Difficulty string `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`

	// identity is injected by the handler after auth, never bound from
	// the payload.
	identity domain.Identity `json:"-" validate:"-"`
}

func NewContentHandler(contentService ports.ContentService, v *validator.Validate, log zerolog.Logger) *ContentHandler {
	h := &ContentHandler{contentService: contentService}

	h.generate = action.New(v, func(ctx context.Context, in generateInput) (*domain.Content, error) {
		content, err := contentService.Generate(ctx, in.identity, ports.GenerateRequest{
			Kind:       domain.ContentKind(in.Kind),
			Language:   in.Language,
			Topic:      in.Topic,
			Difficulty: in.Difficulty,
		})
		if err != nil {
			return nil, err
		}
		metrics.ContentGeneratedTotal.WithLabelValues(in.Kind).Inc()
		return content, nil
	}).WithLogger(log)

	return h
}

// Generate creates a new learning artefact for the caller.
//
// @Summary      Generate content
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     SessionCookie
// @Param        body  body      generateInput  true  "Generation request"
// @Success      201   {object}  action.Result[domain.Content]
// @Failure      400   {object}  action.Result[domain.Content]
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /v1/content [post]
func (h *ContentHandler) Generate(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return domain.ErrAuthRequired
	}

	var in generateInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, action.Failure[*domain.Content]("invalid payload"))
	}
	in.identity = identity

	res := h.generate.Run(c.Request().Context(), in)
	if !res.OK {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusCreated, res)
}

type historyResponse struct {
	Items []domain.Content `json:"items"`
}

// History lists the caller's content, newest first.
//
// @Summary      List content history
// @Tags         content
// @Produce      json
// @Security     SessionCookie
// @Param        limit  query     int  false  "Maximum records to return"
// @Success      200    {object}  historyResponse
// @Failure      401    {object}  map[string]string
// @Router       /v1/content [get]
func (h *ContentHandler) History(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return domain.ErrAuthRequired
	}

	limit := 0
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
	}

	items, err := h.contentService.History(c.Request().Context(), identity.UserID, limit)
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.Content{}
	}
	return c.JSON(http.StatusOK, historyResponse{Items: items})
}

// Get fetches one content record owned by the caller.
//
// @Summary      Get content by ID
// @Tags         content
// @Produce      json
// @Security     SessionCookie
// @Param        id   path      string  true  "Content ID"
// @Success      200  {object}  domain.Content
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/content/{id} [get]
func (h *ContentHandler) Get(c echo.Context) error {
	identity, ok := middleware.Identity(c)
	if !ok {
		return domain.ErrAuthRequired
	}

	content, err := h.contentService.Get(c.Request().Context(), identity, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, content)
}
