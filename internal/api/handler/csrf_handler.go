package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// CSRFHandler issues double-submit security tokens.
type CSRFHandler struct {
	tokens  ports.TokenService
	baseURL string
	secure  bool
}

func NewCSRFHandler(tokens ports.TokenService, baseURL string, secure bool) *CSRFHandler {
	return &CSRFHandler{tokens: tokens, baseURL: baseURL, secure: secure}
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Issue mints a token, binds it to the session identity when the caller
// is logged in, and sets the double-submit cookie.
//
// @Summary      Issue a CSRF token
// @Tags         security
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /csrf/token [post]
func (h *CSRFHandler) Issue(c echo.Context) error {
	var boundIdentity string
	if identity, ok := middleware.Identity(c); ok {
		boundIdentity = identity.UserID
	}

	token, err := h.tokens.Generate(boundIdentity)
	if err != nil {
		return err
	}

	setTokenCookie(c, token, h.secure)

	return c.JSON(http.StatusOK, tokenResponse{
		Token:     token.Value,
		ExpiresIn: int64(token.TTL().Seconds()),
	})
}

// Preflight answers the CORS preflight for the token endpoint.
//
// @Summary      CSRF token preflight
// @Tags         security
// @Success      204
// @Router       /csrf/token [options]
func (h *CSRFHandler) Preflight(c echo.Context) error {
	header := c.Response().Header()
	header.Set(echo.HeaderAccessControlAllowOrigin, h.baseURL)
	header.Set(echo.HeaderAccessControlAllowMethods, http.MethodPost)
	header.Set(echo.HeaderAccessControlAllowHeaders, echo.HeaderContentType)
	header.Set(echo.HeaderAccessControlMaxAge, "86400")
	return c.NoContent(http.StatusNoContent)
}
