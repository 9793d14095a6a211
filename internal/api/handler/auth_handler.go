package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codecoach-ai/codecoach-api/internal/api/middleware"
	"github.com/codecoach-ai/codecoach-api/internal/core/action"
	"github.com/codecoach-ai/codecoach-api/internal/core/domain"
	"github.com/codecoach-ai/codecoach-api/internal/core/ports"
)

// AuthHandler exposes registration, login and logout. Mutations run
// through the safe-action wrapper so validation failures, handler
// errors and panics all land in the same result envelope.
type AuthHandler struct {
	authService ports.AuthService
	sessionTTL  time.Duration
	secure      bool

	register *action.Action[registerInput, *domain.User]
	login    *action.Action[loginInput, loginOutput]
}

type registerInput struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required,min=2,max=80"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginOutput struct {
	SessionID string       `json:"-"`
	User      *domain.User `json:"user"`
}

func NewAuthHandler(authService ports.AuthService, v *validator.Validate, sessionTTL time.Duration, log zerolog.Logger, secure bool) *AuthHandler {
	h := &AuthHandler{authService: authService, sessionTTL: sessionTTL, secure: secure}

	h.register = action.New(v, func(ctx context.Context, in registerInput) (*domain.User, error) {
		return authService.Register(ctx, in.Email, in.Name, in.Password)
	}).WithLogger(log)

	h.login = action.New(v, func(ctx context.Context, in loginInput) (loginOutput, error) {
		sessionID, user, err := authService.Login(ctx, in.Email, in.Password)
		if err != nil {
			return loginOutput{}, err
		}
		return loginOutput{SessionID: sessionID, User: user}, nil
	}).WithLogger(log)

	return h
}

// Register creates a new account.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerInput  true  "Registration details"
// @Success      201   {object}  action.Result[domain.User]
// @Failure      400   {object}  action.Result[domain.User]
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	res := runAction(c, h.register)
	if !res.OK {
		return c.JSON(http.StatusBadRequest, res)
	}
	return c.JSON(http.StatusCreated, res)
}

// Login authenticates and sets the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginInput  true  "Credentials"
// @Success      200   {object}  action.Result[loginOutput]
// @Failure      400   {object}  action.Result[loginOutput]
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	res := runAction(c, h.login)
	if !res.OK {
		return c.JSON(http.StatusBadRequest, res)
	}

	setSessionCookie(c, res.Data.SessionID, h.sessionTTL, h.secure)
	return c.JSON(http.StatusOK, res)
}

// Logout revokes the session and clears the cookie.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	clearSessionCookie(c, h.secure)
	return c.NoContent(http.StatusNoContent)
}

// runAction feeds the request payload into the action: JSON bodies are
// bound to the input struct, browser form posts take the flat key/value
// path so plain HTML forms keep working.
func runAction[In, Out any](c echo.Context, a *action.Action[In, Out]) action.Result[Out] {
	ctx := c.Request().Context()

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationForm) ||
		strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		form, err := c.FormParams()
		if err != nil {
			return action.Failure[Out]("invalid form payload")
		}
		return a.RunForm(ctx, form)
	}

	var in In
	if err := c.Bind(&in); err != nil {
		return action.Failure[Out]("invalid payload")
	}
	return a.Run(ctx, in)
}
