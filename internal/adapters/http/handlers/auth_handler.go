package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/user-service/config"
	"github.com/example/user-service/internal/domain"
	"github.com/example/user-service/internal/usecase"
	res "github.com/example/user-service/pkg/http"
	pkglog "github.com/example/user-service/pkg/log"
)

type AuthHandler struct {
	cfg     *config.Config
	logger  pkglog.Logger
	service usecase.Service
}

func NewAuthHandler(cfg *config.Config, logger pkglog.Logger, s usecase.Service) *AuthHandler {
	return &AuthHandler{cfg: cfg, logger: logger, service: s}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User *domain.PublicUser `json:"user"`
}

type registerResponse struct {
	Message string             `json:"message"`
	User    *domain.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	req := new(usecase.RegisterRequest)
	if err := c.Bind(req); err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid payload")
	}
	user, err := h.service.Register(c.Request().Context(), requestIDFromCtx(c), *req)
	if err != nil {
		return h.fail(c, err)
	}
	return res.JSON(c, http.StatusCreated, registerResponse{Message: "User created successfully", User: user})
}

func (h *AuthHandler) Login(c echo.Context) error {
	req := new(loginRequest)
	if err := c.Bind(req); err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid payload")
	}
	user, pair, err := h.service.Login(c.Request().Context(), requestIDFromCtx(c), req.Email, req.Password)
	if err != nil {
		return h.fail(c, err)
	}
	setAuthCookies(c, h.cfg, pair)
	return res.JSON(c, http.StatusOK, userResponse{User: user})
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	pair, err := h.service.Refresh(c.Request().Context(), requestIDFromCtx(c), cookieValue(c, refreshTokenCookie))
	if err != nil {
		return h.fail(c, err)
	}
	setAuthCookies(c, h.cfg, pair)
	return res.Message(c, http.StatusOK, "Token refreshed successfully")
}

// Logout always succeeds: the cookies are cleared whatever state the
// session was in, and the presented refresh token is revoked best-effort.
func (h *AuthHandler) Logout(c echo.Context) error {
	_ = h.service.Logout(c.Request().Context(), requestIDFromCtx(c), cookieValue(c, refreshTokenCookie))
	clearAuthCookies(c, h.cfg)
	return res.Message(c, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Verify(c echo.Context) error {
	user, err := h.service.Verify(c.Request().Context(), requestIDFromCtx(c), cookieValue(c, accessTokenCookie))
	if err != nil {
		// A user deleted after token issuance is unauthenticated here, not 404.
		if errors.Is(err, usecase.ErrUserNotFound) {
			return res.Error(c, http.StatusUnauthorized, "User not found")
		}
		return h.fail(c, err)
	}
	return res.JSON(c, http.StatusOK, userResponse{User: user})
}

func (h *AuthHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrValidationFailed):
		return res.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return res.Error(c, http.StatusBadRequest, "User already exists")
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return res.Error(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, usecase.ErrRefreshTokenMissing):
		return res.Error(c, http.StatusUnauthorized, "Refresh token not found")
	case errors.Is(err, usecase.ErrInvalidRefreshToken):
		return res.Error(c, http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, usecase.ErrNoAccessToken):
		return res.Error(c, http.StatusUnauthorized, "Access token not found")
	case errors.Is(err, usecase.ErrInvalidAccessToken):
		return res.Error(c, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, usecase.ErrUserNotFound):
		return res.Error(c, http.StatusNotFound, "User not found")
	default:
		h.logger.Error().Str("trace_id", requestIDFromCtx(c)).Err(err).Msg("unexpected error")
		return res.Error(c, http.StatusInternalServerError, "Server error")
	}
}

func requestIDFromCtx(c echo.Context) string {
	if reqID := c.Response().Header().Get(echo.HeaderXRequestID); reqID != "" {
		return reqID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
