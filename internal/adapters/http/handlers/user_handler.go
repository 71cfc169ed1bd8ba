package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/example/user-service/internal/usecase"
	res "github.com/example/user-service/pkg/http"
	pkglog "github.com/example/user-service/pkg/log"
)

type UserHandler struct {
	logger  pkglog.Logger
	service usecase.UserService
}

func NewUserHandler(logger pkglog.Logger, s usecase.UserService) *UserHandler {
	return &UserHandler{logger: logger, service: s}
}

func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context(), requestIDFromCtx(c))
	if err != nil {
		return h.fail(c, err)
	}
	return res.JSON(c, http.StatusOK, users)
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return res.Error(c, http.StatusNotFound, "User not found")
	}
	user, err := h.service.Get(c.Request().Context(), requestIDFromCtx(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return res.JSON(c, http.StatusOK, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return res.Error(c, http.StatusNotFound, "User not found")
	}
	req := new(usecase.UpdateUserRequest)
	if err := c.Bind(req); err != nil {
		return res.Error(c, http.StatusBadRequest, "Invalid payload")
	}
	if _, err := h.service.Update(c.Request().Context(), requestIDFromCtx(c), id, *req); err != nil {
		return h.fail(c, err)
	}
	return res.Message(c, http.StatusOK, "User updated successfully")
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return res.Error(c, http.StatusNotFound, "User not found")
	}
	if err := h.service.Delete(c.Request().Context(), requestIDFromCtx(c), id); err != nil {
		return h.fail(c, err)
	}
	return res.Message(c, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return res.Error(c, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrValidationFailed):
		return res.Error(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return res.Error(c, http.StatusBadRequest, "User already exists")
	default:
		h.logger.Error().Str("trace_id", requestIDFromCtx(c)).Err(err).Msg("unexpected error")
		return res.Error(c, http.StatusInternalServerError, "Server error")
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
