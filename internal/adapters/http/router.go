package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/example/user-service/config"
	"github.com/example/user-service/internal/adapters/http/handlers"
	internalhttp "github.com/example/user-service/internal/adapters/http/internal"
)

type Router struct {
	cfg    *config.Config
	auth   *handlers.AuthHandler
	users  *handlers.UserHandler
	authMW echo.MiddlewareFunc
}

func NewRouter(cfg *config.Config, auth *handlers.AuthHandler, users *handlers.UserHandler, authMW echo.MiddlewareFunc) *Router {
	return &Router{cfg: cfg, auth: auth, users: users, authMW: authMW}
}

func (r *Router) Setup(e *echo.Echo) {
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     r.cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType},
		AllowCredentials: true,
	}))

	internalhttp.Register(e)

	api := e.Group(r.cfg.HTTPBasePath)

	auth := api.Group("/auth")
	auth.POST("/register", r.auth.Register)
	auth.POST("/login", r.auth.Login)
	auth.POST("/refresh", r.auth.Refresh)
	auth.POST("/logout", r.auth.Logout)
	auth.GET("/verify", r.auth.Verify)

	users := api.Group("/users", r.authMW)
	users.GET("", r.users.List)
	users.GET("/:id", r.users.Get)
	users.PUT("/:id", r.users.Update)
	users.DELETE("/:id", r.users.Delete)
}
