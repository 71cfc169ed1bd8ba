package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/user-service/config"
	"github.com/example/user-service/internal/usecase"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// setAuthCookies binds a token pair to the response as the two HTTP-only
// auth cookies. Max-Age tracks the token TTLs so the browser drops the
// cookie when the credential inside it expires.
func setAuthCookies(c echo.Context, cfg *config.Config, pair *usecase.TokenPair) {
	c.SetCookie(authCookie(cfg, accessTokenCookie, pair.AccessToken, int(cfg.AccessTTL.Seconds())))
	c.SetCookie(authCookie(cfg, refreshTokenCookie, pair.RefreshToken, int(cfg.RefreshTTL.Seconds())))
}

func clearAuthCookies(c echo.Context, cfg *config.Config) {
	c.SetCookie(authCookie(cfg, accessTokenCookie, "", -1))
	c.SetCookie(authCookie(cfg, refreshTokenCookie, "", -1))
}

func authCookie(cfg *config.Config, name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.SecureCookies(),
		SameSite: http.SameSiteLaxMode,
	}
}

func cookieValue(c echo.Context, name string) string {
	cookie, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
