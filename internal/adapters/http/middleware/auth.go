package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/example/user-service/internal/tokenverify"
	res "github.com/example/user-service/pkg/http"
)

// AuthMiddleware guards endpoints behind the access token cookie. It only
// verifies the credential stateless; it never refreshes an expired one —
// clients drive refresh themselves off the 401.
type AuthMiddleware struct {
	parser tokenverify.Parser
}

func NewAuthMiddleware(parser tokenverify.Parser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

func (m *AuthMiddleware) Handler(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie("accessToken")
		if err != nil || cookie.Value == "" {
			return res.Error(c, http.StatusUnauthorized, "Access token not found")
		}
		result, err := tokenverify.Verify(m.parser, cookie.Value)
		if err != nil {
			return res.Error(c, http.StatusUnauthorized, "Invalid token")
		}
		c.Set("user_id", result.UserID)
		c.Set("email", result.Email)
		return next(c)
	}
}
