package middleware

import (
	"net/http"

	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenCookie = "access_token"

	ContextUsername  = "username"
	ContextAuthority = "authority"
)

type accessTokenParser interface {
	ParseAccessToken(tokenString string) (*service.AccessClaims, error)
}

type AuthMiddleware struct {
	codec accessTokenParser
}

func NewAuthMiddleware(codec accessTokenParser) *AuthMiddleware {
	return &AuthMiddleware{codec: codec}
}

// Authenticate reads the access token cookie and, when it verifies, attaches
// the identity to the request context. A missing or invalid token lets the
// request continue anonymously; route guards decide what needs auth.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(AccessTokenCookie)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		claims, err := m.codec.ParseAccessToken(cookie.Value)
		if err != nil {
			logrus.WithError(err).Debug("Access token rejected, continuing anonymous")
			return next(c)
		}

		c.Set(ContextUsername, claims.Subject)
		c.Set(ContextAuthority, claims.Authority)
		return next(c)
	}
}

func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		username, ok := c.Get(ContextUsername).(string)
		if !ok || username == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "unauthorized",
			})
		}
		return next(c)
	}
}

func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.RequireAuth(func(c echo.Context) error {
		authority, _ := c.Get(ContextAuthority).(string)
		if authority != string(entity.AuthorityAdmin) {
			return c.JSON(http.StatusForbidden, map[string]string{
				"error": "forbidden",
			})
		}
		return next(c)
	})
}

// Username returns the authenticated caller's username, or "" when the
// request is anonymous.
func Username(c echo.Context) string {
	username, _ := c.Get(ContextUsername).(string)
	return username
}
