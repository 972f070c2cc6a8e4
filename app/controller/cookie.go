package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

// CookieWriter serializes tokens into the auth cookies. The attributes are a
// wire contract: HttpOnly, SameSite=Lax, Path=/, not Secure.
type CookieWriter struct{}

func NewCookieWriter() *CookieWriter {
	return &CookieWriter{}
}

func (w *CookieWriter) ApplyAuthCookies(c echo.Context, accessToken, refreshToken string, accessMaxAgeSec, refreshMaxAgeSec int64) {
	c.SetCookie(baseCookie(accessTokenCookie, accessToken, int(accessMaxAgeSec)))
	c.SetCookie(baseCookie(refreshTokenCookie, refreshToken, int(refreshMaxAgeSec)))
}

func (w *CookieWriter) ClearAuthCookies(c echo.Context) {
	// MaxAge -1 emits Max-Age=0, expiring the cookie immediately.
	c.SetCookie(baseCookie(accessTokenCookie, "", -1))
	c.SetCookie(baseCookie(refreshTokenCookie, "", -1))
}

func baseCookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
}
