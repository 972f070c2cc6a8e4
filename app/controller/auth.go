package controller

import (
	"net/http"

	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AuthController struct {
	authService *service.AuthService
	cookies     *CookieWriter
}

func NewAuthController(authService *service.AuthService, cookies *CookieWriter) *AuthController {
	return &AuthController{authService: authService, cookies: cookies}
}

func (ctl *AuthController) Register(c echo.Context) error {
	var req httpdto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind register request")
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Username == "" || req.Name == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "username, name and password are required"})
	}

	logrus.WithField("username", req.Username).Info("Register request received")
	userID, err := ctl.authService.Register(c.Request().Context(), req.Username, req.Name, req.Password)
	if err != nil {
		logrus.WithError(err).WithField("username", req.Username).Warn("Register failed")
		return writeError(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"username": req.Username,
	}).Info("User registered")
	return c.JSON(http.StatusCreated, httpdto.RegisterResponse{UserID: userID})
}

func (ctl *AuthController) Login(c echo.Context) error {
	var req httpdto.LoginRequest
	if err := c.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind login request")
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "username and password are required"})
	}

	pair, err := ctl.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		logrus.WithField("username", req.Username).Warn("Login failed")
		return writeError(c, err)
	}

	ctl.cookies.ApplyAuthCookies(c, pair.AccessToken, pair.RefreshToken, pair.AccessMaxAgeSec, pair.RefreshMaxAgeSec)
	logrus.WithField("username", req.Username).Info("Login successful")
	return c.NoContent(http.StatusNoContent)
}

func (ctl *AuthController) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(refreshTokenCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "missing refresh token"})
	}

	pair, err := ctl.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		logrus.Warn("Refresh failed")
		return writeError(c, err)
	}

	ctl.cookies.ApplyAuthCookies(c, pair.AccessToken, pair.RefreshToken, pair.AccessMaxAgeSec, pair.RefreshMaxAgeSec)
	logrus.Info("Tokens refreshed")
	return c.NoContent(http.StatusNoContent)
}

// Logout clears the auth cookies no matter what; a missing or stale refresh
// token is not an error.
func (ctl *AuthController) Logout(c echo.Context) error {
	rawToken := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		rawToken = cookie.Value
	}

	if err := ctl.authService.Logout(c.Request().Context(), rawToken); err != nil {
		logrus.WithError(err).Error("Logout cleanup failed")
	}

	ctl.cookies.ClearAuthCookies(c)
	logrus.Info("Logout successful")
	return c.NoContent(http.StatusNoContent)
}
