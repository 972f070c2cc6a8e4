package controller

import (
	"net/http"

	"github.com/haneul-labs/daily-record/app/dto"
	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (ctl *UserController) Me(c echo.Context) error {
	username := middleware.Username(c)
	profile, err := ctl.userService.Me(c.Request().Context(), username)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(profile))
}

func (ctl *UserController) UpdateMe(c echo.Context) error {
	var req httpdto.UpdateMeRequest
	if err := c.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update me request")
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	params := service.UpdateProfileParams{
		Name:            req.Name,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		if gender != entity.GenderMale && gender != entity.GenderFemale {
			return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid gender"})
		}
		params.Gender = &gender
	}
	if req.BirthDate != nil {
		birthDate, err := parseDate(*req.BirthDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid birth_date"})
		}
		params.BirthDate = &birthDate
	}

	username := middleware.Username(c)
	if err := ctl.userService.UpdateMe(c.Request().Context(), username, params); err != nil {
		logrus.WithField("username", username).Warn("Profile update failed")
		return writeError(c, err)
	}

	logrus.WithField("username", username).Info("Profile updated")
	return c.NoContent(http.StatusNoContent)
}

func toUserResponse(profile *dto.UserProfile) httpdto.UserResponse {
	resp := httpdto.UserResponse{
		ID:        profile.ID,
		Username:  profile.Username,
		Name:      profile.Name,
		Authority: profile.Authority,
		Gender:    profile.Gender,
	}
	if profile.BirthDate != nil {
		birthDate := formatDate(*profile.BirthDate)
		resp.BirthDate = &birthDate
	}
	return resp
}
