package controller

import (
	"net/http"
	"strconv"

	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AdminUserController struct {
	adminService *service.AdminUserService
}

func NewAdminUserController(adminService *service.AdminUserService) *AdminUserController {
	return &AdminUserController{adminService: adminService}
}

func (ctl *AdminUserController) List(c echo.Context) error {
	profiles, err := ctl.adminService.List(c.Request().Context(), middleware.Username(c))
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]httpdto.UserResponse, 0, len(profiles))
	for _, profile := range profiles {
		responses = append(responses, toUserResponse(profile))
	}
	return c.JSON(http.StatusOK, responses)
}

func (ctl *AdminUserController) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	profile, err := ctl.adminService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toUserResponse(profile))
}

func (ctl *AdminUserController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	var req httpdto.AdminUserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	authority := entity.Authority(req.Authority)
	if authority != entity.AuthorityUser && authority != entity.AuthorityAdmin {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid authority"})
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "password is required"})
	}

	if err := ctl.adminService.Update(c.Request().Context(), id, req.Password, authority); err != nil {
		return writeError(c, err)
	}

	logrus.WithField("user_id", id).Info("User credentials updated by admin")
	return c.NoContent(http.StatusNoContent)
}

func (ctl *AdminUserController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	if err := ctl.adminService.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	logrus.WithField("user_id", id).Info("User deleted by admin")
	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
