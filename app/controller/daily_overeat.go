package controller

import (
	"net/http"

	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
)

type DailyOvereatController struct {
	overeatService *service.DailyOvereatService
}

func NewDailyOvereatController(overeatService *service.DailyOvereatService) *DailyOvereatController {
	return &DailyOvereatController{overeatService: overeatService}
}

func (ctl *DailyOvereatController) List(c echo.Context) error {
	from, err := parseDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid from"})
	}
	to, err := parseDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid to"})
	}

	views, err := ctl.overeatService.List(c.Request().Context(), middleware.Username(c), from, to)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]httpdto.DailyOvereatResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, httpdto.DailyOvereatResponse{
			Date:  formatDate(view.Date),
			Level: view.Level,
		})
	}
	return c.JSON(http.StatusOK, responses)
}

func (ctl *DailyOvereatController) Upsert(c echo.Context) error {
	var req httpdto.DailyOvereatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid date"})
	}

	level := entity.OvereatLevel(req.Level)
	switch level {
	case entity.OvereatNone, entity.OvereatMild, entity.OvereatSevere:
	default:
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid level"})
	}

	if err := ctl.overeatService.Upsert(c.Request().Context(), middleware.Username(c), date, level); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
