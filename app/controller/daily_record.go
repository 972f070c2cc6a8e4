package controller

import (
	"net/http"

	"github.com/haneul-labs/daily-record/app/dto"
	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type DailyRecordController struct {
	recordService *service.DailyRecordService
}

func NewDailyRecordController(recordService *service.DailyRecordService) *DailyRecordController {
	return &DailyRecordController{recordService: recordService}
}

func (ctl *DailyRecordController) List(c echo.Context) error {
	date, err := parseOptionalDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid date"})
	}
	from, err := parseOptionalDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid from"})
	}
	to, err := parseOptionalDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid to"})
	}

	views, err := ctl.recordService.List(c.Request().Context(), middleware.Username(c), date, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDailyRecordResponses(views))
}

func (ctl *DailyRecordController) Create(c echo.Context) error {
	params, err := bindDailyRecordParams(c)
	if err != nil {
		return err
	}

	id, err := ctl.recordService.Create(c.Request().Context(), middleware.Username(c), *params)
	if err != nil {
		return writeError(c, err)
	}

	logrus.WithField("record_id", id).Info("Daily record created")
	return c.JSON(http.StatusCreated, httpdto.IDResponse{ID: id})
}

func (ctl *DailyRecordController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	params, err := bindDailyRecordParams(c)
	if err != nil {
		return err
	}

	if err := ctl.recordService.Update(c.Request().Context(), middleware.Username(c), id, *params); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (ctl *DailyRecordController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	if err := ctl.recordService.Delete(c.Request().Context(), middleware.Username(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// bindDailyRecordParams responds with a 400 itself when the body is bad, so a
// non-nil error means the handler is already done.
func bindDailyRecordParams(c echo.Context) (*service.DailyRecordParams, error) {
	var req httpdto.DailyRecordRequest
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.CategoryID == 0 {
		return nil, c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "category_id is required"})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid date"})
	}

	return &service.DailyRecordParams{
		Date:       date,
		CategoryID: req.CategoryID,
		Memo:       req.Memo,
		Together:   req.Together,
	}, nil
}

func toDailyRecordResponses(views []*dto.DailyRecordView) []httpdto.DailyRecordResponse {
	responses := make([]httpdto.DailyRecordResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, httpdto.DailyRecordResponse{
			ID:       view.ID,
			Date:     formatDate(view.Date),
			Memo:     view.Memo,
			Together: view.Together,
			Category: toCategoryResponse(&view.Category),
		})
	}
	return responses
}
