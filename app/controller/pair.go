package controller

import (
	"net/http"
	"time"

	"github.com/haneul-labs/daily-record/app/dto"
	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/middleware"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type PairController struct {
	pairService      *service.PairService
	pairEventService *service.PairEventService
}

func NewPairController(pairService *service.PairService, pairEventService *service.PairEventService) *PairController {
	return &PairController{pairService: pairService, pairEventService: pairEventService}
}

func (ctl *PairController) CreateInvite(c echo.Context) error {
	username := middleware.Username(c)
	code, err := ctl.pairService.CreateInvite(c.Request().Context(), username)
	if err != nil {
		logrus.WithField("username", username).Warn("Pair invite failed")
		return writeError(c, err)
	}

	logrus.WithField("username", username).Info("Pair invite issued")
	return c.JSON(http.StatusCreated, httpdto.PairInviteResponse{InviteCode: code})
}

func (ctl *PairController) AcceptInvite(c echo.Context) error {
	var req httpdto.PairAcceptRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.InviteCode == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invite_code is required"})
	}

	username := middleware.Username(c)
	view, err := ctl.pairService.AcceptInvite(c.Request().Context(), username, req.InviteCode)
	if err != nil {
		logrus.WithField("username", username).Warn("Pair accept failed")
		return writeError(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"username": username,
		"pair_id":  view.ID,
	}).Info("Pair connected")
	return c.JSON(http.StatusOK, toPairResponse(view))
}

func (ctl *PairController) Status(c echo.Context) error {
	view, err := ctl.pairService.GetStatus(c.Request().Context(), middleware.Username(c))
	if err != nil {
		return writeError(c, err)
	}
	if view == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, toPairResponse(view))
}

func (ctl *PairController) Unpair(c echo.Context) error {
	username := middleware.Username(c)
	if err := ctl.pairService.Unpair(c.Request().Context(), username); err != nil {
		return writeError(c, err)
	}

	logrus.WithField("username", username).Info("Pair disconnected")
	return c.NoContent(http.StatusNoContent)
}

func (ctl *PairController) PartnerDailyRecords(c echo.Context) error {
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

	views, err := ctl.pairService.GetPartnerDailyRecords(c.Request().Context(), middleware.Username(c), date, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toDailyRecordResponses(views))
}

func (ctl *PairController) ListEvents(c echo.Context) error {
	from, err := parseOptionalDate(c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid from"})
	}
	to, err := parseOptionalDate(c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid to"})
	}

	views, err := ctl.pairEventService.List(c.Request().Context(), middleware.Username(c), from, to)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]httpdto.PairEventResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, httpdto.PairEventResponse{
			ID:        view.ID,
			Title:     view.Title,
			Emoji:     view.Emoji,
			EventDate: formatDate(view.EventDate),
			Recurring: view.Recurring,
		})
	}
	return c.JSON(http.StatusOK, responses)
}

func (ctl *PairController) CreateEvent(c echo.Context) error {
	var req httpdto.PairEventRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "title is required"})
	}

	eventDate, err := parseDate(req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid event_date"})
	}

	id, err := ctl.pairEventService.Create(c.Request().Context(), middleware.Username(c), service.PairEventParams{
		Title:     req.Title,
		Emoji:     req.Emoji,
		EventDate: eventDate,
		Recurring: req.Recurring,
	})
	if err != nil {
		return writeError(c, err)
	}

	logrus.WithField("event_id", id).Info("Pair event created")
	return c.JSON(http.StatusCreated, httpdto.IDResponse{ID: id})
}

func (ctl *PairController) DeleteEvent(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	if err := ctl.pairEventService.Delete(c.Request().Context(), middleware.Username(c), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toPairResponse(view *dto.PairView) httpdto.PairResponse {
	resp := httpdto.PairResponse{
		ID:            view.ID,
		Status:        view.Status,
		PartnerName:   view.PartnerName,
		PartnerGender: view.PartnerGender,
	}
	if view.PartnerBirthDate != nil {
		birthDate := formatDate(*view.PartnerBirthDate)
		resp.PartnerBirthDate = &birthDate
	}
	if view.ConnectedAt != nil {
		connectedAt := view.ConnectedAt.UTC().Format(time.RFC3339)
		resp.ConnectedAt = &connectedAt
	}
	return resp
}
