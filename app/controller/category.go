package controller

import (
	"net/http"
	"strconv"

	"github.com/haneul-labs/daily-record/app/dto"
	httpdto "github.com/haneul-labs/daily-record/app/dto/http"
	"github.com/haneul-labs/daily-record/app/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

func (ctl *CategoryController) List(c echo.Context) error {
	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid active filter"})
		}
		active = &value
	}

	views, err := ctl.categoryService.List(c.Request().Context(), active)
	if err != nil {
		return writeError(c, err)
	}

	responses := make([]httpdto.CategoryResponse, 0, len(views))
	for _, view := range views {
		responses = append(responses, toCategoryResponse(view))
	}
	return c.JSON(http.StatusOK, responses)
}

func (ctl *CategoryController) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	view, err := ctl.categoryService.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(view))
}

func (ctl *CategoryController) Create(c echo.Context) error {
	var req httpdto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	view, err := ctl.categoryService.Create(c.Request().Context(), service.CategoryParams{
		Emoji:    req.Emoji,
		Name:     req.Name,
		IsActive: req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	logrus.WithFields(logrus.Fields{
		"category_id": view.ID,
		"name":        view.Name,
	}).Info("Category created")
	return c.JSON(http.StatusCreated, toCategoryResponse(view))
}

func (ctl *CategoryController) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	var req httpdto.CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}

	if err := ctl.categoryService.Update(c.Request().Context(), id, service.CategoryParams{
		Emoji:    req.Emoji,
		Name:     req.Name,
		IsActive: req.IsActive,
	}); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (ctl *CategoryController) Delete(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid id"})
	}

	if err := ctl.categoryService.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	logrus.WithField("category_id", id).Info("Category deleted")
	return c.NoContent(http.StatusNoContent)
}

func (ctl *CategoryController) Move(c echo.Context) error {
	var req httpdto.CategoryMoveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "invalid request body"})
	}
	if req.TargetID == 0 {
		return c.JSON(http.StatusBadRequest, httpdto.ErrorResponse{Error: "target_id is required"})
	}

	if err := ctl.categoryService.Move(c.Request().Context(), req.TargetID, req.BeforeID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(view *dto.CategoryView) httpdto.CategoryResponse {
	return httpdto.CategoryResponse{
		ID:        view.ID,
		Emoji:     view.Emoji,
		Name:      view.Name,
		IsActive:  view.IsActive,
		SortOrder: view.SortOrder,
	}
}
