package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/haneul-labs/daily-record/app/apperror"
	httpdto "github.com/haneul-labs/daily-record/app/dto/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// writeError maps a service error to its HTTP status. Errors without a code
// are unexpected and come back as 500 after being logged.
func writeError(c echo.Context, err error) error {
	code := apperror.CodeOf(err)
	status := http.StatusInternalServerError

	switch code {
	case apperror.CodeDuplicateResource, apperror.CodeAlreadyPaired:
		status = http.StatusConflict
	case apperror.CodeResourceNotFound:
		status = http.StatusNotFound
	case apperror.CodeInvalidRequest, apperror.CodePairNotConnected:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("Request failed")
		return c.JSON(status, httpdto.ErrorResponse{Error: "internal server error"})
	}

	detail := ""
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		detail = appErr.Detail
	}
	return c.JSON(status, httpdto.ErrorResponse{Error: string(code), Detail: detail})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func formatDate(value time.Time) string {
	return value.Format(dateLayout)
}
