package middleware

import (
	"errors"
	"net/http"

	"klontong/pkg/logger"
	"klontong/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler funnels every error that escapes a handler into the standard
// error envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal Server Error"
	var details interface{}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			details = httpErr.Message
		}
	} else {
		logger.Error("unhandled error",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			err,
		)
	}

	if jsonErr := c.JSON(code, response.Error(code, message, details)); jsonErr != nil {
		logger.Error("failed to write error response", jsonErr)
	}
}
