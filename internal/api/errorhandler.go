package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/christian-harsana/music-sheet-catalog-back-end/internal/conf"
	apperrors "github.com/christian-harsana/music-sheet-catalog-back-end/internal/errors"
)

// genericServerError is the only 500 message production clients ever see.
const genericServerError = "An unexpected error occurred. Please try again later."

// NewHTTPErrorHandler returns echo's central error handler. Every error a
// handler or middleware returns is classified here into an envelope with the
// right status; handlers never write error responses themselves.
func NewHTTPErrorHandler(settings *conf.Settings, logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		status, body := classify(err, settings)

		logger.Error("Request failed",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"status", status,
			"error", err.Error(),
		)

		if ctx.Request().Method == http.MethodHead {
			if err := ctx.NoContent(status); err != nil {
				logger.Error("Failed to write error response", "error", err)
			}
			return
		}
		if err := ctx.JSON(status, body); err != nil {
			logger.Error("Failed to write error response", "error", err)
		}
	}
}

// classify maps an error to a status code and response envelope.
func classify(err error, settings *conf.Settings) (int, Response) {
	// Token verification failures reach the handler unwrapped.
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusUnauthorized, Response{Success: false, Message: "Token expired."}
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenInvalidClaims),
		errors.Is(err, jwt.ErrTokenNotValidYet):
		return http.StatusUnauthorized, Response{Success: false, Message: "Invalid token."}
	}

	if appErr, ok := apperrors.As(err); ok {
		message := appErr.Message
		if appErr.Kind == apperrors.KindInternal {
			message = internalMessage(appErr, settings)
		}
		return appErr.HTTPStatus, Response{
			Success: false,
			Message: message,
			Errors:  appErr.Fields,
		}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, Response{Success: false, Message: message}
	}

	message := genericServerError
	if !settings.IsProduction() {
		message = err.Error()
	}
	return http.StatusInternalServerError, Response{Success: false, Message: message}
}

// internalMessage decides what a 500 discloses. Production hides the cause;
// development surfaces it to speed up debugging.
func internalMessage(appErr *apperrors.AppError, settings *conf.Settings) string {
	if settings.IsProduction() {
		return genericServerError
	}
	if appErr.Err != nil {
		return appErr.Err.Error()
	}
	return appErr.Message
}
