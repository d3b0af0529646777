package middleware

import (
	"errors"
	"net/http"

	"go-contacts-backend/internal/delivery/http/response"
	"go-contacts-backend/pkg/apperror"
	"go-contacts-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			// Never expose internal error details to clients.
			logger.Log.Error("Unhandled error",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
				"error", err,
			)
			response.Error(c, http.StatusInternalServerError, "Ocorreu um erro inesperado. Tente novamente mais tarde.")
			return
		}

		switch {
		case appErr.Code == http.StatusUnprocessableEntity:
			response.Validation(c, appErr.Code, appErr.Message, appErr.Fields)
		case appErr.Code >= http.StatusInternalServerError:
			logger.Log.Error("Request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"request_id", c.GetString("RequestID"),
				"error", appErr.Err,
			)
			response.Error(c, appErr.Code, appErr.Message)
		default:
			response.Error(c, appErr.Code, appErr.Message)
		}
	}
}
