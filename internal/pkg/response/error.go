package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nekogravitycat/banquet-calendar/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusCoder is implemented by errors that know their HTTP status.
type statusCoder interface {
	HTTPStatus() int
}

// Error sends a JSON error response.
// AppErrors carry their own status and message. Errors implementing
// HTTPStatus() keep their status with a generic message. Anything else is
// logged and reported as 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			zap.L().Debug("request failed", zap.String("path", c.FullPath()), zap.Error(appErr.Err))
		}
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	var sc statusCoder
	if errors.As(err, &sc) {
		zap.L().Warn("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(sc.HTTPStatus(), ErrorResponse{Error: http.StatusText(sc.HTTPStatus())})
		return
	}

	zap.L().Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
