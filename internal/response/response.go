// Package response writes JSON replies for the gin handlers.
package response

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// Error writes err with the status code of its kind. Internal causes are
// logged, never sent to the client.
func Error(c *gin.Context, log logger.ZapLogger, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal("internal error", err)
	}
	if appErr.Kind == apperror.KindInternal {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), errorBody{Error: appErr.Message, Kind: appErr.Kind.String()})
}

func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{Error: msg, Kind: apperror.KindInvalidArgument.String()})
}

// ParamID parses a positive integer path parameter.
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.InvalidArgument("invalid " + name)
	}
	return id, nil
}
