package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/hostkit/errors"
)

// Envelope wraps every successful JSON body.
type Envelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta describes a list response.
type Meta struct {
	Total int `json:"total"`
}

// RespondOK sends data with 200.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Data: data})
}

// RespondCreated sends data with 201.
func RespondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Data: data})
}

// RespondList sends items with 200 and their total count.
func RespondList(c *gin.Context, items any, total int) {
	c.JSON(http.StatusOK, Envelope{Data: items, Meta: &Meta{Total: total}})
}

// RespondWithError aborts the request with the status and body of err. Errors
// that are not an *apperrors.AppError become a 500 without leaking the cause.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
