// Package controller holds the helpers shared by the HTTP handlers in its
// sub-packages.
package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lshigami/dailydose/internal/apperror"
	"github.com/lshigami/dailydose/internal/dto"
	"github.com/lshigami/dailydose/internal/middleware"
	"github.com/lshigami/dailydose/internal/service"
	"github.com/rs/zerolog/log"
)

// BindJSON binds the request body into req and writes a 400 on failure.
func BindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	log.Warn().Err(err).Str("path", c.FullPath()).Msg("Failed to bind request body")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Fields: fields})
		return false
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
	return false
}

// ParseID reads a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: fmt.Sprintf("Invalid %s format", name)})
		return 0, false
	}
	return uint(id), true
}

// Caller returns the authenticated caller, writing a 401 if there is none.
func Caller(c *gin.Context) (service.Caller, bool) {
	caller, ok := middleware.CallerFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Authentication required"})
	}
	return caller, ok
}

// RespondError writes a service error as an ErrorResponse. Unclassified
// errors become a 500 without leaking their text.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Upstream("unexpected error", err)
	}

	status := appErr.Kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		if appErr.Kind == apperror.KindUpstream {
			c.JSON(status, dto.ErrorResponse{Message: "Internal server error"})
			return
		}
	}
	c.JSON(status, dto.ErrorResponse{Message: appErr.Message, Fields: appErr.Fields})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	default:
		return "is invalid"
	}
}
