package controllers

import (
	"errors"
	"net/http"

	"cms-backend/services"
	"cms-backend/telemetry"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

// statusFor maps service sentinels to HTTP statuses and client messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, services.ErrUnknownResource):
		return http.StatusNotFound, "unknown resource"
	case errors.Is(err, services.ErrInvalidPayload):
		return http.StatusBadRequest, "invalid payload"
	case errors.Is(err, services.ErrInvalidEmail):
		return http.StatusBadRequest, "invalid email"
	case errors.Is(err, services.ErrDuplicate):
		return http.StatusConflict, "duplicate entry"
	case errors.Is(err, services.ErrCareerClosed):
		return http.StatusGone, "career is closed"
	case errors.Is(err, services.ErrTranslate):
		return http.StatusBadGateway, "translation failed"
	case errors.Is(err, services.ErrMisconfigured):
		return http.StatusInternalServerError, "server misconfigured"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// respondError writes the mapped status. Details are only exposed for client
// errors; server errors are reported instead.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		telemetry.CaptureError(err, component(c))
		utils.JSONError(c, code, msg)
		return
	}
	utils.JSONErrorDetails(c, code, msg, err)
}

// component names the failing route for error reports.
func component(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return c.Request.Method + " " + p
	}
	return c.Request.Method + " " + c.Request.URL.Path
}
