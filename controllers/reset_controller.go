package controllers

import (
	"errors"
	"net/http"

	"cms-backend/metrics"
	"cms-backend/services"
	"cms-backend/telemetry"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type resetPayload struct {
	Email string `json:"email"`
}

type ResetController struct {
	ResetSvc *services.ResetService
	Metrics  *metrics.Metrics
	Log      *zap.Logger
}

func NewResetController(svc *services.ResetService, m *metrics.Metrics, log *zap.Logger) *ResetController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResetController{ResetSvc: svc, Metrics: m, Log: log}
}

// POST /api/request-reset
func (rc *ResetController) RequestReset(c *gin.Context) {
	var payload resetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		rc.Metrics.PasswordReset("invalid")
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	result, err := rc.ResetSvc.RequestReset(c.Request.Context(), payload.Email)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrInvalidEmail):
		rc.Metrics.PasswordReset("invalid")
		utils.JSONError(c, http.StatusBadRequest, "a valid email is required")
		return
	case errors.Is(err, services.ErrMisconfigured):
		rc.Metrics.PasswordReset("misconfigured")
		rc.Log.Error("password reset is not configured")
		telemetry.CaptureError(err, component(c))
		utils.JSONError(c, http.StatusInternalServerError, "password reset is not configured")
		return
	default:
		rc.Metrics.PasswordReset("error")
		rc.Log.Error("password reset failed", zap.Error(err))
		telemetry.CaptureError(err, component(c))
		utils.JSONErrorDetails(c, http.StatusInternalServerError, "failed to send reset email", err)
		return
	}

	outcome := "sent"
	if result.Registered {
		outcome = "registered"
	}
	rc.Metrics.PasswordReset(outcome)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
