package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"cms-backend/metrics"
	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FormController serves the public contact and career forms.
type FormController struct {
	SubmissionSvc *services.SubmissionService
	Metrics       *metrics.Metrics
	Log           *zap.Logger
}

func NewFormController(svc *services.SubmissionService, m *metrics.Metrics, log *zap.Logger) *FormController {
	if log == nil {
		log = zap.NewNop()
	}
	return &FormController{SubmissionSvc: svc, Metrics: m, Log: log}
}

// GET /api/captcha
func (fc *FormController) Captcha(c *gin.Context) {
	ch, err := fc.SubmissionSvc.Captcha()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

// GET /api/careers
func (fc *FormController) Careers(c *gin.Context) {
	careers, err := fc.SubmissionSvc.OpenCareers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": careers})
}

// POST /api/contact
func (fc *FormController) Contact(c *gin.Context) {
	var form services.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fc.Metrics.FormSubmission("contact", "invalid")
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	res, err := fc.SubmissionSvc.SubmitContact(c.Request.Context(), form, c.ClientIP())
	fc.respond(c, "contact", res, err)
}

// POST /api/careers/:id/apply
func (fc *FormController) Apply(c *gin.Context) {
	var form services.ApplicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		fc.Metrics.FormSubmission("career", "invalid")
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	res, err := fc.SubmissionSvc.Apply(c.Request.Context(), c.Param("id"), form, c.ClientIP())
	fc.respond(c, "career", res, err)
}

func (fc *FormController) respond(c *gin.Context, form string, res services.SubmitResult, err error) {
	var (
		captchaErr  *services.CaptchaError
		cooldownErr *services.CooldownError
		blockedErr  *services.BlockedError
	)

	switch {
	case err == nil && res.Dropped:
		fc.Metrics.FormSubmission(form, "honeypot")
		c.JSON(http.StatusOK, gin.H{"success": true})
	case err == nil:
		fc.Metrics.FormSubmission(form, "accepted")
		c.JSON(http.StatusCreated, gin.H{"success": true, "id": res.ID})
	case errors.As(err, &captchaErr):
		fc.Metrics.FormSubmission(form, "captcha")
		c.JSON(http.StatusBadRequest, gin.H{"error": captchaErr.Error(), "captcha": captchaErr.Next})
	case errors.As(err, &cooldownErr):
		fc.Metrics.FormSubmission(form, "cooldown")
		secs := int(math.Ceil(cooldownErr.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "please wait before submitting again", "retry_after": secs})
	case errors.As(err, &blockedErr):
		fc.Metrics.FormSubmission(form, "blocked")
		fc.Log.Info("form submission blocked", zap.String("form", form), zap.String("field", blockedErr.Field), zap.String("client", c.ClientIP()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": blockedErr.Error(), "field": blockedErr.Field})
	case errors.Is(err, services.ErrInvalidEmail):
		fc.Metrics.FormSubmission(form, "invalid")
		respondError(c, err)
	default:
		fc.Metrics.FormSubmission(form, "error")
		respondError(c, err)
	}
}
