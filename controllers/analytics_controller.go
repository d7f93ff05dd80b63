package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

type visitPayload struct {
	Page     string `json:"page" binding:"required,max=512"`
	Referrer string `json:"referrer" binding:"max=512"`
	Country  string `json:"country" binding:"max=80"`
	City     string `json:"city" binding:"max=120"`
}

type AnalyticsController struct {
	AnalyticsSvc *services.AnalyticsService
}

func NewAnalyticsController(svc *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsSvc: svc}
}

// POST /api/visits
func (ac *AnalyticsController) RecordVisit(c *gin.Context) {
	var p visitPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	country := p.Country
	if country == "" {
		country = strings.TrimSpace(c.GetHeader("CF-IPCountry"))
	}
	city := p.City
	if city == "" {
		city = strings.TrimSpace(c.GetHeader("CF-IPCity"))
	}

	entry, err := ac.AnalyticsSvc.RecordVisit(c.Request.Context(), services.Visit{
		Page:      p.Page,
		Referrer:  p.Referrer,
		Country:   country,
		City:      city,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": entry.ID})
}

// GET /api/admin/analytics
func (ac *AnalyticsController) Dashboard(c *gin.Context) {
	q := services.LogQuery{
		Country:    c.Query("country"),
		DeviceType: c.Query("device_type"),
		Search:     c.Query("search"),
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	dash, err := ac.AnalyticsSvc.Dashboard(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// DELETE /api/admin/analytics
func (ac *AnalyticsController) Clear(c *gin.Context) {
	removed, err := ac.AnalyticsSvc.ClearHistory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
