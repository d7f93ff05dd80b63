package controllers

import (
	"net/http"

	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsSvc *services.SettingsService
}

func NewSettingsController(svc *services.SettingsService) *SettingsController {
	return &SettingsController{SettingsSvc: svc}
}

// GET /api/settings/site
func (sc *SettingsController) GetSiteSettings(c *gin.Context) {
	site, err := sc.SettingsSvc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}

// PUT /api/admin/settings/site
func (sc *SettingsController) UpdateSiteSettings(c *gin.Context) {
	var payload services.SiteSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	site, err := sc.SettingsSvc.Update(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"site": site})
}
