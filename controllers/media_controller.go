package controllers

import (
	"errors"
	"net/http"

	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

type uploadPayload struct {
	Folder string `json:"folder" binding:"required"`
	Data   string `json:"data" binding:"required"`
}

// MediaController accepts base64 images from the admin console.
type MediaController struct {
	Store *services.MediaStore
	// URLPrefix is where the router serves the upload root.
	URLPrefix string
}

func NewMediaController(store *services.MediaStore, urlPrefix string) *MediaController {
	return &MediaController{Store: store, URLPrefix: urlPrefix}
}

// POST /api/admin/uploads
func (mc *MediaController) Upload(c *gin.Context) {
	var p uploadPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}

	rel, err := mc.Store.SaveBase64(p.Folder, p.Data)
	if errors.Is(err, services.ErrUnsupportedMedia) {
		utils.JSONErrorDetails(c, http.StatusUnsupportedMediaType, "only jpeg, png, webp and gif images are accepted", err)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"path": rel, "url": mc.URLPrefix + "/" + rel})
}
