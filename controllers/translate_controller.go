package controllers

import (
	"net/http"

	"cms-backend/services"
	"cms-backend/utils"

	"github.com/gin-gonic/gin"
)

// translatePayload carries either a single text or a map of form fields.
type translatePayload struct {
	Text   string            `json:"text"`
	Fields map[string]string `json:"fields"`
	Source string            `json:"source"`
	Target string            `json:"target"`
}

type TranslateController struct {
	Translator *services.Translator
}

func NewTranslateController(t *services.Translator) *TranslateController {
	return &TranslateController{Translator: t}
}

// POST /api/admin/translate
func (tc *TranslateController) Translate(c *gin.Context) {
	var p translatePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		utils.JSONErrorDetails(c, http.StatusBadRequest, "invalid payload", err)
		return
	}
	if p.Source == "" {
		p.Source = "id"
	}
	if p.Target == "" {
		p.Target = "en"
	}

	if len(p.Fields) > 0 {
		out, err := tc.Translator.TranslateFields(c.Request.Context(), p.Fields, p.Source, p.Target)
		if err != nil && len(out) == 0 {
			respondError(c, err)
			return
		}
		body := gin.H{"fields": out}
		if err != nil {
			body["details"] = err.Error()
		}
		c.JSON(http.StatusOK, body)
		return
	}

	out, err := tc.Translator.Translate(c.Request.Context(), p.Text, p.Source, p.Target)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": out})
}
