package handlers

import (
	"net/http"

	"ocr-translate-api/internal/models"
	"ocr-translate-api/pkg/errors"

	"github.com/gin-gonic/gin"
)

type TranslateHandler struct {
	translator TextTranslator
}

func NewTranslateHandler(translator TextTranslator) *TranslateHandler {
	return &TranslateHandler{translator: translator}
}

// TranslateText handles POST /translate-text/
func (h *TranslateHandler) TranslateText(c *gin.Context) {
	var req models.TranslateTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			c.Error(errors.ErrPayloadTooLarge)
			return
		}
		c.Error(errors.WrapError(err, errors.ErrValidation.Code, err.Error(), errors.ErrValidation.Status))
		return
	}

	translated, err := h.translator.TranslateText(c.Request.Context(), *req.Text, *req.SourceNLLBCode)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.TranslateTextResponse{TranslatedText: translated})
}
