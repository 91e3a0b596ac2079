package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibetune/backend/internal/clients/suggester"
	"github.com/vibetune/backend/internal/services"
)

type GenerationHandler struct {
	generationService services.GenerationService
}

func NewGenerationHandler(generationService services.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

func (gh *GenerationHandler) FromPrompt(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tracks, err := gh.generationService.FromPrompt(c.Request.Context(), req.Prompt)
	if err != nil {
		gh.respondGenerationError(c, err)
		return
	}
	RespondOK(c, gin.H{"tracks": tracks})
}

func (gh *GenerationHandler) FromQuiz(c *gin.Context) {
	var req services.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	tracks, err := gh.generationService.FromQuiz(c.Request.Context(), req)
	if err != nil {
		gh.respondGenerationError(c, err)
		return
	}
	RespondOK(c, gin.H{"tracks": tracks})
}

func (gh *GenerationHandler) respondGenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, suggester.ErrUnavailable):
		RespondError(c, http.StatusServiceUnavailable, "suggester_unavailable", err)
	case errors.Is(err, suggester.ErrMalformed):
		RespondError(c, http.StatusBadGateway, "suggester_malformed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "generation_failed", err)
	}
}
