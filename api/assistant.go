package api

import (
	"net/http"
	"strings"

	"backend_maquinaria/services"

	"github.com/gin-gonic/gin"
)

// AssistantAPI expone el asistente de consultas del panel
type AssistantAPI struct {
	Assistant *services.AssistantService
	Repo      *services.Repository
}

// NewAssistantAPI crea un nuevo AssistantAPI
func NewAssistantAPI(assistant *services.AssistantService, repo *services.Repository) *AssistantAPI {
	return &AssistantAPI{Assistant: assistant, Repo: repo}
}

// AskRequest es la pregunta del usuario
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// Ask responde la pregunta con la primera regla que coincide
func (api *AssistantAPI) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Falta la pregunta")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(c, http.StatusBadRequest, "Falta la pregunta")
		return
	}

	respondData(c, http.StatusOK, api.Repo.DemoMode(), gin.H{
		"question": question,
		"answer":   api.Assistant.Answer(question),
	})
}
