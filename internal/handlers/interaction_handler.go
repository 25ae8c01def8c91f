package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

type InteractionHandler struct {
	Repo *repositories.InteractionRepository
}

func NewInteractionHandler(repo *repositories.InteractionRepository) *InteractionHandler {
	return &InteractionHandler{Repo: repo}
}

type interactionRequest struct {
	Tipo    string `json:"tipo" binding:"required"`
	Resumo  string `json:"resumo" binding:"required"`
	Usuario string `json:"usuario"`
}

// Create appends a manual interaction to an opportunity's log. Stage
// movements are recorded by the pipeline itself, not through here.
func (h *InteractionHandler) Create(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var req interactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	usuario := req.Usuario
	if usuario == "" {
		usuario = models.SystemUser
	}
	it := &models.Interaction{
		OportunidadeID: id,
		DataInteracao:  time.Now().Format("02/01/2006 15:04"),
		Tipo:           req.Tipo,
		Resumo:         req.Resumo,
		Usuario:        usuario,
	}
	newID, err := h.Repo.Create(it)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	it.ID = newID
	c.JSON(http.StatusCreated, it)
}

func (h *InteractionHandler) ListByOpportunity(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	items, err := h.Repo.ListByOpportunity(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}
