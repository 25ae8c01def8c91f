package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/services"
)

type PipelineHandler struct {
	Pipeline *services.PipelineService
	Reports  *services.ReportService
}

func NewPipelineHandler(pipeline *services.PipelineService, reports *services.ReportService) *PipelineHandler {
	return &PipelineHandler{Pipeline: pipeline, Reports: reports}
}

type moveRequest struct {
	EstagioAtualID int `json:"estagio_atual_id" binding:"required"`
}

// @Summary      Quadro do funil
// @Description  Todos os estágios em ordem com as oportunidades de cada um
// @Tags         Pipeline
// @Produce      json
// @Success      200  {array}  services.StageSummary
// @Router       /pipeline [get]
func (h *PipelineHandler) Board(c *gin.Context) {
	summary, err := h.Reports.PipelineSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      Aprovar oportunidade
// @Description  Move a oportunidade para o próximo estágio do funil
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "ID da oportunidade"
// @Param        body  body      moveRequest  true  "Estágio atual"
// @Success      200   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]string
// @Router       /opportunities/{id}/approve [post]
func (h *PipelineHandler) Approve(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	next, err := h.Pipeline.Approve(id, req.EstagioAtualID)
	if err != nil {
		if errors.Is(err, services.ErrNoNextStage) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "oportunidade aprovada",
		"novo_estagio": next,
	})
}

// @Summary      Reprovar oportunidade
// @Description  Move a oportunidade para o estágio Histórico
// @Tags         Pipeline
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "ID da oportunidade"
// @Param        body  body      moveRequest  true  "Estágio atual"
// @Success      200   {object}  map[string]string
// @Router       /opportunities/{id}/reject [post]
func (h *PipelineHandler) Reject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Pipeline.Reject(id, req.EstagioAtualID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "oportunidade reprovada"})
}
