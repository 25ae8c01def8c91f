package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/models"
	"dolpcrm/internal/services"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

type taskRequest struct {
	Descricao      string `json:"descricao" binding:"required"`
	DataVencimento string `json:"data_vencimento"` // "2006-01-02", optional
	Responsavel    string `json:"responsavel"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	opID, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.Task{
		OportunidadeID: opID,
		Descricao:      req.Descricao,
		DataCriacao:    time.Now(),
		Responsavel:    req.Responsavel,
		Status:         models.TaskPendente,
	}
	if req.DataVencimento != "" {
		due, err := time.Parse("2006-01-02", req.DataVencimento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "data_vencimento inválida, use AAAA-MM-DD"})
			return
		}
		t.DataVencimento = &due
	}
	if err := h.Service.Create(t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *TaskHandler) ListByOpportunity(c *gin.Context) {
	opID, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	tasks, err := h.Service.ListByOpportunity(opID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Complete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if err := h.Service.Complete(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "tarefa concluída"})
}
