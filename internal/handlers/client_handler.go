package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/models"
	"dolpcrm/internal/services"
)

type ClientHandler struct {
	Service *services.ClientService
	News    *services.NewsService
}

func NewClientHandler(service *services.ClientService, news *services.NewsService) *ClientHandler {
	return &ClientHandler{Service: service, News: news}
}

type clientRequest struct {
	NomeEmpresa     string `json:"nome_empresa" binding:"required"`
	CNPJ            string `json:"cnpj"`
	Cidade          string `json:"cidade"`
	Estado          string `json:"estado"`
	SetorAtuacao    string `json:"setor_atuacao"`
	SegmentoAtuacao string `json:"segmento_atuacao"`
	LinkPortal      string `json:"link_portal"`
	Status          string `json:"status"`
}

func (r *clientRequest) apply(c *models.Client) {
	c.NomeEmpresa = r.NomeEmpresa
	c.CNPJ = r.CNPJ
	c.Cidade = r.Cidade
	c.Estado = r.Estado
	c.SetorAtuacao = r.SetorAtuacao
	c.SegmentoAtuacao = r.SegmentoAtuacao
	c.LinkPortal = r.LinkPortal
	c.Status = r.Status
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	client := &models.Client{DataAtualizacao: time.Now()}
	req.apply(client)
	if err := h.Service.Create(client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	existing, err := h.Service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cliente não encontrado"})
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.apply(existing)
	existing.DataAtualizacao = time.Now()

	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *ClientHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	client, err := h.Service.GetByID(id)
	if err != nil || client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cliente não encontrado"})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.Service.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cliente removido"})
}

// ListNews lists the stored headlines for a client.
func (h *ClientHandler) ListNews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if h.News == nil {
		c.JSON(http.StatusOK, []models.NewsItem{})
		return
	}
	items, err := h.News.ListByClient(id, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, items)
}

// FetchNews triggers an on-demand headline fetch for one client.
func (h *ClientHandler) FetchNews(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if h.News == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "busca de notícias desativada"})
		return
	}
	client, err := h.Service.GetByID(id)
	if err != nil || client == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cliente não encontrado"})
		return
	}
	stored, err := h.News.FetchForClient(c.Request.Context(), client)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"novas_noticias": stored})
}
