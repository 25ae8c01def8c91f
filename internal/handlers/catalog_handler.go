package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

// CatalogHandler serves the reference data the forms are built from:
// services, team types, sectors and segments.
type CatalogHandler struct {
	Repo *repositories.CatalogRepository
}

func NewCatalogHandler(repo *repositories.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

func (h *CatalogHandler) ListServicos(c *gin.Context) {
	servicos, err := h.Repo.ListServicos()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, servicos)
}

func (h *CatalogHandler) CreateServico(c *gin.Context) {
	var s models.Servico
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Nome == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome é obrigatório"})
		return
	}
	s.Ativa = true
	id, err := h.Repo.CreateServico(&s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ID = id
	c.JSON(http.StatusCreated, s)
}

func (h *CatalogHandler) UpdateServico(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	var s models.Servico
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.ID = id
	if err := h.Repo.UpdateServico(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

// ListTiposEquipe lists team types, optionally narrowed to one service via
// ?servico_id=N.
func (h *CatalogHandler) ListTiposEquipe(c *gin.Context) {
	servicoID := 0
	if raw := c.Query("servico_id"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "servico_id inválido"})
			return
		}
		servicoID = n
	}
	tipos, err := h.Repo.ListTiposEquipe(servicoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tipos)
}

func (h *CatalogHandler) CreateTipoEquipe(c *gin.Context) {
	var t models.TipoEquipe
	if err := c.ShouldBindJSON(&t); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if t.Nome == "" || t.ServicoID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome e servico_id são obrigatórios"})
		return
	}
	t.Ativa = true
	id, err := h.Repo.CreateTipoEquipe(&t)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

func (h *CatalogHandler) ListSetores(c *gin.Context) {
	h.listNames(c, h.Repo.ListSetores)
}

func (h *CatalogHandler) ListSegmentos(c *gin.Context) {
	h.listNames(c, h.Repo.ListSegmentos)
}

func (h *CatalogHandler) AddSetor(c *gin.Context) {
	h.addName(c, h.Repo.AddSetor)
}

func (h *CatalogHandler) AddSegmento(c *gin.Context) {
	h.addName(c, h.Repo.AddSegmento)
}

func (h *CatalogHandler) listNames(c *gin.Context, list func() ([]string, error)) {
	names, err := list()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *CatalogHandler) addName(c *gin.Context, add func(string) error) {
	var req struct {
		Nome string `json:"nome" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := add(req.Nome); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"nome": req.Nome})
}
