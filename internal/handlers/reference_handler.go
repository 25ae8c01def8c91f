package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

type ReferenceHandler struct {
	Repo *repositories.ReferencePriceRepository
}

func NewReferenceHandler(repo *repositories.ReferencePriceRepository) *ReferenceHandler {
	return &ReferenceHandler{Repo: repo}
}

type referencePriceRequest struct {
	NomeEmpresa      string          `json:"nome_empresa" binding:"required"`
	TipoServico      string          `json:"tipo_servico" binding:"required"`
	ValorMensal      decimal.Decimal `json:"valor_mensal" binding:"required"`
	VolumetriaMinima decimal.Decimal `json:"volumetria_minima"`
	ValorPorPessoa   decimal.Decimal `json:"valor_por_pessoa"`
	ValorPorPonto    decimal.Decimal `json:"valor_por_ponto"`
}

// Create stores a new reference price; a prior active entry for the same
// company and service type gets deactivated in the same transaction.
func (h *ReferenceHandler) Create(c *gin.Context) {
	var req referencePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.ReferencePrice{
		NomeEmpresa:      req.NomeEmpresa,
		TipoServico:      req.TipoServico,
		ValorMensal:      req.ValorMensal,
		VolumetriaMinima: req.VolumetriaMinima,
		ValorPorPessoa:   req.ValorPorPessoa,
		ValorPorPonto:    req.ValorPorPonto,
		Ativa:            true,
	}
	id, err := h.Repo.Create(p)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = id
	c.JSON(http.StatusCreated, p)
}

func (h *ReferenceHandler) List(c *gin.Context) {
	prices, err := h.Repo.ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prices)
}

// Companies lists the distinct reference companies that have active prices.
func (h *ReferenceHandler) Companies(c *gin.Context) {
	names, err := h.Repo.ListCompanies()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (h *ReferenceHandler) GetActive(c *gin.Context) {
	empresa := c.Query("empresa")
	servico := c.Query("servico")
	if empresa == "" || servico == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empresa e servico são obrigatórios"})
		return
	}
	p, err := h.Repo.GetActive(empresa, servico)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "referência não encontrada"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ReferenceHandler) Deactivate(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if err := h.Repo.Deactivate(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "referência desativada"})
}
