package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
	"dolpcrm/internal/pricing"
	"dolpcrm/internal/services"
)

type OpportunityHandler struct {
	Service *services.OpportunityService
}

func NewOpportunityHandler(service *services.OpportunityService) *OpportunityHandler {
	return &OpportunityHandler{Service: service}
}

type opportunityRequest struct {
	Numero    string          `json:"numero_oportunidade"`
	Titulo    string          `json:"titulo" binding:"required"`
	Valor     decimal.Decimal `json:"valor"`
	ClienteID int             `json:"cliente_id" binding:"required"`
	EstagioID int             `json:"estagio_id"`

	TempoContratoMeses int                       `json:"tempo_contrato_meses"`
	Regional           string                    `json:"regional"`
	Polo               string                    `json:"polo"`
	QuantidadeBases    int                       `json:"quantidade_bases"`
	BasesNomes         []string                  `json:"bases_nomes"`
	Servicos           []models.ServiceSelection `json:"servicos"`
	EmpresaReferencia  string                    `json:"empresa_referencia"`

	NumeroEdital       string          `json:"numero_edital"`
	DataAbertura       string          `json:"data_abertura"`
	Modalidade         string          `json:"modalidade"`
	ContatoPrincipal   string          `json:"contato_principal"`
	LinkDocumentos     string          `json:"link_documentos"`
	DuracaoContrato    int             `json:"duracao_contrato"`
	MOD                decimal.Decimal `json:"mod"`
	MOI                decimal.Decimal `json:"moi"`
	TotalPessoas       int             `json:"total_pessoas"`
	MargemContribuicao decimal.Decimal `json:"margem_contribuicao"`
	DescricaoDetalhada string          `json:"descricao_detalhada"`
}

func (r *opportunityRequest) apply(o *models.Opportunity) error {
	o.Numero = r.Numero
	o.Titulo = r.Titulo
	o.Valor = r.Valor
	o.ClienteID = r.ClienteID
	o.EstagioID = r.EstagioID
	o.TempoContratoMeses = r.TempoContratoMeses
	o.Regional = r.Regional
	o.Polo = r.Polo
	o.QuantidadeBases = r.QuantidadeBases
	o.EmpresaReferencia = r.EmpresaReferencia
	o.NumeroEdital = r.NumeroEdital
	o.DataAbertura = r.DataAbertura
	o.Modalidade = r.Modalidade
	o.ContatoPrincipal = r.ContatoPrincipal
	o.LinkDocumentos = r.LinkDocumentos
	o.DuracaoContrato = r.DuracaoContrato
	o.MOD = r.MOD
	o.MOI = r.MOI
	o.TotalPessoas = r.TotalPessoas
	o.MargemContribuicao = r.MargemContribuicao
	o.DescricaoDetalhada = r.DescricaoDetalhada

	if r.BasesNomes != nil {
		if err := o.SetBaseNames(r.BasesNomes); err != nil {
			return err
		}
	}
	if r.Servicos != nil {
		// entries arriving in the payload are the selected ones
		for i := range r.Servicos {
			r.Servicos[i].Selected = true
		}
		if err := o.SetServiceSelections(r.Servicos); err != nil {
			return err
		}
	}
	return nil
}

// @Summary      Criar oportunidade
// @Tags         Oportunidades
// @Accept       json
// @Produce      json
// @Param        oportunidade  body      opportunityRequest  true  "Dados da oportunidade"
// @Success      201  {object}  models.Opportunity
// @Failure      400  {object}  map[string]string
// @Router       /opportunities [post]
func (h *OpportunityHandler) Create(c *gin.Context) {
	var req opportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	op := &models.Opportunity{}
	if err := req.apply(op); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Create(op); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, op)
}

func (h *OpportunityHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	existing, err := h.Service.GetByID(id)
	if err != nil || existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oportunidade não encontrada"})
		return
	}

	var req opportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.apply(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Service.Update(existing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, existing)
}

func (h *OpportunityHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	op, err := h.Service.GetByID(id)
	if err != nil || op == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oportunidade não encontrada"})
		return
	}
	c.JSON(http.StatusOK, op)
}

func (h *OpportunityHandler) List(c *gin.Context) {
	cards, err := h.Service.ListCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *OpportunityHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	if err := h.Service.Delete(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "oportunidade removida"})
}

// @Summary      Recalcular precificação
// @Description  Recalcula o faturamento estimado da oportunidade a partir da empresa referência e grava o resultado
// @Tags         Oportunidades
// @Produce      json
// @Param        id   path      int  true  "ID da oportunidade"
// @Success      200  {object}  pricing.Result
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /opportunities/{id}/pricing [post]
func (h *OpportunityHandler) RecalculatePricing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	res, err := h.Service.RecalculatePricing(id)
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PreviewPricing runs the same aggregation without persisting the total.
func (h *OpportunityHandler) PreviewPricing(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	res, err := h.Service.PreviewPricing(id)
	if err != nil {
		writePricingError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// writePricingError maps the pricing error taxonomy onto HTTP statuses:
// a missing opportunity is 404, input problems the user can fix (missing
// reference company, junk quantity or volumetry) are 422, everything else
// is a server error.
func writePricingError(c *gin.Context, err error) {
	var qtyErr *pricing.InvalidQuantityError
	var volErr *pricing.InvalidVolumetryError
	switch {
	case errors.Is(err, services.ErrOpportunityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, pricing.ErrMissingReferenceCompany),
		errors.As(err, &qtyErr),
		errors.As(err, &volErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
