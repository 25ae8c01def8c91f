package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"dolpcrm/internal/pdf"
	"dolpcrm/internal/pricing"
	"dolpcrm/internal/services"
)

// DocumentHandler exports the executive-summary PDF of an opportunity.
type DocumentHandler struct {
	Opps      *services.OpportunityService
	Clients   *services.ClientService
	Generator pdf.Generator
}

func NewDocumentHandler(opps *services.OpportunityService, clients *services.ClientService, gen pdf.Generator) *DocumentHandler {
	return &DocumentHandler{Opps: opps, Clients: clients, Generator: gen}
}

// ExecutiveSummary prices the opportunity (without persisting) and renders
// the summary PDF into the files root.
func (h *DocumentHandler) ExecutiveSummary(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}
	op, err := h.Opps.GetByID(id)
	if err != nil || op == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "oportunidade não encontrada"})
		return
	}

	clienteNome := ""
	if client, err := h.Clients.GetByID(op.ClienteID); err == nil && client != nil {
		clienteNome = client.NomeEmpresa
	}

	// a pricing failure still produces a document, just without the table
	var itens []pricing.LineItem
	total := pricing.ValueUnavailable
	if res, err := h.Opps.PreviewPricing(id); err == nil {
		itens = res.Itens
		total = pricing.FormatCurrency(res.FaturamentoTotal)
	} else {
		logrus.WithError(err).WithField("oportunidade_id", id).
			Warn("sumário executivo gerado sem precificação")
	}

	bases, err := op.BaseNames()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	path, err := h.Generator.GenerateExecutiveSummary(pdf.SummaryData{
		NumeroOportunidade: op.Numero,
		Titulo:             op.Titulo,
		Cliente:            clienteNome,
		EmpresaReferencia:  op.EmpresaReferencia,
		Regional:           op.Regional,
		Polo:               op.Polo,
		TempoContratoMeses: op.TempoContratoMeses,
		QuantidadeBases:    op.QuantidadeBases,
		Bases:              bases,
		Itens:              itens,
		FaturamentoTotal:   total,
		NumeroEdital:       op.NumeroEdital,
		Modalidade:         op.Modalidade,
		ContatoPrincipal:   op.ContatoPrincipal,
		CreatedAt:          time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"arquivo": path})
}
