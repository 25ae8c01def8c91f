package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"dolpcrm/internal/repositories"
	"dolpcrm/internal/services"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

// @Summary      Histórico de oportunidades
// @Description  Lista oportunidades passadas com filtros opcionais
// @Tags         Relatórios
// @Produce      json
// @Param        numero     query  string  false  "Número da oportunidade"
// @Param        cliente    query  string  false  "Nome do cliente (busca parcial)"
// @Param        estagio    query  string  false  "Nome do estágio"
// @Param        periodo    query  int     false  "Janela em dias"
// @Param        valor_min  query  number  false  "Valor mínimo"
// @Param        resultado  query  string  false  "Aprovado, Reprovado ou Todos"
// @Success      200  {array}  repositories.HistoryRow
// @Router       /reports/history [get]
func (h *ReportHandler) History(c *gin.Context) {
	var f repositories.HistoryFilters
	f.Numero = c.Query("numero")
	f.Cliente = c.Query("cliente")
	f.Estagio = c.Query("estagio")

	if raw := c.Query("periodo"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "periodo inválido"})
			return
		}
		f.PeriodDays = days
	}
	if raw := c.Query("valor_min"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valor_min inválido"})
			return
		}
		f.MinValor = min
	}

	rows, err := h.Service.History(f, c.Query("resultado"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Pipeline returns the stage-by-stage totals, same payload the kanban
// board uses.
func (h *ReportHandler) Pipeline(c *gin.Context) {
	summary, err := h.Service.PipelineSummary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
