package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
	"dolpcrm/internal/repositories"
)

// StageSummary is one column of the pipeline report: a stage plus the count
// and combined value of the opportunities sitting in it.
type StageSummary struct {
	Estagio    models.PipelineStage          `json:"estagio"`
	Quantidade int                           `json:"quantidade"`
	ValorTotal decimal.Decimal               `json:"valor_total"`
	Cards      []repositories.OpportunityCard `json:"oportunidades"`
}

type ReportService struct {
	Stages       *repositories.StageRepository
	Opps         *repositories.OpportunityRepository
	Interactions *repositories.InteractionRepository
}

func NewReportService(stages *repositories.StageRepository, opps *repositories.OpportunityRepository, interactions *repositories.InteractionRepository) *ReportService {
	return &ReportService{Stages: stages, Opps: opps, Interactions: interactions}
}

// PipelineSummary returns the kanban board: every stage in order with its
// opportunities. The playbook placeholder stage is included so the board
// renders it, always empty.
func (s *ReportService) PipelineSummary() ([]StageSummary, error) {
	stages, err := s.Stages.ListOrdered()
	if err != nil {
		return nil, err
	}
	cards, err := s.Opps.ListCards()
	if err != nil {
		return nil, err
	}

	byStage := make(map[int][]repositories.OpportunityCard)
	for _, c := range cards {
		byStage[c.EstagioID] = append(byStage[c.EstagioID], c)
	}

	out := make([]StageSummary, 0, len(stages))
	for _, st := range stages {
		sum := StageSummary{Estagio: st, ValorTotal: decimal.Zero}
		for _, c := range byStage[st.ID] {
			sum.Cards = append(sum.Cards, c)
			sum.Quantidade++
			sum.ValorTotal = sum.ValorTotal.Add(c.Valor)
		}
		out = append(out, sum)
	}
	return out, nil
}

// History lists past opportunities. Resultado ("Aprovado"/"Reprovado")
// filters on the latest movement record of each opportunity, the way the
// desktop history view did.
func (s *ReportService) History(f repositories.HistoryFilters, resultado string) ([]repositories.HistoryRow, error) {
	rows, err := s.Opps.History(f)
	if err != nil {
		return nil, err
	}

	out := make([]repositories.HistoryRow, 0, len(rows))
	for _, row := range rows {
		resumo, err := s.Interactions.LastMovementSummary(row.ID)
		if err != nil {
			return nil, err
		}
		row.Resultado = resultFromSummary(resumo)
		if resultado != "" && resultado != "Todos" && row.Resultado != resultado {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// resultFromSummary extracts the approve/reject label from a movement
// record's fixed wording.
func resultFromSummary(resumo string) string {
	switch {
	case resumo == "":
		return ""
	case strings.HasSuffix(resumo, models.ResultadoAprovado):
		return models.ResultadoAprovado
	case strings.HasSuffix(resumo, models.ResultadoReprovado):
		return models.ResultadoReprovado
	default:
		return ""
	}
}
