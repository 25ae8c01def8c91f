package models

// Special stages of the sales funnel.
//
// StageHistorico is the terminal sink: rejected opportunities land there and
// nothing advances past it. StagePlaybook is a planning placeholder shown on
// the kanban board but never holds opportunities.
const (
	StageHistorico = "Histórico"
	StagePlaybook  = "Clientes e Segmentos definidos (Playbook)"
)

// PipelineStage is one ordered step of the sales funnel. Ordem values are
// contiguous per the seeded list; the "next" stage is ordem+1.
type PipelineStage struct {
	ID    int    `json:"id"`
	Nome  string `json:"nome"`
	Ordem int    `json:"ordem"`
}
