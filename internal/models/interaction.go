package models

import "fmt"

// Interaction types and movement results as recorded in the log.
const (
	InteractionMovimentacao = "Movimentação"

	ResultadoAprovado  = "Aprovado"
	ResultadoReprovado = "Reprovado"

	SystemUser = "Sistema"
)

// Interaction is one entry of an opportunity's activity log. Movement
// records are regular interactions with tipo "Movimentação"; they are
// append-only.
type Interaction struct {
	ID             int    `json:"id"`
	OportunidadeID int    `json:"oportunidade_id"`
	DataInteracao  string `json:"data_interacao"` // "02/01/2006 15:04"
	Tipo           string `json:"tipo"`
	Resumo         string `json:"resumo"`
	Usuario        string `json:"usuario"`
}

// MovementSummary renders the fixed wording of a stage movement record.
func MovementSummary(from, to, resultado string) string {
	return fmt.Sprintf("Movida de '%s' para '%s' - Resultado: %s", from, to, resultado)
}
