package services

import (
	"testing"

	"dolpcrm/internal/models"
)

func TestResultFromSummary(t *testing.T) {
	cases := []struct {
		resumo string
		want   string
	}{
		{"Movida de 'Oportunidades' para 'Visita Técnica realizada' - Resultado: Aprovado", models.ResultadoAprovado},
		{"Movida de 'Proposta apresentada' para 'Histórico' - Resultado: Reprovado", models.ResultadoReprovado},
		{"", ""},
		{"Reunião com o cliente", ""},
	}
	for _, c := range cases {
		if got := resultFromSummary(c.resumo); got != c.want {
			t.Errorf("resultFromSummary(%q) = %q, esperava %q", c.resumo, got, c.want)
		}
	}
}
