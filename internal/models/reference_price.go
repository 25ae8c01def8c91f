package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReferencePrice is one pricing row learned from a comparator company: the
// monthly price of one team for a service type, plus auxiliary figures. At
// most one active row may exist per (empresa, tipo de serviço) pair; old rows
// are deactivated, not deleted.
type ReferencePrice struct {
	ID               int             `json:"id"`
	NomeEmpresa      string          `json:"nome_empresa"`
	TipoServico      string          `json:"tipo_servico"`
	ValorMensal      decimal.Decimal `json:"valor_mensal"`
	VolumetriaMinima decimal.Decimal `json:"volumetria_minima"`
	ValorPorPessoa   decimal.Decimal `json:"valor_por_pessoa"`
	ValorPorPonto    decimal.Decimal `json:"valor_por_ponto"`
	Ativa            bool            `json:"ativa"`
	DataCriacao      time.Time       `json:"data_criacao"`
}
