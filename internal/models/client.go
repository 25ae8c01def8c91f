package models

import "time"

// Client status options mirror the fixed set used by the sales team.
const (
	ClientStatusPlaybookNaoCadastrado = "Playbook e não cadastrado"
	ClientStatusPlaybookCadastrado    = "Playbook e cadastrado"
	ClientStatusCadastrado            = "Cadastrado"
	ClientStatusNaoCadastrado         = "Não cadastrado"
)

// Client represents a prospect or customer company.
type Client struct {
	ID              int       `json:"id"`
	NomeEmpresa     string    `json:"nome_empresa"`
	CNPJ            string    `json:"cnpj"`
	Cidade          string    `json:"cidade"`
	Estado          string    `json:"estado"`
	SetorAtuacao    string    `json:"setor_atuacao"`
	SegmentoAtuacao string    `json:"segmento_atuacao"`
	LinkPortal      string    `json:"link_portal"`
	Status          string    `json:"status"`
	DataAtualizacao time.Time `json:"data_atualizacao"`
}
