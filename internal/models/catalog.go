package models

// Servico is a category of field service the company offers.
type Servico struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
	Categoria string `json:"categoria"`
	Ativa     bool   `json:"ativa"`
}

// TipoEquipe is a team type that can be allocated to a given service.
type TipoEquipe struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	ServicoID int    `json:"servico_id"`
	Ativa     bool   `json:"ativa"`
}
