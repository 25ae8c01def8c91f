package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TeamAllocationRow is one line of the team allocation grid for a service:
// a team type, how many teams, the workload figure and the base they sit on.
// Quantidade and Volumetria stay as the raw text the user typed; parsing and
// validation belong to the pricing aggregator.
type TeamAllocationRow struct {
	TipoEquipe string `json:"tipo_equipe"`
	Quantidade string `json:"quantidade"`
	Volumetria string `json:"volumetria"`
	Base       string `json:"base"`
}

// ServiceSelection is the configuration of one selected service type inside
// an opportunity.
type ServiceSelection struct {
	ServicoNome string              `json:"servico_nome"`
	Selected    bool                `json:"-"`
	Equipes     []TeamAllocationRow `json:"equipes"`
}

// Opportunity is a deal moving through the pipeline. The APV (análise prévia
// de viabilidade) and executive-summary fields grew over time and are mostly
// optional.
type Opportunity struct {
	ID          int             `json:"id"`
	Numero      string          `json:"numero_oportunidade"`
	Titulo      string          `json:"titulo"`
	Valor       decimal.Decimal `json:"valor"`
	ClienteID   int             `json:"cliente_id"`
	EstagioID   int             `json:"estagio_id"`
	DataCriacao time.Time       `json:"data_criacao"`

	// Análise Prévia
	TempoContratoMeses int    `json:"tempo_contrato_meses"`
	Regional           string `json:"regional"`
	Polo               string `json:"polo"`
	QuantidadeBases    int    `json:"quantidade_bases"`
	BasesNomes         string `json:"bases_nomes"`   // JSON array of base names
	ServicosData       string `json:"servicos_data"` // JSON blob, see ServiceSelection
	EmpresaReferencia  string `json:"empresa_referencia"`

	// Sumário Executivo
	NumeroEdital        string          `json:"numero_edital"`
	DataAbertura        string          `json:"data_abertura"`
	Modalidade          string          `json:"modalidade"`
	ContatoPrincipal    string          `json:"contato_principal"`
	LinkDocumentos      string          `json:"link_documentos"`
	FaturamentoEstimado decimal.Decimal `json:"faturamento_estimado"`
	DuracaoContrato     int             `json:"duracao_contrato"`
	MOD                 decimal.Decimal `json:"mod"`
	MOI                 decimal.Decimal `json:"moi"`
	TotalPessoas        int             `json:"total_pessoas"`
	MargemContribuicao  decimal.Decimal `json:"margem_contribuicao"`
	DescricaoDetalhada  string          `json:"descricao_detalhada"`
}

// ServiceSelections decodes the persisted servicos_data blob. Only selected
// services are stored, so every decoded entry is marked Selected.
func (o *Opportunity) ServiceSelections() ([]ServiceSelection, error) {
	if o.ServicosData == "" {
		return nil, nil
	}
	var sels []ServiceSelection
	if err := json.Unmarshal([]byte(o.ServicosData), &sels); err != nil {
		return nil, fmt.Errorf("decodificando servicos_data da oportunidade %d: %w", o.ID, err)
	}
	for i := range sels {
		sels[i].Selected = true
	}
	return sels, nil
}

// SetServiceSelections stores the selected services back into the blob,
// skipping deselected entries the way the form did.
func (o *Opportunity) SetServiceSelections(sels []ServiceSelection) error {
	keep := make([]ServiceSelection, 0, len(sels))
	for _, s := range sels {
		if s.Selected {
			keep = append(keep, s)
		}
	}
	b, err := json.Marshal(keep)
	if err != nil {
		return fmt.Errorf("serializando servicos_data: %w", err)
	}
	o.ServicosData = string(b)
	return nil
}

// SetBaseNames stores the base name list into the bases_nomes blob.
func (o *Opportunity) SetBaseNames(names []string) error {
	b, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("serializando bases_nomes: %w", err)
	}
	o.BasesNomes = string(b)
	return nil
}

// BaseNames decodes the bases_nomes JSON array.
func (o *Opportunity) BaseNames() ([]string, error) {
	if o.BasesNomes == "" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(o.BasesNomes), &names); err != nil {
		return nil, fmt.Errorf("decodificando bases_nomes da oportunidade %d: %w", o.ID, err)
	}
	return names, nil
}
