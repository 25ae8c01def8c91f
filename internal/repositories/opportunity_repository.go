package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
)

type OpportunityRepository struct {
	db *sql.DB
}

func NewOpportunityRepository(db *sql.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// OpportunityCard is the slim projection the kanban board renders.
type OpportunityCard struct {
	ID          int             `json:"id"`
	Numero      string          `json:"numero_oportunidade"`
	Titulo      string          `json:"titulo"`
	Valor       decimal.Decimal `json:"valor"`
	ClienteID   int             `json:"cliente_id"`
	EstagioID   int             `json:"estagio_id"`
	NomeEmpresa string          `json:"nome_empresa"`
}

// HistoryFilters narrows the opportunity history listing; zero values mean
// "no filter".
type HistoryFilters struct {
	Numero     string
	Cliente    string
	Estagio    string
	PeriodDays int
	MinValor   decimal.Decimal
}

// HistoryRow is one line of the history view.
type HistoryRow struct {
	ID          int             `json:"id"`
	Numero      string          `json:"numero_oportunidade"`
	Titulo      string          `json:"titulo"`
	Valor       decimal.Decimal `json:"valor"`
	DataCriacao time.Time       `json:"data_criacao"`
	NomeEmpresa string          `json:"nome_empresa"`
	EstagioNome string          `json:"estagio_nome"`
	Resultado   string          `json:"resultado,omitempty"`
}

const opportunityColumns = `o.id, COALESCE(o.numero_oportunidade, ''), o.titulo, COALESCE(o.valor, 0),
	o.cliente_id, o.estagio_id, o.data_criacao,
	COALESCE(o.tempo_contrato_meses, 0), COALESCE(o.regional, ''), COALESCE(o.polo, ''),
	COALESCE(o.quantidade_bases, 0), COALESCE(o.bases_nomes, ''), COALESCE(o.servicos_data, ''),
	COALESCE(o.empresa_referencia, ''),
	COALESCE(o.numero_edital, ''), COALESCE(o.data_abertura, ''), COALESCE(o.modalidade, ''),
	COALESCE(o.contato_principal, ''), COALESCE(o.link_documentos, ''),
	COALESCE(o.faturamento_estimado, 0), COALESCE(o.duracao_contrato, 0),
	COALESCE(o.mod, 0), COALESCE(o.moi, 0), COALESCE(o.total_pessoas, 0),
	COALESCE(o.margem_contribuicao, 0), COALESCE(o.descricao_detalhada, '')`

func scanOpportunity(row interface{ Scan(...any) error }) (*models.Opportunity, error) {
	o := &models.Opportunity{}
	err := row.Scan(
		&o.ID, &o.Numero, &o.Titulo, &o.Valor,
		&o.ClienteID, &o.EstagioID, &o.DataCriacao,
		&o.TempoContratoMeses, &o.Regional, &o.Polo,
		&o.QuantidadeBases, &o.BasesNomes, &o.ServicosData,
		&o.EmpresaReferencia,
		&o.NumeroEdital, &o.DataAbertura, &o.Modalidade,
		&o.ContatoPrincipal, &o.LinkDocumentos,
		&o.FaturamentoEstimado, &o.DuracaoContrato,
		&o.MOD, &o.MOI, &o.TotalPessoas,
		&o.MargemContribuicao, &o.DescricaoDetalhada,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OpportunityRepository) Create(o *models.Opportunity) (int, error) {
	if o.DataCriacao.IsZero() {
		o.DataCriacao = time.Now()
	}
	query := `
		INSERT INTO oportunidades (
			numero_oportunidade, titulo, valor, cliente_id, estagio_id, data_criacao,
			tempo_contrato_meses, regional, polo, quantidade_bases, bases_nomes, servicos_data, empresa_referencia,
			numero_edital, data_abertura, modalidade, contato_principal, link_documentos,
			faturamento_estimado, duracao_contrato, mod, moi, total_pessoas, margem_contribuicao, descricao_detalhada
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25)
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(query,
		o.Numero, o.Titulo, o.Valor, o.ClienteID, o.EstagioID, o.DataCriacao,
		o.TempoContratoMeses, o.Regional, o.Polo, o.QuantidadeBases, o.BasesNomes, o.ServicosData, o.EmpresaReferencia,
		o.NumeroEdital, o.DataAbertura, o.Modalidade, o.ContatoPrincipal, o.LinkDocumentos,
		o.FaturamentoEstimado, o.DuracaoContrato, o.MOD, o.MOI, o.TotalPessoas, o.MargemContribuicao, o.DescricaoDetalhada,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando oportunidade: %w", err)
	}
	return id, nil
}

func (r *OpportunityRepository) Update(o *models.Opportunity) error {
	query := `
		UPDATE oportunidades SET
			numero_oportunidade=$1, titulo=$2, valor=$3, cliente_id=$4, estagio_id=$5,
			tempo_contrato_meses=$6, regional=$7, polo=$8, quantidade_bases=$9, bases_nomes=$10,
			servicos_data=$11, empresa_referencia=$12,
			numero_edital=$13, data_abertura=$14, modalidade=$15, contato_principal=$16, link_documentos=$17,
			faturamento_estimado=$18, duracao_contrato=$19, mod=$20, moi=$21, total_pessoas=$22,
			margem_contribuicao=$23, descricao_detalhada=$24
		WHERE id=$25
	`
	_, err := r.db.Exec(query,
		o.Numero, o.Titulo, o.Valor, o.ClienteID, o.EstagioID,
		o.TempoContratoMeses, o.Regional, o.Polo, o.QuantidadeBases, o.BasesNomes,
		o.ServicosData, o.EmpresaReferencia,
		o.NumeroEdital, o.DataAbertura, o.Modalidade, o.ContatoPrincipal, o.LinkDocumentos,
		o.FaturamentoEstimado, o.DuracaoContrato, o.MOD, o.MOI, o.TotalPessoas,
		o.MargemContribuicao, o.DescricaoDetalhada, o.ID,
	)
	if err != nil {
		return fmt.Errorf("atualizando oportunidade: %w", err)
	}
	return nil
}

func (r *OpportunityRepository) GetByID(id int) (*models.Opportunity, error) {
	o, err := scanOpportunity(r.db.QueryRow(
		`SELECT `+opportunityColumns+` FROM oportunidades o WHERE o.id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando oportunidade por id: %w", err)
	}
	return o, nil
}

// UpdateStage moves an opportunity to another pipeline stage.
func (r *OpportunityRepository) UpdateStage(id, estagioID int) error {
	_, err := r.db.Exec(`UPDATE oportunidades SET estagio_id=$1 WHERE id=$2`, estagioID, id)
	if err != nil {
		return fmt.Errorf("movendo oportunidade de estágio: %w", err)
	}
	return nil
}

// UpdateEstimatedValue overwrites the derived revenue figure after a
// successful pricing run. valor is the user-entered estimate and is never
// touched here.
func (r *OpportunityRepository) UpdateEstimatedValue(id int, total decimal.Decimal, servicosData string) error {
	_, err := r.db.Exec(
		`UPDATE oportunidades SET faturamento_estimado=$1, servicos_data=$2 WHERE id=$3`,
		total, servicosData, id,
	)
	if err != nil {
		return fmt.Errorf("gravando faturamento estimado: %w", err)
	}
	return nil
}

// ListCards returns the board projection of every opportunity.
func (r *OpportunityRepository) ListCards() ([]OpportunityCard, error) {
	rows, err := r.db.Query(`
		SELECT o.id, COALESCE(o.numero_oportunidade, ''), o.titulo, COALESCE(o.valor, 0),
		       o.cliente_id, o.estagio_id, c.nome_empresa
		FROM oportunidades o
		JOIN clientes c ON o.cliente_id = c.id
		ORDER BY o.id
	`)
	if err != nil {
		return nil, fmt.Errorf("listando oportunidades: %w", err)
	}
	defer rows.Close()

	var cards []OpportunityCard
	for rows.Next() {
		var card OpportunityCard
		if err := rows.Scan(&card.ID, &card.Numero, &card.Titulo, &card.Valor,
			&card.ClienteID, &card.EstagioID, &card.NomeEmpresa); err != nil {
			return nil, fmt.Errorf("lendo oportunidade: %w", err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// History lists opportunities for the history view, newest first.
func (r *OpportunityRepository) History(f HistoryFilters) ([]HistoryRow, error) {
	query := `
		SELECT o.id, COALESCE(o.numero_oportunidade, ''), o.titulo, COALESCE(o.valor, 0),
		       o.data_criacao, c.nome_empresa, p.nome
		FROM oportunidades o
		JOIN clientes c ON o.cliente_id = c.id
		JOIN pipeline_estagios p ON o.estagio_id = p.id
		WHERE 1=1`
	args := []any{}
	i := 1

	if f.Numero != "" {
		query += fmt.Sprintf(" AND o.numero_oportunidade ILIKE $%d", i)
		args = append(args, "%"+f.Numero+"%")
		i++
	}
	if f.Cliente != "" {
		query += fmt.Sprintf(" AND c.nome_empresa ILIKE $%d", i)
		args = append(args, "%"+f.Cliente+"%")
		i++
	}
	if f.Estagio != "" {
		query += fmt.Sprintf(" AND p.nome = $%d", i)
		args = append(args, f.Estagio)
		i++
	}
	if f.PeriodDays > 0 {
		query += fmt.Sprintf(" AND o.data_criacao >= $%d", i)
		args = append(args, time.Now().AddDate(0, 0, -f.PeriodDays))
		i++
	}
	if f.MinValor.IsPositive() {
		query += fmt.Sprintf(" AND COALESCE(o.valor, 0) >= $%d", i)
		args = append(args, f.MinValor)
		i++
	}
	query += " ORDER BY o.data_criacao DESC, o.id DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("consultando histórico: %w", err)
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(&h.ID, &h.Numero, &h.Titulo, &h.Valor,
			&h.DataCriacao, &h.NomeEmpresa, &h.EstagioNome); err != nil {
			return nil, fmt.Errorf("lendo histórico: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *OpportunityRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM oportunidades WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("removendo oportunidade: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("oportunidade com id=%d não encontrada", id)
	}
	return nil
}
