package repositories

import (
	"database/sql"
	"fmt"

	"dolpcrm/internal/models"
)

type ReferencePriceRepository struct {
	db *sql.DB
}

func NewReferencePriceRepository(db *sql.DB) *ReferencePriceRepository {
	return &ReferencePriceRepository{db: db}
}

const refPriceColumns = `id, nome_empresa, tipo_servico, valor_mensal, volumetria_minima,
	valor_por_pessoa, valor_por_ponto, ativa, data_criacao`

func scanRefPrice(row interface{ Scan(...any) error }) (*models.ReferencePrice, error) {
	p := &models.ReferencePrice{}
	err := row.Scan(&p.ID, &p.NomeEmpresa, &p.TipoServico, &p.ValorMensal, &p.VolumetriaMinima,
		&p.ValorPorPessoa, &p.ValorPorPonto, &p.Ativa, &p.DataCriacao)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetActive returns the single active entry for a (company, service type)
// pair, or nil when none exists.
func (r *ReferencePriceRepository) GetActive(nomeEmpresa, tipoServico string) (*models.ReferencePrice, error) {
	p, err := scanRefPrice(r.db.QueryRow(
		`SELECT `+refPriceColumns+` FROM crm_empresas_referencia
		 WHERE nome_empresa=$1 AND tipo_servico=$2 AND ativa`,
		nomeEmpresa, tipoServico))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando referência ativa: %w", err)
	}
	return p, nil
}

func (r *ReferencePriceRepository) GetByID(id int) (*models.ReferencePrice, error) {
	p, err := scanRefPrice(r.db.QueryRow(
		`SELECT `+refPriceColumns+` FROM crm_empresas_referencia WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando referência por id: %w", err)
	}
	return p, nil
}

func (r *ReferencePriceRepository) ListAll() ([]*models.ReferencePrice, error) {
	rows, err := r.db.Query(
		`SELECT ` + refPriceColumns + ` FROM crm_empresas_referencia ORDER BY nome_empresa, tipo_servico`)
	if err != nil {
		return nil, fmt.Errorf("listando referências: %w", err)
	}
	defer rows.Close()

	var out []*models.ReferencePrice
	for rows.Next() {
		p, err := scanRefPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo referência: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListCompanies returns the distinct reference company names with at least
// one active entry, for the form's dropdown.
func (r *ReferencePriceRepository) ListCompanies() ([]string, error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT nome_empresa FROM crm_empresas_referencia WHERE ativa ORDER BY nome_empresa`)
	if err != nil {
		return nil, fmt.Errorf("listando empresas referência: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Create inserts a new entry, deactivating any active entry for the same
// pair first so the one-active invariant holds.
func (r *ReferencePriceRepository) Create(p *models.ReferencePrice) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if p.Ativa {
		if _, err := tx.Exec(
			`UPDATE crm_empresas_referencia SET ativa=FALSE WHERE nome_empresa=$1 AND tipo_servico=$2 AND ativa`,
			p.NomeEmpresa, p.TipoServico,
		); err != nil {
			return 0, fmt.Errorf("desativando referência anterior: %w", err)
		}
	}

	var id int
	err = tx.QueryRow(
		`INSERT INTO crm_empresas_referencia
			(nome_empresa, tipo_servico, valor_mensal, volumetria_minima, valor_por_pessoa, valor_por_ponto, ativa)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		p.NomeEmpresa, p.TipoServico, p.ValorMensal, p.VolumetriaMinima,
		p.ValorPorPessoa, p.ValorPorPonto, p.Ativa,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando referência: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ReferencePriceRepository) Update(p *models.ReferencePrice) error {
	_, err := r.db.Exec(
		`UPDATE crm_empresas_referencia
		 SET nome_empresa=$1, tipo_servico=$2, valor_mensal=$3, volumetria_minima=$4,
		     valor_por_pessoa=$5, valor_por_ponto=$6, ativa=$7
		 WHERE id=$8`,
		p.NomeEmpresa, p.TipoServico, p.ValorMensal, p.VolumetriaMinima,
		p.ValorPorPessoa, p.ValorPorPonto, p.Ativa, p.ID,
	)
	if err != nil {
		return fmt.Errorf("atualizando referência: %w", err)
	}
	return nil
}

// Deactivate soft-deletes an entry; hard delete is deliberately absent.
func (r *ReferencePriceRepository) Deactivate(id int) error {
	result, err := r.db.Exec(`UPDATE crm_empresas_referencia SET ativa=FALSE WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("desativando referência: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("referência com id=%d não encontrada", id)
	}
	return nil
}
