package repositories

import (
	"database/sql"
	"fmt"

	"dolpcrm/internal/models"
)

// CatalogRepository serves the reference data behind the forms: service
// types, team types per service, and the sector/segment lists.
type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListServicos() ([]models.Servico, error) {
	rows, err := r.db.Query(
		`SELECT id, nome, COALESCE(descricao, ''), COALESCE(categoria, ''), ativa
		 FROM crm_servicos ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("listando serviços: %w", err)
	}
	defer rows.Close()

	var out []models.Servico
	for rows.Next() {
		var s models.Servico
		if err := rows.Scan(&s.ID, &s.Nome, &s.Descricao, &s.Categoria, &s.Ativa); err != nil {
			return nil, fmt.Errorf("lendo serviço: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) GetServicoByID(id int) (*models.Servico, error) {
	s := &models.Servico{}
	err := r.db.QueryRow(
		`SELECT id, nome, COALESCE(descricao, ''), COALESCE(categoria, ''), ativa
		 FROM crm_servicos WHERE id=$1`, id).
		Scan(&s.ID, &s.Nome, &s.Descricao, &s.Categoria, &s.Ativa)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando serviço: %w", err)
	}
	return s, nil
}

func (r *CatalogRepository) CreateServico(s *models.Servico) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO crm_servicos (nome, descricao, categoria, ativa) VALUES ($1, $2, $3, $4) RETURNING id`,
		s.Nome, s.Descricao, s.Categoria, s.Ativa,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando serviço: %w", err)
	}
	return id, nil
}

func (r *CatalogRepository) UpdateServico(s *models.Servico) error {
	_, err := r.db.Exec(
		`UPDATE crm_servicos SET nome=$1, descricao=$2, categoria=$3, ativa=$4 WHERE id=$5`,
		s.Nome, s.Descricao, s.Categoria, s.Ativa, s.ID,
	)
	if err != nil {
		return fmt.Errorf("atualizando serviço: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListTiposEquipe(servicoID int) ([]models.TipoEquipe, error) {
	rows, err := r.db.Query(
		`SELECT id, nome, servico_id, ativa FROM crm_tipos_equipe WHERE servico_id=$1 ORDER BY nome`,
		servicoID)
	if err != nil {
		return nil, fmt.Errorf("listando tipos de equipe: %w", err)
	}
	defer rows.Close()

	var out []models.TipoEquipe
	for rows.Next() {
		var t models.TipoEquipe
		if err := rows.Scan(&t.ID, &t.Nome, &t.ServicoID, &t.Ativa); err != nil {
			return nil, fmt.Errorf("lendo tipo de equipe: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *CatalogRepository) CreateTipoEquipe(t *models.TipoEquipe) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO crm_tipos_equipe (nome, servico_id, ativa) VALUES ($1, $2, $3) RETURNING id`,
		t.Nome, t.ServicoID, t.Ativa,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando tipo de equipe: %w", err)
	}
	return id, nil
}

func (r *CatalogRepository) UpdateTipoEquipe(t *models.TipoEquipe) error {
	_, err := r.db.Exec(
		`UPDATE crm_tipos_equipe SET nome=$1, servico_id=$2, ativa=$3 WHERE id=$4`,
		t.Nome, t.ServicoID, t.Ativa, t.ID,
	)
	if err != nil {
		return fmt.Errorf("atualizando tipo de equipe: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListSetores() ([]string, error) {
	return r.listNames(`SELECT nome FROM crm_setores ORDER BY nome`)
}

func (r *CatalogRepository) AddSetor(nome string) error {
	_, err := r.db.Exec(`INSERT INTO crm_setores (nome) VALUES ($1) ON CONFLICT DO NOTHING`, nome)
	if err != nil {
		return fmt.Errorf("criando setor: %w", err)
	}
	return nil
}

func (r *CatalogRepository) DeleteSetor(nome string) error {
	_, err := r.db.Exec(`DELETE FROM crm_setores WHERE nome=$1`, nome)
	if err != nil {
		return fmt.Errorf("removendo setor: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListSegmentos() ([]string, error) {
	return r.listNames(`SELECT nome FROM crm_segmentos ORDER BY nome`)
}

func (r *CatalogRepository) AddSegmento(nome string) error {
	_, err := r.db.Exec(`INSERT INTO crm_segmentos (nome) VALUES ($1) ON CONFLICT DO NOTHING`, nome)
	if err != nil {
		return fmt.Errorf("criando segmento: %w", err)
	}
	return nil
}

func (r *CatalogRepository) DeleteSegmento(nome string) error {
	_, err := r.db.Exec(`DELETE FROM crm_segmentos WHERE nome=$1`, nome)
	if err != nil {
		return fmt.Errorf("removendo segmento: %w", err)
	}
	return nil
}

func (r *CatalogRepository) listNames(query string) ([]string, error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listando nomes: %w", err)
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
