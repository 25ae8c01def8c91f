package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"dolpcrm/internal/models"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

const clientColumns = `id, nome_empresa, COALESCE(cnpj, ''), COALESCE(cidade, ''), COALESCE(estado, ''),
	COALESCE(setor_atuacao, ''), COALESCE(segmento_atuacao, ''), COALESCE(link_portal, ''),
	COALESCE(status, ''), data_atualizacao`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	err := row.Scan(&c.ID, &c.NomeEmpresa, &c.CNPJ, &c.Cidade, &c.Estado,
		&c.SetorAtuacao, &c.SegmentoAtuacao, &c.LinkPortal, &c.Status, &c.DataAtualizacao)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClientRepository) Create(c *models.Client) (int, error) {
	if c.DataAtualizacao.IsZero() {
		c.DataAtualizacao = time.Now()
	}
	query := `
		INSERT INTO clientes (nome_empresa, cnpj, cidade, estado, setor_atuacao, segmento_atuacao, link_portal, status, data_atualizacao)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int
	err := r.db.QueryRow(query,
		c.NomeEmpresa, c.CNPJ, c.Cidade, c.Estado,
		c.SetorAtuacao, c.SegmentoAtuacao, c.LinkPortal, c.Status, c.DataAtualizacao,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando cliente: %w", err)
	}
	return id, nil
}

func (r *ClientRepository) Update(c *models.Client) error {
	query := `
		UPDATE clientes
		SET nome_empresa=$1, cnpj=$2, cidade=$3, estado=$4, setor_atuacao=$5,
		    segmento_atuacao=$6, link_portal=$7, status=$8, data_atualizacao=$9
		WHERE id=$10
	`
	_, err := r.db.Exec(query,
		c.NomeEmpresa, c.CNPJ, c.Cidade, c.Estado, c.SetorAtuacao,
		c.SegmentoAtuacao, c.LinkPortal, c.Status, time.Now(), c.ID,
	)
	if err != nil {
		return fmt.Errorf("atualizando cliente: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetByID(id int) (*models.Client, error) {
	c, err := scanClient(r.db.QueryRow(
		`SELECT `+clientColumns+` FROM clientes WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando cliente por id: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) ListAll() ([]*models.Client, error) {
	rows, err := r.db.Query(`SELECT ` + clientColumns + ` FROM clientes ORDER BY nome_empresa`)
	if err != nil {
		return nil, fmt.Errorf("listando clientes: %w", err)
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo cliente: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Delete(id int) error {
	result, err := r.db.Exec(`DELETE FROM clientes WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("removendo cliente: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("cliente com id=%d não encontrado", id)
	}
	return nil
}
