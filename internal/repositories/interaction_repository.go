package repositories

import (
	"database/sql"
	"fmt"

	"dolpcrm/internal/models"
)

type InteractionRepository struct {
	db *sql.DB
}

func NewInteractionRepository(db *sql.DB) *InteractionRepository {
	return &InteractionRepository{db: db}
}

func (r *InteractionRepository) Create(it *models.Interaction) (int, error) {
	var id int
	err := r.db.QueryRow(
		`INSERT INTO crm_interacoes (oportunidade_id, data_interacao, tipo, resumo, usuario)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		it.OportunidadeID, it.DataInteracao, it.Tipo, it.Resumo, it.Usuario,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("registrando interação: %w", err)
	}
	return id, nil
}

func (r *InteractionRepository) ListByOpportunity(opID int) ([]models.Interaction, error) {
	rows, err := r.db.Query(
		`SELECT id, oportunidade_id, COALESCE(data_interacao, ''), COALESCE(tipo, ''),
		        COALESCE(resumo, ''), COALESCE(usuario, '')
		 FROM crm_interacoes WHERE oportunidade_id=$1 ORDER BY id DESC`, opID)
	if err != nil {
		return nil, fmt.Errorf("listando interações: %w", err)
	}
	defer rows.Close()

	var out []models.Interaction
	for rows.Next() {
		var it models.Interaction
		if err := rows.Scan(&it.ID, &it.OportunidadeID, &it.DataInteracao,
			&it.Tipo, &it.Resumo, &it.Usuario); err != nil {
			return nil, fmt.Errorf("lendo interação: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// LastMovementSummary returns the resumo of the most recent movement record
// for an opportunity, or "" when it never moved.
func (r *InteractionRepository) LastMovementSummary(opID int) (string, error) {
	var resumo string
	err := r.db.QueryRow(
		`SELECT resumo FROM crm_interacoes
		 WHERE oportunidade_id=$1 AND tipo=$2
		 ORDER BY id DESC LIMIT 1`,
		opID, models.InteractionMovimentacao,
	).Scan(&resumo)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("buscando última movimentação: %w", err)
	}
	return resumo, nil
}
