package repositories

import (
	"database/sql"
	"fmt"

	"dolpcrm/internal/models"
)

type StageRepository struct {
	db *sql.DB
}

func NewStageRepository(db *sql.DB) *StageRepository {
	return &StageRepository{db: db}
}

// ListOrdered returns every pipeline stage sorted by ordem.
func (r *StageRepository) ListOrdered() ([]models.PipelineStage, error) {
	rows, err := r.db.Query(`SELECT id, nome, ordem FROM pipeline_estagios ORDER BY ordem`)
	if err != nil {
		return nil, fmt.Errorf("listando estágios: %w", err)
	}
	defer rows.Close()

	var stages []models.PipelineStage
	for rows.Next() {
		var s models.PipelineStage
		if err := rows.Scan(&s.ID, &s.Nome, &s.Ordem); err != nil {
			return nil, fmt.Errorf("lendo estágio: %w", err)
		}
		stages = append(stages, s)
	}
	return stages, rows.Err()
}

func (r *StageRepository) GetByID(id int) (*models.PipelineStage, error) {
	s := &models.PipelineStage{}
	err := r.db.QueryRow(`SELECT id, nome, ordem FROM pipeline_estagios WHERE id=$1`, id).
		Scan(&s.ID, &s.Nome, &s.Ordem)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando estágio por id: %w", err)
	}
	return s, nil
}

func (r *StageRepository) GetByName(nome string) (*models.PipelineStage, error) {
	s := &models.PipelineStage{}
	err := r.db.QueryRow(`SELECT id, nome, ordem FROM pipeline_estagios WHERE nome=$1`, nome).
		Scan(&s.ID, &s.Nome, &s.Ordem)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando estágio por nome: %w", err)
	}
	return s, nil
}

// GetByOrder returns the stage at the given ordem, or nil when the funnel
// ends before it.
func (r *StageRepository) GetByOrder(ordem int) (*models.PipelineStage, error) {
	s := &models.PipelineStage{}
	err := r.db.QueryRow(`SELECT id, nome, ordem FROM pipeline_estagios WHERE ordem=$1`, ordem).
		Scan(&s.ID, &s.Nome, &s.Ordem)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando estágio por ordem: %w", err)
	}
	return s, nil
}
