package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"dolpcrm/internal/models"
)

type TaskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, oportunidade_id, COALESCE(descricao, ''), data_criacao,
	data_vencimento, COALESCE(responsavel, ''), COALESCE(status, '')`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	t := &models.Task{}
	var venc sql.NullTime
	err := row.Scan(&t.ID, &t.OportunidadeID, &t.Descricao, &t.DataCriacao,
		&venc, &t.Responsavel, &t.Status)
	if err != nil {
		return nil, err
	}
	if venc.Valid {
		t.DataVencimento = &venc.Time
	}
	return t, nil
}

func (r *TaskRepository) Create(t *models.Task) (int, error) {
	if t.DataCriacao.IsZero() {
		t.DataCriacao = time.Now()
	}
	var id int
	err := r.db.QueryRow(
		`INSERT INTO crm_tarefas (oportunidade_id, descricao, data_criacao, data_vencimento, responsavel, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		t.OportunidadeID, t.Descricao, t.DataCriacao, t.DataVencimento, t.Responsavel, t.Status,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("criando tarefa: %w", err)
	}
	return id, nil
}

func (r *TaskRepository) GetByID(id int) (*models.Task, error) {
	t, err := scanTask(r.db.QueryRow(
		`SELECT `+taskColumns+` FROM crm_tarefas WHERE id=$1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("buscando tarefa: %w", err)
	}
	return t, nil
}

func (r *TaskRepository) ListByOpportunity(opID int) ([]*models.Task, error) {
	rows, err := r.db.Query(
		`SELECT `+taskColumns+` FROM crm_tarefas WHERE oportunidade_id=$1 ORDER BY data_vencimento NULLS LAST, id`,
		opID)
	if err != nil {
		return nil, fmt.Errorf("listando tarefas: %w", err)
	}
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo tarefa: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListPendingDue returns pending tasks whose due date is at or before the
// cutoff; the reminder sweep consumes this.
func (r *TaskRepository) ListPendingDue(cutoff time.Time) ([]*models.Task, error) {
	rows, err := r.db.Query(
		`SELECT `+taskColumns+` FROM crm_tarefas
		 WHERE status=$1 AND data_vencimento IS NOT NULL AND data_vencimento <= $2
		 ORDER BY data_vencimento`,
		models.TaskPendente, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listando tarefas vencidas: %w", err)
	}
	defer rows.Close()

	var out []*models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("lendo tarefa vencida: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaskRepository) UpdateStatus(id int, status models.TaskStatus) error {
	result, err := r.db.Exec(`UPDATE crm_tarefas SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return fmt.Errorf("atualizando status da tarefa: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("tarefa com id=%d não encontrada", id)
	}
	return nil
}
