package models

import "time"

// TaskStatus defines the possible statuses for a follow-up task.
type TaskStatus string

const (
	TaskPendente  TaskStatus = "Pendente"
	TaskConcluida TaskStatus = "Concluída"
)

// Task is a follow-up item attached to an opportunity.
type Task struct {
	ID             int        `json:"id"`
	OportunidadeID int        `json:"oportunidade_id"`
	Descricao      string     `json:"descricao"`
	DataCriacao    time.Time  `json:"data_criacao"`
	DataVencimento *time.Time `json:"data_vencimento,omitempty"`
	Responsavel    string     `json:"responsavel"`
	Status         TaskStatus `json:"status"`
}

// Overdue reports whether the task is past due and still pending.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status == TaskPendente && t.DataVencimento != nil && t.DataVencimento.Before(now)
}
