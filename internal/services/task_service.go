package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"dolpcrm/internal/models"
)

// TaskStore is the slice of the task repository the service needs.
type TaskStore interface {
	Create(t *models.Task) (int, error)
	GetByID(id int) (*models.Task, error)
	ListByOpportunity(opID int) ([]*models.Task, error)
	ListPendingDue(cutoff time.Time) ([]*models.Task, error)
	UpdateStatus(id int, status models.TaskStatus) error
}

// TaskNotifier delivers due-task reminders; failures must not break the
// sweep.
type TaskNotifier interface {
	NotifyTaskDue(t *models.Task)
}

type TaskService struct {
	Repo     TaskStore
	Notifier TaskNotifier
	Now      func() time.Time
}

func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{Repo: repo, Now: time.Now}
}

func (s *TaskService) Create(t *models.Task) error {
	if t.OportunidadeID == 0 {
		return errors.New("oportunidade é obrigatória")
	}
	if t.Descricao == "" {
		return errors.New("descrição é obrigatória")
	}
	if t.Status == "" {
		t.Status = models.TaskPendente
	}
	id, err := s.Repo.Create(t)
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

func (s *TaskService) ListByOpportunity(opID int) ([]*models.Task, error) {
	return s.Repo.ListByOpportunity(opID)
}

// Complete marks a pending task as done.
func (s *TaskService) Complete(id int) error {
	t, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if t == nil {
		return fmt.Errorf("tarefa id=%d não encontrada", id)
	}
	if t.Status == models.TaskConcluida {
		return nil
	}
	return s.Repo.UpdateStatus(id, models.TaskConcluida)
}

// SweepDue finds pending tasks past their due date and fires one reminder
// for each. It returns how many reminders went out.
func (s *TaskService) SweepDue() (int, error) {
	nowFn := s.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()
	due, err := s.Repo.ListPendingDue(now)
	if err != nil {
		return 0, err
	}
	if s.Notifier == nil {
		return 0, nil
	}
	sent := 0
	for _, t := range due {
		// the query already filters, but the row may have changed in the
		// meantime
		if !t.Overdue(now) {
			continue
		}
		s.Notifier.NotifyTaskDue(t)
		sent++
	}
	if sent > 0 {
		logrus.WithField("tarefas", sent).Info("lembretes de tarefas vencidas enviados")
	}
	return sent, nil
}
