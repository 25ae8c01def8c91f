package services

import (
	"testing"
	"time"

	"dolpcrm/internal/models"
)

type fakeTaskStore struct {
	tasks   map[int]*models.Task
	due     []*models.Task
	updated map[int]models.TaskStatus
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[int]*models.Task{}, updated: map[int]models.TaskStatus{}}
}

func (f *fakeTaskStore) Create(t *models.Task) (int, error) {
	id := len(f.tasks) + 1
	f.tasks[id] = t
	return id, nil
}

func (f *fakeTaskStore) GetByID(id int) (*models.Task, error) { return f.tasks[id], nil }

func (f *fakeTaskStore) ListByOpportunity(opID int) ([]*models.Task, error) { return nil, nil }

func (f *fakeTaskStore) ListPendingDue(cutoff time.Time) ([]*models.Task, error) {
	return f.due, nil
}

func (f *fakeTaskStore) UpdateStatus(id int, status models.TaskStatus) error {
	f.updated[id] = status
	return nil
}

type recordingTaskNotifier struct {
	notified []*models.Task
}

func (r *recordingTaskNotifier) NotifyTaskDue(t *models.Task) {
	r.notified = append(r.notified, t)
}

func TestTaskCreate(t *testing.T) {
	store := newFakeTaskStore()
	s := NewTaskService(store)

	t.Run("defaults to pending", func(t *testing.T) {
		task := &models.Task{OportunidadeID: 3, Descricao: "Ligar para o cliente"}
		if err := s.Create(task); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if task.Status != models.TaskPendente {
			t.Errorf("status esperado Pendente, obteve %q", task.Status)
		}
		if task.ID == 0 {
			t.Error("id não propagado")
		}
	})

	t.Run("requires opportunity and description", func(t *testing.T) {
		if err := s.Create(&models.Task{Descricao: "x"}); err == nil {
			t.Error("esperava erro sem oportunidade")
		}
		if err := s.Create(&models.Task{OportunidadeID: 3}); err == nil {
			t.Error("esperava erro sem descrição")
		}
	})
}

func TestTaskComplete(t *testing.T) {
	store := newFakeTaskStore()
	store.tasks[1] = &models.Task{ID: 1, Status: models.TaskPendente}
	store.tasks[2] = &models.Task{ID: 2, Status: models.TaskConcluida}
	s := NewTaskService(store)

	if err := s.Complete(1); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if store.updated[1] != models.TaskConcluida {
		t.Errorf("tarefa 1 não foi concluída")
	}

	// already done is a no-op
	if err := s.Complete(2); err != nil {
		t.Fatalf("Complete em tarefa concluída: %v", err)
	}
	if _, ok := store.updated[2]; ok {
		t.Error("tarefa já concluída não deveria ser atualizada")
	}

	if err := s.Complete(99); err == nil {
		t.Error("esperava erro para tarefa inexistente")
	}
}

func TestSweepDue(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeTaskStore()
	store.due = []*models.Task{
		{ID: 1, Descricao: "Enviar proposta", DataVencimento: &due, Status: models.TaskPendente},
		{ID: 2, Descricao: "Cobrar retorno", DataVencimento: &due, Status: models.TaskPendente},
		// stale candidates: completed or rescheduled since the query ran
		{ID: 3, Descricao: "Já resolvida", DataVencimento: &due, Status: models.TaskConcluida},
		{ID: 4, Descricao: "Reagendada", DataVencimento: &future, Status: models.TaskPendente},
	}

	notifier := &recordingTaskNotifier{}
	s := NewTaskService(store)
	s.Notifier = notifier
	s.Now = func() time.Time { return time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC) }

	n, err := s.SweepDue()
	if err != nil {
		t.Fatalf("SweepDue: %v", err)
	}
	if n != 2 || len(notifier.notified) != 2 {
		t.Fatalf("esperava 2 lembretes, obteve n=%d notificados=%d", n, len(notifier.notified))
	}
	for _, nt := range notifier.notified {
		if nt.ID != 1 && nt.ID != 2 {
			t.Errorf("tarefa %d não deveria gerar lembrete", nt.ID)
		}
	}

	// without a notifier the sweep is silent
	s2 := NewTaskService(store)
	if n, err := s2.SweepDue(); err != nil || n != 0 {
		t.Fatalf("sem notifier esperava 0, obteve n=%d err=%v", n, err)
	}
}
