package services

import (
	"errors"
	"testing"
	"time"

	"dolpcrm/internal/models"
)

type fakeStageStore struct {
	stages []models.PipelineStage
}

func (f *fakeStageStore) GetByID(id int) (*models.PipelineStage, error) {
	for i := range f.stages {
		if f.stages[i].ID == id {
			return &f.stages[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStageStore) GetByOrder(ordem int) (*models.PipelineStage, error) {
	for i := range f.stages {
		if f.stages[i].Ordem == ordem {
			return &f.stages[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStageStore) GetByName(nome string) (*models.PipelineStage, error) {
	for i := range f.stages {
		if f.stages[i].Nome == nome {
			return &f.stages[i], nil
		}
	}
	return nil, nil
}

type fakeOppStageStore struct {
	opp     *models.Opportunity
	movedTo []int
}

func (f *fakeOppStageStore) GetByID(id int) (*models.Opportunity, error) {
	if f.opp != nil && f.opp.ID == id {
		return f.opp, nil
	}
	return nil, nil
}

func (f *fakeOppStageStore) UpdateStage(id, estagioID int) error {
	f.movedTo = append(f.movedTo, estagioID)
	return nil
}

type fakeMovementLog struct {
	records []models.Interaction
	fail    error
}

func (f *fakeMovementLog) Create(it *models.Interaction) (int, error) {
	if f.fail != nil {
		return 0, f.fail
	}
	f.records = append(f.records, *it)
	return len(f.records), nil
}

func testFunnel() *fakeStageStore {
	return &fakeStageStore{stages: []models.PipelineStage{
		{ID: 1, Nome: "Oportunidades", Ordem: 1},
		{ID: 2, Nome: "Visita Técnica realizada", Ordem: 2},
		{ID: 3, Nome: "Proposta apresentada", Ordem: 3},
		{ID: 11, Nome: models.StageHistorico, Ordem: 11},
	}}
}

func newTestPipeline(stages *fakeStageStore, opps *fakeOppStageStore, log *fakeMovementLog) *PipelineService {
	s := NewPipelineService(stages, opps, log)
	s.Now = func() time.Time {
		return time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	}
	return s
}

func TestPipelineApprove(t *testing.T) {
	t.Run("moves to the next ordered stage and records the movement", func(t *testing.T) {
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, Titulo: "Obra Norte", EstagioID: 1}}
		log := &fakeMovementLog{}
		s := newTestPipeline(testFunnel(), opps, log)

		next, err := s.Approve(7, 1)
		if err != nil {
			t.Fatalf("Approve: %v", err)
		}
		if next == nil || next.ID != 2 {
			t.Fatalf("esperava próximo estágio id=2, obteve %+v", next)
		}
		if len(opps.movedTo) != 1 || opps.movedTo[0] != 2 {
			t.Fatalf("esperava mover para o estágio 2, obteve %v", opps.movedTo)
		}
		if len(log.records) != 1 {
			t.Fatalf("esperava um registro de movimentação, obteve %d", len(log.records))
		}
		rec := log.records[0]
		if rec.Resumo != "Movida de 'Oportunidades' para 'Visita Técnica realizada' - Resultado: Aprovado" {
			t.Errorf("resumo errado: %q", rec.Resumo)
		}
		if rec.Tipo != models.InteractionMovimentacao {
			t.Errorf("tipo errado: %q", rec.Tipo)
		}
		if rec.Usuario != models.SystemUser {
			t.Errorf("usuario errado: %q", rec.Usuario)
		}
		if rec.DataInteracao != "14/03/2025 09:30" {
			t.Errorf("data errada: %q", rec.DataInteracao)
		}
	})

	t.Run("last stage returns ErrNoNextStage and changes nothing", func(t *testing.T) {
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, EstagioID: 11}}
		log := &fakeMovementLog{}
		s := newTestPipeline(testFunnel(), opps, log)

		_, err := s.Approve(7, 11)
		if !errors.Is(err, ErrNoNextStage) {
			t.Fatalf("esperava ErrNoNextStage, obteve %v", err)
		}
		if len(opps.movedTo) != 0 {
			t.Errorf("não deveria mover, moveu para %v", opps.movedTo)
		}
		if len(log.records) != 0 {
			t.Errorf("não deveria registrar movimentação")
		}
	})

	t.Run("unknown current stage fails", func(t *testing.T) {
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, EstagioID: 1}}
		s := newTestPipeline(testFunnel(), opps, &fakeMovementLog{})

		if _, err := s.Approve(7, 99); err == nil {
			t.Fatal("esperava erro para estágio inexistente")
		}
		if len(opps.movedTo) != 0 {
			t.Errorf("não deveria mover, moveu para %v", opps.movedTo)
		}
	})

	t.Run("unknown opportunity fails before moving", func(t *testing.T) {
		opps := &fakeOppStageStore{}
		s := newTestPipeline(testFunnel(), opps, &fakeMovementLog{})

		if _, err := s.Approve(42, 1); err == nil {
			t.Fatal("esperava erro para oportunidade inexistente")
		}
	})
}

func TestPipelineReject(t *testing.T) {
	t.Run("moves to Histórico and records the movement", func(t *testing.T) {
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, Titulo: "Obra Norte", EstagioID: 3}}
		log := &fakeMovementLog{}
		s := newTestPipeline(testFunnel(), opps, log)

		if err := s.Reject(7, 3); err != nil {
			t.Fatalf("Reject: %v", err)
		}
		if len(opps.movedTo) != 1 || opps.movedTo[0] != 11 {
			t.Fatalf("esperava mover para o estágio 11, obteve %v", opps.movedTo)
		}
		if len(log.records) != 1 {
			t.Fatalf("esperava um registro de movimentação")
		}
		want := "Movida de 'Proposta apresentada' para 'Histórico' - Resultado: Reprovado"
		if log.records[0].Resumo != want {
			t.Errorf("resumo errado: %q", log.records[0].Resumo)
		}
	})

	t.Run("missing Histórico stage is a silent no-op", func(t *testing.T) {
		stages := &fakeStageStore{stages: []models.PipelineStage{
			{ID: 1, Nome: "Oportunidades", Ordem: 1},
		}}
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, EstagioID: 1}}
		log := &fakeMovementLog{}
		s := newTestPipeline(stages, opps, log)

		if err := s.Reject(7, 1); err != nil {
			t.Fatalf("esperava no-op silencioso, obteve %v", err)
		}
		if len(opps.movedTo) != 0 {
			t.Errorf("não deveria mover, moveu para %v", opps.movedTo)
		}
		if len(log.records) != 0 {
			t.Errorf("não deveria registrar movimentação")
		}
	})

	t.Run("log failure does not undo the transition", func(t *testing.T) {
		opps := &fakeOppStageStore{opp: &models.Opportunity{ID: 7, EstagioID: 3}}
		log := &fakeMovementLog{fail: errors.New("db down")}
		s := newTestPipeline(testFunnel(), opps, log)

		if err := s.Reject(7, 3); err != nil {
			t.Fatalf("Reject: %v", err)
		}
		if len(opps.movedTo) != 1 || opps.movedTo[0] != 11 {
			t.Fatalf("transição deveria persistir, obteve %v", opps.movedTo)
		}
	})
}
