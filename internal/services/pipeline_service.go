package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"dolpcrm/internal/models"
)

// ErrNoNextStage is informational: the opportunity already sits at the last
// stage of the funnel and Approve has nowhere to move it.
var ErrNoNextStage = errors.New("esta oportunidade já está no último estágio")

// StageStore is the slice of the stage repository the pipeline needs.
type StageStore interface {
	GetByID(id int) (*models.PipelineStage, error)
	GetByOrder(ordem int) (*models.PipelineStage, error)
	GetByName(nome string) (*models.PipelineStage, error)
}

// OpportunityStageStore moves opportunities between stages.
type OpportunityStageStore interface {
	GetByID(id int) (*models.Opportunity, error)
	UpdateStage(id, estagioID int) error
}

// MovementLog appends immutable movement records.
type MovementLog interface {
	Create(it *models.Interaction) (int, error)
}

// MovementNotifier fans a stage movement out to users; implementations must
// not fail the transition.
type MovementNotifier interface {
	NotifyMovement(op *models.Opportunity, from, to, resultado string)
}

// PipelineService implements the approve/reject decisions that walk an
// opportunity through the funnel.
//
// Both operations trust the caller-supplied current stage id: the service is
// written for a single-writer deployment and does not re-read the stage
// inside the update.
type PipelineService struct {
	Stages   StageStore
	Opps     OpportunityStageStore
	Log      MovementLog
	Notifier MovementNotifier
	Now      func() time.Time
}

func NewPipelineService(stages StageStore, opps OpportunityStageStore, log MovementLog) *PipelineService {
	return &PipelineService{Stages: stages, Opps: opps, Log: log, Now: time.Now}
}

// Approve moves the opportunity to the stage ordered right after the current
// one and records the movement. When the funnel ends it returns
// ErrNoNextStage and changes nothing.
func (s *PipelineService) Approve(opID, currentStageID int) (*models.PipelineStage, error) {
	current, err := s.Stages.GetByID(currentStageID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("estágio atual id=%d não encontrado", currentStageID)
	}

	next, err := s.Stages.GetByOrder(current.Ordem + 1)
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, ErrNoNextStage
	}

	op, err := s.Opps.GetByID(opID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("oportunidade id=%d não encontrada", opID)
	}

	if err := s.Opps.UpdateStage(opID, next.ID); err != nil {
		return nil, err
	}
	s.recordMovement(op, current.Nome, next.Nome, models.ResultadoAprovado)
	return next, nil
}

// Reject moves the opportunity to the terminal "Histórico" stage and records
// the movement. A funnel without a "Histórico" stage is corrupted seed data;
// the desktop application ignored that silently and so does this service.
func (s *PipelineService) Reject(opID, currentStageID int) error {
	historico, err := s.Stages.GetByName(models.StageHistorico)
	if err != nil {
		return err
	}
	if historico == nil {
		return nil
	}

	current, err := s.Stages.GetByID(currentStageID)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("estágio atual id=%d não encontrado", currentStageID)
	}

	op, err := s.Opps.GetByID(opID)
	if err != nil {
		return err
	}
	if op == nil {
		return fmt.Errorf("oportunidade id=%d não encontrada", opID)
	}

	if err := s.Opps.UpdateStage(opID, historico.ID); err != nil {
		return err
	}
	s.recordMovement(op, current.Nome, historico.Nome, models.ResultadoReprovado)
	return nil
}

func (s *PipelineService) recordMovement(op *models.Opportunity, from, to, resultado string) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	if _, err := s.Log.Create(&models.Interaction{
		OportunidadeID: op.ID,
		DataInteracao:  now().Format("02/01/2006 15:04"),
		Tipo:           models.InteractionMovimentacao,
		Resumo:         models.MovementSummary(from, to, resultado),
		Usuario:        models.SystemUser,
	}); err != nil {
		logrus.WithError(err).WithField("oportunidade_id", op.ID).
			Error("falha ao registrar movimentação")
	}
	if s.Notifier != nil {
		s.Notifier.NotifyMovement(op, from, to, resultado)
	}
}
