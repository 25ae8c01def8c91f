package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
	"dolpcrm/internal/pricing"
	"dolpcrm/internal/repositories"
)

var ErrOpportunityNotFound = errors.New("oportunidade não encontrada")

// OpportunityStore is the slice of the opportunity repository this service
// needs.
type OpportunityStore interface {
	Create(o *models.Opportunity) (int, error)
	Update(o *models.Opportunity) error
	GetByID(id int) (*models.Opportunity, error)
	UpdateEstimatedValue(id int, total decimal.Decimal, servicosData string) error
	ListCards() ([]repositories.OpportunityCard, error)
	Delete(id int) error
}

// RefCatalog resolves active reference prices.
type RefCatalog interface {
	GetActive(nomeEmpresa, tipoServico string) (*models.ReferencePrice, error)
}

// StageFinder locates seeded stages for defaulting new opportunities.
type StageFinder interface {
	GetByName(nome string) (*models.PipelineStage, error)
}

type OpportunityService struct {
	Repo   OpportunityStore
	Refs   RefCatalog
	Stages StageFinder
}

func NewOpportunityService(repo OpportunityStore, refs RefCatalog, stages StageFinder) *OpportunityService {
	return &OpportunityService{Repo: repo, Refs: refs, Stages: stages}
}

// Create stores a new opportunity. A blank numero gets an assigned one and a
// blank stage defaults to "Oportunidades", the first actionable stage.
func (s *OpportunityService) Create(o *models.Opportunity) error {
	if o.ClienteID == 0 {
		return errors.New("cliente é obrigatório")
	}
	if strings.TrimSpace(o.Titulo) == "" {
		return errors.New("título é obrigatório")
	}
	if o.Numero == "" {
		o.Numero = "OP-" + strings.ToUpper(uuid.NewString()[:8])
	}
	if o.EstagioID == 0 {
		stage, err := s.Stages.GetByName("Oportunidades")
		if err != nil {
			return err
		}
		if stage == nil {
			return errors.New("estágio inicial 'Oportunidades' não encontrado")
		}
		o.EstagioID = stage.ID
	} else {
		// the playbook stage is a board placeholder and never holds
		// opportunities
		playbook, err := s.Stages.GetByName(models.StagePlaybook)
		if err != nil {
			return err
		}
		if playbook != nil && playbook.ID == o.EstagioID {
			return fmt.Errorf("o estágio '%s' não recebe oportunidades", models.StagePlaybook)
		}
	}
	if o.DataCriacao.IsZero() {
		o.DataCriacao = time.Now()
	}
	id, err := s.Repo.Create(o)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

func (s *OpportunityService) Update(o *models.Opportunity) error {
	current, err := s.Repo.GetByID(o.ID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrOpportunityNotFound
	}
	return s.Repo.Update(o)
}

func (s *OpportunityService) GetByID(id int) (*models.Opportunity, error) {
	return s.Repo.GetByID(id)
}

func (s *OpportunityService) ListCards() ([]repositories.OpportunityCard, error) {
	return s.Repo.ListCards()
}

func (s *OpportunityService) Delete(id int) error {
	return s.Repo.Delete(id)
}

// RecalculatePricing prices the opportunity's configured services against
// its chosen reference company and, on full success, overwrites the stored
// estimated contract value. Any pricing error leaves the stored value
// untouched; the service configuration blob is reserialized unchanged.
func (s *OpportunityService) RecalculatePricing(opID int) (*pricing.Result, error) {
	op, err := s.Repo.GetByID(opID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOpportunityNotFound
	}

	sels, err := op.ServiceSelections()
	if err != nil {
		return nil, err
	}

	res, err := pricing.Calculate(op.EmpresaReferencia, sels, s.Refs.GetActive)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.UpdateEstimatedValue(op.ID, res.FaturamentoTotal, op.ServicosData); err != nil {
		return nil, fmt.Errorf("gravando resultado do cálculo: %w", err)
	}
	return res, nil
}

// PreviewPricing runs the aggregation without persisting anything.
func (s *OpportunityService) PreviewPricing(opID int) (*pricing.Result, error) {
	op, err := s.Repo.GetByID(opID)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, ErrOpportunityNotFound
	}
	sels, err := op.ServiceSelections()
	if err != nil {
		return nil, err
	}
	return pricing.Calculate(op.EmpresaReferencia, sels, s.Refs.GetActive)
}
