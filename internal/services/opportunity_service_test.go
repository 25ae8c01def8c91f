package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
	"dolpcrm/internal/pricing"
	"dolpcrm/internal/repositories"
)

type fakeOppStore struct {
	opp *models.Opportunity

	created     *models.Opportunity
	savedTotal  *decimal.Decimal
	savedBlob   string
	updateErr   error
	estimateErr error
}

func (f *fakeOppStore) Create(o *models.Opportunity) (int, error) {
	f.created = o
	return 101, nil
}

func (f *fakeOppStore) Update(o *models.Opportunity) error { return f.updateErr }

func (f *fakeOppStore) GetByID(id int) (*models.Opportunity, error) {
	if f.opp != nil && f.opp.ID == id {
		return f.opp, nil
	}
	return nil, nil
}

// Mirrors the repository contract: only faturamento_estimado and the blob
// are written, valor stays whatever the user typed.
func (f *fakeOppStore) UpdateEstimatedValue(id int, total decimal.Decimal, servicosData string) error {
	if f.estimateErr != nil {
		return f.estimateErr
	}
	f.savedTotal = &total
	f.savedBlob = servicosData
	if f.opp != nil && f.opp.ID == id {
		f.opp.FaturamentoEstimado = total
	}
	return nil
}

func (f *fakeOppStore) ListCards() ([]repositories.OpportunityCard, error) { return nil, nil }
func (f *fakeOppStore) Delete(id int) error                               { return nil }

type fakeRefCatalog struct {
	prices map[string]*models.ReferencePrice
}

func (f *fakeRefCatalog) GetActive(nomeEmpresa, tipoServico string) (*models.ReferencePrice, error) {
	return f.prices[nomeEmpresa+"|"+tipoServico], nil
}

type fakeStageFinder struct {
	stages []models.PipelineStage
}

func (f *fakeStageFinder) GetByName(nome string) (*models.PipelineStage, error) {
	for i := range f.stages {
		if f.stages[i].Nome == nome {
			return &f.stages[i], nil
		}
	}
	return nil, nil
}

func configuredOpportunity(t *testing.T) *models.Opportunity {
	t.Helper()
	op := &models.Opportunity{
		ID:                5,
		Titulo:            "Manutenção de redes",
		ClienteID:         1,
		Valor:             decimal.NewFromInt(10000), // user-entered estimate
		EmpresaReferencia: "Energisa",
	}
	err := op.SetServiceSelections([]models.ServiceSelection{
		{
			ServicoNome: "Linha Viva",
			Selected:    true,
			Equipes: []models.TeamAllocationRow{
				{TipoEquipe: "Pesada", Quantidade: "2", Volumetria: "150"},
			},
		},
	})
	if err != nil {
		t.Fatalf("SetServiceSelections: %v", err)
	}
	return op
}

func TestOpportunityCreate(t *testing.T) {
	stages := &fakeStageFinder{stages: []models.PipelineStage{
		{ID: 1, Nome: models.StagePlaybook, Ordem: 0},
		{ID: 2, Nome: "Oportunidades", Ordem: 1},
	}}

	t.Run("assigns numero and default stage", func(t *testing.T) {
		store := &fakeOppStore{}
		s := NewOpportunityService(store, &fakeRefCatalog{}, stages)

		op := &models.Opportunity{Titulo: "Nova obra", ClienteID: 3}
		if err := s.Create(op); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if !strings.HasPrefix(op.Numero, "OP-") || len(op.Numero) != 11 {
			t.Errorf("numero gerado inesperado: %q", op.Numero)
		}
		if op.EstagioID != 2 {
			t.Errorf("esperava estágio inicial 2, obteve %d", op.EstagioID)
		}
		if op.ID != 101 {
			t.Errorf("id não propagado: %d", op.ID)
		}
	})

	t.Run("rejects missing client and title", func(t *testing.T) {
		s := NewOpportunityService(&fakeOppStore{}, &fakeRefCatalog{}, stages)
		if err := s.Create(&models.Opportunity{Titulo: "x"}); err == nil {
			t.Error("esperava erro sem cliente")
		}
		if err := s.Create(&models.Opportunity{ClienteID: 1, Titulo: "   "}); err == nil {
			t.Error("esperava erro sem título")
		}
	})

	t.Run("keeps caller-provided numero and stage", func(t *testing.T) {
		store := &fakeOppStore{}
		s := NewOpportunityService(store, &fakeRefCatalog{}, stages)

		op := &models.Opportunity{Titulo: "Obra", ClienteID: 3, Numero: "OP-CUSTOM01", EstagioID: 9}
		if err := s.Create(op); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if op.Numero != "OP-CUSTOM01" || op.EstagioID != 9 {
			t.Errorf("valores do chamador alterados: %q estágio=%d", op.Numero, op.EstagioID)
		}
	})

	t.Run("rejects the playbook placeholder stage", func(t *testing.T) {
		store := &fakeOppStore{}
		s := NewOpportunityService(store, &fakeRefCatalog{}, stages)

		op := &models.Opportunity{Titulo: "Obra", ClienteID: 3, EstagioID: 1}
		if err := s.Create(op); err == nil {
			t.Fatal("esperava erro ao criar oportunidade no estágio Playbook")
		}
		if store.created != nil {
			t.Error("nada deveria ter sido persistido")
		}
	})
}

func TestRecalculatePricing(t *testing.T) {
	refs := &fakeRefCatalog{prices: map[string]*models.ReferencePrice{
		"Energisa|Linha Viva": {
			NomeEmpresa: "Energisa",
			TipoServico: "Linha Viva",
			ValorMensal: decimal.NewFromInt(10000),
			Ativa:       true,
		},
	}}

	t.Run("persists the new total on success", func(t *testing.T) {
		store := &fakeOppStore{opp: configuredOpportunity(t)}
		s := NewOpportunityService(store, refs, &fakeStageFinder{})

		res, err := s.RecalculatePricing(5)
		if err != nil {
			t.Fatalf("RecalculatePricing: %v", err)
		}
		want := decimal.NewFromInt(20000)
		if !res.FaturamentoTotal.Equal(want) {
			t.Errorf("total esperado %s, obteve %s", want, res.FaturamentoTotal)
		}
		if store.savedTotal == nil || !store.savedTotal.Equal(want) {
			t.Errorf("total não persistido corretamente: %v", store.savedTotal)
		}
		if store.savedBlob != store.opp.ServicosData {
			t.Errorf("blob de serviços deveria ser regravado sem alterações")
		}
		if !store.opp.FaturamentoEstimado.Equal(want) {
			t.Errorf("faturamento_estimado esperado %s, obteve %s", want, store.opp.FaturamentoEstimado)
		}
		if !store.opp.Valor.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("valor digitado pelo usuário deveria sobreviver ao recálculo, obteve %s", store.opp.Valor)
		}
	})

	t.Run("missing reference company aborts without persisting", func(t *testing.T) {
		op := configuredOpportunity(t)
		op.EmpresaReferencia = ""
		store := &fakeOppStore{opp: op}
		s := NewOpportunityService(store, refs, &fakeStageFinder{})

		_, err := s.RecalculatePricing(5)
		if !errors.Is(err, pricing.ErrMissingReferenceCompany) {
			t.Fatalf("esperava ErrMissingReferenceCompany, obteve %v", err)
		}
		if store.savedTotal != nil {
			t.Error("valor não deveria ter sido persistido")
		}
	})

	t.Run("junk quantity aborts without persisting", func(t *testing.T) {
		op := configuredOpportunity(t)
		if err := op.SetServiceSelections([]models.ServiceSelection{
			{
				ServicoNome: "Linha Viva",
				Selected:    true,
				Equipes:     []models.TeamAllocationRow{{TipoEquipe: "Pesada", Quantidade: "abc"}},
			},
		}); err != nil {
			t.Fatal(err)
		}
		store := &fakeOppStore{opp: op}
		s := NewOpportunityService(store, refs, &fakeStageFinder{})

		_, err := s.RecalculatePricing(5)
		var qtyErr *pricing.InvalidQuantityError
		if !errors.As(err, &qtyErr) {
			t.Fatalf("esperava InvalidQuantityError, obteve %v", err)
		}
		if store.savedTotal != nil {
			t.Error("valor não deveria ter sido persistido")
		}
	})

	t.Run("unknown opportunity", func(t *testing.T) {
		s := NewOpportunityService(&fakeOppStore{}, refs, &fakeStageFinder{})
		if _, err := s.RecalculatePricing(999); !errors.Is(err, ErrOpportunityNotFound) {
			t.Fatalf("esperava ErrOpportunityNotFound, obteve %v", err)
		}
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		store := &fakeOppStore{opp: configuredOpportunity(t), estimateErr: errors.New("db down")}
		s := NewOpportunityService(store, refs, &fakeStageFinder{})
		if _, err := s.RecalculatePricing(5); err == nil {
			t.Fatal("esperava erro de gravação")
		}
	})
}

func TestPreviewPricing(t *testing.T) {
	refs := &fakeRefCatalog{prices: map[string]*models.ReferencePrice{
		"Energisa|Linha Viva": {
			NomeEmpresa: "Energisa",
			TipoServico: "Linha Viva",
			ValorMensal: decimal.NewFromInt(10000),
			Ativa:       true,
		},
	}}
	store := &fakeOppStore{opp: configuredOpportunity(t)}
	s := NewOpportunityService(store, refs, &fakeStageFinder{})

	res, err := s.PreviewPricing(5)
	if err != nil {
		t.Fatalf("PreviewPricing: %v", err)
	}
	if !res.FaturamentoTotal.Equal(decimal.NewFromInt(20000)) {
		t.Errorf("total esperado 20000, obteve %s", res.FaturamentoTotal)
	}
	if store.savedTotal != nil {
		t.Error("preview não deveria persistir nada")
	}
}
