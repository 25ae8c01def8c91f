package models

import "testing"

func TestServiceSelectionsRoundTrip(t *testing.T) {
	op := &Opportunity{ID: 1}
	in := []ServiceSelection{
		{
			ServicoNome: "Poda de Árvores",
			Selected:    true,
			Equipes: []TeamAllocationRow{
				{TipoEquipe: "Leve", Quantidade: "3", Volumetria: "12,5", Base: "Base Sul"},
			},
		},
		{ServicoNome: "Linha Morta", Selected: false},
	}
	if err := op.SetServiceSelections(in); err != nil {
		t.Fatalf("SetServiceSelections: %v", err)
	}

	out, err := op.ServiceSelections()
	if err != nil {
		t.Fatalf("ServiceSelections: %v", err)
	}
	// deselected services are dropped on write
	if len(out) != 1 {
		t.Fatalf("esperava 1 serviço, obteve %d", len(out))
	}
	got := out[0]
	if !got.Selected {
		t.Error("serviço decodificado deveria voltar marcado")
	}
	if got.ServicoNome != "Poda de Árvores" {
		t.Errorf("nome errado: %q", got.ServicoNome)
	}
	if len(got.Equipes) != 1 || got.Equipes[0].Quantidade != "3" || got.Equipes[0].Volumetria != "12,5" {
		t.Errorf("equipes não preservadas: %+v", got.Equipes)
	}
}

func TestServiceSelectionsEmptyAndInvalid(t *testing.T) {
	op := &Opportunity{ID: 2}
	sels, err := op.ServiceSelections()
	if err != nil || sels != nil {
		t.Errorf("blob vazio deveria decodificar para nil, obteve %v, %v", sels, err)
	}

	op.ServicosData = "{corrompido"
	if _, err := op.ServiceSelections(); err == nil {
		t.Error("blob corrompido deveria falhar")
	}
}

func TestBaseNamesRoundTrip(t *testing.T) {
	op := &Opportunity{ID: 3}
	if err := op.SetBaseNames([]string{"Base Norte", "Base Sul"}); err != nil {
		t.Fatalf("SetBaseNames: %v", err)
	}
	names, err := op.BaseNames()
	if err != nil {
		t.Fatalf("BaseNames: %v", err)
	}
	if len(names) != 2 || names[0] != "Base Norte" {
		t.Errorf("bases inesperadas: %v", names)
	}
}

func TestMovementSummary(t *testing.T) {
	got := MovementSummary("Oportunidades", "Histórico", ResultadoReprovado)
	want := "Movida de 'Oportunidades' para 'Histórico' - Resultado: Reprovado"
	if got != want {
		t.Errorf("MovementSummary = %q, esperava %q", got, want)
	}
}
