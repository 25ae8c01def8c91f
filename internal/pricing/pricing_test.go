package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
)

func catalogWith(entries map[string]decimal.Decimal) CatalogLookup {
	return func(empresa, servico string) (*models.ReferencePrice, error) {
		valor, ok := entries[empresa+"|"+servico]
		if !ok {
			return nil, nil
		}
		return &models.ReferencePrice{
			NomeEmpresa: empresa,
			TipoServico: servico,
			ValorMensal: valor,
			Ativa:       true,
		}, nil
	}
}

func selection(nome string, selected bool, rows ...models.TeamAllocationRow) models.ServiceSelection {
	return models.ServiceSelection{ServicoNome: nome, Selected: selected, Equipes: rows}
}

func TestCalculate(t *testing.T) {
	acmeSTC := catalogWith(map[string]decimal.Decimal{
		"Acme|STC": decimal.NewFromInt(5000),
	})

	t.Run("totals quantities and prices the service", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true,
				models.TeamAllocationRow{TipoEquipe: "Equipe Leve", Quantidade: "2", Volumetria: "10"},
				models.TeamAllocationRow{TipoEquipe: "Equipe Pesada", Quantidade: "3", Volumetria: "5"},
			),
		}
		res, err := Calculate("Acme", sels, acmeSTC)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if len(res.Itens) != 1 {
			t.Fatalf("expected 1 line item, got %d", len(res.Itens))
		}
		item := res.Itens[0]
		if item.Quantidade != "5" {
			t.Errorf("quantidade = %q, want \"5\"", item.Quantidade)
		}
		if item.Volumetria != "15,00" {
			t.Errorf("volumetria = %q, want \"15,00\"", item.Volumetria)
		}
		if item.PrecoUnitario != "R$ 5.000,00" {
			t.Errorf("preço unitário = %q, want \"R$ 5.000,00\"", item.PrecoUnitario)
		}
		if item.PrecoTotal != "R$ 25.000,00" {
			t.Errorf("preço total = %q, want \"R$ 25.000,00\"", item.PrecoTotal)
		}
		if !res.FaturamentoTotal.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("faturamento = %s, want 25000", res.FaturamentoTotal)
		}
	})

	t.Run("missing reference entry is a soft failure", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true, models.TeamAllocationRow{Quantidade: "2", Volumetria: "10"}),
		}
		res, err := Calculate("Acme", sels, catalogWith(nil))
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if len(res.Itens) != 1 {
			t.Fatalf("expected placeholder line item, got %d items", len(res.Itens))
		}
		item := res.Itens[0]
		if item.PrecoTotal != RefNotFound {
			t.Errorf("preço total = %q, want %q", item.PrecoTotal, RefNotFound)
		}
		if item.Quantidade != ValueUnavailable || item.Volumetria != ValueUnavailable {
			t.Errorf("expected %q placeholders, got %q/%q", ValueUnavailable, item.Quantidade, item.Volumetria)
		}
		if !res.FaturamentoTotal.IsZero() {
			t.Errorf("faturamento = %s, want 0", res.FaturamentoTotal)
		}
	})

	t.Run("unpriced service contributes zero alongside priced ones", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true, models.TeamAllocationRow{Quantidade: "2"}),
			selection("Plantão", true, models.TeamAllocationRow{Quantidade: "4"}),
		}
		res, err := Calculate("Acme", sels, acmeSTC)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if len(res.Itens) != 2 {
			t.Fatalf("expected 2 line items, got %d", len(res.Itens))
		}
		if !res.FaturamentoTotal.Equal(decimal.NewFromInt(10000)) {
			t.Errorf("faturamento = %s, want 10000", res.FaturamentoTotal)
		}
	})

	t.Run("deselected service is excluded even with rows", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", false, models.TeamAllocationRow{Quantidade: "2"}),
		}
		res, err := Calculate("Acme", sels, acmeSTC)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if len(res.Itens) != 0 {
			t.Errorf("expected no line items, got %d", len(res.Itens))
		}
		if !res.FaturamentoTotal.IsZero() {
			t.Errorf("faturamento = %s, want 0", res.FaturamentoTotal)
		}
	})

	t.Run("empty reference company fails before any work", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true, models.TeamAllocationRow{Quantidade: "2"}),
		}
		_, err := Calculate("  ", sels, acmeSTC)
		if !errors.Is(err, ErrMissingReferenceCompany) {
			t.Fatalf("expected ErrMissingReferenceCompany, got %v", err)
		}
	})

	t.Run("non-numeric quantity aborts everything", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true,
				models.TeamAllocationRow{Quantidade: "2"},
				models.TeamAllocationRow{Quantidade: "abc"},
			),
		}
		_, err := Calculate("Acme", sels, acmeSTC)
		var qErr *InvalidQuantityError
		if !errors.As(err, &qErr) {
			t.Fatalf("expected InvalidQuantityError, got %v", err)
		}
		if qErr.Servico != "STC" {
			t.Errorf("error names service %q, want STC", qErr.Servico)
		}
	})

	t.Run("non-numeric volumetry aborts everything", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true, models.TeamAllocationRow{Quantidade: "1", Volumetria: "dez"}),
		}
		_, err := Calculate("Acme", sels, acmeSTC)
		var vErr *InvalidVolumetryError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected InvalidVolumetryError, got %v", err)
		}
	})

	t.Run("empty fields count as zero", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true,
				models.TeamAllocationRow{Quantidade: "", Volumetria: ""},
				models.TeamAllocationRow{Quantidade: "3", Volumetria: "1,5"},
			),
		}
		res, err := Calculate("Acme", sels, acmeSTC)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		item := res.Itens[0]
		if item.QuantidadeTotal != 3 {
			t.Errorf("quantidade = %d, want 3", item.QuantidadeTotal)
		}
		if item.Volumetria != "1,50" {
			t.Errorf("volumetria = %q, want \"1,50\"", item.Volumetria)
		}
	})

	t.Run("comma volumetry is summed as decimal", func(t *testing.T) {
		sels := []models.ServiceSelection{
			selection("STC", true,
				models.TeamAllocationRow{Quantidade: "1", Volumetria: "1.234,5"},
				models.TeamAllocationRow{Quantidade: "1", Volumetria: "0,5"},
			),
		}
		// "1.234,5" normalizes to "1.234.5" which is not a number; the
		// form only ever produced plain comma decimals, so grouped input
		// is rejected like any other junk.
		_, err := Calculate("Acme", sels, acmeSTC)
		var vErr *InvalidVolumetryError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected InvalidVolumetryError for grouped input, got %v", err)
		}

		sels[0].Equipes[0].Volumetria = "1234,5"
		res, err := Calculate("Acme", sels, acmeSTC)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if res.Itens[0].Volumetria != "1.235,00" {
			t.Errorf("volumetria = %q, want \"1.235,00\"", res.Itens[0].Volumetria)
		}
	})

	t.Run("services are priced in selection order", func(t *testing.T) {
		cat := catalogWith(map[string]decimal.Decimal{
			"Acme|STC":     decimal.NewFromInt(5000),
			"Acme|Plantão": decimal.NewFromInt(2000),
		})
		sels := []models.ServiceSelection{
			selection("Plantão", true, models.TeamAllocationRow{Quantidade: "1"}),
			selection("STC", true, models.TeamAllocationRow{Quantidade: "1"}),
		}
		res, err := Calculate("Acme", sels, cat)
		if err != nil {
			t.Fatalf("Calculate: %v", err)
		}
		if res.Itens[0].Servico != "Plantão" || res.Itens[1].Servico != "STC" {
			t.Errorf("unexpected order: %q then %q", res.Itens[0].Servico, res.Itens[1].Servico)
		}
		if !res.FaturamentoTotal.Equal(decimal.NewFromInt(7000)) {
			t.Errorf("faturamento = %s, want 7000", res.FaturamentoTotal)
		}
	})

	t.Run("lookup error is fatal", func(t *testing.T) {
		boom := errors.New("db down")
		failing := func(string, string) (*models.ReferencePrice, error) { return nil, boom }
		sels := []models.ServiceSelection{
			selection("STC", true, models.TeamAllocationRow{Quantidade: "1"}),
		}
		_, err := Calculate("Acme", sels, failing)
		if !errors.Is(err, boom) {
			t.Fatalf("expected wrapped lookup error, got %v", err)
		}
	})
}

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"5000", "R$ 5.000,00"},
		{"25000", "R$ 25.000,00"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"999.9", "R$ 999,90"},
		{"-12.5", "R$ -12,50"},
	}
	for _, c := range cases {
		v, err := decimal.NewFromString(c.in)
		if err != nil {
			t.Fatalf("bad case %q: %v", c.in, err)
		}
		if got := FormatCurrency(v); got != c.want {
			t.Errorf("FormatCurrency(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}
