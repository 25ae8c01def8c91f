// Package pricing derives costed line items and an estimated contract value
// from an opportunity's service configuration and a reference-company price
// catalog. The aggregation is a pure function over plain value objects so it
// can run the same way from the HTTP layer, the PDF export or tests.
package pricing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"dolpcrm/internal/models"
)

// Placeholders shown when a service has no active reference entry.
const (
	ValueUnavailable = "---"
	PriceUnavailable = "N/A"
	RefNotFound      = "Ref. não encontrada"
)

// ErrMissingReferenceCompany means no reference company was chosen; nothing
// is computed.
var ErrMissingReferenceCompany = errors.New("empresa referência não selecionada")

// InvalidQuantityError aborts the whole aggregation: some team row of the
// named service has a non-numeric quantity.
type InvalidQuantityError struct {
	Servico string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantidade inválida no serviço '%s': deve ser um número", e.Servico)
}

// InvalidVolumetryError aborts the whole aggregation: some team row of the
// named service has a non-numeric volumetry.
type InvalidVolumetryError struct {
	Servico string
}

func (e *InvalidVolumetryError) Error() string {
	return fmt.Sprintf("volumetria inválida no serviço '%s': deve ser um número", e.Servico)
}

// CatalogLookup resolves the active reference price for a (company, service
// type) pair. A (nil, nil) return means no active entry exists, which is a
// soft per-service condition, not a failure.
type CatalogLookup func(nomeEmpresa, tipoServico string) (*models.ReferencePrice, error)

// LineItem is one computed row of the pricing table. The formatted columns
// match the executive-summary grid of the desktop application; the numeric
// fields feed reports and the PDF export.
type LineItem struct {
	Servico       string `json:"servico"`
	Quantidade    string `json:"quantidade"`
	Volumetria    string `json:"volumetria"`
	PrecoUnitario string `json:"preco_unitario"`
	PrecoTotal    string `json:"preco_total"`

	RefEncontrada   bool            `json:"ref_encontrada"`
	QuantidadeTotal int             `json:"-"`
	VolumetriaTotal decimal.Decimal `json:"-"`
	ValorUnitario   decimal.Decimal `json:"-"`
	ValorTotal      decimal.Decimal `json:"-"`
}

// Result is the outcome of one aggregation: the full replacement set of line
// items plus the grand total. Services without a reference entry appear in
// Itens but contribute zero to FaturamentoTotal.
type Result struct {
	Itens            []LineItem      `json:"itens"`
	FaturamentoTotal decimal.Decimal `json:"faturamento_total"`
}

// Calculate prices the selected services of an opportunity against the given
// reference company.
//
// Deselected services are skipped even if they still carry rows. A service
// whose reference entry is missing yields a placeholder line item and is
// excluded from the total. A non-numeric quantity or volumetry anywhere in a
// selected service aborts the entire aggregation; callers must not persist
// anything in that case.
func Calculate(nomeEmpresa string, selections []models.ServiceSelection, lookup CatalogLookup) (*Result, error) {
	if strings.TrimSpace(nomeEmpresa) == "" {
		return nil, ErrMissingReferenceCompany
	}

	res := &Result{FaturamentoTotal: decimal.Zero}
	for _, sel := range selections {
		if !sel.Selected {
			continue
		}

		ref, err := lookup(nomeEmpresa, sel.ServicoNome)
		if err != nil {
			return nil, fmt.Errorf("consultando referência para '%s': %w", sel.ServicoNome, err)
		}
		if ref == nil {
			res.Itens = append(res.Itens, LineItem{
				Servico:       sel.ServicoNome,
				Quantidade:    ValueUnavailable,
				Volumetria:    ValueUnavailable,
				PrecoUnitario: PriceUnavailable,
				PrecoTotal:    RefNotFound,
			})
			continue
		}

		totalQtd := 0
		totalVol := decimal.Zero
		for _, row := range sel.Equipes {
			q, err := parseQuantity(row.Quantidade)
			if err != nil {
				return nil, &InvalidQuantityError{Servico: sel.ServicoNome}
			}
			v, err := parseVolumetry(row.Volumetria)
			if err != nil {
				return nil, &InvalidVolumetryError{Servico: sel.ServicoNome}
			}
			totalQtd += q
			totalVol = totalVol.Add(v)
		}

		unitario := ref.ValorMensal
		totalServico := unitario.Mul(decimal.NewFromInt(int64(totalQtd)))
		res.FaturamentoTotal = res.FaturamentoTotal.Add(totalServico)

		res.Itens = append(res.Itens, LineItem{
			Servico:         sel.ServicoNome,
			Quantidade:      strconv.Itoa(totalQtd),
			Volumetria:      FormatNumber(totalVol),
			PrecoUnitario:   FormatCurrency(unitario),
			PrecoTotal:      FormatCurrency(totalServico),
			RefEncontrada:   true,
			QuantidadeTotal: totalQtd,
			VolumetriaTotal: totalVol,
			ValorUnitario:   unitario,
			ValorTotal:      totalServico,
		})
	}
	return res, nil
}

// parseQuantity parses a team count typed as free text. Empty counts as 0.
func parseQuantity(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// parseVolumetry parses a workload figure typed as free text, accepting the
// Brazilian comma as decimal separator. Empty counts as 0.
func parseVolumetry(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}
