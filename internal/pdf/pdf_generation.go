package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"

	"dolpcrm/internal/pricing"
)

// Generator is the export surface, kept as an interface so handlers can be
// tested with a fake.
type Generator interface {
	GenerateExecutiveSummary(data SummaryData) (string, error)
}

// DocumentGenerator renders the executive-summary PDF for an opportunity.
type DocumentGenerator struct {
	RootDir  string // storage root, e.g. "./files"
	FontPath string // TTF path, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

// SummaryData carries everything the summary page needs; amounts arrive
// already formatted in pt-BR.
type SummaryData struct {
	NumeroOportunidade string
	Titulo             string
	Cliente            string
	EmpresaReferencia  string
	Regional           string
	Polo               string
	TempoContratoMeses int
	QuantidadeBases    int
	Bases              []string

	Itens            []pricing.LineItem
	FaturamentoTotal string

	NumeroEdital     string
	Modalidade       string
	ContatoPrincipal string

	CreatedAt time.Time
	Filename  string // basename only; generated when empty
}

func NewDocumentGenerator(rootDir, fontPath string) *DocumentGenerator {
	return &DocumentGenerator{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *DocumentGenerator) GenerateExecutiveSummary(data SummaryData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("sumario_%s.pdf", data.NumeroOportunidade)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Sumário Executivo %s", data.NumeroOportunidade), false)
	pdf.SetAuthor("Dolp Engenharia", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	// header
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "SUMÁRIO EXECUTIVO", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s  —  %s", data.NumeroOportunidade, data.CreatedAt.Format("02/01/2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// identification
	g.sectionTitle(pdf, "Identificação")
	g.kvLine(pdf, "Oportunidade", data.Titulo)
	g.kvLine(pdf, "Cliente", data.Cliente)
	if data.NumeroEdital != "" {
		g.kvLine(pdf, "Edital", data.NumeroEdital)
	}
	if data.Modalidade != "" {
		g.kvLine(pdf, "Modalidade", data.Modalidade)
	}
	if data.ContatoPrincipal != "" {
		g.kvLine(pdf, "Contato", data.ContatoPrincipal)
	}
	pdf.Ln(2)
	g.hr(pdf)

	// contract outline
	g.sectionTitle(pdf, "Análise Prévia")
	g.kvLine(pdf, "Empresa referência", orDash(data.EmpresaReferencia))
	g.kvLine(pdf, "Regional / Polo", orDash(joinPair(data.Regional, data.Polo)))
	g.kvLine(pdf, "Tempo de contrato", fmt.Sprintf("%d meses", data.TempoContratoMeses))
	g.kvLine(pdf, "Bases", fmt.Sprintf("%d", data.QuantidadeBases))
	for _, b := range data.Bases {
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(45, 5, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, "• "+b, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	g.hr(pdf)

	// pricing table
	g.sectionTitle(pdf, "Precificação")
	g.pricingTable(pdf, data.Itens)
	pdf.Ln(2)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(130, 8, "Faturamento estimado", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, data.FaturamentoTotal, "T", 1, "R", false, 0, "")

	// page numbers
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Pág. %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(filepath.Base(absPath)), nil
}

func (g *DocumentGenerator) pricingTable(pdf *gofpdf.Fpdf, itens []pricing.LineItem) {
	type col struct {
		title string
		width float64
		align string
	}
	cols := []col{
		{"Serviço", 60, "L"},
		{"Qtd.", 15, "C"},
		{"Volumetria", 25, "R"},
		{"Preço unit.", 35, "R"},
		{"Total", 35, "R"},
	}

	pdf.SetFont(g.fontName, "B", 10)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, c.title, "B", 0, c.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(g.fontName, "", 10)
	for _, it := range itens {
		cells := []string{it.Servico, it.Quantidade, it.Volumetria, it.PrecoUnitario, it.PrecoTotal}
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, cells[i], "", 0, c.align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(itens) == 0 {
		pdf.CellFormat(170, 6, "Nenhum serviço selecionado", "", 1, "C", false, 0, "")
	}
}

func (g *DocumentGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *DocumentGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *DocumentGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *DocumentGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // keep writes inside RootDir
	return filepath.Join(g.RootDir, filename), nil
}

func (g *DocumentGenerator) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinPair(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " / " + b
	}
}
