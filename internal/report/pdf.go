package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fleet-insights-go/internal/types"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth    = 297.0 // A4 landscape, mm
	pageHeight   = 210.0
	margin       = 12.0
	contentWidth = pageWidth - 2*margin
)

// pdfStyler keeps named styles and the flowing Y position of the page.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	tr         func(string) string
	styles     map[string]func()
	lineHeight float64
	currentY   float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		styles:     make(map[string]func()),
		lineHeight: 6,
		currentY:   margin,
	}
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	s.styles["high"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 0, 0)
	}
	s.styles["media"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetTextColor(200, 120, 0)
	}
	s.styles["low"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(0, 120, 0)
	}
	return s
}

func (s *pdfStyler) apply(style string) {
	if fn, ok := s.styles[style]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(needed float64) bool {
	if s.currentY+needed > pageHeight-margin {
		s.pdf.AddPage()
		s.currentY = margin
		return true
	}
	return false
}

func (s *pdfStyler) paragraph(text, style, align string) {
	s.apply(style)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(margin, s.currentY)
	s.pdf.MultiCell(contentWidth, s.lineHeight, s.tr(text), "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

var (
	attentionHeaders = []string{"Vehicle", "Model", "Group", "Priority", "Score", "Problems"}
	attentionWidths  = []float64{0.12, 0.14, 0.12, 0.08, 0.06, 0.48}
)

func (s *pdfStyler) tableHeader() {
	s.apply("tableHeader")
	x := margin
	for i, h := range attentionHeaders {
		w := attentionWidths[i] * contentWidth
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(w, s.lineHeight, h, "1", 0, "C", true, 0, "")
		x += w
	}
	s.currentY += s.lineHeight
}

func (s *pdfStyler) row(e types.AttentionEntry) {
	if s.checkAddPage(s.lineHeight) {
		s.tableHeader()
	}
	cells := []string{
		e.Vehicle,
		strings.TrimSpace(e.Brand + " " + e.Model),
		e.Group,
		string(e.Priority),
		fmt.Sprintf("%d", e.Score),
		strings.Join(e.Problems, "; "),
	}
	x := margin
	for i, c := range cells {
		w := attentionWidths[i] * contentWidth
		if i == 3 {
			s.apply(string(e.Priority))
		} else {
			s.apply("tableCell")
		}
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(w, s.lineHeight, s.tr(fit(s.pdf, c, w)), "1", 0, "L", false, 0, "")
		x += w
	}
	s.currentY += s.lineHeight
}

// fit truncates text so it fits a cell of width w with the current font.
func fit(pdf *gofpdf.Fpdf, text string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	r := []rune(text)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}

// WriteAttentionPDF renders the attention report as a landscape A4 table.
func WriteAttentionPDF(w io.Writer, entries []types.AttentionEntry, generatedAt time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetTitle("Fleet attention report", true)
	pdf.AddPage()

	s := newPDFStyler(pdf)
	s.paragraph("Fleet attention report", "h1", "C")
	s.paragraph(fmt.Sprintf("Generated %s - %d vehicles need attention",
		generatedAt.Format("2006-01-02 15:04"), len(entries)), "normal", "L")
	s.currentY += 3

	if len(entries) == 0 {
		s.paragraph("No vehicles need attention.", "normal", "L")
	} else {
		s.tableHeader()
		for _, e := range entries {
			s.row(e)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}
