package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

// LegalNotice is printed, wrapped, at the bottom of every page.
const LegalNotice = "Documento de uso interno. As informações pessoais contidas neste " +
	"relatório são protegidas pela Lei Geral de Proteção de Dados (Lei nº 13.709/2018); " +
	"sua reprodução ou divulgação a terceiros sem autorização é vedada."

// Page geometry in millimeters for A4 in both orientations. The column
// width presets in the field catalog are sized to fill each content width
// exactly, so the layout stays stable and printable.
const (
	marginSide   = 10
	marginTop    = 30 // clears the repeating header block
	marginBottom = 25 // reserves room for the repeating footer

	headerLineH = 4.5 // table header text line height
	bodyLineH   = 3.5 // body text line height, 7pt wrapped cells
	cellPad     = 1
)

type pdfRenderer struct{}

// Render produces the paginated document. The table arrives unprojected:
// field selection is resolved here against the catalog so that column
// widths and labels always come from the same descriptor.
//
// A failure inside gofpdf degrades to a minimal single-page document
// rather than a failed export.
func (r *pdfRenderer) Render(t report.Table, opts Options) (*Artifact, error) {
	artifact, err := r.render(t, opts)
	if err == nil {
		return artifact, nil
	}
	logger.Warn("PDF: geração completa falhou, emitindo documento mínimo: %v", err)
	return r.renderMinimal(opts, err)
}

func (r *pdfRenderer) render(t report.Table, opts Options) (*Artifact, error) {
	landscape := opts.Orientation != Portrait

	orientation := "L"
	if !landscape {
		orientation = "P"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()

	pdf.SetMargins(marginSide, marginTop, marginSide)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")

	r.installHeader(pdf, tr, opts, pageW)
	r.installFooter(pdf, tr, pageW, pageH)
	pdf.AddPage()

	if t.IsEmpty() {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(pageW-2*marginSide, 8, tr(EmptyResultLine), "", 1, "L", false, 0, "")
		return r.output(pdf)
	}

	fields := r.resolveFields(opts.Fields)
	widths := make([]float64, len(fields))
	labels := make([]string, len(fields))
	for i, fd := range fields {
		widths[i] = fd.Width(landscape)
		labels[i] = fd.Label
	}

	bottom := pageH - marginBottom
	r.drawTableHeader(pdf, tr, labels, widths)

	for n, row := range t.Rows {
		cells := make([][]string, len(fields))
		rowH := bodyLineH + 2*cellPad
		pdf.SetFont("Arial", "", 7)
		for i, fd := range fields {
			cells[i] = pdf.SplitText(tr(row[fd.Key]), widths[i]-2*cellPad)
			if h := float64(len(cells[i]))*bodyLineH + 2*cellPad; h > rowH {
				rowH = h
			}
		}

		if pdf.GetY()+rowH > bottom {
			pdf.AddPage()
			r.drawTableHeader(pdf, tr, labels, widths)
			pdf.SetFont("Arial", "", 7)
		}

		r.drawRow(pdf, cells, widths, rowH, n%2 == 1)
	}

	return r.output(pdf)
}

// installHeader registers the repeating page header: logo top-left,
// centered bold title and a right-aligned scope/timestamp line.
func (r *pdfRenderer) installHeader(pdf *gofpdf.Fpdf, tr func(string) string, opts Options, pageW float64) {
	logoType := imageType(opts.Logo)
	if logoType != "" {
		pdf.RegisterImageOptionsReader("logo", gofpdf.ImageOptions{ImageType: logoType}, bytes.NewReader(opts.Logo))
	}

	pdf.SetHeaderFuncMode(func() {
		if logoType != "" {
			pdf.ImageOptions("logo", marginSide, 6, 18, 0, false, gofpdf.ImageOptions{ImageType: logoType}, 0, "")
		}

		pdf.SetY(9)
		pdf.SetFont("Arial", "B", 13)
		pdf.CellFormat(pageW-2*marginSide, 7, tr(opts.Title), "", 1, "C", false, 0, "")

		pdf.SetFont("Arial", "", 9)
		pdf.CellFormat(pageW-2*marginSide, 5, tr(opts.caption()), "", 1, "R", false, 0, "")

		pdf.SetDrawColor(31, 78, 95)
		pdf.Line(marginSide, 26, pageW-marginSide, 26)
		pdf.SetY(marginTop)
	}, true)
}

// installFooter registers the repeating footer: page counter plus the
// legal notice wrapped within the content width, pinned above the bottom
// edge of every page.
func (r *pdfRenderer) installFooter(pdf *gofpdf.Fpdf, tr func(string) string, pageW, pageH float64) {
	pdf.SetFooterFunc(func() {
		pdf.SetY(pageH - 20)
		pdf.SetFont("Arial", "I", 7)
		pdf.SetTextColor(90, 90, 90)
		pdf.MultiCell(pageW-2*marginSide, 3, tr(LegalNotice), "", "C", false)
		pdf.CellFormat(pageW-2*marginSide, 4,
			fmt.Sprintf("Página %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
}

// resolveFields returns the catalog descriptors for an explicit selection,
// or the canonical nine-column layout when none survives filtering.
func (r *pdfRenderer) resolveFields(requested []string) []report.FieldDescriptor {
	keys := requested
	if len(keys) == 0 {
		keys = report.DefaultFields()
	}

	var fields []report.FieldDescriptor
	for _, key := range keys {
		if fd, ok := report.Field(key); ok {
			fields = append(fields, fd)
		}
	}
	if len(fields) == 0 {
		for _, key := range report.DefaultFields() {
			fd, _ := report.Field(key)
			fields = append(fields, fd)
		}
	}
	return fields
}

// drawTableHeader paints the column header band; it is repeated after
// every page break.
func (r *pdfRenderer) drawTableHeader(pdf *gofpdf.Fpdf, tr func(string) string, labels []string, widths []float64) {
	pdf.SetFont("Arial", "B", 8)

	h := headerLineH + 2*cellPad
	lines := make([][]string, len(labels))
	for i, label := range labels {
		lines[i] = pdf.SplitText(tr(label), widths[i]-2*cellPad)
		if lh := float64(len(lines[i]))*headerLineH + 2*cellPad; lh > h {
			h = lh
		}
	}

	y := pdf.GetY()
	x := float64(marginSide)
	pdf.SetFillColor(31, 78, 95)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(0, 0, 0)

	for i := range labels {
		pdf.Rect(x, y, widths[i], h, "F")
		pdf.Rect(x, y, widths[i], h, "D")
		textH := float64(len(lines[i])) * headerLineH
		pdf.SetXY(x+cellPad, y+(h-textH)/2)
		for _, line := range lines[i] {
			pdf.CellFormat(widths[i]-2*cellPad, headerLineH, line, "", 2, "C", false, 0, "")
		}
		x += widths[i]
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginSide, y+h)
}

// drawRow paints one body row with bordered, wrapped cells and the
// alternating background band.
func (r *pdfRenderer) drawRow(pdf *gofpdf.Fpdf, cells [][]string, widths []float64, rowH float64, banded bool) {
	y := pdf.GetY()
	x := float64(marginSide)

	for i, lines := range cells {
		if banded {
			pdf.SetFillColor(240, 244, 246)
			pdf.Rect(x, y, widths[i], rowH, "F")
		}
		pdf.Rect(x, y, widths[i], rowH, "D")
		pdf.SetXY(x+cellPad, y+cellPad)
		for _, line := range lines {
			pdf.CellFormat(widths[i]-2*cellPad, bodyLineH, line, "", 2, "L", false, 0, "")
		}
		x += widths[i]
	}

	pdf.SetXY(marginSide, y+rowH)
}

// renderMinimal is the last-resort fallback: header text, the empty-result
// line and the legal notice, with no table and no logo.
func (r *pdfRenderer) renderMinimal(opts Options, cause error) (*Artifact, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, tr(opts.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 8, tr(EmptyResultLine), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "I", 7)
	pdf.MultiCell(0, 3, tr(LegalNotice), "", "C", false)

	artifact, err := r.output(pdf)
	if err != nil {
		return nil, fmt.Errorf("PDF mínimo também falhou (%v) após: %w", err, cause)
	}
	return artifact, nil
}

func (r *pdfRenderer) output(pdf *gofpdf.Fpdf) (*Artifact, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gravar PDF: %w", err)
	}
	return &Artifact{Data: buf.Bytes(), ContentType: "application/pdf"}, nil
}

// imageType sniffs the logo bytes; gofpdf needs the format name and the
// asset on disk may be either PNG or JPEG.
func imageType(data []byte) string {
	switch {
	case len(data) > 8 && bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		return "PNG"
	case len(data) > 3 && data[0] == 0xFF && data[1] == 0xD8:
		return "JPG"
	default:
		return ""
	}
}

func init() {
	MustRegister(FormatPDF, func() Renderer { return &pdfRenderer{} })
}
