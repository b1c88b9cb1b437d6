package render

import (
	"fmt"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	sheetName       = "Relatório"

	// headerRow leaves rows 1-2 for the title block and row 3 blank.
	headerRow   = 4
	maxColWidth = 60.0
)

type xlsxRenderer struct{}

// Render builds a single-sheet workbook: title and caption on rows 1-2, a
// styled header on row 4 and bordered data rows below, with column widths
// sized to the longest rendered value. Styling failures degrade to an
// unstyled dump rather than failing the export.
func (r *xlsxRenderer) Render(t report.Table, opts Options) (*Artifact, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("XLSX: erro ao fechar workbook: %v", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("erro ao criar planilha: %w", err)
	}

	setCell(f, 1, 1, opts.Title)
	setCell(f, 1, 2, opts.caption())

	if t.IsEmpty() {
		setCell(f, 1, headerRow, EmptyResultLine)
		return r.finish(f)
	}

	headerStyle, cellStyle := r.styles(f)

	for col, label := range t.Columns {
		setCell(f, col+1, headerRow, label)
	}
	if headerStyle != 0 {
		first, _ := excelize.CoordinatesToCellName(1, headerRow)
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow)
		if err := f.SetCellStyle(sheetName, first, last, headerStyle); err != nil {
			logger.Warn("XLSX: falha ao aplicar estilo de cabeçalho: %v", err)
		}
	}

	for i, row := range t.Rows {
		for col, key := range t.Columns {
			setCell(f, col+1, headerRow+1+i, row[key])
		}
	}
	if cellStyle != 0 && len(t.Rows) > 0 {
		first, _ := excelize.CoordinatesToCellName(1, headerRow+1)
		last, _ := excelize.CoordinatesToCellName(len(t.Columns), headerRow+len(t.Rows))
		if err := f.SetCellStyle(sheetName, first, last, cellStyle); err != nil {
			logger.Warn("XLSX: falha ao aplicar estilo de células: %v", err)
		}
	}

	r.autosize(f, t)
	return r.finish(f)
}

// styles returns the header and body style ids, or zeros when excelize
// refuses them (the unstyled-dump fallback).
func (r *xlsxRenderer) styles(f *excelize.File) (header, cell int) {
	borders := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borders,
	})
	if err != nil {
		logger.Warn("XLSX: falha ao criar estilo de cabeçalho, exportando sem estilos: %v", err)
		return 0, 0
	}

	cell, err = f.NewStyle(&excelize.Style{Border: borders})
	if err != nil {
		logger.Warn("XLSX: falha ao criar estilo de células, exportando sem bordas: %v", err)
		return header, 0
	}
	return header, cell
}

func (r *xlsxRenderer) autosize(f *excelize.File, t report.Table) {
	for i, col := range t.Columns {
		width := float64(utf8.RuneCountInString(col)) + 4
		for _, row := range t.Rows {
			if w := float64(utf8.RuneCountInString(row[col])) + 2; w > width {
				width = w
			}
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, width); err != nil {
			logger.Warn("XLSX: falha ao ajustar largura da coluna %s: %v", name, err)
		}
	}
}

func (r *xlsxRenderer) finish(f *excelize.File) (*Artifact, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gravar workbook: %w", err)
	}
	return &Artifact{Data: buf.Bytes(), ContentType: xlsxContentType}, nil
}

func setCell(f *excelize.File, col, row int, value string) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		logger.Warn("XLSX: falha ao gravar célula %s: %v", cell, err)
	}
}

func init() {
	MustRegister(FormatXLSX, func() Renderer { return &xlsxRenderer{} })
}
