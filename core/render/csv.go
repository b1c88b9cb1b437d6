package render

import (
	"bytes"
	"encoding/csv"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

// EmptyResultLine is the single informational line emitted instead of a
// header-only file when a report matches no records.
const EmptyResultLine = "Nenhum registro encontrado"

// utf8BOM keeps accented characters intact when the file is opened
// directly in Excel.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type csvRenderer struct{}

// Render encodes the projected table as semicolon-delimited UTF-8 text
// with a BOM. It never fails: a write error (only possible mid-encode on
// pathological input) degrades to whatever was buffered so far.
func (r *csvRenderer) Render(t report.Table, opts Options) (*Artifact, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	if t.IsEmpty() {
		buf.WriteString(EmptyResultLine + "\n")
		return &Artifact{Data: buf.Bytes(), ContentType: "text/csv; charset=utf-8"}, nil
	}

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(t.Columns); err != nil {
		logger.Warn("CSV: falha ao escrever cabeçalho, exportando conteúdo parcial: %v", err)
		return &Artifact{Data: buf.Bytes(), ContentType: "text/csv; charset=utf-8"}, nil
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			record[j] = row[col]
		}
		if err := w.Write(record); err != nil {
			logger.Warn("CSV: falha na linha %d, exportando conteúdo parcial: %v", i+1, err)
			break
		}
	}
	w.Flush()

	return &Artifact{Data: buf.Bytes(), ContentType: "text/csv; charset=utf-8"}, nil
}

func init() {
	MustRegister(FormatCSV, func() Renderer { return &csvRenderer{} })
}
