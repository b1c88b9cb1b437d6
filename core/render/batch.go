package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/flate"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

// ErrNoPartitions means a batch export found nothing to split on: the
// table was empty or the grouping column is absent. Callers surface it as
// "not found" instead of shipping an empty archive.
var ErrNoPartitions = errors.New("nenhuma subseção para exportar")

// Partition holds one group's sub-table in a batch export.
type Partition struct {
	Value string
	Table report.Table
}

// PartitionBy splits a table by the distinct non-empty values of the
// given column, one sub-table per value, sorted by Portuguese collation
// so archive members come out in the order users expect.
func PartitionBy(t report.Table, column string) []Partition {
	if !hasColumn(t, column) {
		return nil
	}

	groups := make(map[string]*report.Table)
	var order []string
	for _, row := range t.Rows {
		value := row[column]
		if value == "" {
			continue
		}
		sub, ok := groups[value]
		if !ok {
			sub = &report.Table{Columns: t.Columns}
			groups[value] = sub
			order = append(order, value)
		}
		sub.Rows = append(sub.Rows, row)
	}

	coll := collate.New(language.BrazilianPortuguese)
	sort.Slice(order, func(i, j int) bool {
		return coll.CompareString(order[i], order[j]) < 0
	})

	parts := make([]Partition, 0, len(order))
	for _, value := range order {
		parts = append(parts, Partition{Value: value, Table: *groups[value]})
	}
	return parts
}

func hasColumn(t report.Table, column string) bool {
	for _, col := range t.Columns {
		if col == column {
			return true
		}
	}
	return false
}

// renderBatch runs the PDF renderer once per subseção and packages every
// document into a single ZIP archive.
func renderBatch(t report.Table, opts Options, prefix string) (*Artifact, error) {
	parts := PartitionBy(t, report.GroupColumn)
	if len(parts) == 0 {
		return nil, ErrNoPartitions
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	renderer := &pdfRenderer{}
	for _, part := range parts {
		partOpts := opts
		partOpts.Scope = part.Value

		artifact, err := renderer.Render(part.Table, partOpts)
		if err != nil {
			return nil, fmt.Errorf("erro ao renderizar subseção %q: %w", part.Value, err)
		}

		name := fmt.Sprintf("%s_%s.pdf", prefix, sanitizeFilename(part.Value))
		entry, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("erro ao criar entrada %q no arquivo: %w", name, err)
		}
		if _, err := entry.Write(artifact.Data); err != nil {
			return nil, fmt.Errorf("erro ao gravar entrada %q no arquivo: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("erro ao finalizar arquivo ZIP: %w", err)
	}

	logger.Debug("Lote exportado: %d subseções no arquivo ZIP (%d bytes)", len(parts), buf.Len())
	return &Artifact{Data: buf.Bytes(), ContentType: "application/zip"}, nil
}
