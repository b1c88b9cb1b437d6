package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
)

func batchTable() report.Table {
	return report.Table{
		Columns: []string{"OAB", "Nome", "Subsecao"},
		Rows: []map[string]string{
			{"OAB": "1", "Nome": "Ana", "Subsecao": "Dourados"},
			{"OAB": "2", "Nome": "Bia", "Subsecao": "Campo Grande"},
			{"OAB": "3", "Nome": "Caio", "Subsecao": "Dourados"},
			{"OAB": "4", "Nome": "Davi", "Subsecao": ""},
		},
	}
}

func TestPartitionBy(t *testing.T) {
	parts := PartitionBy(batchTable(), report.GroupColumn)

	if len(parts) != 2 {
		t.Fatalf("Expected 2 partitions, got %d", len(parts))
	}

	// Portuguese collation: Campo Grande before Dourados
	if parts[0].Value != "Campo Grande" || parts[1].Value != "Dourados" {
		t.Errorf("Unexpected partition order: %s, %s", parts[0].Value, parts[1].Value)
	}
	if len(parts[0].Table.Rows) != 1 {
		t.Errorf("Campo Grande should hold 1 row, got %d", len(parts[0].Table.Rows))
	}
	if len(parts[1].Table.Rows) != 2 {
		t.Errorf("Dourados should hold 2 rows, got %d", len(parts[1].Table.Rows))
	}
	if !reflect.DeepEqual(parts[0].Table.Columns, batchTable().Columns) {
		t.Error("Partitions must keep the source columns")
	}

	// the row with an empty group value is dropped
	total := len(parts[0].Table.Rows) + len(parts[1].Table.Rows)
	if total != 3 {
		t.Errorf("Expected 3 grouped rows, got %d", total)
	}
}

func TestPartitionByMissingColumn(t *testing.T) {
	table := report.Table{Columns: []string{"OAB"}, Rows: []map[string]string{{"OAB": "1"}}}
	if parts := PartitionBy(table, report.GroupColumn); parts != nil {
		t.Errorf("Expected nil partitions, got %d", len(parts))
	}
}

func TestRenderBatch(t *testing.T) {
	artifact, err := renderBatch(batchTable(), testOptions(), "Relatorio_Lista_Simples")
	if err != nil {
		t.Fatalf("renderBatch failed: %v", err)
	}
	if artifact.ContentType != "application/zip" {
		t.Errorf("Unexpected content type: %s", artifact.ContentType)
	}

	zr, err := zip.NewReader(bytes.NewReader(artifact.Data), int64(len(artifact.Data)))
	if err != nil {
		t.Fatalf("Artifact is not a readable zip: %v", err)
	}

	if len(zr.File) != 2 {
		t.Fatalf("Expected 2 archive members, got %d", len(zr.File))
	}

	wantNames := []string{
		"Relatorio_Lista_Simples_Campo_Grande.pdf",
		"Relatorio_Lista_Simples_Dourados.pdf",
	}
	for i, f := range zr.File {
		if f.Name != wantNames[i] {
			t.Errorf("Member %d: expected %q, got %q", i, wantNames[i], f.Name)
		}

		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open member %q: %v", f.Name, err)
		}
		head := make([]byte, 4)
		if _, err := rc.Read(head); err != nil {
			t.Fatalf("Failed to read member %q: %v", f.Name, err)
		}
		rc.Close()
		if string(head) != "%PDF" {
			t.Errorf("Member %q is not a PDF", f.Name)
		}
	}
}

func TestRenderBatchNoPartitions(t *testing.T) {
	_, err := renderBatch(report.Empty(), testOptions(), "Relatorio")
	if !errors.Is(err, ErrNoPartitions) {
		t.Errorf("Expected ErrNoPartitions, got %v", err)
	}
}
