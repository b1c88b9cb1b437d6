package report

import (
	"reflect"
	"testing"
)

func sampleTable() Table {
	return Normalize(
		[]string{"OAB", "Nome", "Email", "Subsecao"},
		[]map[string]any{
			{"OAB": "1234", "Nome": "Ana Souza", "Email": "ana@example.com", "Subsecao": "Dourados"},
			{"OAB": "5678", "Nome": "Bruno Lima", "Email": "bruno@example.com", "Subsecao": "Corumbá"},
		},
	)
}

func TestProject(t *testing.T) {
	tests := []struct {
		name      string
		fields    []string
		checkFunc func(t *testing.T, out Table)
	}{
		{
			name:   "requested order wins over source order",
			fields: []string{"Email", "OAB"},
			checkFunc: func(t *testing.T, out Table) {
				want := []string{"E-mail", "Número OAB"}
				if !reflect.DeepEqual(out.Columns, want) {
					t.Errorf("Expected columns %v, got %v", want, out.Columns)
				}
			},
		},
		{
			name:   "rows are re-keyed under labels",
			fields: []string{"Nome"},
			checkFunc: func(t *testing.T, out Table) {
				if out.Rows[0]["Nome Completo"] != "Ana Souza" {
					t.Errorf("Expected relabeled cell, got %v", out.Rows[0])
				}
				if _, ok := out.Rows[0]["Nome"]; ok {
					t.Error("Original key should not survive projection")
				}
			},
		},
		{
			name:   "unknown and absent fields are dropped silently",
			fields: []string{"Nome", "Inexistente", "DataNascimento"},
			checkFunc: func(t *testing.T, out Table) {
				// DataNascimento is in the catalog but not in the source
				want := []string{"Nome Completo"}
				if !reflect.DeepEqual(out.Columns, want) {
					t.Errorf("Expected columns %v, got %v", want, out.Columns)
				}
			},
		},
		{
			name:   "duplicate requests are deduplicated",
			fields: []string{"OAB", "OAB", "Nome"},
			checkFunc: func(t *testing.T, out Table) {
				if len(out.Columns) != 2 {
					t.Errorf("Expected 2 columns, got %v", out.Columns)
				}
			},
		},
		{
			name:   "empty request keeps every source column relabeled",
			fields: nil,
			checkFunc: func(t *testing.T, out Table) {
				want := []string{"Número OAB", "Nome Completo", "E-mail", "Subseção"}
				if !reflect.DeepEqual(out.Columns, want) {
					t.Errorf("Expected columns %v, got %v", want, out.Columns)
				}
			},
		},
		{
			name:   "row count is preserved",
			fields: []string{"OAB"},
			checkFunc: func(t *testing.T, out Table) {
				if len(out.Rows) != 2 {
					t.Errorf("Expected 2 rows, got %d", len(out.Rows))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sampleTable()
			tt.checkFunc(t, Project(src, tt.fields))

			// projection must not mutate the source
			if !reflect.DeepEqual(src, sampleTable()) {
				t.Error("Project mutated the source table")
			}
		})
	}
}

func TestProjectEmptyTable(t *testing.T) {
	out := Project(Empty(), []string{"Nome"})
	if !out.IsEmpty() {
		t.Error("Projecting an empty table should stay empty")
	}
	if len(out.Columns) != 0 {
		t.Errorf("Expected no columns, got %v", out.Columns)
	}
}

func TestFieldCatalog(t *testing.T) {
	defaults := DefaultFields()
	if len(defaults) == 0 {
		t.Fatal("DefaultFields returned nothing")
	}
	if defaults[0] != "OAB" {
		t.Errorf("Expected OAB first, got %s", defaults[0])
	}

	fd, ok := Field("Subsecao")
	if !ok {
		t.Fatal("Subsecao missing from catalog")
	}
	if fd.Label != "Subseção" {
		t.Errorf("Unexpected label: %s", fd.Label)
	}
	if fd.Width(true) <= fd.Width(false) {
		t.Error("Landscape width should exceed portrait width")
	}

	if Label("ColunaAdHoc") != "ColunaAdHoc" {
		t.Error("Unknown keys should label as themselves")
	}
}
