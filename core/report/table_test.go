package report

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		columns   []string
		rows      []map[string]any
		checkFunc func(t *testing.T, table Table)
	}{
		{
			name:    "explicit column order is preserved",
			columns: []string{"B", "A"},
			rows: []map[string]any{
				{"A": 1, "B": 2},
			},
			checkFunc: func(t *testing.T, table Table) {
				if !reflect.DeepEqual(table.Columns, []string{"B", "A"}) {
					t.Errorf("Expected columns [B A], got %v", table.Columns)
				}
				if table.Rows[0]["A"] != "1" || table.Rows[0]["B"] != "2" {
					t.Errorf("Unexpected row values: %v", table.Rows[0])
				}
			},
		},
		{
			name:    "columns derived from first row are sorted",
			columns: nil,
			rows: []map[string]any{
				{"Zeta": "z", "Alfa": "a"},
			},
			checkFunc: func(t *testing.T, table Table) {
				if !reflect.DeepEqual(table.Columns, []string{"Alfa", "Zeta"}) {
					t.Errorf("Expected sorted derived columns, got %v", table.Columns)
				}
			},
		},
		{
			name:    "nil and missing values become empty strings",
			columns: []string{"Nome", "Email"},
			rows: []map[string]any{
				{"Nome": nil},
			},
			checkFunc: func(t *testing.T, table Table) {
				if table.Rows[0]["Nome"] != "" {
					t.Errorf("Expected empty string for nil, got %q", table.Rows[0]["Nome"])
				}
				if table.Rows[0]["Email"] != "" {
					t.Errorf("Expected empty string for missing key, got %q", table.Rows[0]["Email"])
				}
			},
		},
		{
			name:    "extra keys are ignored",
			columns: []string{"Nome"},
			rows: []map[string]any{
				{"Nome": "Ana", "Interno": "x"},
			},
			checkFunc: func(t *testing.T, table Table) {
				if _, ok := table.Rows[0]["Interno"]; ok {
					t.Error("Extra key should not survive normalization")
				}
			},
		},
		{
			name:    "no columns and no rows yields empty table",
			columns: nil,
			rows:    nil,
			checkFunc: func(t *testing.T, table Table) {
				if !table.IsEmpty() {
					t.Error("Expected empty table")
				}
				if len(table.Columns) != 0 {
					t.Errorf("Expected no columns, got %v", table.Columns)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.checkFunc(t, Normalize(tt.columns, tt.rows))
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Campo Grande", "Campo Grande"},
		{"bytes", []byte("abc"), "abc"},
		{"int", 42, "42"},
		{"int64", int64(7), "7"},
		{"float64", 1234.5, "1234.5"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{
			"midnight timestamp renders as date",
			time.Date(1980, 5, 17, 0, 0, 0, 0, time.UTC),
			"17/05/1980",
		},
		{
			"timestamp with time of day keeps it",
			time.Date(2024, 12, 3, 14, 30, 5, 0, time.UTC),
			"03/12/2024 14:30:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestEmpty(t *testing.T) {
	table := Empty()
	if !table.IsEmpty() {
		t.Error("Empty() should have no rows")
	}
	if len(table.Columns) != 0 {
		t.Errorf("Empty() should have no columns, got %v", table.Columns)
	}
}
