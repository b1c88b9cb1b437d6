package report

// Project derives a new Table restricted to the requested logical fields,
// in requested order, with columns renamed to their display labels.
//
// A requested field survives only when it exists in the catalog and in the
// source table; anything else is silently dropped so that stale clients
// can never break an export. An empty request keeps every source column
// (in source order), relabeling the ones the catalog knows.
//
// The source table is never mutated.
func Project(t Table, fields []string) Table {
	type mapping struct {
		key   string
		label string
	}

	var selected []mapping
	if len(fields) == 0 {
		for _, col := range t.Columns {
			selected = append(selected, mapping{key: col, label: Label(col)})
		}
	} else {
		seen := make(map[string]bool, len(fields))
		for _, key := range fields {
			fd, ok := Field(key)
			if !ok || seen[key] || !hasColumn(t, key) {
				continue
			}
			seen[key] = true
			selected = append(selected, mapping{key: key, label: fd.Label})
		}
	}

	out := Table{Columns: make([]string, 0, len(selected))}
	for _, m := range selected {
		out.Columns = append(out.Columns, m.label)
	}

	out.Rows = make([]map[string]string, 0, len(t.Rows))
	for _, src := range t.Rows {
		rec := make(map[string]string, len(selected))
		for _, m := range selected {
			rec[m.label] = src[m.key]
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

func hasColumn(t Table, key string) bool {
	for _, col := range t.Columns {
		if col == key {
			return true
		}
	}
	return false
}
