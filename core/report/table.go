// Package report holds the normalized tabular value shared by every
// renderer, along with the field catalog and column projection.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Table is the uniform in-memory representation of a report result:
// ordered column keys plus records whose cells are display-ready strings.
// Nulls are coerced to "" at normalization time, so renderers never see
// missing or typed values.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Empty returns a Table with no columns and no rows. It is what callers
// feed to the pipeline when the upstream query failed; every renderer
// handles it as a well-formed empty result.
func Empty() Table {
	return Table{}
}

// IsEmpty reports whether the table has no data rows.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Normalize builds a Table from raw query output. Column order follows
// the given slice; when it is empty, the key set of the first record is
// used instead (sorted, since map iteration order is not stable).
//
// Every cell is stringified and nil becomes "". Records missing a column
// get "", extra keys are ignored, so malformed input never fails.
func Normalize(columns []string, rows []map[string]any) Table {
	if len(columns) == 0 && len(rows) > 0 {
		for key := range rows[0] {
			columns = append(columns, key)
		}
		sort.Strings(columns)
	}

	out := Table{Columns: columns}
	if len(columns) == 0 {
		return out
	}

	out.Rows = make([]map[string]string, 0, len(rows))
	for _, raw := range rows {
		rec := make(map[string]string, len(columns))
		for _, col := range columns {
			rec[col] = FormatValue(raw[col])
		}
		out.Rows = append(out.Rows, rec)
	}
	return out
}

const (
	dateLayout     = "02/01/2006"
	dateTimeLayout = "02/01/2006 15:04:05"
)

// FormatValue coerces a raw driver value into its display string.
// Dates use Brazilian layouts; a timestamp at exactly midnight is
// treated as a date-only column.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format(dateLayout)
		}
		return val.Format(dateTimeLayout)
	case float64:
		return strconv.FormatFloat(val, 'g', 15, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'g', 15, 32)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
