package report

import (
	"github.com/elliotchance/orderedmap/v3"
)

// FieldDescriptor maps a logical field key to its display label and to
// the fixed PDF column width for each page orientation (millimeters).
// This catalog is the single source of truth consumed by every renderer,
// so the same field always carries the same label in CSV, XLSX and PDF.
type FieldDescriptor struct {
	Key            string
	Label          string
	WidthPortrait  float64
	WidthLandscape float64
}

// catalog preserves declaration order; iteration order is the canonical
// default column order for the PDF layout.
var catalog = orderedmap.NewOrderedMap[string, FieldDescriptor]()

func init() {
	for _, fd := range []FieldDescriptor{
		{Key: "OAB", Label: "Número OAB", WidthPortrait: 14, WidthLandscape: 20},
		{Key: "Nome", Label: "Nome Completo", WidthPortrait: 34, WidthLandscape: 50},
		{Key: "CPF/CNPJ", Label: "CPF/CNPJ", WidthPortrait: 22, WidthLandscape: 28},
		{Key: "Situacao", Label: "Situação", WidthPortrait: 16, WidthLandscape: 22},
		{Key: "DataNascimento", Label: "Data de Nascimento", WidthPortrait: 18, WidthLandscape: 24},
		{Key: "DataCompromisso", Label: "Data do Compromisso", WidthPortrait: 18, WidthLandscape: 24},
		{Key: "TelefoneCelular", Label: "Telefone Celular", WidthPortrait: 20, WidthLandscape: 26},
		{Key: "Email", Label: "E-mail", WidthPortrait: 26, WidthLandscape: 53},
		{Key: "Subsecao", Label: "Subseção", WidthPortrait: 22, WidthLandscape: 30},
	} {
		catalog.Set(fd.Key, fd)
	}
}

// GroupColumn is the column whose distinct values partition a batch
// ("multi") export, one document per subseção.
const GroupColumn = "Subsecao"

// Field looks up the descriptor for a logical field key.
func Field(key string) (FieldDescriptor, bool) {
	return catalog.Get(key)
}

// DefaultFields returns the canonical field keys in catalog order.
func DefaultFields() []string {
	keys := make([]string, 0, catalog.Len())
	for key := range catalog.Keys() {
		keys = append(keys, key)
	}
	return keys
}

// Label returns the display label for a field key, or the key itself
// when the catalog does not know it (ad hoc query columns).
func Label(key string) string {
	if fd, ok := catalog.Get(key); ok {
		return fd.Label
	}
	return key
}

// Width returns the fixed PDF column width for the given orientation.
func (fd FieldDescriptor) Width(landscape bool) float64 {
	if landscape {
		return fd.WidthLandscape
	}
	return fd.WidthPortrait
}
