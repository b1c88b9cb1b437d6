// Package render encodes a normalized report table into its downloadable
// output formats (CSV, XLSX, PDF and the batched PDF archive).
package render

import (
	"regexp"
	"strings"
	"time"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Orientation selects the PDF page geometry.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation maps the request parameter ("retrato"/"paisagem") to an
// Orientation. Anything unrecognized falls back to landscape, never an
// error: orientation is a layout hint, not a contract.
func ParseOrientation(s string) Orientation {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "retrato", string(Portrait):
		return Portrait
	default:
		return Landscape
	}
}

// Options carries everything a renderer needs beyond the table itself.
type Options struct {
	Title       string
	Scope       string      // subseção filter value, "" = all
	Fields      []string    // explicit field selection, nil = default set
	Orientation Orientation // PDF only
	GeneratedAt time.Time
	RequestedBy string // user attribution for captions, may be ""
	Logo        []byte // branding asset, nil = omit
}

// scopeLabel is what captions and filenames show when no subseção filter
// was applied.
const scopeLabel = "Geral"

func (o Options) scopeOrGeneral() string {
	if strings.TrimSpace(o.Scope) == "" {
		return scopeLabel
	}
	return o.Scope
}

func (o Options) caption() string {
	ts := o.GeneratedAt.Format("02/01/2006 15:04")
	if o.RequestedBy != "" {
		return "Escopo: " + o.scopeOrGeneral() + " — gerado em " + ts + " por " + o.RequestedBy
	}
	return "Escopo: " + o.scopeOrGeneral() + " — gerado em " + ts
}

// Artifact is a fully rendered export: payload, suggested download name
// and content type, ready for an HTTP response or a file write.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Renderer encodes a projected table into one output format. Renderers
// must always produce a consumable artifact: internal failures degrade to
// the documented per-format fallback instead of surfacing.
type Renderer interface {
	Render(t report.Table, opts Options) (*Artifact, error)
}

var unsafeFilenameChars = regexp.MustCompile(`[^\w\-.]+`)

// sanitizeFilename mirrors the download-name rules the web client applies:
// whitespace collapses to "_" and anything outside [\w-.] is stripped.
func sanitizeFilename(s string) string {
	s = strings.Join(strings.Fields(s), "_")
	return unsafeFilenameChars.ReplaceAllString(s, "")
}
