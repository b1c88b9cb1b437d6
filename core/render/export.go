package render

import (
	"fmt"
	"time"

	"github.com/avenir-oabms/relatorios-unificados/core/report"
)

// Request carries the caller-supplied export parameters, already parsed
// from the transport layer.
type Request struct {
	Format      string   // csv, xlsx or pdf; anything else fails validation
	Scope       string   // subseção filter, "" = all
	Fields      []string // ordered field keys, nil = defaults
	Orientation string   // "retrato"/"paisagem", PDF only
	Multi       bool     // batch one PDF per subseção (PDF + unscoped only)

	Title       string
	Prefix      string // filename stem, e.g. "Relatorio_Lista_Simples"
	RequestedBy string
	Logo        []byte
}

// Export is the pipeline entry point: it validates the format, projects
// the table and dispatches to the matching renderer, or to the batch
// partitioner for unscoped multi-mode PDF requests.
//
// The unknown-format error is raised before any rendering work; after
// that point every internal failure degrades per renderer, so a non-nil
// error other than ErrNoPartitions is exceptional.
func Export(t report.Table, req Request) (*Artifact, error) {
	renderer, err := Get(req.Format)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Title:       req.Title,
		Scope:       req.Scope,
		Fields:      req.Fields,
		Orientation: ParseOrientation(req.Orientation),
		GeneratedAt: time.Now(),
		RequestedBy: req.RequestedBy,
		Logo:        req.Logo,
	}

	var artifact *Artifact
	switch {
	case req.Format == FormatPDF && req.Scope == "" && req.Multi:
		artifact, err = renderBatch(t, opts, req.Prefix)
	case req.Format == FormatPDF:
		// selection is resolved inside the renderer so widths and labels
		// share one catalog lookup
		artifact, err = renderer.Render(t, opts)
	default:
		artifact, err = renderer.Render(report.Project(t, req.Fields), opts)
	}
	if err != nil {
		return nil, err
	}

	artifact.Filename = filename(req, artifact.ContentType)
	return artifact, nil
}

func filename(req Request, contentType string) string {
	scope := req.Scope
	if scope == "" {
		scope = scopeLabel
	}
	stem := fmt.Sprintf("%s_%s", req.Prefix, sanitizeFilename(scope))

	switch {
	case contentType == "application/zip":
		return stem + ".zip"
	case req.Format == FormatPDF && ParseOrientation(req.Orientation) == Portrait:
		return stem + "_retrato.pdf"
	case req.Format == FormatPDF:
		return stem + ".pdf"
	case req.Format == FormatXLSX:
		return stem + ".xlsx"
	default:
		return stem + ".csv"
	}
}
