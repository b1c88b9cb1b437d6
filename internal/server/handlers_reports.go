package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avenir-oabms/relatorios-unificados/core/db"
	"github.com/avenir-oabms/relatorios-unificados/core/render"
	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/auth"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

func userFromClaims(claims *auth.Claims) *db.User {
	return &db.User{ID: claims.UID, Email: claims.Email, Role: claims.Role}
}

func (s *Server) handleReportList(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	reports, err := s.deps.Auth.UserReports(c.Request.Context(), userFromClaims(claims))
	if err != nil {
		logger.Error("Falha ao listar relatórios: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// handleReportRun executes a tabular report and returns it as JSON for
// on-screen display. File exports go through /lista_simples instead.
func (s *Server) handleReportRun(c *gin.Context) {
	claims := auth.ClaimsFrom(c)
	key := c.Param("report_key")

	allowed, err := s.deps.Auth.HasReport(c.Request.Context(), userFromClaims(claims), key)
	if err != nil {
		logger.Error("Falha ao verificar permissão de %q: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Sem permissão"})
		return
	}

	var (
		columns []string
		rows    []map[string]any
	)
	switch key {
	case "adm_usuarios":
		columns, rows, err = s.deps.Auth.AdmUsuarios(c.Request.Context())
	case "fin_inadimplencia_resumo":
		columns, rows, err = s.deps.Registry.InadimplenciaResumo(c.Request.Context())
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "Relatório desconhecido"})
		return
	}
	if err != nil {
		logger.Error("Falha ao executar relatório %q: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao executar o relatório"})
		return
	}

	table := report.Normalize(columns, rows)
	c.JSON(http.StatusOK, gin.H{"columns": table.Columns, "rows": table.Rows})
}

func (s *Server) handleSubsecoes(c *gin.Context) {
	names, err := s.deps.Registry.Subsecoes(c.Request.Context())
	if err != nil {
		logger.Error("Falha ao listar subseções: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subsecoes": names})
}

func (s *Server) handleDBHealth(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{
		"mysql": s.deps.MySQL.Ping(ctx),
		"mssql": s.deps.MSSQL.Ping(ctx),
	})
}

// handleListaSimples is the export entry point: it checks permission,
// validates the requested format before any database work, runs the
// registry query and streams the rendered artifact as a download.
//
// A registry failure does not fail the request: the export degrades to
// an empty artifact and the response is flagged with X-Report-Degraded.
func (s *Server) handleListaSimples(c *gin.Context) {
	claims := auth.ClaimsFrom(c)

	allowed, err := s.deps.Auth.HasReport(c.Request.Context(), userFromClaims(claims), "lista_simples")
	if err != nil {
		logger.Error("Falha ao verificar permissão de lista_simples: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"error": "Sem permissão"})
		return
	}

	formato := strings.ToLower(strings.TrimSpace(c.DefaultQuery("formato", render.FormatCSV)))
	if !render.Supported(formato) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Formato inválido: %q. Use csv, xlsx ou pdf.", formato),
		})
		return
	}

	subsecao := strings.TrimSpace(c.Query("subsecao"))
	campos := splitCampos(c.Query("campos"))

	columns, rows, err := s.deps.Registry.ListaSimples(c.Request.Context(), subsecao)
	if err != nil {
		logger.Error("Consulta lista_simples falhou, exportando vazio: %v", err)
		c.Header("X-Report-Degraded", "1")
		columns, rows = nil, nil
	}

	artifact, err := render.Export(report.Normalize(columns, rows), render.Request{
		Format:      formato,
		Scope:       subsecao,
		Fields:      campos,
		Orientation: c.Query("orientacao"),
		Multi:       c.Query("modo") == "multi",
		Title:       "Lista Simples de Advogados",
		Prefix:      "Relatorio_Lista_Simples",
		RequestedBy: claims.Email,
		Logo:        s.deps.Logo,
	})
	if err != nil {
		if errors.Is(err, render.ErrNoPartitions) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Falha ao exportar lista_simples: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro ao gerar o arquivo"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

func splitCampos(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var campos []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			campos = append(campos, part)
		}
	}
	return campos
}
