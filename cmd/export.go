package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avenir-oabms/relatorios-unificados/core/branding"
	"github.com/avenir-oabms/relatorios-unificados/core/config"
	"github.com/avenir-oabms/relatorios-unificados/core/db"
	"github.com/avenir-oabms/relatorios-unificados/core/output"
	"github.com/avenir-oabms/relatorios-unificados/core/render"
	"github.com/avenir-oabms/relatorios-unificados/core/report"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
	"github.com/avenir-oabms/relatorios-unificados/internal/ui"
)

var (
	exportFormat      string
	exportSubsecao    string
	exportCampos      string
	exportOrientacao  string
	exportMulti       bool
	exportOutput      string
	exportCompression string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exporta a lista simples direto para um arquivo, sem passar pela API",
	Example: `  # CSV completo
  relatorios export -o lista.csv

  # XLSX de uma subseção
  relatorios export -f xlsx --subsecao "Dourados" -o dourados.xlsx

  # PDF retrato com campos escolhidos
  relatorios export -f pdf --orientacao retrato --campos OAB,Nome,Email -o lista.pdf

  # Um PDF por subseção, tudo num zip comprimido
  relatorios export -f pdf --multi -o lista.zip -z gzip`,
	RunE: runFileExport,
}

func init() {
	exportCmd.Flags().SortFlags = false
	exportCmd.Flags().StringVarP(&exportFormat, "formato", "f", "csv", "Formato de saída (csv, xlsx, pdf)")
	exportCmd.Flags().StringVar(&exportSubsecao, "subsecao", "", "Restringe a exportação a uma subseção")
	exportCmd.Flags().StringVar(&exportCampos, "campos", "", "Campos a incluir, separados por vírgula (padrão: todos)")
	exportCmd.Flags().StringVar(&exportOrientacao, "orientacao", "paisagem", "Orientação do PDF (retrato, paisagem)")
	exportCmd.Flags().BoolVar(&exportMulti, "multi", false, "Gera um PDF por subseção empacotados em zip (apenas pdf sem --subsecao)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Caminho do arquivo de saída (obrigatório)")
	exportCmd.Flags().StringVarP(&exportCompression, "compression", "z", "none", "Compressão do arquivo gerado (none, gzip, zip, zstd, lz4)")

	if err := exportCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}

	exportCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		exportFormat = strings.ToLower(strings.TrimSpace(exportFormat))
		if !render.Supported(exportFormat) {
			return fmt.Errorf("formato inválido %q. Formatos aceitos: %s",
				exportFormat, strings.Join(render.List(), ", "))
		}
		if exportMulti && exportFormat != render.FormatPDF {
			return fmt.Errorf("a opção --multi exige --formato pdf")
		}
		if exportMulti && strings.TrimSpace(exportSubsecao) != "" {
			return fmt.Errorf("as opções --multi e --subsecao não podem ser combinadas")
		}
		return nil
	}
}

func runFileExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if strings.TrimSpace(cfg.MSSQLDSN) == "" {
		return fmt.Errorf("configuração inválida: MSSQL_DSN não definido")
	}

	store := db.NewStore("sqlserver", cfg.MSSQLDSN)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	spinner := ui.NewSpinner()
	spinner.Start()
	spinner.Update("Consultando o registro...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	columns, rows, err := db.NewRegistryStore(store).ListaSimples(ctx, exportSubsecao)
	if err != nil {
		spinner.Stop("Consulta falhou")
		return err
	}
	spinner.Stop(fmt.Sprintf("Consulta concluída: %d registros", len(rows)))

	bar := ui.NewProgressBar()
	table := report.Normalize(columns, rows)
	bar.Add(len(table.Rows))

	artifact, err := render.Export(table, render.Request{
		Format:      exportFormat,
		Scope:       strings.TrimSpace(exportSubsecao),
		Fields:      splitCampos(exportCampos),
		Orientation: exportOrientacao,
		Multi:       exportMulti,
		Title:       "Lista Simples de Advogados",
		Prefix:      "Relatorio_Lista_Simples",
		Logo:        branding.Logo(cfg.LogoPath),
	})
	bar.Finish()
	if err != nil {
		return err
	}

	writer, err := output.CreateWriter(output.Config{
		Path:        exportOutput,
		Compression: exportCompression,
		Format:      formatExtension(artifact.Filename),
	})
	if err != nil {
		return err
	}
	if _, err := writer.Write(artifact.Data); err != nil {
		writer.Close()
		return fmt.Errorf("erro ao gravar %s: %w", exportOutput, err)
	}
	if err := writer.Close(); err != nil {
		return err
	}

	if table.IsEmpty() {
		logger.Warn("A consulta não retornou registros. Arquivo gerado vazio em %s", exportOutput)
		return nil
	}
	logger.Success("Exportação concluída: %d registros -> %s", len(table.Rows), exportOutput)
	return nil
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

func formatExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i+1:]
	}
	return ""
}
