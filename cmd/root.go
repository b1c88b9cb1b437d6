// Package cmd defines the relatorios command line: the HTTP backend and
// a direct export mode for operators.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "relatorios",
	Short: "Backend de relatórios e exportações da OAB/MS",
	Long: `Serviço de relatórios unificados: autentica usuários, executa as
consultas cadastradas e exporta os resultados em CSV, XLSX ou PDF,
inclusive em lote por subseção.`,
	Example: `  # Subir a API HTTP
  relatorios serve

  # Exportar a lista simples direto para um arquivo
  relatorios export -f pdf --orientacao retrato -o lista.pdf

  # Um PDF por subseção, empacotados em zip
  relatorios export -f pdf --multi -o lista.zip`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Exibe mensagens detalhadas de execução")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Exibe apenas mensagens de erro")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("as opções --verbose e --quiet não podem ser combinadas")
		}
		if quiet {
			logger.SetQuiet(true)
		} else {
			logger.SetVerbose(verbose)
		}
		return nil
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}
