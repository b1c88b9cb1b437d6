package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avenir-oabms/relatorios-unificados/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Exibe a versão do binário",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("relatorios %s (build %s, commit %s)\n",
			version.AppVersion, version.BuildTime, version.GitCommit)
	},
}
