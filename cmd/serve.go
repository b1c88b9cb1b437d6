package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/avenir-oabms/relatorios-unificados/core/branding"
	"github.com/avenir-oabms/relatorios-unificados/core/config"
	"github.com/avenir-oabms/relatorios-unificados/core/db"
	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
	"github.com/avenir-oabms/relatorios-unificados/internal/mural"
	"github.com/avenir-oabms/relatorios-unificados/internal/server"
	"github.com/avenir-oabms/relatorios-unificados/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia o backend HTTP de relatórios",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.Debug("Versão %s, build %s, commit %s", version.AppVersion, version.BuildTime, version.GitCommit)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuração inválida: %w", err)
	}
	if cfg.UsingDevSecret() {
		logger.Warn("SECRET_KEY não definido, usando chave de desenvolvimento. Não use em produção.")
	}

	mysql := db.NewStore("mysql", cfg.MySQLDSN())
	if err := mysql.Open(); err != nil {
		return fmt.Errorf("banco de autenticação indisponível: %w", err)
	}
	defer mysql.Close()

	// A API sobe mesmo sem o registro: os relatórios degradam para
	// exportações vazias e /health/db aponta a falha.
	mssql := db.NewStore("sqlserver", cfg.MSSQLDSN)
	if err := mssql.Open(); err != nil {
		logger.Warn("Banco de registro indisponível: %v", err)
	} else {
		defer mssql.Close()
	}

	srv := server.New(server.Dependencies{
		Config:   &cfg,
		Auth:     db.NewAuthStore(mysql),
		Registry: db.NewRegistryStore(mssql),
		MySQL:    mysql,
		MSSQL:    mssql,
		Mural:    mural.NewMemoryRepository(),
		Logo:     branding.Logo(cfg.LogoPath),
	})
	return srv.Run()
}
