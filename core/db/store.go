// Package db wraps the two relational backends: MySQL for credentials
// and permissions, SQL Server for the registry data reports run against.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/avenir-oabms/relatorios-unificados/internal/logger"
)

// Store is a database/sql connection with the query helpers the report
// pipeline needs. Both engines share it; only driver and DSN differ.
type Store struct {
	driver string
	dsn    string
	db     *sql.DB
}

// NewStore prepares a store without connecting. driver is either
// "mysql" or "sqlserver".
func NewStore(driver, dsn string) *Store {
	return &Store{driver: driver, dsn: dsn}
}

// NewStoreWithDB wraps an already open pool, bypassing Open. Callers
// keep ownership of the pool's lifecycle.
func NewStoreWithDB(driver string, pool *sql.DB) *Store {
	return &Store{driver: driver, db: pool}
}

// Open establishes and verifies the connection.
func (s *Store) Open() error {
	if s.db != nil {
		return nil
	}
	if strings.TrimSpace(s.dsn) == "" {
		return fmt.Errorf("DSN do banco %s não configurado", s.driver)
	}

	logger.Debug("Conectando ao banco %s: %s", s.driver, maskDSN(s.dsn))

	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("erro ao abrir conexão %s: %w", s.driver, err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("erro ao verificar conexão %s: %w", s.driver, err)
	}

	logger.Debug("Conexão %s estabelecida", s.driver)
	s.db = db
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	logger.Debug("Encerrando conexão %s", s.driver)
	err := s.db.Close()
	s.db = nil
	return err
}

// DB exposes the underlying pool for the typed stores built on top.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Diagnostic is the health-check result for one backend, shaped for the
// /health/db route: ok with the probe value, or the failure reason.
type Diagnostic struct {
	OK    bool   `json:"ok"`
	Value int    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Ping probes the backend with SELECT 1 and never fails the caller.
func (s *Store) Ping(ctx context.Context) Diagnostic {
	if s == nil || s.db == nil {
		return Diagnostic{OK: false, Error: fmt.Sprintf("conexão %s não inicializada", s.driverName())}
	}

	var value int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&value); err != nil {
		return Diagnostic{OK: false, Error: err.Error()}
	}
	return Diagnostic{OK: true, Value: value}
}

func (s *Store) driverName() string {
	if s == nil {
		return "desconhecida"
	}
	return s.driver
}

// QueryRows runs a query and scans every row into a field→value map,
// preserving the projection's column order. This generic shape is what
// the row normalizer consumes.
func (s *Store) QueryRows(ctx context.Context, query string, args ...any) ([]string, []map[string]any, error) {
	if s == nil || s.db == nil {
		return nil, nil, fmt.Errorf("banco %s não conectado", s.driverName())
	}

	start := time.Now()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao executar consulta: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao ler colunas: %w", err)
	}

	var records []map[string]any
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, fmt.Errorf("erro ao ler registro: %w", err)
		}
		rec := make(map[string]any, len(columns))
		for i, col := range columns {
			rec[col] = values[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("erro ao percorrer registros: %w", err)
	}

	logger.Debug("Consulta %s: %d registros em %v", s.driver, len(records), time.Since(start))
	return columns, records, nil
}

// maskDSN hides the password before a DSN reaches the logs. Handles both
// URL-style DSNs (sqlserver://) and the mysql user:pass@tcp(...) form.
func maskDSN(dsn string) string {
	at := strings.LastIndex(dsn, "@")
	if at < 0 {
		return dsn
	}
	head := dsn[:at]
	if colon := strings.Index(head, ":"); colon >= 0 {
		if scheme := strings.Index(head, "://"); scheme >= 0 && colon == scheme {
			rest := head[scheme+3:]
			if c := strings.Index(rest, ":"); c >= 0 {
				return head[:scheme+3] + rest[:c] + ":***" + dsn[at:]
			}
			return dsn
		}
		return head[:colon] + ":***" + dsn[at:]
	}
	return dsn
}
