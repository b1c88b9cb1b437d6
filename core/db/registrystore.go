package db

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// RegistryStore exposes the read-only queries against the SQL Server
// registry database that feed the exportable reports.
type RegistryStore struct {
	store *Store
}

// NewRegistryStore wraps an open SQL Server store.
func NewRegistryStore(store *Store) *RegistryStore {
	return &RegistryStore{store: store}
}

// listaSimplesColumns maps registry columns onto the field catalog keys
// the projector and the PDF width table understand.
const listaSimplesSelect = `
	p.NumeroInscricao AS OAB,
	p.Nome AS Nome,
	p.CpfCnpj AS [CPF/CNPJ],
	p.SituacaoDescricao AS Situacao,
	p.DataNascimento AS DataNascimento,
	p.DataCompromisso AS DataCompromisso,
	p.TelefoneCelular AS TelefoneCelular,
	p.Email AS Email,
	s.Nome AS Subsecao`

// ListaSimples returns the active-lawyer listing, optionally restricted
// to one subsection. Column order matches the default field catalog.
func (r *RegistryStore) ListaSimples(ctx context.Context, subsecao string) ([]string, []map[string]any, error) {
	builder := sq.Select(strings.TrimSpace(listaSimplesSelect)).
		From("Pessoa p").
		Join("SubUnidadeConselho s ON s.Id = p.SubUnidadeConselhoId").
		Where(sq.Eq{"s.TipoCategoria": 20}).
		OrderBy("s.Nome", "p.Nome").
		PlaceholderFormat(sq.AtP)

	if v := strings.TrimSpace(subsecao); v != "" {
		builder = builder.Where(sq.Eq{"s.Nome": v})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao montar consulta: %w", err)
	}
	return r.store.QueryRows(ctx, query, args...)
}

// Subsecoes lists the distinct subsection names available as export
// scopes, in registry order.
func (r *RegistryStore) Subsecoes(ctx context.Context) ([]string, error) {
	rows, err := r.store.DB().QueryContext(ctx, `
		SELECT DISTINCT s.Nome
		FROM SubUnidadeConselho s
		WHERE s.TipoCategoria = 20
		ORDER BY s.Nome`)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar subseções: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("erro ao ler subseção: %w", err)
		}
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, rows.Err()
}

// InadimplenciaResumo aggregates overdue annuity counts per subsection,
// the financial summary report.
func (r *RegistryStore) InadimplenciaResumo(ctx context.Context) ([]string, []map[string]any, error) {
	return r.store.QueryRows(ctx, `
		SELECT s.Nome AS Subsecao,
		       COUNT(p.Id) AS Inscritos,
		       SUM(CASE WHEN p.PossuiDebito = 1 THEN 1 ELSE 0 END) AS Inadimplentes
		FROM Pessoa p
		JOIN SubUnidadeConselho s ON s.Id = p.SubUnidadeConselhoId
		WHERE s.TipoCategoria = 20
		GROUP BY s.Nome
		ORDER BY s.Nome`)
}
