package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// ErrUserNotFound reports a lookup against a missing account.
var ErrUserNotFound = errors.New("usuário não encontrado")

// User is an account row from the auth database.
type User struct {
	ID           int64  `json:"id"`
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Ativo        bool   `json:"ativo"`
	PasswordHash string `json:"-"`
}

// ReportInfo describes one report a user may run.
type ReportInfo struct {
	Key       string `json:"key"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao"`
}

// AuthStore exposes the credential and permission queries backed by the
// MySQL database.
type AuthStore struct {
	store *Store
}

// NewAuthStore wraps an open MySQL store.
func NewAuthStore(store *Store) *AuthStore {
	return &AuthStore{store: store}
}

const userColumns = "u.id, u.nome, u.email, u.role, u.ativo, u.password_hash"

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.Role, &u.Ativo, &u.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler usuário: %w", err)
	}
	return &u, nil
}

// FindByEmail loads the account for a login attempt. Inactive accounts
// are still returned; the caller decides how to treat them.
func (a *AuthStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.email = ?", userColumns)
	return scanUser(a.store.DB().QueryRowContext(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

// FindByID loads the account behind an authenticated token.
func (a *AuthStore) FindByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u WHERE u.id = ?", userColumns)
	return scanUser(a.store.DB().QueryRowContext(ctx, query, id))
}

// UserReports lists the reports granted to a user, ordered by name.
// Admins see the whole catalog.
func (a *AuthStore) UserReports(ctx context.Context, u *User) ([]ReportInfo, error) {
	builder := sq.Select("r.report_key", "r.nome", "r.descricao").
		From("reports r").
		OrderBy("r.nome")
	if u.Role != "admin" {
		builder = builder.
			Join("report_permissions p ON p.report_id = r.id").
			Where(sq.Eq{"p.user_id": u.ID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao montar consulta: %w", err)
	}

	rows, err := a.store.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar relatórios: %w", err)
	}
	defer rows.Close()

	reports := []ReportInfo{}
	for rows.Next() {
		var r ReportInfo
		if err := rows.Scan(&r.Key, &r.Nome, &r.Descricao); err != nil {
			return nil, fmt.Errorf("erro ao ler relatório: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// HasReport checks whether a user may run the given report key.
func (a *AuthStore) HasReport(ctx context.Context, u *User, reportKey string) (bool, error) {
	if u.Role == "admin" {
		return true, nil
	}

	query, args, err := sq.Select("COUNT(*)").
		From("report_permissions p").
		Join("reports r ON r.id = p.report_id").
		Where(sq.Eq{"p.user_id": u.ID, "r.report_key": reportKey}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao montar consulta: %w", err)
	}

	var count int
	if err := a.store.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("erro ao verificar permissão: %w", err)
	}
	return count > 0, nil
}

// CreateUser inserts a new account and returns its id.
func (a *AuthStore) CreateUser(ctx context.Context, nome, email, role, passwordHash string) (int64, error) {
	query, args, err := sq.Insert("users").
		Columns("nome", "email", "role", "ativo", "password_hash").
		Values(strings.TrimSpace(nome), strings.ToLower(strings.TrimSpace(email)), role, true, passwordHash).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao montar inserção: %w", err)
	}

	result, err := a.store.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return result.LastInsertId()
}

// ListUsers returns every account, newest first.
func (a *AuthStore) ListUsers(ctx context.Context) ([]User, error) {
	query := fmt.Sprintf("SELECT %s FROM users u ORDER BY u.id DESC", userColumns)
	rows, err := a.store.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar usuários: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Nome, &u.Email, &u.Role, &u.Ativo, &u.PasswordHash); err != nil {
			return nil, fmt.Errorf("erro ao ler usuário: %w", err)
		}
		u.PasswordHash = ""
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserPatch carries the optional fields of a partial account update.
// Nil fields are left untouched.
type UserPatch struct {
	Nome  *string `json:"nome"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
	Ativo *bool   `json:"ativo"`
}

// UpdateUser applies a partial update. Returns ErrUserNotFound when the
// id does not exist, and an error when the patch is empty.
func (a *AuthStore) UpdateUser(ctx context.Context, id int64, patch UserPatch) error {
	builder := sq.Update("users").Where(sq.Eq{"id": id})
	touched := false
	if patch.Nome != nil {
		builder = builder.Set("nome", strings.TrimSpace(*patch.Nome))
		touched = true
	}
	if patch.Email != nil {
		builder = builder.Set("email", strings.ToLower(strings.TrimSpace(*patch.Email)))
		touched = true
	}
	if patch.Role != nil {
		builder = builder.Set("role", *patch.Role)
		touched = true
	}
	if patch.Ativo != nil {
		builder = builder.Set("ativo", *patch.Ativo)
		touched = true
	}
	if !touched {
		return errors.New("nenhum campo para atualizar")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao montar atualização: %w", err)
	}

	result, err := a.store.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("erro ao atualizar usuário: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetPassword replaces the stored hash of a user.
func (a *AuthStore) SetPassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := a.store.DB().ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar senha: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AdmUsuarios is the administrative user-listing report: flat columns
// straight from the auth database, ready for the normalizer.
func (a *AuthStore) AdmUsuarios(ctx context.Context) ([]string, []map[string]any, error) {
	return a.store.QueryRows(ctx, `
		SELECT u.id AS ID,
		       u.nome AS Nome,
		       u.email AS Email,
		       u.role AS Perfil,
		       u.ativo AS Ativo
		FROM users u
		ORDER BY u.nome`)
}
