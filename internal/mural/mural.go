// Package mural keeps the announcement board shown on the dashboard:
// short notices administrators post for every logged-in user.
package mural

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound reports a lookup against a missing notice.
var ErrNotFound = errors.New("aviso não encontrado")

// Aviso is one announcement on the board.
type Aviso struct {
	ID       string    `json:"id"`
	Titulo   string    `json:"titulo"`
	Mensagem string    `json:"mensagem"`
	CriadoEm time.Time `json:"criado_em"`
}

// Repository stores announcements. Implementations must be safe for
// concurrent use by the HTTP handlers.
type Repository interface {
	List() []Aviso
	Create(titulo, mensagem string) Aviso
	Update(id, titulo, mensagem string) (Aviso, error)
	Delete(id string) error
}

// MemoryRepository keeps the board in process memory. Notices do not
// survive a restart, which matches how the board is actually used:
// short-lived operational announcements.
type MemoryRepository struct {
	mu     sync.RWMutex
	avisos map[string]Aviso
}

// NewMemoryRepository builds an empty board.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{avisos: make(map[string]Aviso)}
}

// List returns every notice, newest first.
func (r *MemoryRepository) List() []Aviso {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Aviso, 0, len(r.avisos))
	for _, a := range r.avisos {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CriadoEm.After(out[j].CriadoEm)
	})
	return out
}

// Create posts a new notice and returns it.
func (r *MemoryRepository) Create(titulo, mensagem string) Aviso {
	a := Aviso{
		ID:       uuid.NewString(),
		Titulo:   titulo,
		Mensagem: mensagem,
		CriadoEm: time.Now(),
	}

	r.mu.Lock()
	r.avisos[a.ID] = a
	r.mu.Unlock()
	return a
}

// Update rewrites the title and message of an existing notice.
func (r *MemoryRepository) Update(id, titulo, mensagem string) (Aviso, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.avisos[id]
	if !ok {
		return Aviso{}, ErrNotFound
	}
	a.Titulo = titulo
	a.Mensagem = mensagem
	r.avisos[id] = a
	return a, nil
}

// Delete removes a notice from the board.
func (r *MemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.avisos[id]; !ok {
		return ErrNotFound
	}
	delete(r.avisos, id)
	return nil
}
