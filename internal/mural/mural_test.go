package mural

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryCRUD(t *testing.T) {
	repo := NewMemoryRepository()
	assert.Empty(t, repo.List())

	a := repo.Create("Plantão", "Atendimento estendido nesta sexta")
	require.NotEmpty(t, a.ID)
	assert.False(t, a.CriadoEm.IsZero())

	b := repo.Create("Eleições", "Inscrições abertas")
	assert.NotEqual(t, a.ID, b.ID)

	list := repo.List()
	require.Len(t, list, 2)

	updated, err := repo.Update(a.ID, "Plantão atualizado", "Novo horário")
	require.NoError(t, err)
	assert.Equal(t, "Plantão atualizado", updated.Titulo)
	assert.Equal(t, a.CriadoEm, updated.CriadoEm)

	require.NoError(t, repo.Delete(b.ID))
	assert.Len(t, repo.List(), 1)
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.Update("inexistente", "t", "m")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete("inexistente"), ErrNotFound)
}

func TestMemoryRepositoryConcurrency(t *testing.T) {
	repo := NewMemoryRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a := repo.Create("Aviso", "corrida")
			repo.List()
			_, _ = repo.Update(a.ID, "Aviso", "editado")
		}()
	}
	wg.Wait()

	assert.Len(t, repo.List(), 20)
}
