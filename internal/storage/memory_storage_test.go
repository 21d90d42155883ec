package storage

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BetterCallFirewall/Identrecon/internal/models"
	"github.com/BetterCallFirewall/Identrecon/internal/pipeline"
)

func sampleResult(target string) *pipeline.PipelineResult {
	return &pipeline.PipelineResult{
		Person:    &models.PersonEntity{Target: target},
		Usernames: []string{target},
	}
}

func TestMemoryStorage_CRUD(t *testing.T) {
	store := NewMemoryStorage()

	store.StoreHunt("h1", sampleResult("jane"))
	store.StoreHunt("h2", sampleResult("jdoe"))

	got, ok := store.GetHunt("h1")
	require.True(t, ok)
	assert.Equal(t, "jane", got.Person.Target)

	_, ok = store.GetHunt("missing")
	assert.False(t, ok)

	assert.Len(t, store.GetAllHunts(), 2)

	store.DeleteHunt("h1")
	_, ok = store.GetHunt("h1")
	assert.False(t, ok)
	assert.Len(t, store.GetAllHunts(), 1)
}

func TestMemoryStorage_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStorage()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			store.StoreHunt(id, sampleResult(id))
			store.GetHunt(id)
			store.GetAllHunts()
		}(i)
	}
	wg.Wait()

	assert.NotEmpty(t, store.GetAllHunts())
}
