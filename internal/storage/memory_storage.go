package storage

import (
	"sync"

	"github.com/BetterCallFirewall/Identrecon/internal/pipeline"
)

// MemoryStorage хранит завершённые результаты охот по id, чтобы внешние
// поверхности (websocket UI, экспортёры) могли их перечитать.
type MemoryStorage struct {
	hunts map[string]*pipeline.PipelineResult
	mu    sync.RWMutex
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		hunts: make(map[string]*pipeline.PipelineResult),
	}
}

func (s *MemoryStorage) StoreHunt(id string, result *pipeline.PipelineResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hunts[id] = result
}

func (s *MemoryStorage) GetHunt(id string) (*pipeline.PipelineResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.hunts[id]
	return result, ok
}

func (s *MemoryStorage) GetAllHunts() []*pipeline.PipelineResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	hunts := make([]*pipeline.PipelineResult, 0, len(s.hunts))
	for _, result := range s.hunts {
		hunts = append(hunts, result)
	}
	return hunts
}

func (s *MemoryStorage) DeleteHunt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.hunts, id)
}
