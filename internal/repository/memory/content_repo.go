// Package memory provides mutex-guarded in-memory repositories. Selected
// via STORAGE_BACKEND=memory, they replace the old mock-data server for
// local development and back the handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"studio-site-backend/internal/domain"

	"github.com/google/uuid"
)

type ContentRepository struct {
	mu     sync.RWMutex
	blocks map[string]domain.ContentBlock // keyed by id
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{blocks: make(map[string]domain.ContentBlock)}
}

func (r *ContentRepository) Create(_ context.Context, block *domain.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.blocks {
		if b.Section == block.Section {
			return domain.ErrDuplicate
		}
	}

	now := time.Now()
	block.ID = uuid.New().String()
	block.CreatedAt = now
	block.UpdatedAt = now
	r.blocks[block.ID] = *block
	return nil
}

func (r *ContentRepository) GetByID(_ context.Context, id string) (*domain.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	block, ok := r.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &block, nil
}

func (r *ContentRepository) GetBySection(_ context.Context, section string) (*domain.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.blocks {
		if b.Section == section {
			block := b
			return &block, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ContentRepository) ListActive(_ context.Context) ([]domain.ContentBlock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var blocks []domain.ContentBlock
	for _, b := range r.blocks {
		if b.IsActive {
			blocks = append(blocks, b)
		}
	}
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Order < blocks[j].Order
	})
	return blocks, nil
}

func (r *ContentRepository) Update(_ context.Context, block *domain.ContentBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[block.ID]; !ok {
		return domain.ErrNotFound
	}
	block.UpdatedAt = time.Now()
	r.blocks[block.ID] = *block
	return nil
}

func (r *ContentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blocks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.blocks, id)
	return nil
}
