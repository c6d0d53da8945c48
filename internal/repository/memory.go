package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bigkaa/craftstore/internal/domain/model"
)

// memoryRepo — потокобезопасная in-memory реализация CraftRepository.
// Используется в тестах и в dev-режиме (CS_STORE_BACKEND=memory).
// Не персистентна: содержимое живёт до рестарта процесса.
type memoryRepo struct {
	mu     sync.RWMutex
	crafts map[string]*model.Craft // id → запись
}

// NewMemoryRepository создаёт пустой in-memory репозиторий изделий.
func NewMemoryRepository() CraftRepository {
	return &memoryRepo{
		crafts: make(map[string]*model.Craft),
	}
}

func (r *memoryRepo) Create(_ context.Context, craft *model.Craft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	craft.ID = uuid.New().String()
	craft.CreatedAt = now
	craft.UpdatedAt = now

	r.crafts[craft.ID] = copyCraft(craft)
	return nil
}

func (r *memoryRepo) List(_ context.Context) ([]*model.Craft, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Craft, 0, len(r.crafts))
	for _, c := range r.crafts {
		result = append(result, copyCraft(c))
	}

	// Стабильный порядок в пределах одного чтения
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*model.Craft, error) {
	normalized, ok := normalizeID(id)
	if !ok {
		return nil, ErrNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.crafts[normalized]
	if !ok {
		return nil, ErrNotFound
	}
	return copyCraft(c), nil
}

func (r *memoryRepo) Update(_ context.Context, craft *model.Craft, replaceImage bool) (*model.Craft, error) {
	normalized, ok := normalizeID(craft.ID)
	if !ok {
		return nil, ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.crafts[normalized]
	if !ok {
		return nil, ErrNotFound
	}

	updated := copyCraft(craft)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	if !replaceImage {
		updated.Image = existing.Image
	}

	r.crafts[normalized] = updated
	return copyCraft(updated), nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	normalized, ok := normalizeID(id)
	if !ok {
		return ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.crafts[normalized]; !ok {
		return ErrNotFound
	}
	delete(r.crafts, normalized)
	return nil
}

// copyCraft создаёт глубокую копию записи, чтобы избежать data race
// при внешних изменениях возвращённых значений.
func copyCraft(c *model.Craft) *model.Craft {
	copied := *c
	copied.Supplies = make([]string, len(c.Supplies))
	copy(copied.Supplies, c.Supplies)
	return &copied
}
