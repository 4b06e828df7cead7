package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"studio-site-backend/internal/domain"

	"github.com/google/uuid"
)

type ApplicationRepository struct {
	mu   sync.RWMutex
	apps map[string]domain.Application
}

func NewApplicationRepository() *ApplicationRepository {
	return &ApplicationRepository{apps: make(map[string]domain.Application)}
}

func (r *ApplicationRepository) Create(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	app.ID = uuid.New().String()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusNew
	}
	r.apps[app.ID] = *app
	return nil
}

func (r *ApplicationRepository) GetByID(_ context.Context, id string) (*domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &app, nil
}

func (r *ApplicationRepository) List(_ context.Context) ([]domain.Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var apps []domain.Application
	for _, a := range r.apps {
		apps = append(apps, a)
	}
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	return apps, nil
}

func (r *ApplicationRepository) Update(_ context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[app.ID]; !ok {
		return domain.ErrNotFound
	}
	app.UpdatedAt = time.Now()
	r.apps[app.ID] = *app
	return nil
}

func (r *ApplicationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.apps[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.apps, id)
	return nil
}
