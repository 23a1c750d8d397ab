package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"nicu-progress/internal/domain/entries"
	"nicu-progress/internal/domain/progress"
)

type entryRepo struct {
	mu   sync.RWMutex
	byID map[string]entries.Entry
}

func NewEntryRepo() entries.Repository {
	return &entryRepo{
		byID: make(map[string]entries.Entry),
	}
}

func (r *entryRepo) Create(ctx context.Context, e entries.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("entry id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("entry already exists")
	}

	r.byID[e.ID] = clone(e)
	return nil
}

func (r *entryRepo) GetByID(ctx context.Context, patientID, id string) (entries.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok || e.PatientID != patientID {
		return entries.Entry{}, entries.ErrNotFound
	}
	return clone(e), nil
}

func (r *entryRepo) ListByPatient(ctx context.Context, patientID string) ([]entries.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entries.Entry, 0)
	for _, e := range r.byID {
		if e.PatientID == patientID {
			out = append(out, clone(e))
		}
	}

	// date asc, created_at asc (igual que Postgres)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *entryRepo) Delete(ctx context.Context, patientID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok || e.PatientID != patientID {
		return entries.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *entryRepo) DeleteByPatient(ctx context.Context, patientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.byID {
		if e.PatientID == patientID {
			delete(r.byID, id)
		}
	}
	return nil
}

// clone copia los mapas para que el caller no mute el estado del repo.
func clone(e entries.Entry) entries.Entry {
	num := make(map[progress.Field]progress.Value, len(e.Numeric))
	for k, v := range e.Numeric {
		num[k] = v
	}
	cat := make(map[progress.Category]string, len(e.Categorical))
	for k, v := range e.Categorical {
		cat[k] = v
	}
	e.Numeric, e.Categorical = num, cat
	return e
}
