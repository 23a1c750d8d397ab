package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"nicu-progress/internal/domain/patients"
)

type patientRepo struct {
	mu   sync.RWMutex
	byID map[string]patients.Patient
}

func NewPatientRepo() patients.Repository {
	return &patientRepo{
		byID: make(map[string]patients.Patient),
	}
}

func (r *patientRepo) Create(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("patient id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("patient already exists")
	}
	if r.hasPatientIDLocked(p.PatientID, p.ID) {
		return patients.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *patientRepo) Update(ctx context.Context, p patients.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return patients.ErrNotFound
	}
	if r.hasPatientIDLocked(p.PatientID, p.ID) {
		return patients.ErrConflict
	}
	r.byID[p.ID] = p
	return nil
}

func (r *patientRepo) GetByID(ctx context.Context, id string) (patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return patients.Patient{}, patients.ErrNotFound
	}
	return p, nil
}

func (r *patientRepo) List(ctx context.Context) ([]patients.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]patients.Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}

	// mismo orden que Postgres: patient_id asc
	sort.Slice(out, func(i, j int) bool {
		if out[i].PatientID != out[j].PatientID {
			return out[i].PatientID < out[j].PatientID
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *patientRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return patients.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// hasPatientIDLocked: otro paciente (distinto de selfID) ya usa ese MRN.
func (r *patientRepo) hasPatientIDLocked(patientID, selfID string) bool {
	for id, p := range r.byID {
		if id != selfID && p.PatientID == patientID {
			return true
		}
	}
	return false
}
