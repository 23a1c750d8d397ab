package patients

import (
	"context"
	"errors"

	"nicu-progress/internal/domain/progress"
)

// Load implementa progress.Source: datos del paciente + entradas crudas.
// Vive aquí para evitar ciclos de imports (progress no conoce patients).
func (s *Service) Load(ctx context.Context, id string) (progress.Patient, []progress.Record, error) {
	p, records, err := s.GetWithEntries(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return progress.Patient{}, nil, progress.ErrPatientNotFound
		}
		return progress.Patient{}, nil, err
	}
	return progress.Patient{DOB: p.DOB, GA: p.GA}, records, nil
}
