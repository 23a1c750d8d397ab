package entries

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, patientID, id string) (Entry, error)
	// ListByPatient devuelve las entradas ordenadas por fecha y luego created_at.
	ListByPatient(ctx context.Context, patientID string) ([]Entry, error)
	Delete(ctx context.Context, patientID, id string) error
	DeleteByPatient(ctx context.Context, patientID string) error
}
