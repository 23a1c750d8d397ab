package patients

import (
	"context"

	"nicu-progress/internal/domain/progress"
)

type Repository interface {
	Create(ctx context.Context, p Patient) error
	Update(ctx context.Context, p Patient) error
	GetByID(ctx context.Context, id string) (Patient, error)
	List(ctx context.Context) ([]Patient, error)
	Delete(ctx context.Context, id string) error
}

// EntryStore es lo que patients necesita de las entradas diarias.
// Lo implementa entries.Service; se declara aquí para no importar entries.
type EntryStore interface {
	ListRecords(ctx context.Context, patientID string) ([]progress.Record, error)
	DeleteByPatient(ctx context.Context, patientID string) error
}
