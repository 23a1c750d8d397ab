package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nicu-progress/internal/domain/patients"
	"nicu-progress/internal/domain/progress"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("entry not found")

	// ErrDerivationUnavailable: el paciente no tiene DOB/GA utilizables,
	// no se puede calcular DOL/PMA de la entrada.
	ErrDerivationUnavailable = errors.New("patient DOB or GA is missing or invalid")
)

// PatientLookup lo satisface patients.Repository (y patients.Service).
type PatientLookup interface {
	GetByID(ctx context.Context, id string) (patients.Patient, error)
}

type Service struct {
	repo     Repository
	patients PatientLookup
	now      func() time.Time
}

func NewService(repo Repository, patients PatientLookup) *Service {
	return &Service{
		repo:     repo,
		patients: patients,
		now:      time.Now,
	}
}

type CreateInput struct {
	Date        string // YYYY-MM-DD; vacío = hoy (UTC)
	Numeric     map[progress.Field]progress.Value
	Categorical map[progress.Category]string
}

func (s *Service) Create(ctx context.Context, patientID, createdBy string, in CreateInput) (Entry, error) {
	if strings.TrimSpace(createdBy) == "" {
		return Entry{}, ErrInvalidInput
	}
	p, err := s.patients.GetByID(ctx, strings.TrimSpace(patientID))
	if err != nil {
		return Entry{}, err
	}

	now := s.now()
	date := strings.TrimSpace(in.Date)
	if date == "" {
		date = now.UTC().Format(progress.DateLayout)
	}
	if _, err := time.Parse(progress.DateLayout, date); err != nil {
		return Entry{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	e := Entry{
		ID:          uuid.NewString(),
		PatientID:   p.ID,
		Date:        date,
		Numeric:     make(map[progress.Field]progress.Value, len(progress.NumericFields)),
		Categorical: make(map[progress.Category]string, len(progress.Categories)),
		CreatedBy:   createdBy,
		CreatedAt:   now,
	}
	for f, v := range in.Numeric {
		v = progress.Value(strings.TrimSpace(string(v)))
		if v.IsEmpty() {
			continue
		}
		if _, ok := v.Float(); !ok {
			return Entry{}, fmt.Errorf("%w: %s must be a number", ErrInvalidInput, f.EntryKey())
		}
		e.Numeric[f] = v
	}
	for c, v := range in.Categorical {
		if v = strings.TrimSpace(v); v != "" {
			e.Categorical[c] = v
		}
	}

	// DOL y PMA siempre se calculan; lo que mande el cliente se ignora.
	d := progress.Derive(p.DOB, p.GA, date)
	if !d.Available {
		return Entry{}, ErrDerivationUnavailable
	}
	e.Numeric[progress.FieldDOL] = progress.Value(d.DOLString())
	e.Numeric[progress.FieldPMA] = progress.Value(d.PMAString())

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, patientID, id string) (Entry, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(patientID), strings.TrimSpace(id))
}

// List devuelve las entradas del paciente (vista de tabla, sin agregar).
func (s *Service) List(ctx context.Context, patientID string) ([]Entry, error) {
	p, err := s.patients.GetByID(ctx, strings.TrimSpace(patientID))
	if err != nil {
		return nil, err
	}
	return s.repo.ListByPatient(ctx, p.ID)
}

func (s *Service) Delete(ctx context.Context, patientID, id string) error {
	return s.repo.Delete(ctx, strings.TrimSpace(patientID), strings.TrimSpace(id))
}

// ListRecords implementa patients.EntryStore.
func (s *Service) ListRecords(ctx context.Context, patientID string) ([]progress.Record, error) {
	items, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]progress.Record, 0, len(items))
	for _, e := range items {
		out = append(out, e.Record())
	}
	return out, nil
}

func (s *Service) DeleteByPatient(ctx context.Context, patientID string) error {
	return s.repo.DeleteByPatient(ctx, patientID)
}
