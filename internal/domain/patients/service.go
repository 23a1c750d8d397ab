package patients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nicu-progress/internal/domain/progress"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("patient not found")
	ErrConflict     = errors.New("patient_id already registered")
)

// maxGestationalAge en semanas; por encima es casi seguro un error de tipeo.
const maxGestationalAge = 45

type Service struct {
	repo    Repository
	entries EntryStore
	now     func() time.Time
}

func NewService(repo Repository, entries EntryStore) *Service {
	return &Service{
		repo:    repo,
		entries: entries,
		now:     time.Now,
	}
}

type CreateInput struct {
	PatientID string
	Name      string
	GA        string
	Weight    string
	AgaSgaLga string
	Sex       string
	DOB       string
	TOB       string
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	PatientID *string
	Name      *string
	GA        *string
	Weight    *string
	AgaSgaLga *string
	Sex       *string
	DOB       *string
	TOB       *string
}

func (s *Service) Create(ctx context.Context, createdBy string, in CreateInput) (Patient, error) {
	if strings.TrimSpace(createdBy) == "" {
		return Patient{}, ErrInvalidInput
	}

	now := s.now()
	p := Patient{
		ID:        uuid.NewString(),
		PatientID: strings.TrimSpace(in.PatientID),
		Name:      strings.TrimSpace(in.Name),
		GA:        strings.TrimSpace(in.GA),
		Weight:    strings.TrimSpace(in.Weight),
		AgaSgaLga: Classification(strings.ToUpper(strings.TrimSpace(in.AgaSgaLga))),
		Sex:       normalizeSex(in.Sex),
		DOB:       strings.TrimSpace(in.DOB),
		TOB:       strings.TrimSpace(in.TOB),
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := validate(p); err != nil {
		return Patient{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Patient, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context) ([]Patient, error) {
	return s.repo.List(ctx)
}

// GetWithEntries devuelve el paciente y sus entradas ordenadas por fecha.
func (s *Service) GetWithEntries(ctx context.Context, id string) (Patient, []progress.Record, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Patient{}, nil, err
	}
	records, err := s.entries.ListRecords(ctx, p.ID)
	if err != nil {
		return Patient{}, nil, fmt.Errorf("list entries: %w", err)
	}
	return p, records, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Patient, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Patient{}, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.PatientID, in.PatientID)
	set(&p.Name, in.Name)
	set(&p.GA, in.GA)
	set(&p.Weight, in.Weight)
	set(&p.DOB, in.DOB)
	set(&p.TOB, in.TOB)
	if in.AgaSgaLga != nil {
		p.AgaSgaLga = Classification(strings.ToUpper(strings.TrimSpace(*in.AgaSgaLga)))
	}
	if in.Sex != nil {
		p.Sex = normalizeSex(*in.Sex)
	}
	if err := validate(p); err != nil {
		return Patient{}, err
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Patient{}, err
	}
	return p, nil
}

// Delete elimina el paciente y todas sus entradas.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	return s.entries.DeleteByPatient(ctx, id)
}

func validate(p Patient) error {
	if p.PatientID == "" || p.Name == "" {
		return fmt.Errorf("%w: patient_id and name are required", ErrInvalidInput)
	}
	if _, err := time.Parse(progress.DateLayout, p.DOB); err != nil {
		return fmt.Errorf("%w: dob must be YYYY-MM-DD", ErrInvalidInput)
	}
	ga, ok := progress.ParseGestationalAge(p.GA)
	if !ok || ga.GreaterThan(decimal.NewFromInt(maxGestationalAge)) {
		return fmt.Errorf("%w: ga must be a number of weeks between 0 and %d", ErrInvalidInput, maxGestationalAge)
	}
	if p.Weight != "" {
		if _, ok := progress.Value(p.Weight).Float(); !ok {
			return fmt.Errorf("%w: weight must be numeric", ErrInvalidInput)
		}
	}
	switch p.AgaSgaLga {
	case "", ClassAGA, ClassSGA, ClassLGA:
	default:
		return fmt.Errorf("%w: aga_sga_lga must be AGA, SGA or LGA", ErrInvalidInput)
	}
	if p.TOB != "" {
		if _, err := time.Parse("15:04", p.TOB); err != nil {
			return fmt.Errorf("%w: tob must be HH:MM", ErrInvalidInput)
		}
	}
	return nil
}

func normalizeSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}
