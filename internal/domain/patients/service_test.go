package patients

import (
	"context"
	"errors"
	"testing"
	"time"

	"nicu-progress/internal/domain/progress"
)

// fakeRepo en memoria, mínimo para probar reglas del servicio.
type fakeRepo struct {
	byID map[string]Patient
}

func newFakeRepo() *fakeRepo { return &fakeRepo{byID: map[string]Patient{}} }

func (r *fakeRepo) Create(_ context.Context, p Patient) error {
	for _, x := range r.byID {
		if x.PatientID == p.PatientID {
			return ErrConflict
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(_ context.Context, p Patient) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (Patient, error) {
	p, ok := r.byID[id]
	if !ok {
		return Patient{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) List(_ context.Context) ([]Patient, error) {
	out := make([]Patient, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeEntries struct {
	deleted []string
}

func (f *fakeEntries) ListRecords(_ context.Context, _ string) ([]progress.Record, error) {
	return nil, nil
}

func (f *fakeEntries) DeleteByPatient(_ context.Context, patientID string) error {
	f.deleted = append(f.deleted, patientID)
	return nil
}

func newTestService() (*Service, *fakeEntries) {
	ents := &fakeEntries{}
	svc := NewService(newFakeRepo(), ents)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, ents
}

func validInput() CreateInput {
	return CreateInput{PatientID: "MRN-1", Name: "Baby A", GA: "28.5", DOB: "2024-03-01", Sex: "Female", AgaSgaLga: "sga"}
}

func TestCreate_NormalizesAndValidates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "nurse", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" || p.Sex != SexFemale || p.AgaSgaLga != ClassSGA || p.CreatedBy != "nurse" {
		t.Fatalf("unexpected patient: %+v", p)
	}

	if _, err := svc.Create(ctx, "nurse", validInput()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	cases := map[string]func(*CreateInput){
		"missing name": func(in *CreateInput) { in.Name = " " },
		"bad dob":      func(in *CreateInput) { in.DOB = "2024-02-30" },
		"negative ga":  func(in *CreateInput) { in.GA = "-1" },
		"ga too high":  func(in *CreateInput) { in.GA = "46" },
		"bad weight":   func(in *CreateInput) { in.Weight = "abc" },
		"bad class":    func(in *CreateInput) { in.AgaSgaLga = "XGA" },
		"bad tob":      func(in *CreateInput) { in.TOB = "25:00" },
	}
	for name, mutate := range cases {
		in := validInput()
		in.PatientID = "MRN-" + name
		mutate(&in)
		if _, err := svc.Create(ctx, "nurse", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "nurse", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	name := "Baby A. Pérez"
	updated, err := svc.Update(ctx, p.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != name || updated.GA != "28.5" || updated.DOB != "2024-03-01" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	bad := "yesterday"
	if _, err := svc.Update(ctx, p.ID, UpdateInput{DOB: &bad}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Update(ctx, "missing", UpdateInput{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_CascadesEntries(t *testing.T) {
	svc, ents := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "nurse", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(ents.deleted) != 1 || ents.deleted[0] != p.ID {
		t.Fatalf("expected entries deleted for %s, got %v", p.ID, ents.deleted)
	}
	if err := svc.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
