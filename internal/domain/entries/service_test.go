package entries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"nicu-progress/internal/adapters/storage/memory"
	"nicu-progress/internal/domain/entries"
	"nicu-progress/internal/domain/patients"
	"nicu-progress/internal/domain/progress"
)

func setup(t *testing.T, p patients.Patient) (*entries.Service, *patients.Service) {
	t.Helper()

	patientRepo := memory.NewPatientRepo()
	entriesSvc := entries.NewService(memory.NewEntryRepo(), patientRepo)
	patientsSvc := patients.NewService(patientRepo, entriesSvc)

	if p.ID != "" {
		if err := patientRepo.Create(context.Background(), p); err != nil {
			t.Fatalf("seed patient: %v", err)
		}
	}
	return entriesSvc, patientsSvc
}

func TestCreate_DerivesDOLAndPMA(t *testing.T) {
	svc, _ := setup(t, patients.Patient{ID: "p-1", PatientID: "MRN-1", Name: "A", DOB: "2024-03-01", GA: "28"})

	e, err := svc.Create(context.Background(), "p-1", "nurse", entries.CreateInput{
		Date: "2024-03-08",
		Numeric: map[progress.Field]progress.Value{
			progress.FieldWeight: " 1.2 ",
			progress.FieldDOL:    "99",
			progress.FieldPMA:    "",
		},
		Categorical: map[progress.Category]string{progress.CategoryTypeOfMilk: "EBM", progress.CategoryGainLoss: " "},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Numeric[progress.FieldDOL] != "8" || e.Numeric[progress.FieldPMA] != "29.1" {
		t.Fatalf("expected dol=8 pma=29.1, got %q %q", e.Numeric[progress.FieldDOL], e.Numeric[progress.FieldPMA])
	}
	if e.Numeric[progress.FieldWeight] != "1.2" {
		t.Fatalf("expected trimmed weight, got %q", e.Numeric[progress.FieldWeight])
	}
	if _, ok := e.Categorical[progress.CategoryGainLoss]; ok {
		t.Fatalf("blank categorical values must be dropped")
	}
}

func TestCreate_DefaultsDateToToday(t *testing.T) {
	svc, _ := setup(t, patients.Patient{ID: "p-1", PatientID: "MRN-1", Name: "A", DOB: "2024-03-01", GA: "28"})

	e, err := svc.Create(context.Background(), "p-1", "nurse", entries.CreateInput{})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Date != time.Now().UTC().Format(progress.DateLayout) {
		t.Fatalf("expected today's date, got %s", e.Date)
	}
}

func TestCreate_Errors(t *testing.T) {
	ctx := context.Background()

	svc, _ := setup(t, patients.Patient{ID: "p-1", PatientID: "MRN-1", Name: "A", DOB: "not-a-date", GA: "28"})
	_, err := svc.Create(ctx, "p-1", "nurse", entries.CreateInput{Date: "2024-03-08"})
	if !errors.Is(err, entries.ErrDerivationUnavailable) {
		t.Fatalf("expected ErrDerivationUnavailable, got %v", err)
	}

	svc, _ = setup(t, patients.Patient{ID: "p-1", PatientID: "MRN-1", Name: "A", DOB: "2024-03-01", GA: "28"})
	_, err = svc.Create(ctx, "p-1", "nurse", entries.CreateInput{Date: "08/03/2024"})
	if !errors.Is(err, entries.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for date, got %v", err)
	}
	_, err = svc.Create(ctx, "p-1", "nurse", entries.CreateInput{
		Date:    "2024-03-08",
		Numeric: map[progress.Field]progress.Value{progress.FieldCal: "NaN"},
	})
	if !errors.Is(err, entries.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for NaN, got %v", err)
	}
	_, err = svc.Create(ctx, "missing", "nurse", entries.CreateInput{Date: "2024-03-08"})
	if !errors.Is(err, patients.ErrNotFound) {
		t.Fatalf("expected patients.ErrNotFound, got %v", err)
	}
}

func TestListRecordsAndCascade(t *testing.T) {
	ctx := context.Background()
	svc, patientsSvc := setup(t, patients.Patient{ID: "p-1", PatientID: "MRN-1", Name: "A", DOB: "2024-03-01", GA: "28"})

	for _, d := range []string{"2024-03-10", "2024-03-08", "2024-03-09"} {
		if _, err := svc.Create(ctx, "p-1", "nurse", entries.CreateInput{Date: d}); err != nil {
			t.Fatalf("create %s: %v", d, err)
		}
	}

	recs, err := svc.ListRecords(ctx, "p-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 || recs[0].Date != "2024-03-08" || recs[2].Date != "2024-03-10" {
		t.Fatalf("unexpected order: %+v", recs)
	}

	p, records, err := patientsSvc.Load(ctx, "p-1")
	if err != nil || p.DOB != "2024-03-01" || len(records) != 3 {
		t.Fatalf("unexpected load: %+v %d %v", p, len(records), err)
	}

	if err := patientsSvc.Delete(ctx, "p-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	recs, _ = svc.ListRecords(ctx, "p-1")
	if len(recs) != 0 {
		t.Fatalf("expected entries removed with patient, got %d", len(recs))
	}
	if _, _, err := patientsSvc.Load(ctx, "p-1"); !errors.Is(err, progress.ErrPatientNotFound) {
		t.Fatalf("expected progress.ErrPatientNotFound, got %v", err)
	}
}
