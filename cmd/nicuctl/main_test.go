package main

import (
	"bytes"
	"strings"
	"testing"

	"nicu-progress/internal/adapters/recordsapi"
	"nicu-progress/internal/domain/progress"
)

func TestRenderSeries(t *testing.T) {
	p := recordsapi.Patient{Name: "Baby A", PatientID: "MRN-001", DOB: "2024-03-01", GA: "28"}
	records := []progress.Record{
		{ID: "e-2", Date: "2024-03-09", Numeric: map[progress.Field]progress.Value{progress.FieldWeight: "1.3"}},
		{ID: "e-1", Date: "2024-03-08", Numeric: map[progress.Field]progress.Value{progress.FieldWeight: "1.2", progress.FieldKMC: "4"}},
	}
	s, err := progress.Build(progress.Patient{DOB: p.DOB, GA: p.GA}, records, progress.LevelDaily)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	var buf bytes.Buffer
	if err := renderSeries(&buf, p, s); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"DOL 9", "PMA 29.3", "Weight", "KMC (hrs/day)", "2024-03-08", "1.20", "4.00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	last := lines[len(lines)-1]
	if !strings.Contains(last, "2024-03-09") || !strings.HasSuffix(strings.TrimSpace(last), "-") {
		t.Fatalf("expected missing kmc rendered as '-' on last row, got %q", last)
	}
}
