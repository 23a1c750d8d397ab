package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name string `json:"name" validate:"required"`
	DOB  string `json:"dob" validate:"required,datetime=2006-01-02"`
	GA   string `json:"ga" validate:"required,decimal=0:45"`
	Wt   string `json:"weight" validate:"decimal"`
}

func TestStruct(t *testing.T) {
	ok := sample{Name: "Baby A", DOB: "2024-03-01", GA: "28.5", Wt: ""}
	if err := Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := sample{DOB: "01/03/2024", GA: "50", Wt: "heavy"}
	err := Struct(bad)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"name is required", "dob must match", "ga must be a number", "weight must be a number"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}
