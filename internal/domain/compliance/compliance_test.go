package compliance

import (
	"testing"

	"health-companion/internal/domain/medications"
)

func TestAggregate_FoldsAcrossMedications(t *testing.T) {
	meds := []medications.Medication{
		{
			Name:    "Aspirina",
			Timings: []string{"09:00"},
			Taken: map[string]bool{
				"2026-01-10": true,
				"2026-01-11": false,
			},
		},
		{
			Name:    "Paracetamol",
			Timings: []string{"21:00"},
			Taken: map[string]bool{
				"2026-01-10": true,
			},
		},
	}

	got := Aggregate(meds)
	if got.Taken != 2 || got.Missed != 1 {
		t.Fatalf("expected {taken:2 missed:1}, got %+v", got)
	}
}

func TestAggregate_EmptyIsZeroes(t *testing.T) {
	if got := Aggregate(nil); got.Taken != 0 || got.Missed != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}

	// medicación sin registros tampoco suma
	meds := []medications.Medication{
		{Name: "Aspirina", Timings: []string{"09:00"}, Taken: map[string]bool{}},
	}
	if got := Aggregate(meds); got.Taken != 0 || got.Missed != 0 {
		t.Fatalf("expected zero summary, got %+v", got)
	}
}

func TestAggregate_SkipsMalformedRecords(t *testing.T) {
	meds := []medications.Medication{
		// sin nombre: corrupto, se saltea aunque tenga registros
		{
			Timings: []string{"09:00"},
			Taken:   map[string]bool{"2026-01-10": true},
		},
		{
			Name:  "Aspirina",
			Taken: map[string]bool{"2026-01-10": false},
		},
		{
			Name:    "Paracetamol",
			Timings: []string{"21:00"},
			Taken:   map[string]bool{"2026-01-10": true},
		},
	}

	got := Aggregate(meds)
	if got.Taken != 1 || got.Missed != 0 {
		t.Fatalf("expected malformed skipped {taken:1 missed:0}, got %+v", got)
	}
}
