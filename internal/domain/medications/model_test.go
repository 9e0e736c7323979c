package medications

import "testing"

func TestMedication_DueAt_ExactMinuteMatch(t *testing.T) {
	m := Medication{
		Name:    "Aspirina",
		Timings: []string{"09:00", "21:00"},
	}

	if !m.DueAt("09:00") {
		t.Fatalf("expected due at 09:00")
	}
	if !m.DueAt("21:00") {
		t.Fatalf("expected due at 21:00")
	}

	// sin ventana de tolerancia: el minuto vecino no matchea
	if m.DueAt("09:01") {
		t.Fatalf("expected not due at 09:01")
	}
	if m.DueAt("08:59") {
		t.Fatalf("expected not due at 08:59")
	}
	if m.DueAt("12:00") {
		t.Fatalf("expected not due at 12:00")
	}
}

func TestMedication_DueAt_MalformedNeverDue(t *testing.T) {
	noName := Medication{Timings: []string{"09:00"}}
	if noName.DueAt("09:00") {
		t.Fatalf("expected malformed (no name) to never be due")
	}

	noTimings := Medication{Name: "Aspirina"}
	if noTimings.DueAt("09:00") {
		t.Fatalf("expected malformed (no timings) to never be due")
	}
}

func TestMedication_TakenOn_TriState(t *testing.T) {
	m := Medication{
		Name:    "Aspirina",
		Timings: []string{"09:00"},
		Taken: map[string]bool{
			"2026-01-10": true,
			"2026-01-11": false,
		},
	}

	if got := m.TakenOn("2026-01-10"); got != TakenStateTaken {
		t.Fatalf("expected taken, got %s", got)
	}
	if got := m.TakenOn("2026-01-11"); got != TakenStateNotTaken {
		t.Fatalf("expected not_taken, got %s", got)
	}
	// sin entrada != registrada como no tomada
	if got := m.TakenOn("2026-01-12"); got != TakenStateUnrecorded {
		t.Fatalf("expected unrecorded, got %s", got)
	}
}

func TestMedication_TakenOn_NilMapIsUnrecorded(t *testing.T) {
	m := Medication{Name: "Aspirina", Timings: []string{"09:00"}}
	if got := m.TakenOn("2026-01-10"); got != TakenStateUnrecorded {
		t.Fatalf("expected unrecorded on nil map, got %s", got)
	}
}
