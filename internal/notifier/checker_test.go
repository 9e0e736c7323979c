package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	mem "health-companion/internal/adapters/storage/memory"
	"health-companion/internal/domain/medications"
	"health-companion/internal/domain/preferences"
	"health-companion/internal/platform/logger"
	"health-companion/internal/ports/notify"
)

type fakeSink struct {
	sent []notify.Notification

	// failTag: las notificaciones con este tag fallan con failErr.
	failTag string
	failErr error
}

func (f *fakeSink) Notify(ctx context.Context, n notify.Notification) error {
	if f.failTag != "" && n.Tag == f.failTag {
		return f.failErr
	}
	f.sent = append(f.sent, n)
	return nil
}

func newTestChecker(t *testing.T, sink notify.Notifier, at time.Time) (*Checker, *medications.Service, *preferences.Service) {
	t.Helper()

	meds := medications.NewService(mem.NewMedicationsRepo())
	prefs := preferences.NewService(mem.NewPreferencesRepo())

	c := NewChecker(meds, prefs, sink, logger.Nop())
	c.now = func() time.Time { return at }
	return c, meds, prefs
}

func createMed(t *testing.T, meds *medications.Service, owner string, timings []string) medications.Medication {
	t.Helper()

	m, err := meds.Create(context.Background(), owner, medications.CreateInput{
		Name:      "Aspirina",
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
		Timings:   timings,
	})
	if err != nil {
		t.Fatalf("create medication: %v", err)
	}
	return m
}

func TestChecker_DispatchesOncePerSlot(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	c, meds, _ := newTestChecker(t, sink, at)

	m := createMed(t, meds, "user-1", []string{"09:00", "21:00"})

	c.Check(context.Background())
	if len(sink.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sink.sent))
	}

	n := sink.sent[0]
	if n.Title != "Medication Reminder" {
		t.Fatalf("unexpected title %q", n.Title)
	}
	if n.Body != "Time to take Aspirina" {
		t.Fatalf("unexpected body %q", n.Body)
	}
	if n.Tag != "med-"+m.ID {
		t.Fatalf("unexpected tag %q", n.Tag)
	}

	// segundo poll del mismo minuto: de-dup por slot
	c.Check(context.Background())
	if len(sink.sent) != 1 {
		t.Fatalf("expected still 1 notification after re-poll, got %d", len(sink.sent))
	}
}

func TestChecker_NextSlotFiresAgain(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	c, meds, _ := newTestChecker(t, sink, at)

	createMed(t, meds, "user-1", []string{"09:00", "21:00"})

	c.Check(context.Background())

	// sin registro durante el día: la toma de la noche avisa de nuevo
	c.now = func() time.Time { return time.Date(2026, 1, 10, 21, 0, 0, 0, time.UTC) }
	c.Check(context.Background())

	if len(sink.sent) != 2 {
		t.Fatalf("expected 2 notifications across slots, got %d", len(sink.sent))
	}
}

func TestChecker_NoMatchNoDispatch(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 1, 0, 0, time.UTC)
	sink := &fakeSink{}
	c, meds, _ := newTestChecker(t, sink, at)

	createMed(t, meds, "user-1", []string{"09:00"})

	c.Check(context.Background())
	if len(sink.sent) != 0 {
		t.Fatalf("expected no notification one minute late, got %d", len(sink.sent))
	}
}

func TestChecker_SkipsRecordedDose(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	c, meds, _ := newTestChecker(t, sink, at)

	m := createMed(t, meds, "user-1", []string{"09:00"})

	// registrado como no tomado también suprime: hubo decisión del usuario
	if _, err := meds.RecordDose(context.Background(), m.ID, "2026-01-10", false); err != nil {
		t.Fatalf("record dose: %v", err)
	}

	c.Check(context.Background())
	if len(sink.sent) != 0 {
		t.Fatalf("expected no notification for recorded dose, got %d", len(sink.sent))
	}
}

func TestChecker_SkipsOwnerWithRemindersDisabled(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	sink := &fakeSink{}
	c, meds, prefs := newTestChecker(t, sink, at)

	createMed(t, meds, "user-1", []string{"09:00"})
	createMed(t, meds, "user-2", []string{"09:00"})

	if _, err := prefs.Put(context.Background(), "user-1", preferences.PutInput{
		RemindersEnabled: false,
		Theme:            "light",
	}); err != nil {
		t.Fatalf("put preferences: %v", err)
	}

	c.Check(context.Background())
	if len(sink.sent) != 1 {
		t.Fatalf("expected only user-2's reminder, got %d", len(sink.sent))
	}
}

func TestChecker_PermissionDeniedDegradesOnce(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	c, meds, _ := newTestChecker(t, nil, at)

	m := createMed(t, meds, "user-1", []string{"09:00"})

	sink := &fakeSink{failTag: "med-" + m.ID, failErr: notify.ErrPermissionDenied}
	c.sink = sink

	c.Check(context.Background())
	if len(sink.sent) != 0 {
		t.Fatalf("expected no successful dispatch, got %d", len(sink.sent))
	}

	// ticks siguientes: degradado, ni siquiera intenta
	sink.failTag = ""
	c.Check(context.Background())
	if len(sink.sent) != 0 {
		t.Fatalf("expected checker disabled after permission denied, got %d", len(sink.sent))
	}
}

func TestChecker_DispatchFailureIsolatedPerMedication(t *testing.T) {
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	c, meds, _ := newTestChecker(t, nil, at)

	bad := createMed(t, meds, "user-1", []string{"09:00"})
	good := createMed(t, meds, "user-1", []string{"09:00"})

	sink := &fakeSink{failTag: "med-" + bad.ID, failErr: errors.New("gateway down")}
	c.sink = sink

	c.Check(context.Background())
	if len(sink.sent) != 1 {
		t.Fatalf("expected the healthy medication dispatched, got %d", len(sink.sent))
	}
	if sink.sent[0].Tag != "med-"+good.ID {
		t.Fatalf("expected tag for healthy medication, got %q", sink.sent[0].Tag)
	}

	// la falla no marca el slot: el próximo tick del mismo minuto reintenta
	sink.failTag = ""
	c.Check(context.Background())
	found := false
	for _, n := range sink.sent {
		if n.Tag == "med-"+bad.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected retry to dispatch previously failed medication")
	}
}
