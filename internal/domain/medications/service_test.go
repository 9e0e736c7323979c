package medications

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Medication

	failUpdate bool
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Medication{}}
}

func (r *testRepo) Create(ctx context.Context, m Medication) error {
	if m.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[m.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) Update(ctx context.Context, m Medication) error {
	if r.failUpdate {
		return errors.New("repo: update failed")
	}
	if _, ok := r.byID[m.ID]; !ok {
		return errRepoNotFound
	}
	r.byID[m.ID] = m
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Medication, error) {
	m, ok := r.byID[id]
	if !ok {
		return Medication{}, errRepoNotFound
	}
	return m, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error) {
	out := make([]Medication, 0)
	for _, m := range r.byID {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *testRepo) ListOwners(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, m := range r.byID {
		if !seen[m.OwnerUserID] {
			seen[m.OwnerUserID] = true
			out = append(out, m.OwnerUserID)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return errRepoNotFound
	}
	delete(r.byID, id)
	return nil
}

func validCreateInput() CreateInput {
	return CreateInput{
		Name:      "Aspirina",
		StartDate: "2026-01-01",
		EndDate:   "2026-02-01",
		Timings:   []string{"09:00", "21:00"},
		Frequency: "daily",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_InitializesEmptyTaken(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	m, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("expected generated ID")
	}
	if m.Taken == nil || len(m.Taken) != 0 {
		t.Fatalf("expected empty non-nil Taken, got %#v", m.Taken)
	}
	if m.CreatedAt != now {
		t.Fatalf("expected CreatedAt=now")
	}
	if m.OwnerUserID != "user-1" {
		t.Fatalf("expected owner user-1, got %s", m.OwnerUserID)
	}
}

func TestService_Create_UniqueIDs(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	m1, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create #1 error: %v", err)
	}
	m2, err := svc.Create(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create #2 error: %v", err)
	}
	if m1.ID == m2.ID {
		t.Fatalf("expected distinct IDs for back-to-back creates")
	}
}

func TestService_Create_Validation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	cases := []struct {
		name string
		mut  func(*CreateInput)
	}{
		{"empty name", func(in *CreateInput) { in.Name = "  " }},
		{"no timings", func(in *CreateInput) { in.Timings = nil }},
		{"bad timing format", func(in *CreateInput) { in.Timings = []string{"9:00"} }},
		{"timing out of range", func(in *CreateInput) { in.Timings = []string{"25:00"} }},
		{"bad start date", func(in *CreateInput) { in.StartDate = "01/01/2026" }},
		{"bad end date", func(in *CreateInput) { in.EndDate = "2026-1-1" }},
	}

	for _, tc := range cases {
		in := validCreateInput()
		tc.mut(&in)
		if _, err := svc.Create(ctx, "user-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}

	if _, err := svc.Create(ctx, "", validCreateInput()); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty owner: expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_PatchesOnlyProvidedFields(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	name := "Paracetamol"
	updated, err := svc.Update(ctx, m.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Paracetamol" {
		t.Fatalf("expected name updated, got %s", updated.Name)
	}
	// campos no provistos quedan igual
	if updated.StartDate != m.StartDate || len(updated.Timings) != 2 {
		t.Fatalf("expected untouched fields preserved")
	}
}

func TestService_RecordDose_MergesPreservingOtherDays(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.RecordDose(ctx, m.ID, "2026-01-10", true); err != nil {
		t.Fatalf("RecordDose #1 error: %v", err)
	}
	got, err := svc.RecordDose(ctx, m.ID, "2026-01-11", false)
	if err != nil {
		t.Fatalf("RecordDose #2 error: %v", err)
	}

	if got.TakenOn("2026-01-10") != TakenStateTaken {
		t.Fatalf("expected day 10 preserved as taken")
	}
	if got.TakenOn("2026-01-11") != TakenStateNotTaken {
		t.Fatalf("expected day 11 recorded as not_taken")
	}
	if got.TakenOn("2026-01-12") != TakenStateUnrecorded {
		t.Fatalf("expected day 12 unrecorded")
	}
}

func TestService_RecordDose_IdempotentAndOverwrite(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// mismo valor dos veces: idempotente
	if _, err := svc.RecordDose(ctx, m.ID, "2026-01-10", true); err != nil {
		t.Fatalf("RecordDose error: %v", err)
	}
	got, err := svc.RecordDose(ctx, m.ID, "2026-01-10", true)
	if err != nil {
		t.Fatalf("RecordDose repeat error: %v", err)
	}
	if len(got.Taken) != 1 || got.TakenOn("2026-01-10") != TakenStateTaken {
		t.Fatalf("expected single taken entry, got %#v", got.Taken)
	}

	// valor contrario: sobreescribe (corrección de mis-tap)
	got, err = svc.RecordDose(ctx, m.ID, "2026-01-10", false)
	if err != nil {
		t.Fatalf("RecordDose overwrite error: %v", err)
	}
	if got.TakenOn("2026-01-10") != TakenStateNotTaken {
		t.Fatalf("expected overwrite to not_taken, got %s", got.TakenOn("2026-01-10"))
	}
}

func TestService_RecordDose_FailedWriteLeavesStateUntouched(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	repo.failUpdate = true
	if _, err := svc.RecordDose(ctx, m.ID, "2026-01-10", true); err == nil {
		t.Fatalf("expected error on failed write")
	}
	repo.failUpdate = false

	stored, err := svc.GetByID(ctx, m.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if len(stored.Taken) != 0 {
		t.Fatalf("expected taken untouched after failed write, got %#v", stored.Taken)
	}
}

func TestService_RecordDose_RejectsBadDate(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	m, err := svc.Create(ctx, "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	for _, date := range []string{"", "2026-1-10", "10-01-2026", "2026-13-01"} {
		if _, err := svc.RecordDose(ctx, m.ID, date, true); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("date %q: expected ErrInvalidInput, got %v", date, err)
		}
	}
}

func TestService_Today_UsesServiceClock(t *testing.T) {
	svc := NewService(newTestRepo())
	svc.now = func() time.Time {
		return time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	}
	if got := svc.Today(); got != "2026-03-07" {
		t.Fatalf("expected 2026-03-07, got %s", got)
	}
}
