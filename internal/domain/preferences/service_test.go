package preferences

import (
	"context"
	"errors"
	"testing"
)

type testRepo struct {
	byUser map[string]Preferences
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string]Preferences{}}
}

func (r *testRepo) Get(ctx context.Context, userID string) (Preferences, bool, error) {
	p, ok := r.byUser[userID]
	return p, ok, nil
}

func (r *testRepo) Put(ctx context.Context, p Preferences) error {
	r.byUser[p.UserID] = p
	return nil
}

func TestService_Get_DefaultsWhenUnset(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !p.RemindersEnabled {
		t.Fatalf("expected reminders enabled by default")
	}
	if p.Theme != "light" {
		t.Fatalf("expected default theme light, got %s", p.Theme)
	}
}

func TestService_Put_RoundTrip(t *testing.T) {
	svc := NewService(newTestRepo())
	ctx := context.Background()

	if _, err := svc.Put(ctx, "user-1", PutInput{RemindersEnabled: false, Theme: "dark"}); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	p, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if p.RemindersEnabled || p.Theme != "dark" {
		t.Fatalf("expected stored prefs back, got %+v", p)
	}
}

func TestService_Put_RejectsUnknownTheme(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Put(context.Background(), "user-1", PutInput{Theme: "sepia"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
