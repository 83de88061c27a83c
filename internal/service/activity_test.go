package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"secure_notes/internal/models"
)

// fakeActivityRepo is a minimal stub that satisfies the repository.ActivityRepo interface.
type fakeActivityRepo struct {
	// captured inputs
	gotUser int
	gotFrom time.Time
	gotTo   time.Time
	gotType string
	appended []models.ActivityEvent

	// configured outputs
	events    []models.ActivityEvent
	err       error
	appendErr error

	calls int
}

func (f *fakeActivityRepo) List(ctx context.Context, userID int, from, to time.Time, typ string) ([]models.ActivityEvent, error) {
	f.calls++
	f.gotUser = userID
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeActivityRepo) Append(ctx context.Context, e models.ActivityEvent) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appended = append(f.appended, e)
	return nil
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(time.FixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

func Test_normalizeEventType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in, exp string
	}{
		{in: "", exp: ""},
		{in: "  LOGIN ", exp: "LOGIN"},
		{in: "note_deleted", exp: "NOTE_DELETED"},
	}

	for _, c := range cases {
		if got := normalizeEventType(c.in); got != c.exp {
			t.Fatalf("normalizeEventType(%q) = %q; want %q", c.in, got, c.exp)
		}
	}
}

func TestActivityService_History_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{events: []models.ActivityEvent{{EventID: "1"}}}
	svc := NewActivityService(frepo)

	fromLocal := mustTimeIn(time.FixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(time.FixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)

	out, err := svc.History(context.Background(), 12, ActivityFilter{From: fromLocal, To: toLocal, Type: "  login "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EventID != "1" {
		t.Fatalf("unexpected events: %+v", out)
	}
	if frepo.gotUser != 12 {
		t.Fatalf("repo gotUser=%d; want 12", frepo.gotUser)
	}
	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC)
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC)
	if !frepo.gotFrom.Equal(wantFrom) || !frepo.gotTo.Equal(wantTo) {
		t.Fatalf("repo got range %v..%v; want %v..%v", frepo.gotFrom, frepo.gotTo, wantFrom, wantTo)
	}
	if frepo.gotType != "LOGIN" {
		t.Fatalf("repo gotType=%q; want %q", frepo.gotType, "LOGIN")
	}
}

func TestActivityService_History_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{}
	svc := NewActivityService(frepo)

	_, err := svc.History(context.Background(), 1, ActivityFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestActivityService_History_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeActivityRepo{err: errors.New("db down")}
	svc := NewActivityService(frepo)

	_, err := svc.History(context.Background(), 1, ActivityFilter{})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
}
