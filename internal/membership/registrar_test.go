package membership_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/fanclub-membership/internal/membership"
	"github.com/iliyamo/fanclub-membership/internal/model"
)

func join(id, artist, course, start string) membership.RegisterRequest {
	return membership.RegisterRequest{
		SubscriptionID: id,
		CustomerID:     10,
		ArtistName:     artist,
		CourseName:     course,
		StartDate:      start,
	}
}

func TestRegister_Scenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	notifier := &recordingNotifier{}
	svc := membership.NewService(store, membership.WithNotifier(notifier))

	first, err := svc.Register(ctx, join("1", "Aurora", "Half Year", "2024-01-01"))
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if got := membership.FormatDate(first.EndDate); got != "2024-06-29" {
		t.Errorf("end date = %s, want 2024-06-29", got)
	}
	if first.GroupID != 1 || first.CourseID != 1 || first.CustomerID != 10 {
		t.Errorf("unexpected subscription %+v", first)
	}

	_, err = svc.Register(ctx, join("2", "Aurora", "Half Year", "2024-06-01"))
	if !errors.Is(err, membership.ErrDuplicateMembership) {
		t.Fatalf("overlapping join err = %v, want ErrDuplicateMembership", err)
	}
	if _, ok := store.subscriptions[2]; ok {
		t.Error("rejected subscription was stored")
	}

	third, err := svc.Register(ctx, join("3", "Aurora", "Half Year", "2024-08-01"))
	if err != nil {
		t.Fatalf("disjoint join: %v", err)
	}
	if got := membership.FormatDate(third.EndDate); got != "2025-01-28" {
		t.Errorf("end date = %s, want 2025-01-28", got)
	}

	if len(store.subscriptions) != 2 {
		t.Errorf("stored %d subscriptions, want 2", len(store.subscriptions))
	}
	if len(notifier.joined) != 2 {
		t.Errorf("published %d joined events, want 2", len(notifier.joined))
	}
}

func TestRegister_BackToBackAllowed(t *testing.T) {
	ctx := context.Background()
	svc := membership.NewService(newMemStore())

	first, err := svc.Register(ctx, join("1", "Aurora", "Half Year", "2024-01-01"))
	if err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.Register(ctx, join("2", "Aurora", "Half Year", membership.FormatDate(first.EndDate))); err != nil {
		t.Fatalf("join starting on previous end date: %v", err)
	}
}

func TestRegister_OtherArtistIndependent(t *testing.T) {
	ctx := context.Background()
	svc := membership.NewService(newMemStore())

	if _, err := svc.Register(ctx, join("1", "Aurora", "Annual", "2024-01-01")); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := svc.Register(ctx, join("2", "Nova", "Annual", "2024-01-01")); err != nil {
		t.Fatalf("same period, other artist: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     membership.RegisterRequest
		setup   func(*memStore)
		wantErr error
	}{
		{"non numeric id", join("abc", "Aurora", "Half Year", "2024-01-01"), nil, membership.ErrInvalidID},
		{"zero id", join("0", "Aurora", "Half Year", "2024-01-01"), nil, membership.ErrInvalidID},
		{"negative id", join("-4", "Aurora", "Half Year", "2024-01-01"), nil, membership.ErrInvalidID},
		{
			"duplicate id",
			join("5", "Aurora", "Half Year", "2024-01-01"),
			func(m *memStore) { m.subscriptions[5] = model.Subscription{ID: 5, CustomerID: 99, GroupID: 2} },
			membership.ErrDuplicateID,
		},
		{"bad date", join("1", "Aurora", "Half Year", "2024/01/01"), nil, membership.ErrInvalidDate},
		{"unknown course", join("1", "Aurora", "Lifetime", "2024-01-01"), nil, membership.ErrLookupFailure},
		{"course without duration", join("1", "Aurora", "Broken", "2024-01-01"), nil, membership.ErrInvalidCourse},
		{"unknown artist", join("1", "Nobody", "Half Year", "2024-01-01"), nil, membership.ErrLookupFailure},
		{
			"unknown customer",
			membership.RegisterRequest{SubscriptionID: "1", CustomerID: 77, ArtistName: "Aurora", CourseName: "Half Year", StartDate: "2024-01-01"},
			nil,
			membership.ErrLookupFailure,
		},
		{
			"insert failure",
			join("1", "Aurora", "Half Year", "2024-01-01"),
			func(m *memStore) { m.failNext = errBoom },
			membership.ErrStorage,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			if tt.setup != nil {
				tt.setup(store)
			}
			before := len(store.subscriptions)
			notifier := &recordingNotifier{}
			svc := membership.NewService(store, membership.WithNotifier(notifier))

			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if len(store.subscriptions) != before {
				t.Errorf("subscriptions changed on failure")
			}
			if len(notifier.joined) != 0 {
				t.Errorf("event published on failure")
			}
		})
	}
}

func TestRegister_StorageErrorKeepsCause(t *testing.T) {
	store := newMemStore()
	store.failNext = errBoom
	_, err := membership.NewService(store).Register(context.Background(), join("1", "Aurora", "Half Year", "2024-01-01"))
	if !errors.Is(err, membership.ErrStorage) || !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want ErrStorage wrapping the cause", err)
	}
}

func TestRegister_LocksCustomer(t *testing.T) {
	store := newMemStore()
	if _, err := membership.NewService(store).Register(context.Background(), join("1", "Aurora", "Half Year", "2024-01-01")); err != nil {
		t.Fatalf("join: %v", err)
	}
	if len(store.locked) != 1 || store.locked[0] != 10 {
		t.Errorf("locked = %v, want [10]", store.locked)
	}
}

func TestRegister_NotifierFailureIgnored(t *testing.T) {
	store := newMemStore()
	notifier := &recordingNotifier{err: errBoom}
	svc := membership.NewService(store, membership.WithNotifier(notifier))
	if _, err := svc.Register(context.Background(), join("1", "Aurora", "Half Year", "2024-01-01")); err != nil {
		t.Fatalf("join returned publish error: %v", err)
	}
	if _, ok := store.subscriptions[1]; !ok {
		t.Error("subscription not stored")
	}
}

func TestHasOverlap(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.subscriptions[1] = model.Subscription{
		ID: 1, CustomerID: 10, GroupID: 1,
		StartDate: date(t, "2024-01-01"), EndDate: date(t, "2024-06-29"),
	}

	tests := []struct {
		name     string
		artistID model.ID
		start    string
		want     bool
	}{
		{"inside", 1, "2024-03-01", true},
		{"after end", 1, "2024-06-29", false},
		{"other artist", 2, "2024-03-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := membership.PeriodFor(date(t, tt.start), 1)
			got, err := membership.HasOverlap(ctx, store, 10, tt.artistID, p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}
