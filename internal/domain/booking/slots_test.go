package booking

import (
	"reflect"
	"testing"
	"time"

	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
	"github.com/lumenstudio/lumen-api/internal/domain/settings"
)

func defaultPolicy() settings.Resolved {
	return settings.DefaultResolved()
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func locationWithWindow(start, end string) *location.Location {
	return &location.Location{
		WorkingHours: location.NullWorkingHours{
			Hours: location.WorkingHours{Start: start, End: end},
			Valid: true,
		},
	}
}

func TestAvailableTimesDefaultWindow(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	got := AvailableTimes("2026-09-10", nil, nil, defaultPolicy(), now)
	want := []string{"09:00", "11:00", "13:00", "15:00", "17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("default window slots = %v, want %v", got, want)
	}
}

func TestAvailableTimesIncludesWindowEnd(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	got := AvailableTimes("2026-09-10", nil, nil, defaultPolicy(), now)
	if got[len(got)-1] != "17:00" {
		t.Fatalf("expected slot at window end, got %v", got)
	}
}

func TestAvailableTimesClosedLocation(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	loc := locationWithWindow("", "")

	got := AvailableTimes("2026-09-10", loc, nil, defaultPolicy(), now)
	if len(got) != 0 {
		t.Fatalf("closed location should have no slots, got %v", got)
	}
}

func TestAvailableTimesLocationWithoutOverrideUsesPolicy(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	loc := &location.Location{}

	got := AvailableTimes("2026-09-10", loc, nil, defaultPolicy(), now)
	want := []string{"09:00", "11:00", "13:00", "15:00", "17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("location without override = %v, want policy window %v", got, want)
	}
}

func TestAvailableTimesLocationOverrideWins(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	loc := locationWithWindow("12:00", "16:00")

	got := AvailableTimes("2026-09-10", loc, nil, defaultPolicy(), now)
	want := []string{"12:00", "14:00", "16:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("override window slots = %v, want %v", got, want)
	}
}

func TestAvailableTimesTodayDropsSlotsWithinLeadTime(t *testing.T) {
	now := mustTime(t, "2026-09-10 14:40")

	got := AvailableTimes("2026-09-10", nil, nil, defaultPolicy(), now)
	want := []string{"17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("today at 14:40 with 1h lead = %v, want %v", got, want)
	}
}

func TestAvailableTimesTodayCutoffIsInclusive(t *testing.T) {
	// 1h lead from 14:00 lands exactly on the 15:00 slot, which must go.
	now := mustTime(t, "2026-09-10 14:00")

	got := AvailableTimes("2026-09-10", nil, nil, defaultPolicy(), now)
	want := []string{"17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("slot at exact cutoff should be dropped, got %v", got)
	}
}

func TestAvailableTimesTodayAllPastHasNoFallback(t *testing.T) {
	now := mustTime(t, "2026-09-10 18:30")

	got := AvailableTimes("2026-09-10", nil, nil, defaultPolicy(), now)
	if len(got) != 0 {
		t.Fatalf("today after closing should be empty, got %v", got)
	}
}

func TestAvailableTimesShortWindow(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	loc := locationWithWindow("10:00", "10:30")

	got := AvailableTimes("2026-09-10", loc, nil, defaultPolicy(), now)
	want := []string{"10:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("short window slots = %v, want %v", got, want)
	}
}

func TestAvailableTimesFutureEmptyFallsBackToWindowStart(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	loc := locationWithWindow("17:00", "09:00")

	got := AvailableTimes("2026-09-10", loc, nil, defaultPolicy(), now)
	want := []string{"17:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("inverted window should fall back to window start, got %v", got)
	}
}

func TestAvailableTimesCustomInterval(t *testing.T) {
	now := mustTime(t, "2026-09-01 08:00")
	policy := defaultPolicy()
	policy.SlotIntervalMinutes = 90
	policy.WorkingHoursStart = "10:00"
	policy.WorkingHoursEnd = "14:00"

	got := AvailableTimes("2026-09-10", nil, nil, policy, now)
	want := []string{"10:00", "11:30", "13:00"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("90-minute interval slots = %v, want %v", got, want)
	}
}

func TestSessionDuration(t *testing.T) {
	if got := SessionDuration(nil); got != 120 {
		t.Fatalf("no package duration = %d, want 120", got)
	}
	pkg := &catalog.Package{DurationMinutes: 45}
	if got := SessionDuration(pkg); got != 45 {
		t.Fatalf("package duration = %d, want 45", got)
	}
}

func TestQuote(t *testing.T) {
	pkg := &catalog.Package{Price: 1000}
	addons := []catalog.Addon{{Price: 200}, {Price: 150}}
	loc := &location.Location{ExtraFee: 50}

	if got := Quote(pkg, addons, loc); got != 1400 {
		t.Fatalf("quote = %v, want 1400", got)
	}
}

func TestQuoteWithoutLocationFee(t *testing.T) {
	pkg := &catalog.Package{Price: 1000}

	if got := Quote(pkg, nil, nil); got != 1000 {
		t.Fatalf("quote without extras = %v, want 1000", got)
	}
	if got := Quote(pkg, nil, &location.Location{ExtraFee: -10}); got != 1000 {
		t.Fatalf("negative fee must not change quote, got %v", got)
	}
	if got := Quote(pkg, nil, &location.Location{}); got != 1000 {
		t.Fatalf("zero fee must not change quote, got %v", got)
	}
}
