package announcement

import (
	"database/sql"
	"testing"
	"time"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("parse %q: %v", value, err)
	}
	return parsed
}

func TestPublishedAt(t *testing.T) {
	now := ts(t, "2026-06-15")

	cases := []struct {
		name string
		a    Announcement
		want bool
	}{
		{"active without window", Announcement{IsActive: true}, true},
		{"inactive", Announcement{IsActive: false}, false},
		{"before start", Announcement{
			IsActive: true,
			StartsAt: sql.NullTime{Time: ts(t, "2026-07-01"), Valid: true},
		}, false},
		{"after end", Announcement{
			IsActive: true,
			EndsAt:   sql.NullTime{Time: ts(t, "2026-06-01"), Valid: true},
		}, false},
		{"inside window", Announcement{
			IsActive: true,
			StartsAt: sql.NullTime{Time: ts(t, "2026-06-01"), Valid: true},
			EndsAt:   sql.NullTime{Time: ts(t, "2026-07-01"), Valid: true},
		}, true},
		{"open-ended start", Announcement{
			IsActive: true,
			StartsAt: sql.NullTime{Time: ts(t, "2026-06-01"), Valid: true},
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.PublishedAt(now); got != tc.want {
				t.Fatalf("PublishedAt = %v, want %v", got, tc.want)
			}
		})
	}
}
