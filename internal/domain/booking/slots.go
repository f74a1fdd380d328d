package booking

import (
	"fmt"
	"time"

	"github.com/lumenstudio/lumen-api/internal/domain/catalog"
	"github.com/lumenstudio/lumen-api/internal/domain/location"
	"github.com/lumenstudio/lumen-api/internal/domain/settings"
)

const (
	defaultDurationMinutes = 120
	hardWindowStart        = "09:00"
	hardWindowEnd          = "17:00"
)

// SessionDuration returns the shoot length in minutes for a package,
// falling back to the studio default when none is chosen yet.
func SessionDuration(pkg *catalog.Package) int {
	if pkg != nil && pkg.DurationMinutes > 0 {
		return pkg.DurationMinutes
	}
	return defaultDurationMinutes
}

// AvailableTimes returns the bookable start times for a date as ascending
// HH:MM strings. An empty slice means no availability.
//
// The shooting window comes from the location override when one is set
// (an explicitly empty override means the location is closed), otherwise
// from the studio policy. Slots step from the window start by the policy
// interval and a slot landing exactly on the window end is kept; sessions
// are allowed to run past closing. On the current day, slots starting at
// or before now plus the minimum lead time are dropped. A future date
// whose window fits no full step still offers the window start.
func AvailableTimes(date string, loc *location.Location, pkg *catalog.Package, policy settings.Resolved, now time.Time) []string {
	startMin, endMin, open := resolveWindow(loc, policy)
	if !open {
		return []string{}
	}

	interval := policy.SlotIntervalMinutes
	if interval <= 0 {
		interval = settings.DefaultSlotIntervalMinutes
	}

	slots := []string{}
	for t := startMin; t <= endMin; t += interval {
		slots = append(slots, formatHHMM(t))
	}

	if date == now.Format("2006-01-02") {
		cutoff := now.Hour()*60 + now.Minute() + policy.MinimumBookingHours*60
		kept := slots[:0]
		for _, s := range slots {
			if m, _ := parseHHMM(s); m > cutoff {
				kept = append(kept, s)
			}
		}
		return kept
	}

	if len(slots) == 0 {
		return []string{formatHHMM(startMin)}
	}
	return slots
}

// resolveWindow picks the shooting window in minutes past midnight.
// The third return is false when the location is closed outright.
func resolveWindow(loc *location.Location, policy settings.Resolved) (int, int, bool) {
	if loc != nil {
		if wh, ok := loc.Window(); ok {
			start, okS := parseHHMM(wh.Start)
			end, okE := parseHHMM(wh.End)
			if !okS || !okE {
				return 0, 0, false
			}
			return start, end, true
		}
	}

	start, okS := parseHHMM(policy.WorkingHoursStart)
	end, okE := parseHHMM(policy.WorkingHoursEnd)
	if !okS || !okE {
		start, _ = parseHHMM(hardWindowStart)
		end, _ = parseHHMM(hardWindowEnd)
	}
	return start, end, true
}

func parseHHMM(s string) (int, bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, false
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatHHMM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
