package settings

import "testing"

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestResolve_NilPolicyUsesDefaults(t *testing.T) {
	r := DefaultResolved()
	if r.WorkingHoursStart != "09:00" || r.WorkingHoursEnd != "17:00" {
		t.Fatalf("unexpected default window: %s-%s", r.WorkingHoursStart, r.WorkingHoursEnd)
	}
	if r.SlotIntervalMinutes != 120 || r.MinimumBookingHours != 1 {
		t.Fatalf("unexpected defaults: %+v", r)
	}
}

func TestResolve_ExplicitZeroIsNotUnset(t *testing.T) {
	p := &Policy{MinimumBookingHours: intPtr(0)}
	r := p.Resolve()
	if r.MinimumBookingHours != 0 {
		t.Fatalf("explicit zero must survive resolution, got %d", r.MinimumBookingHours)
	}
	// untouched knobs still default
	if r.SlotIntervalMinutes != DefaultSlotIntervalMinutes {
		t.Fatalf("unset knob must default, got %d", r.SlotIntervalMinutes)
	}
}

func TestResolve_SetValuesWin(t *testing.T) {
	p := &Policy{
		WorkingHoursStart:   strPtr("10:00"),
		WorkingHoursEnd:     strPtr("22:00"),
		SlotIntervalMinutes: intPtr(60),
	}
	r := p.Resolve()
	if r.WorkingHoursStart != "10:00" || r.WorkingHoursEnd != "22:00" || r.SlotIntervalMinutes != 60 {
		t.Fatalf("unexpected resolution: %+v", r)
	}
}
