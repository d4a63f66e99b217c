package domain

import "time"

// absDiff returns the absolute difference between two instants.
//
// The advance and prior checks compare absolute differences, so a start in
// the past beyond the prior window is rejected as "too far in advance".
// The literal comparison is kept on purpose; callers reject past starts
// before these checks are reached.
func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// CheckInterval validates the temporal sanity of a requested window:
// the start must not be before now and the end must not be before the start.
func CheckInterval(start, end, now time.Time) *Decision {
	if start.Before(now) || end.Before(start) {
		d := Rejected(ReasonInvalidInterval, 0, 0)
		return &d
	}
	return nil
}

// CheckCapacity validates the guest count against the calendar limit.
// Over the limit it either rejects outright or, when the calendar permits
// over-capacity reservations with manager approval, flags the request.
func CheckCapacity(guests int, calendar *Calendar) *Decision {
	if guests <= calendar.MaxPeople {
		return nil
	}
	if calendar.MoreThanMaxPeopleWithPermission {
		d := FlaggedOverCapacity(calendar.MaxPeople, guests)
		return &d
	}
	d := RejectedOverCapacity(calendar.MaxPeople, guests)
	return &d
}

// CheckDuration validates the reservation length against the tier policy.
func CheckDuration(start, end time.Time, rules Rules) *Decision {
	actual := absDiff(end, start)
	if actual > rules.MaxDuration() {
		d := Rejected(ReasonExceedsMaxDuration, rules.MaxDuration(), actual)
		return &d
	}
	return nil
}

// CheckAdvanceNotice validates the minimum notice before the start.
func CheckAdvanceNotice(start, now time.Time, rules Rules) *Decision {
	notice := absDiff(start, now)
	if notice < rules.MinAdvance() {
		d := Rejected(ReasonInsufficientAdvanceNotice, rules.MinAdvance(), notice)
		return &d
	}
	return nil
}

// CheckPriorWindow validates how far ahead the reservation is placed.
func CheckPriorWindow(start, now time.Time, rules Rules) *Decision {
	ahead := absDiff(start, now)
	if ahead > rules.PriorWindow() {
		d := Rejected(ReasonTooFarInAdvance, rules.PriorWindow(), ahead)
		return &d
	}
	return nil
}

// InsideDayWindow reports whether the interval stays inside the day window:
// both boundary times of day within [08:00, 22:00].
func InsideDayWindow(start, end time.Time) bool {
	if start.Before(dayWindowOpen(start)) {
		return false
	}
	if end.Before(dayWindowOpen(end)) || end.After(dayWindowClose(end)) {
		return false
	}
	return true
}

// CheckNightTime applies the night-time restriction. Active members (and
// managers) bypass it entirely; for regular club members a reservation
// outside the day window is flagged for manual approval unless the tier
// policy permits night reservations.
func CheckNightTime(start, end time.Time, tier Tier, rules Rules) *Decision {
	if tier != TierClubMember {
		return nil
	}
	if rules.NightTime {
		return nil
	}
	if !InsideDayWindow(start, end) {
		d := FlaggedNightTime()
		return &d
	}
	return nil
}

// EvaluateEligibility applies the tier policy to a requested interval,
// short-circuiting on the first failed check. The check order defines which
// message the caller sees: interval sanity, capacity, duration, advance
// notice, prior window, night time. Pure function of its inputs; the clock
// is injected.
func EvaluateEligibility(start, end time.Time, guests int, calendar *Calendar, rules Rules, tier Tier, now time.Time) Decision {
	if d := CheckInterval(start, end, now); d != nil {
		return *d
	}

	// A hard capacity violation short-circuits here; the soft (flagged)
	// variant is reported only after the remaining hard checks pass.
	capacity := CheckCapacity(guests, calendar)
	if capacity != nil && capacity.Outcome == OutcomeRejected {
		return *capacity
	}

	if d := CheckDuration(start, end, rules); d != nil {
		return *d
	}
	if d := CheckAdvanceNotice(start, now, rules); d != nil {
		return *d
	}
	if d := CheckPriorWindow(start, now, rules); d != nil {
		return *d
	}

	if capacity != nil {
		return *capacity
	}
	if d := CheckNightTime(start, end, tier, rules); d != nil {
		return *d
	}
	return Confirmed()
}
