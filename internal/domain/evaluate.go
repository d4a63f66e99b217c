package domain

import "time"

// BookingRequest is a transient reservation request: the desired window and
// guest count. Timestamps are naive and interpreted in the local time of
// the club's resources.
type BookingRequest struct {
	Start  time.Time
	End    time.Time
	Guests int
}

// EvaluateBooking runs the composed decision pipeline over one request:
// service entitlement, interval sanity, capacity, collision with existing
// reservations of the collision group, tier policy thresholds and the
// night-time restriction. existingByCalendar is supplied by the caller from
// the external scheduling collaborator; the function itself performs no
// side effects and may be invoked freely in parallel for read-only
// previews. Any call path leading to a write must serialize per calendar
// around the collision check and the write.
func EvaluateBooking(
	req BookingRequest,
	requester *Requester,
	serviceAlias string,
	calendar *Calendar,
	existingByCalendar map[string][]Interval,
	now time.Time,
) Decision {
	if !requester.HasService(serviceAlias) {
		return Rejected(ReasonMissingEntitlement, 0, 0)
	}

	if d := CheckInterval(req.Start, req.End, now); d != nil {
		return *d
	}

	capacity := CheckCapacity(req.Guests, calendar)
	if capacity != nil && capacity.Outcome == OutcomeRejected {
		return *capacity
	}

	// Collision terminates the pipeline before the rule thresholds: a taken
	// slot reads as taken no matter how the policy would have judged it.
	requested := Interval{Start: req.Start, End: req.End}
	if DetectCollision(calendar, requested, existingByCalendar) {
		return AlreadyBooked()
	}

	tier := SelectTier(requester, serviceAlias)
	rules := calendar.RulesFor(tier)

	if d := CheckDuration(req.Start, req.End, rules); d != nil {
		return *d
	}
	if d := CheckAdvanceNotice(req.Start, now, rules); d != nil {
		return *d
	}
	if d := CheckPriorWindow(req.Start, now, rules); d != nil {
		return *d
	}

	if capacity != nil {
		return *capacity
	}

	if d := CheckNightTime(req.Start, req.End, tier, rules); d != nil {
		return *d
	}

	return Confirmed()
}
