package domain

import (
	"fmt"
	"time"
)

// Outcome is the terminal result of evaluating a reservation request.
type Outcome string

const (
	// OutcomeConfirmed - the reservation proceeds confirmed.
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeFlaggedOverCapacity - the reservation proceeds, created
	// unapproved because the guest count exceeds the calendar limit.
	OutcomeFlaggedOverCapacity Outcome = "flagged_over_capacity"
	// OutcomeFlaggedNightTime - the reservation proceeds, created
	// unapproved because it falls outside the day window.
	OutcomeFlaggedNightTime Outcome = "flagged_night_time"
	// OutcomeAlreadyBooked - the slot collides with an existing
	// reservation; nothing is created.
	OutcomeAlreadyBooked Outcome = "already_booked"
	// OutcomeRejected - a hard policy violation; nothing is created.
	OutcomeRejected Outcome = "rejected"
)

// DenyReason names the policy a rejected request violated.
type DenyReason string

const (
	ReasonInvalidInterval            DenyReason = "invalid_interval"
	ReasonMissingEntitlement         DenyReason = "missing_entitlement"
	ReasonOverCapacity               DenyReason = "over_capacity"
	ReasonExceedsMaxDuration         DenyReason = "exceeds_max_duration"
	ReasonInsufficientAdvanceNotice  DenyReason = "insufficient_advance_notice"
	ReasonTooFarInAdvance            DenyReason = "too_far_in_advance"
	ReasonNightTimeRestricted        DenyReason = "night_time_restricted"
)

// Decision is the outcome of one evaluation, together with enough context
// to render a precise message: the violated threshold and the actual value.
// Decisions are transient values; nothing is persisted by the evaluator.
type Decision struct {
	Outcome Outcome
	// Reason is set when Outcome is OutcomeRejected.
	Reason DenyReason

	// Threshold context for duration/advance/prior rejections.
	Limit  time.Duration
	Actual time.Duration

	// Capacity context for over-capacity outcomes.
	MaxPeople int
	Guests    int
}

// Confirmed builds the confirmed decision.
func Confirmed() Decision {
	return Decision{Outcome: OutcomeConfirmed}
}

// FlaggedOverCapacity builds the soft over-capacity decision.
func FlaggedOverCapacity(maxPeople, guests int) Decision {
	return Decision{Outcome: OutcomeFlaggedOverCapacity, MaxPeople: maxPeople, Guests: guests}
}

// FlaggedNightTime builds the soft night-time decision.
func FlaggedNightTime() Decision {
	return Decision{Outcome: OutcomeFlaggedNightTime}
}

// AlreadyBooked builds the collision decision.
func AlreadyBooked() Decision {
	return Decision{Outcome: OutcomeAlreadyBooked}
}

// Rejected builds a hard denial with threshold context.
func Rejected(reason DenyReason, limit, actual time.Duration) Decision {
	return Decision{Outcome: OutcomeRejected, Reason: reason, Limit: limit, Actual: actual}
}

// RejectedOverCapacity builds the hard capacity denial.
func RejectedOverCapacity(maxPeople, guests int) Decision {
	return Decision{Outcome: OutcomeRejected, Reason: ReasonOverCapacity, MaxPeople: maxPeople, Guests: guests}
}

// CreatesEvent reports whether this outcome results in a stored reservation
// (confirmed or flagged for manual approval).
func (d Decision) CreatesEvent() bool {
	switch d.Outcome {
	case OutcomeConfirmed, OutcomeFlaggedOverCapacity, OutcomeFlaggedNightTime:
		return true
	default:
		return false
	}
}

// Flagged reports whether the reservation is created unapproved.
func (d Decision) Flagged() bool {
	return d.Outcome == OutcomeFlaggedOverCapacity || d.Outcome == OutcomeFlaggedNightTime
}

// EventState maps the decision onto the state of the created event.
// Only meaningful when CreatesEvent is true.
func (d Decision) EventState() EventState {
	if d.Flagged() {
		return StateNotApproved
	}
	return StateConfirmed
}

// Message renders a user-facing explanation of the decision.
func (d Decision) Message() string {
	switch d.Outcome {
	case OutcomeConfirmed:
		return "reservation confirmed"
	case OutcomeFlaggedOverCapacity:
		return fmt.Sprintf("reservation for more than %d people requires manager approval (requested %d)", d.MaxPeople, d.Guests)
	case OutcomeFlaggedNightTime:
		return "night time reservation requires manager approval"
	case OutcomeAlreadyBooked:
		return "there is already a reservation for that time"
	}

	switch d.Reason {
	case ReasonInvalidInterval:
		return "reservation interval is invalid"
	case ReasonMissingEntitlement:
		return "you do not have the service required for this reservation"
	case ReasonOverCapacity:
		return fmt.Sprintf("you can't reserve this calendar for more than %d people (requested %d)", d.MaxPeople, d.Guests)
	case ReasonExceedsMaxDuration:
		return fmt.Sprintf("reservation duration %s exceeds the limit of %s", d.Actual, d.Limit)
	case ReasonInsufficientAdvanceNotice:
		return fmt.Sprintf("reservations must be made at least %s in advance (yours is %s ahead)", d.Limit, d.Actual)
	case ReasonTooFarInAdvance:
		return fmt.Sprintf("reservations can't be made more than %s in advance (yours is %s ahead)", d.Limit, d.Actual)
	case ReasonNightTimeRestricted:
		return "night time reservations are not permitted for your membership"
	default:
		return "reservation rejected"
	}
}
