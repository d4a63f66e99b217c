package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRules возвращается конструктором при недопустимых значениях правил
var ErrInvalidRules = errors.New("domain: invalid rules")

// Rules represents the reservation policy attached to a calendar for one
// membership tier. A Rules value is immutable once constructed; replacing
// a policy means constructing a new value.
type Rules struct {
	// NightTime permits reservations outside the day window (08:00-22:00).
	NightTime bool
	// ReservationWithoutPermission marks reservations that do not need a
	// manager approval. Carried through for the admin UI, the evaluator
	// does not consume it.
	ReservationWithoutPermission bool
	// MaxReservationHours is the longest permitted reservation duration.
	MaxReservationHours int
	// InAdvanceHours and InAdvanceMinutes define the minimum notice
	// required before the reservation start.
	InAdvanceHours   int
	InAdvanceMinutes int
	// InPriorDays is how many days ahead a reservation may be placed.
	InPriorDays int
}

// NewRules constructs a validated Rules value.
// Any negative numeric field fails construction.
func NewRules(nightTime, withoutPermission bool, maxReservationHours, inAdvanceHours, inAdvanceMinutes, inPriorDays int) (Rules, error) {
	r := Rules{
		NightTime:                    nightTime,
		ReservationWithoutPermission: withoutPermission,
		MaxReservationHours:          maxReservationHours,
		InAdvanceHours:               inAdvanceHours,
		InAdvanceMinutes:             inAdvanceMinutes,
		InPriorDays:                  inPriorDays,
	}
	if err := r.Validate(); err != nil {
		return Rules{}, err
	}
	return r, nil
}

// Validate checks the Rules invariants: all numeric fields must be >= 0.
func (r Rules) Validate() error {
	if r.MaxReservationHours < 0 {
		return fmt.Errorf("%w: maxReservationHours must be >= 0, got %d", ErrInvalidRules, r.MaxReservationHours)
	}
	if r.InAdvanceHours < 0 {
		return fmt.Errorf("%w: inAdvanceHours must be >= 0, got %d", ErrInvalidRules, r.InAdvanceHours)
	}
	if r.InAdvanceMinutes < 0 {
		return fmt.Errorf("%w: inAdvanceMinutes must be >= 0, got %d", ErrInvalidRules, r.InAdvanceMinutes)
	}
	if r.InPriorDays < 0 {
		return fmt.Errorf("%w: inPriorDays must be >= 0, got %d", ErrInvalidRules, r.InPriorDays)
	}
	return nil
}

// MaxDuration returns the duration limit as a time.Duration.
func (r Rules) MaxDuration() time.Duration {
	return time.Duration(r.MaxReservationHours) * time.Hour
}

// MinAdvance returns the required notice before the reservation start.
func (r Rules) MinAdvance() time.Duration {
	return time.Duration(r.InAdvanceHours)*time.Hour + time.Duration(r.InAdvanceMinutes)*time.Minute
}

// PriorWindow returns how far into the future a reservation may be placed.
func (r Rules) PriorWindow() time.Duration {
	return time.Duration(r.InPriorDays) * 24 * time.Hour
}
