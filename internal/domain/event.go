package domain

import "time"

// EventState represents the state of a reservation event.
type EventState string

const (
	// StateNotApproved - created but waiting for a manager decision.
	StateNotApproved EventState = "not_approved"
	// StateUpdateRequested - the owner asked to move the reservation time.
	StateUpdateRequested EventState = "update_requested"
	// StateConfirmed - the reservation is confirmed.
	StateConfirmed EventState = "confirmed"
	// StateCanceled - the reservation has been canceled.
	StateCanceled EventState = "canceled"
)

// Event represents a reservation recorded in the system. Its identity is the
// id of the mirrored event in the external scheduling system.
type Event struct {
	ID            string
	Purpose       string
	Guests        int
	Email         string
	StartDatetime time.Time
	EndDatetime   time.Time
	State         EventState

	UserID     int64
	CalendarID string

	AdditionalServices []string

	DeletedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCanceled returns true if the reservation has been canceled.
func (e *Event) IsCanceled() bool {
	return e.State == StateCanceled
}

// IsActive returns true if the reservation still occupies its slot.
func (e *Event) IsActive() bool {
	return e.State != StateCanceled
}

// HasStarted reports whether the reservation window has already begun.
func (e *Event) HasStarted(now time.Time) bool {
	return e.StartDatetime.Before(now)
}

// CanBeCanceled returns true if the reservation can still be canceled.
func (e *Event) CanBeCanceled(now time.Time) bool {
	return !e.IsCanceled() && !e.HasStarted(now)
}

// CanRequestTimeUpdate returns true if the owner may ask to move the
// reservation time.
func (e *Event) CanRequestTimeUpdate(now time.Time) bool {
	return !e.IsCanceled() && !e.HasStarted(now) && e.State != StateUpdateRequested
}

// Interval returns the occupied time window of the reservation.
func (e *Event) Interval() Interval {
	return Interval{Start: e.StartDatetime, End: e.EndDatetime}
}
