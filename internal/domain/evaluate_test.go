package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRequester() *Requester {
	return &Requester{
		ID:           42,
		Username:     "jnovak",
		FullName:     "Jan Novak",
		RoomNumber:   "B214",
		ActiveMember: true,
		Services:     map[string]struct{}{"grill": {}},
	}
}

func TestEvaluateBooking_Confirmed(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	req := BookingRequest{
		Start:  localTime(2025, time.May, 12, 11, 0),
		End:    localTime(2025, time.May, 12, 16, 0),
		Guests: 5,
	}

	decision := EvaluateBooking(req, testRequester(), "grill", testCalendar(), nil, now)

	require.Equal(t, OutcomeConfirmed, decision.Outcome)
	assert.Equal(t, StateConfirmed, decision.EventState())
	assert.Equal(t, "reservation confirmed", decision.Message())
}

func TestEvaluateBooking_MissingEntitlement(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	req := BookingRequest{
		Start:  localTime(2025, time.May, 12, 11, 0),
		End:    localTime(2025, time.May, 12, 13, 0),
		Guests: 2,
	}

	requester := testRequester()
	requester.Services = nil

	decision := EvaluateBooking(req, requester, "grill", testCalendar(), nil, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonMissingEntitlement, decision.Reason)
}

func TestEvaluateBooking_CollisionBeforeRuleThresholds(t *testing.T) {
	// Занятый слот читается как занятый, даже если запрос нарушает
	// и пороги правил.
	now := localTime(2025, time.May, 10, 12, 0)
	req := BookingRequest{
		Start:  localTime(2025, time.May, 12, 9, 0),
		End:    localTime(2025, time.May, 12, 16, 0), // 7 часов при лимите 6
		Guests: 2,
	}

	calendar := testCalendar()
	existing := map[string][]Interval{
		calendar.ID: {interval(10, 0, 12, 0)},
	}

	decision := EvaluateBooking(req, testRequester(), "grill", calendar, existing, now)

	require.Equal(t, OutcomeAlreadyBooked, decision.Outcome)
	assert.False(t, decision.CreatesEvent())
	assert.Equal(t, "there is already a reservation for that time", decision.Message())
}

func TestEvaluateBooking_ManagerTierRelaxesLimits(t *testing.T) {
	// 10 часов проходят только по правилам менеджера.
	now := localTime(2025, time.May, 10, 12, 0)
	req := BookingRequest{
		Start:  localTime(2025, time.May, 12, 8, 0),
		End:    localTime(2025, time.May, 12, 18, 0),
		Guests: 2,
	}

	requester := testRequester()
	decision := EvaluateBooking(req, requester, "grill", testCalendar(), nil, now)
	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonExceedsMaxDuration, decision.Reason)

	requester.Roles = []string{"grill"}
	decision = EvaluateBooking(req, requester, "grill", testCalendar(), nil, now)
	require.Equal(t, OutcomeConfirmed, decision.Outcome)
}
