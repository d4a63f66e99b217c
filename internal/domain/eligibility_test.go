package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCalendar() *Calendar {
	return &Calendar{
		ID:              "cal-grill",
		ReservationType: "Grill",
		Color:           DefaultCalendarColor,
		MaxPeople:       8,
		ClubMemberRules: Rules{
			MaxReservationHours: 3,
			InAdvanceHours:      24,
			InPriorDays:         14,
		},
		ActiveMemberRules: Rules{
			NightTime:           false,
			MaxReservationHours: 6,
			InAdvanceHours:      24,
			InPriorDays:         14,
		},
		ManagerRules: Rules{
			NightTime:           true,
			MaxReservationHours: 24,
			InPriorDays:         365,
		},
		ReservationServiceID: 1,
	}
}

func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.Local)
}

func TestEvaluateEligibility_Confirmed(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 11, 0)
	end := localTime(2025, time.May, 12, 16, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 5, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeConfirmed, decision.Outcome)
	assert.True(t, decision.CreatesEvent())
	assert.False(t, decision.Flagged())
	assert.Equal(t, StateConfirmed, decision.EventState())
}

func TestEvaluateEligibility_StartInPast(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 10, 11, 0)
	end := localTime(2025, time.May, 10, 13, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonInvalidInterval, decision.Reason)
	assert.False(t, decision.CreatesEvent())
}

func TestEvaluateEligibility_EndBeforeStart(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 16, 0)
	end := localTime(2025, time.May, 12, 11, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonInvalidInterval, decision.Reason)
}

func TestCheckCapacity_FlaggedWhenPermitted(t *testing.T) {
	calendar := testCalendar()
	calendar.MoreThanMaxPeopleWithPermission = true

	decision := CheckCapacity(10, calendar)
	require.NotNil(t, decision)
	assert.Equal(t, OutcomeFlaggedOverCapacity, decision.Outcome)
	assert.Equal(t, 8, decision.MaxPeople)
	assert.Equal(t, 10, decision.Guests)
	assert.Equal(t, StateNotApproved, decision.EventState())
}

func TestCheckCapacity_HardRejectWithoutPermission(t *testing.T) {
	calendar := testCalendar()

	decision := CheckCapacity(10, calendar)
	require.NotNil(t, decision)
	assert.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonOverCapacity, decision.Reason)
}

func TestCheckCapacity_AtLimitPasses(t *testing.T) {
	calendar := testCalendar()
	assert.Nil(t, CheckCapacity(8, calendar))
}

func TestEvaluateEligibility_OverCapacityFlagReportedAfterHardChecks(t *testing.T) {
	// Шесть часов при лимите 6 проходят, но 10 гостей при лимите 8
	// дают мягкий исход - после всех жестких проверок.
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 10, 0)
	end := localTime(2025, time.May, 12, 16, 0)

	calendar := testCalendar()
	calendar.MoreThanMaxPeopleWithPermission = true

	decision := EvaluateEligibility(start, end, 10, calendar, calendar.ActiveMemberRules, TierActiveMember, now)
	require.Equal(t, OutcomeFlaggedOverCapacity, decision.Outcome)
	assert.True(t, decision.Flagged())
}

func TestEvaluateEligibility_DurationExceeded(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 9, 0)
	end := localTime(2025, time.May, 12, 16, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonExceedsMaxDuration, decision.Reason)
	assert.Equal(t, 6*time.Hour, decision.Limit)
	assert.Equal(t, 7*time.Hour, decision.Actual)
}

func TestEvaluateEligibility_InsufficientAdvanceNotice(t *testing.T) {
	// Правило требует 24 часа, бронирование за час до начала.
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 10, 13, 0)
	end := localTime(2025, time.May, 10, 15, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonInsufficientAdvanceNotice, decision.Reason)
	assert.Equal(t, 24*time.Hour, decision.Limit)
	assert.Equal(t, time.Hour, decision.Actual)
}

func TestEvaluateEligibility_TooFarInAdvance(t *testing.T) {
	// Окно 14 дней, бронирование за 20 дней.
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 30, 12, 0)
	end := localTime(2025, time.May, 30, 14, 0)

	calendar := testCalendar()
	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)

	require.Equal(t, OutcomeRejected, decision.Outcome)
	assert.Equal(t, ReasonTooFarInAdvance, decision.Reason)
	assert.Equal(t, 14*24*time.Hour, decision.Limit)
	assert.Equal(t, 20*24*time.Hour, decision.Actual)
}

func TestEvaluateEligibility_NightTimeFlaggedForClubMember(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 23, 0)
	end := localTime(2025, time.May, 12, 23, 30)

	calendar := testCalendar()
	calendar.ClubMemberRules = Rules{MaxReservationHours: 3, InPriorDays: 14}

	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ClubMemberRules, TierClubMember, now)
	require.Equal(t, OutcomeFlaggedNightTime, decision.Outcome)
	assert.True(t, decision.CreatesEvent())
	assert.Equal(t, StateNotApproved, decision.EventState())
}

func TestEvaluateEligibility_NightTimeBypassForActiveMember(t *testing.T) {
	// Ночное ограничение касается только обычных членов клуба.
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 23, 0)
	end := localTime(2025, time.May, 12, 23, 30)

	calendar := testCalendar()
	calendar.ActiveMemberRules = Rules{MaxReservationHours: 6, InPriorDays: 14}

	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ActiveMemberRules, TierActiveMember, now)
	require.Equal(t, OutcomeConfirmed, decision.Outcome)
}

func TestEvaluateEligibility_NightTimePermittedByPolicy(t *testing.T) {
	now := localTime(2025, time.May, 10, 12, 0)
	start := localTime(2025, time.May, 12, 23, 0)
	end := localTime(2025, time.May, 12, 23, 30)

	calendar := testCalendar()
	calendar.ClubMemberRules = Rules{NightTime: true, MaxReservationHours: 3, InPriorDays: 14}

	decision := EvaluateEligibility(start, end, 2, calendar, calendar.ClubMemberRules, TierClubMember, now)
	require.Equal(t, OutcomeConfirmed, decision.Outcome)
}

func TestInsideDayWindow(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "inside window",
			start: localTime(2025, time.May, 12, 8, 0),
			end:   localTime(2025, time.May, 12, 22, 0),
			want:  true,
		},
		{
			name:  "starts before opening",
			start: localTime(2025, time.May, 12, 7, 59),
			end:   localTime(2025, time.May, 12, 10, 0),
			want:  false,
		},
		{
			name:  "ends after closing",
			start: localTime(2025, time.May, 12, 20, 0),
			end:   localTime(2025, time.May, 12, 22, 1),
			want:  false,
		},
		{
			name:  "overnight end before opening",
			start: localTime(2025, time.May, 12, 21, 0),
			end:   localTime(2025, time.May, 13, 2, 0),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InsideDayWindow(tt.start, tt.end))
		})
	}
}

func TestCheckDuration_UsesAbsoluteDifference(t *testing.T) {
	// Сравнение по модулю: порядок аргументов не влияет на длительность.
	rules := Rules{MaxReservationHours: 3}
	start := localTime(2025, time.May, 12, 10, 0)
	end := localTime(2025, time.May, 12, 12, 0)

	assert.Nil(t, CheckDuration(start, end, rules))
	assert.Nil(t, CheckDuration(end, start, rules))
}
