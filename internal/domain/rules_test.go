package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRules_Valid(t *testing.T) {
	rules, err := NewRules(false, true, 6, 24, 30, 14)
	require.NoError(t, err)

	assert.False(t, rules.NightTime)
	assert.True(t, rules.ReservationWithoutPermission)
	assert.Equal(t, 6*time.Hour, rules.MaxDuration())
	assert.Equal(t, 24*time.Hour+30*time.Minute, rules.MinAdvance())
	assert.Equal(t, 14*24*time.Hour, rules.PriorWindow())
}

func TestNewRules_ZeroesAllowed(t *testing.T) {
	rules, err := NewRules(true, false, 0, 0, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), rules.MaxDuration())
	assert.Equal(t, time.Duration(0), rules.MinAdvance())
	assert.Equal(t, time.Duration(0), rules.PriorWindow())
}

func TestNewRules_NegativeFieldsRejected(t *testing.T) {
	tests := []struct {
		name                string
		maxReservationHours int
		inAdvanceHours      int
		inAdvanceMinutes    int
		inPriorDays         int
	}{
		{"negative max hours", -1, 0, 0, 0},
		{"negative advance hours", 0, -1, 0, 0},
		{"negative advance minutes", 0, 0, -1, 0},
		{"negative prior days", 0, 0, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRules(false, false, tt.maxReservationHours, tt.inAdvanceHours, tt.inAdvanceMinutes, tt.inPriorDays)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidRules)
		})
	}
}

func TestSelectTier(t *testing.T) {
	tests := []struct {
		name      string
		requester *Requester
		alias     string
		want      Tier
	}{
		{
			name:      "not active member is club member",
			requester: &Requester{ActiveMember: false, Roles: []string{"grill"}},
			alias:     "grill",
			want:      TierClubMember,
		},
		{
			name:      "active member without role",
			requester: &Requester{ActiveMember: true},
			alias:     "grill",
			want:      TierActiveMember,
		},
		{
			name:      "active member with matching role is manager",
			requester: &Requester{ActiveMember: true, Roles: []string{"grill"}},
			alias:     "grill",
			want:      TierManager,
		},
		{
			name:      "role for another service does not promote",
			requester: &Requester{ActiveMember: true, Roles: []string{"study_room"}},
			alias:     "grill",
			want:      TierActiveMember,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectTier(tt.requester, tt.alias))
		})
	}
}

func TestSelectRules_PicksTierPolicy(t *testing.T) {
	calendar := &Calendar{
		ClubMemberRules:   Rules{MaxReservationHours: 2},
		ActiveMemberRules: Rules{MaxReservationHours: 6},
		ManagerRules:      Rules{MaxReservationHours: 24},
	}

	manager := &Requester{ActiveMember: true, Roles: []string{"grill"}}
	member := &Requester{ActiveMember: true}
	guest := &Requester{ActiveMember: false}

	assert.Equal(t, 24, SelectRules(manager, calendar, "grill").MaxReservationHours)
	assert.Equal(t, 6, SelectRules(member, calendar, "grill").MaxReservationHours)
	assert.Equal(t, 2, SelectRules(guest, calendar, "grill").MaxReservationHours)
}
