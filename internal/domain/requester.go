package domain

// Tier classifies a requester against one reservation service. The tier
// decides which of the three calendar policies applies.
type Tier string

const (
	// TierClubMember - a regular club member without an active-member status.
	TierClubMember Tier = "club_member"
	// TierActiveMember - an active member of the club.
	TierActiveMember Tier = "active_member"
	// TierManager - an active member holding the manager role of the service.
	TierManager Tier = "manager"
)

// Requester is the identity making a reservation request, resolved once at
// request entry: profile data plus the capability set of service aliases the
// member is entitled to.
type Requester struct {
	ID         int64
	Username   string
	FullName   string
	RoomNumber string

	ActiveMember bool
	SectionHead  bool

	// Roles holds manager roles as reservation-service aliases.
	Roles []string

	// Services is the set of reservation-service aliases the member holds.
	Services map[string]struct{}
}

// HasService reports whether the requester holds the service entitlement.
func (r *Requester) HasService(alias string) bool {
	_, ok := r.Services[alias]
	return ok
}

// IsManagerOf reports whether the requester manages the service with the
// given alias. Missing role data means not a manager.
func (r *Requester) IsManagerOf(alias string) bool {
	for _, role := range r.Roles {
		if role == alias {
			return true
		}
	}
	return false
}

// SelectTier picks the requester tier for a service:
// not an active member - club member rules; manager role matching the
// service alias - manager rules; otherwise active member rules.
func SelectTier(requester *Requester, serviceAlias string) Tier {
	if !requester.ActiveMember {
		return TierClubMember
	}
	if requester.IsManagerOf(serviceAlias) {
		return TierManager
	}
	return TierActiveMember
}

// SelectRules resolves the policy applicable to the requester on the given
// calendar. Pure function of its inputs.
func SelectRules(requester *Requester, calendar *Calendar, serviceAlias string) Rules {
	return calendar.RulesFor(SelectTier(requester, serviceAlias))
}
