package services

import (
	"github.com/srgjo27/event_ticketing/internal/core/domain"
)

// AuthorizationPolicy decides whether a principal may use admin routes.
type AuthorizationPolicy interface {
	IsAdmin(principal domain.Principal) bool
}

// AdminPolicy grants admin to principals whose role is admin or whose email
// is on the allow-list. The allow-list is not synchronised with roles.
type AdminPolicy struct {
	allowList map[string]struct{}
}

func NewAdminPolicy(adminEmails []string) *AdminPolicy {
	allow := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = normalizeEmail(email)
		if email != "" {
			allow[email] = struct{}{}
		}
	}
	return &AdminPolicy{allowList: allow}
}

func (p *AdminPolicy) IsAdmin(principal domain.Principal) bool {
	return p.hasAdminRole(principal) || p.allowListed(principal)
}

func (p *AdminPolicy) hasAdminRole(principal domain.Principal) bool {
	return principal.Role == domain.RoleAdmin
}

func (p *AdminPolicy) allowListed(principal domain.Principal) bool {
	if p == nil || len(p.allowList) == 0 {
		return false
	}
	_, ok := p.allowList[normalizeEmail(principal.Email)]
	return ok
}
