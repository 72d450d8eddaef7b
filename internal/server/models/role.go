package models

// Role is a coarse permission tier. Only two tiers exist today; new tiers
// extend Can rather than adding flag checks at call sites.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Capability names an action gated by role.
type Capability string

const (
	// CapabilityAdmin covers every /admin operation: user and content
	// moderation, statistics and system settings.
	CapabilityAdmin Capability = "admin"
)

// Can reports whether the role grants capability c.
func (r Role) Can(c Capability) bool {
	switch r {
	case RoleAdmin:
		return true
	default:
		return false
	}
}
