package identity

import "github.com/mynet/sales/internal/domain/shared"

// PermissionTier is the access level of an authenticated user. It is
// derived once at login from the user's role, partner flag and company,
// and carried with the session from then on.
type PermissionTier string

const (
	TierAdmin      PermissionTier = "ADMIN"
	TierParent     PermissionTier = "PARENT"
	TierPartner    PermissionTier = "PARTNER"
	TierSubsidiary PermissionTier = "SUBSIDIARY"
)

// Classify derives the permission tier. Admin role wins, then the OEM
// partner flag, then membership of the parent company.
func Classify(user *User, company *Company) PermissionTier {
	switch {
	case user.IsAdmin():
		return TierAdmin
	case user.IsPartner:
		return TierPartner
	case company != nil && company.IsParent:
		return TierParent
	default:
		return TierSubsidiary
	}
}

// ParseTier converts a stored claim back into a tier
func ParseTier(s string) (PermissionTier, error) {
	t := PermissionTier(s)
	switch t {
	case TierAdmin, TierParent, TierPartner, TierSubsidiary:
		return t, nil
	}
	return "", shared.NewDomainError("INVALID_TIER", "Unknown permission tier")
}

// String returns the tier name
func (t PermissionTier) String() string {
	return string(t)
}

// CanViewAll reports whether the tier sees every company's figures
func (t PermissionTier) CanViewAll() bool {
	return t == TierAdmin || t == TierParent || t == TierPartner
}

// CanWriteAny reports whether the tier may write sales and targets for any company
func (t PermissionTier) CanWriteAny() bool {
	return t == TierAdmin || t == TierParent
}

// CanAdminister reports whether the tier manages products, users and companies
func (t PermissionTier) CanAdminister() bool {
	return t == TierAdmin || t == TierParent
}

// IsReadOnly reports whether the tier has no write access at all
func (t PermissionTier) IsReadOnly() bool {
	return t == TierPartner
}

// In reports whether t is one of tiers
func (t PermissionTier) In(tiers ...PermissionTier) bool {
	for _, x := range tiers {
		if t == x {
			return true
		}
	}
	return false
}
