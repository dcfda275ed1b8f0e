package identity

import (
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/shared"
)

// Principal is the authenticated caller as carried by the access token
type Principal struct {
	UserID    uuid.UUID
	Username  string
	CompanyID uuid.UUID
	Tier      PermissionTier
}

// CanRead reports whether the principal may see companyID's figures
func (p Principal) CanRead(companyID uuid.UUID) bool {
	return p.Tier.CanViewAll() || p.CompanyID == companyID
}

// CanWrite reports whether the principal may write sales or targets of companyID
func (p Principal) CanWrite(companyID uuid.UUID) bool {
	switch {
	case p.Tier.CanWriteAny():
		return true
	case p.Tier == TierSubsidiary:
		return p.CompanyID == companyID
	}
	return false
}

// AuthorizeRead returns FORBIDDEN unless CanRead holds
func (p Principal) AuthorizeRead(companyID uuid.UUID) error {
	if !p.CanRead(companyID) {
		return shared.NewDomainError("FORBIDDEN", "Access to this company's data is forbidden")
	}
	return nil
}

// AuthorizeWrite returns FORBIDDEN unless CanWrite holds
func (p Principal) AuthorizeWrite(companyID uuid.UUID) error {
	if !p.CanWrite(companyID) {
		return shared.NewDomainError("FORBIDDEN", "Not allowed to modify this company's data")
	}
	return nil
}
