package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
)

// LoginRequest contains the credentials for user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the access token and the signed-in user
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        UserInfo  `json:"user"`
}

// LogoutInput identifies the token to revoke
type LogoutInput struct {
	UserID    uuid.UUID
	TokenJTI  string
	ExpiresIn time.Duration
}

// UserInfo describes the authenticated user and the tier resolved at login
type UserInfo struct {
	ID          uuid.UUID               `json:"id"`
	Username    string                  `json:"username"`
	CompanyID   uuid.UUID               `json:"company_id"`
	CompanyName string                  `json:"company_name"`
	Role        identity.Role           `json:"role"`
	IsPartner   bool                    `json:"is_partner"`
	Tier        identity.PermissionTier `json:"tier"`
}

// ChangePasswordRequest contains the input for password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=4,max=72"`
}

// CreateUserRequest is an administrator creating an account
type CreateUserRequest struct {
	Username  string        `json:"username" binding:"required,min=3,max=50"`
	Password  string        `json:"password" binding:"required,min=4,max=72"`
	CompanyID uuid.UUID     `json:"company_id" binding:"required"`
	Role      identity.Role `json:"role" binding:"omitempty,oneof=ADMIN USER"`
	IsPartner bool          `json:"is_partner"`
}

// SignupRequest is self-registration of a regular user
type SignupRequest struct {
	Username        string    `json:"username" binding:"required,min=3,max=50"`
	Password        string    `json:"password" binding:"required,min=4,max=72"`
	ConfirmPassword string    `json:"confirm_password" binding:"required"`
	CompanyID       uuid.UUID `json:"company_id" binding:"required"`
}

// UserResponse represents an account in listings
type UserResponse struct {
	ID          uuid.UUID     `json:"id"`
	Username    string        `json:"username"`
	CompanyID   uuid.UUID     `json:"company_id"`
	CompanyName string        `json:"company_name"`
	Role        identity.Role `json:"role"`
	IsPartner   bool          `json:"is_partner"`
	CreatedAt   time.Time     `json:"created_at"`
}

// CreateCompanyRequest contains input for creating a company
type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IsParent bool   `json:"is_parent"`
}

// CompanyResponse represents a company
type CompanyResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsParent  bool      `json:"is_parent"`
	CreatedAt time.Time `json:"created_at"`
}

// ToUserResponse converts a user; companyName may be empty when unknown
func ToUserResponse(u *identity.User, companyName string) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		CompanyID:   u.CompanyID,
		CompanyName: companyName,
		Role:        u.Role,
		IsPartner:   u.IsPartner,
		CreatedAt:   u.CreatedAt,
	}
}

// ToCompanyResponse converts a company
func ToCompanyResponse(c *identity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		IsParent:  c.IsParent,
		CreatedAt: c.CreatedAt,
	}
}
