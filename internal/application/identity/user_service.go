package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// UserService handles user management operations
type UserService struct {
	users     identity.UserRepository
	companies identity.CompanyRepository
	blacklist auth.TokenBlacklist
	tokenTTL  time.Duration
	clock     shared.Clock
	logger    *zap.Logger
}

// UserServiceOption configures optional collaborators of the UserService
type UserServiceOption func(*UserService)

// WithTokenRevocation revokes a deleted user's outstanding tokens
func WithTokenRevocation(blacklist auth.TokenBlacklist, jwtService *auth.JWTService) UserServiceOption {
	return func(s *UserService) {
		s.blacklist = blacklist
		s.tokenTTL = jwtService.GetAccessTokenExpiration()
	}
}

// NewUserService creates a new user service
func NewUserService(
	users identity.UserRepository,
	companies identity.CompanyRepository,
	clock shared.Clock,
	logger *zap.Logger,
	opts ...UserServiceOption,
) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UserService{
		users:     users,
		companies: companies,
		clock:     clock,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create creates an account in an existing company. The role defaults to USER.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	company, err := s.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	role := req.Role
	if role == "" {
		role = identity.RoleUser
	}
	return s.create(ctx, req.Username, req.Password, company, role, req.IsPartner)
}

// Signup registers a regular user. Accounts of the parent company are
// created by administrators only.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, shared.NewDomainError("PASSWORD_MISMATCH", "Passwords do not match")
	}
	company, err := s.companies.FindByID(ctx, req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company.IsParent {
		return nil, shared.NewDomainError("FORBIDDEN", "Headquarters accounts can only be created by an administrator")
	}
	return s.create(ctx, req.Username, req.Password, company, identity.RoleUser, false)
}

func (s *UserService) create(ctx context.Context, username, password string, company *identity.Company, role identity.Role, isPartner bool) (*UserResponse, error) {
	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Username already exists")
	}

	user, err := identity.NewUser(username, password, company.ID, role, isPartner, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("username", user.Username),
		zap.String("company", company.Name),
		zap.String("role", string(role)),
	)
	resp := ToUserResponse(user, company.Name)
	return &resp, nil
}

// List returns every user with its company name
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.companies.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(companies))
	for _, c := range companies {
		names[c.ID] = c.Name
	}

	result := make([]UserResponse, len(users))
	for i := range users {
		result[i] = ToUserResponse(&users[i], names[users[i].CompanyID])
	}
	return result, nil
}

// Delete removes an account. Callers cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actor identity.Principal, id uuid.UUID) error {
	if actor.UserID == id {
		return shared.NewDomainError("INVALID_STATE", "You cannot delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	if s.blacklist != nil {
		if err := s.blacklist.AddUserTokensToBlacklist(ctx, id.String(), s.tokenTTL); err != nil {
			s.logger.Warn("failed to revoke tokens of deleted user", zap.String("user_id", id.String()), zap.Error(err))
		}
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()), zap.String("actor", actor.Username))
	return nil
}

// ChangePassword replaces the caller's password. The current password must
// match and the new one must differ from it.
func (s *UserService) ChangePassword(ctx context.Context, p identity.Principal, req ChangePasswordRequest) error {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword, s.clock.Now()); err != nil {
		return err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}
	s.logger.Info("password changed", zap.String("username", user.Username))
	return nil
}
