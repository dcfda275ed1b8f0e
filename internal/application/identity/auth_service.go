package identity

import (
	"context"
	"errors"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	users      identity.UserRepository
	companies  identity.CompanyRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist may be
// nil, in which case logout only discards the token client-side.
func NewAuthService(
	users identity.UserRepository,
	companies identity.CompanyRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      users,
		companies:  companies,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login verifies the credentials, classifies the user once and issues an
// access token carrying the resulting tier
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown user", zap.String("username", req.Username))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("invalid password attempt", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	info, err := s.describe(ctx, user)
	if err != nil {
		return nil, err
	}
	token, err := s.jwtService.GenerateAccessToken(identity.Principal{
		UserID:    user.ID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		Tier:      info.Tier,
	})
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
		zap.String("tier", info.Tier.String()),
	)
	return &LoginResult{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		User:        *info,
	}, nil
}

// Logout revokes the presented token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist == nil || input.TokenJTI == "" || input.ExpiresIn <= 0 {
		s.logger.Info("user logout", zap.String("user_id", input.UserID.String()))
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.ExpiresIn); err != nil {
		s.logger.Error("failed to revoke token", zap.String("user_id", input.UserID.String()), zap.Error(err))
		return err
	}
	s.logger.Info("user logout, token revoked",
		zap.String("user_id", input.UserID.String()),
		zap.String("jti", input.TokenJTI),
	)
	return nil
}

// Me returns the caller's account with the tier carried by the token
func (s *AuthService) Me(ctx context.Context, p identity.Principal) (*UserInfo, error) {
	user, err := s.users.FindByID(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	info, err := s.describe(ctx, user)
	if err != nil {
		return nil, err
	}
	info.Tier = p.Tier
	return info, nil
}

func (s *AuthService) describe(ctx context.Context, user *identity.User) (*UserInfo, error) {
	company, err := s.companies.FindByID(ctx, user.CompanyID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	info := &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		CompanyID: user.CompanyID,
		Role:      user.Role,
		IsPartner: user.IsPartner,
		Tier:      identity.Classify(user, company),
	}
	if company != nil {
		info.CompanyName = company.Name
	}
	return info, nil
}
