package identity

import (
	"context"
	"fmt"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/config"
	"go.uber.org/zap"
)

// AdminBootstrapper creates the first administrator account on startup
type AdminBootstrapper struct {
	users     identity.UserRepository
	companies identity.CompanyRepository
	cfg       config.AdminConfig
	clock     shared.Clock
	logger    *zap.Logger
}

// NewAdminBootstrapper creates a bootstrapper for cfg
func NewAdminBootstrapper(
	users identity.UserRepository,
	companies identity.CompanyRepository,
	cfg config.AdminConfig,
	clock shared.Clock,
	logger *zap.Logger,
) *AdminBootstrapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminBootstrapper{users: users, companies: companies, cfg: cfg, clock: clock, logger: logger}
}

// Run creates the configured administrator in the parent company unless
// bootstrapping is disabled or an administrator already exists
func (b *AdminBootstrapper) Run(ctx context.Context) error {
	if !b.cfg.Create || b.cfg.Password == "" {
		b.logger.Debug("admin bootstrap disabled")
		return nil
	}

	exists, err := b.users.ExistsByRole(ctx, identity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("check admin accounts: %w", err)
	}
	if exists {
		b.logger.Debug("admin account present, skipping bootstrap")
		return nil
	}

	parent, err := b.companies.FindParent(ctx)
	if err != nil {
		return fmt.Errorf("find parent company: %w", err)
	}

	admin, err := identity.NewUser(b.cfg.Username, b.cfg.Password, parent.ID, identity.RoleAdmin, false, b.clock.Now())
	if err != nil {
		return fmt.Errorf("build admin account: %w", err)
	}
	if err := b.users.Save(ctx, admin); err != nil {
		return fmt.Errorf("save admin account: %w", err)
	}

	b.logger.Info("admin account created",
		zap.String("username", admin.Username),
		zap.String("company", parent.Name),
	)
	return nil
}
