package identity

import (
	"context"
	"testing"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/mynet/sales/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdminBootstrapper_Run(t *testing.T) {
	ctx := context.Background()
	enabled := config.AdminConfig{Username: "admin", Password: "admin-pass", Create: true}

	t.Run("disabled", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		for _, cfg := range []config.AdminConfig{
			{Username: "admin", Password: "admin-pass"},
			{Username: "admin", Create: true},
		} {
			b := NewAdminBootstrapper(users, nil, cfg, shared.NewFixedClock(testNow), nil)
			require.NoError(t, b.Run(ctx))
		}
		users.AssertNotCalled(t, "ExistsByRole", mock.Anything, mock.Anything)
	})

	t.Run("admin already present", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		companies := new(testutil.MockCompanyRepository)
		users.On("ExistsByRole", mock.Anything, identity.RoleAdmin).Return(true, nil)

		b := NewAdminBootstrapper(users, companies, enabled, shared.NewFixedClock(testNow), nil)
		require.NoError(t, b.Run(ctx))
		companies.AssertNotCalled(t, "FindParent", mock.Anything)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("creates admin in parent company", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		companies := new(testutil.MockCompanyRepository)
		hq := newTestCompany(t, "마이넷", true)
		users.On("ExistsByRole", mock.Anything, identity.RoleAdmin).Return(false, nil)
		companies.On("FindParent", mock.Anything).Return(hq, nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *identity.User) bool {
			return u.Username == "admin" && u.IsAdmin() && u.CompanyID == hq.ID && u.VerifyPassword("admin-pass")
		})).Return(nil)

		b := NewAdminBootstrapper(users, companies, enabled, shared.NewFixedClock(testNow), nil)
		require.NoError(t, b.Run(ctx))
		users.AssertExpectations(t)
	})

	t.Run("no parent company", func(t *testing.T) {
		users := new(testutil.MockUserRepository)
		companies := new(testutil.MockCompanyRepository)
		users.On("ExistsByRole", mock.Anything, identity.RoleAdmin).Return(false, nil)
		companies.On("FindParent", mock.Anything).Return(nil, shared.NotFound("Company"))

		b := NewAdminBootstrapper(users, companies, enabled, shared.NewFixedClock(testNow), nil)
		err := b.Run(ctx)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
