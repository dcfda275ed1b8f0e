package identity

import (
	"context"
	"testing"

	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("subsidiary", func(t *testing.T) {
		companies := new(testutil.MockCompanyRepository)
		companies.On("ExistsByName", mock.Anything, "Alpha").Return(false, nil)
		companies.On("Save", mock.Anything, mock.AnythingOfType("*identity.Company")).Return(nil)

		resp, err := NewCompanyService(companies, shared.NewFixedClock(testNow), nil).
			Create(ctx, CreateCompanyRequest{Name: "  Alpha "})
		require.NoError(t, err)
		assert.Equal(t, "Alpha", resp.Name)
		assert.False(t, resp.IsParent)
		companies.AssertNotCalled(t, "FindParent", mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		companies := new(testutil.MockCompanyRepository)
		companies.On("ExistsByName", mock.Anything, "Alpha").Return(true, nil)

		_, err := NewCompanyService(companies, shared.NewFixedClock(testNow), nil).
			Create(ctx, CreateCompanyRequest{Name: "Alpha"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("first parent", func(t *testing.T) {
		companies := new(testutil.MockCompanyRepository)
		companies.On("ExistsByName", mock.Anything, "마이넷").Return(false, nil)
		companies.On("FindParent", mock.Anything).Return(nil, shared.NotFound("Company"))
		companies.On("Save", mock.Anything, mock.AnythingOfType("*identity.Company")).Return(nil)

		resp, err := NewCompanyService(companies, shared.NewFixedClock(testNow), nil).
			Create(ctx, CreateCompanyRequest{Name: "마이넷", IsParent: true})
		require.NoError(t, err)
		assert.True(t, resp.IsParent)
	})

	t.Run("second parent", func(t *testing.T) {
		companies := new(testutil.MockCompanyRepository)
		companies.On("ExistsByName", mock.Anything, "Other HQ").Return(false, nil)
		companies.On("FindParent", mock.Anything).Return(newTestCompany(t, "마이넷", true), nil)

		_, err := NewCompanyService(companies, shared.NewFixedClock(testNow), nil).
			Create(ctx, CreateCompanyRequest{Name: "Other HQ", IsParent: true})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
		companies.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := NewCompanyService(new(testutil.MockCompanyRepository), shared.NewFixedClock(testNow), nil).
			Create(ctx, CreateCompanyRequest{Name: "  "})
		require.Error(t, err)
	})
}

func TestCompanyService_Lists(t *testing.T) {
	companies := new(testutil.MockCompanyRepository)
	hq := newTestCompany(t, "마이넷", true)
	alpha := newTestCompany(t, "Alpha", false)
	companies.On("FindAll", mock.Anything).Return([]identity.Company{*alpha, *hq}, nil)
	companies.On("FindSubsidiaries", mock.Anything).Return([]identity.Company{*alpha}, nil)
	svc := NewCompanyService(companies, shared.NewFixedClock(testNow), nil)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	subs, err := svc.Subsidiaries(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, alpha.ID, subs[0].ID)
}
