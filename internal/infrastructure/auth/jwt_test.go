package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mynet/sales/internal/domain/identity"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(clock shared.Clock) *JWTService {
	cfg := config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 2 * time.Hour,
		Issuer:                "sales-test",
	}
	return NewJWTService(cfg, clock)
}

func newTestPrincipal() identity.Principal {
	return identity.Principal{
		UserID:    uuid.New(),
		Username:  "branch01",
		CompanyID: uuid.New(),
		Tier:      identity.TierSubsidiary,
	}
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	clock := shared.NewFixedClock(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestJWTService(clock)
	p := newTestPrincipal()

	token, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, clock.Now().Add(2*time.Hour), token.ExpiresAt)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, p.UserID.String(), claims.Subject)
	assert.Equal(t, "SUBSIDIARY", claims.Tier)
	assert.True(t, clock.Now().Equal(claims.GetIssuedAtTime()))

	got, err := claims.Principal()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestJWTService_UniqueTokenIDs(t *testing.T) {
	svc := newTestJWTService(nil)
	p := newTestPrincipal()

	first, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)
	second, err := svc.GenerateAccessToken(p)
	require.NoError(t, err)

	c1, err := svc.ValidateAccessToken(first.Token)
	require.NoError(t, err)
	c2, err := svc.ValidateAccessToken(second.Token)
	require.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestJWTService_ValidateAccessToken_Errors(t *testing.T) {
	clock := shared.NewFixedClock(time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC))
	svc := newTestJWTService(clock)
	token, err := svc.GenerateAccessToken(newTestPrincipal())
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := shared.NewFixedClock(clock.Now().Add(3 * time.Hour))
		_, err := newTestJWTService(later).ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("not yet valid", func(t *testing.T) {
		earlier := shared.NewFixedClock(clock.Now().Add(-time.Hour))
		_, err := newTestJWTService(earlier).ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrTokenNotYetValid)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "another-secret-key-of-32-characters",
			AccessTokenExpiration: time.Hour,
			Issuer:                "sales-test",
		}, clock)
		_, err := other.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "test-secret-key-at-least-32-chars",
			AccessTokenExpiration: time.Hour,
			Issuer:                "someone-else",
		}, clock)
		_, err := other.ValidateAccessToken(token.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing company", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "sales-test",
				ExpiresAt: jwt.NewNumericDate(clock.Now().Add(time.Hour)),
			},
			UserID: uuid.New().String(),
			Tier:   "ADMIN",
		}
		signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(signed)
		assert.ErrorIs(t, err, ErrMissingCompanyID)
	})
}

func TestClaims_Principal(t *testing.T) {
	valid := Claims{UserID: uuid.New().String(), CompanyID: uuid.New().String(), Tier: "PARTNER"}

	p, err := valid.Principal()
	require.NoError(t, err)
	assert.Equal(t, identity.TierPartner, p.Tier)

	badTier := valid
	badTier.Tier = "ROOT"
	_, err = badTier.Principal()
	assert.ErrorIs(t, err, ErrUnknownPermission)

	badUser := valid
	badUser.UserID = "nope"
	_, err = badUser.Principal()
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestClaims_RemainingTTL(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	c := Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute))}}

	assert.Equal(t, 30*time.Minute, c.RemainingTTL(now))
	assert.Zero(t, c.RemainingTTL(now.Add(time.Hour)))
	assert.Zero(t, (&Claims{}).RemainingTTL(now))
}
