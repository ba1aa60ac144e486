package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedCtx(userID int64, identifier string) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: userID, Identifier: identifier})
}

func TestTOTPEnrollment(t *testing.T) {
	t.Run("SetupThenConfirmPersistsSecret", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.addUser(&entity.User{ID: 42, Email: "user@example.com", Status: entity.UserStatusActive})
		ctx := authedCtx(42, "user@example.com")

		// Act
		setup, err := f.uc.TOTPSetup(ctx)
		require.NoError(t, err)

		code, err := f.totp.GenerateCode(setup.Secret, f.clk.Now())
		require.NoError(t, err)
		err = f.uc.TOTPConfirm(ctx, TOTPConfirmInput{Code: code})

		// Assert
		require.NoError(t, err)
		assert.NotEmpty(t, setup.URI)

		stored := f.db.savedSecrets[42]
		require.NotEmpty(t, stored, "confirmed secret must be persisted")

		_, err = f.cache.GetPendingTOTP(context.Background(), 42)
		assert.ErrorIs(t, err, goerror.ErrNotFound, "pending enrollment must be discarded")
	})

	t.Run("ConfirmWithWrongCodeRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.addUser(&entity.User{ID: 42, Email: "user@example.com", Status: entity.UserStatusActive})
		ctx := authedCtx(42, "user@example.com")

		_, err := f.uc.TOTPSetup(ctx)
		require.NoError(t, err)

		// Act
		err = f.uc.TOTPConfirm(ctx, TOTPConfirmInput{Code: "000000"})

		// Assert
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
		assert.Empty(t, f.db.savedSecrets[42])
	})

	t.Run("ConfirmWithoutSetupRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.addUser(&entity.User{ID: 42, Email: "user@example.com", Status: entity.UserStatusActive})

		// Act
		err := f.uc.TOTPConfirm(authedCtx(42, "user@example.com"), TOTPConfirmInput{Code: "123456"})

		// Assert
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeNotFound, gerr.Code())
	})

	t.Run("SetupRequiresAuthentication", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		out, err := f.uc.TOTPSetup(context.Background())

		// Assert
		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})
}

func TestGateways(t *testing.T) {
	// Arrange
	f := newFixture(t)

	// Act
	out, err := f.uc.Gateways(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "kavenegar", out.Primary)
	assert.Equal(t, "smsir", out.Backup)
	require.Len(t, out.Gateways, 2)
}
