package usecase

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gotp/internal/otp/entity"
	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateAPIKey(t *testing.T) {
	secretHash := func(t *testing.T, secret string) string {
		t.Helper()
		h, err := hash.NewArgon2id("usecase-test-pepper").Hash(secret)
		require.NoError(t, err)
		return string(h)
	}

	assertUnauthorized := func(t *testing.T, err error) {
		t.Helper()
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	}

	t.Run("ValidKeyTouchesLastUsed", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.apiKeys["pk_live_1"] = &entity.APIKey{
			ID:         1,
			PublicKey:  "pk_live_1",
			SecretHash: secretHash(t, "s3cret"),
			Status:     entity.APIKeyStatusActive,
		}

		// Act
		err := f.uc.AuthenticateAPIKey(context.Background(), "pk_live_1:s3cret")
		require.NoError(t, f.mgr.Wait())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, f.db.touchedKeys)
	})

	t.Run("WrongSecretRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.apiKeys["pk_live_1"] = &entity.APIKey{
			ID:         1,
			PublicKey:  "pk_live_1",
			SecretHash: secretHash(t, "s3cret"),
			Status:     entity.APIKeyStatusActive,
		}

		// Act
		err := f.uc.AuthenticateAPIKey(context.Background(), "pk_live_1:wrong")

		// Assert
		assertUnauthorized(t, err)
		assert.Empty(t, f.db.touchedKeys)
	})

	t.Run("RevokedKeyRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.db.apiKeys["pk_live_1"] = &entity.APIKey{
			ID:         1,
			PublicKey:  "pk_live_1",
			SecretHash: secretHash(t, "s3cret"),
			Status:     entity.APIKeyStatusRevoked,
		}

		// Act
		err := f.uc.AuthenticateAPIKey(context.Background(), "pk_live_1:s3cret")

		// Assert
		assertUnauthorized(t, err)
	})

	t.Run("UnknownKeyRejected", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.AuthenticateAPIKey(context.Background(), "pk_unknown:s3cret")

		// Assert
		assertUnauthorized(t, err)
	})

	t.Run("MalformedCredentialRejected", func(t *testing.T) {
		f := newFixture(t)

		for _, raw := range []string{"", "no-separator", ":secret-only", "public-only:"} {
			assertUnauthorized(t, f.uc.AuthenticateAPIKey(context.Background(), raw))
		}
	})
}
