package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/shandysiswandi/gotp/internal/pkg/goerror"
	"github.com/shandysiswandi/gotp/internal/pkg/idempotency"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	t.Run("ReturnsConsentURLAndStoresState", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))

		// Act
		out, err := f.uc.Authorize(context.Background(), AuthorizeInput{Provider: "google"})

		// Assert
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.URL, srv.URL+"/auth"))
		assert.Contains(t, out.URL, "state=state-a")
		assert.Equal(t, map[string]string{"state-a": "google"}, f.cache.states)
	})

	t.Run("UnknownProviderRejected", func(t *testing.T) {
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))

		_, err := f.uc.Authorize(context.Background(), AuthorizeInput{Provider: "myspace"})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
	})
}

func TestCallback(t *testing.T) {
	startFlow := func(t *testing.T, f *fixture) string {
		t.Helper()
		out, err := f.uc.Authorize(context.Background(), AuthorizeInput{Provider: "google"})
		require.NoError(t, err)
		_ = out
		return "state-a"
	}

	t.Run("HappyPathIssuesToken", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))
		state := startFlow(t, f)

		// Act
		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google",
			State:    state,
			Code:     "good-code",
		})
		require.NoError(t, f.mgr.Wait())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.AccessToken)
		assert.NotZero(t, out.UserID)

		user, ok := f.db.byEmail["user@example.com"]
		require.True(t, ok)
		assert.Equal(t, user.ID, out.UserID)

		require.Len(t, f.msg.logins, 1)
		assert.Equal(t, "social:google", f.msg.logins[0].Method)

		assert.NotEmpty(t, f.cache.tokens["google"], "provider token should be cached")
		require.Len(t, f.guard.keys, 1)
		assert.True(t, strings.HasPrefix(f.guard.keys[0], "social:code:"))
	})

	t.Run("StateIsSingleUse", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))
		state := startFlow(t, f)

		_, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: state, Code: "good-code",
		})
		require.NoError(t, err)

		// Act
		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: state, Code: "good-code",
		})

		// Assert
		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("UnknownStateUnauthorized", func(t *testing.T) {
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))

		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: "forged-state", Code: "good-code",
		})

		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("RejectedCodeUnauthorized", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))
		state := startFlow(t, f)

		// Act
		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: state, Code: "bad-code",
		})

		// Assert
		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeUnauthorized, gerr.Code())
	})

	t.Run("ReplayedExchangeConflicts", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "user@example.com")
		f := newFixture(t, testProvider(srv))
		state := startFlow(t, f)
		f.guard.err = idempotency.ErrCompleted

		// Act
		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: state, Code: "good-code",
		})

		// Assert
		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeConflict, gerr.Code())
	})

	t.Run("MissingEmailRejected", func(t *testing.T) {
		// Arrange
		srv := newProviderServer(t, "")
		f := newFixture(t, testProvider(srv))
		state := startFlow(t, f)

		// Act
		out, err := f.uc.Callback(context.Background(), CallbackInput{
			Provider: "google", State: state, Code: "good-code",
		})

		// Assert
		assert.Nil(t, out)
		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())
	})
}
