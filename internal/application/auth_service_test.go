package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secondchance/marketplace/config"
	"github.com/secondchance/marketplace/internal/application"
	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*application.AuthService, *memUserRepo, *memQueue) {
	t.Helper()
	repo := newMemUserRepo()
	queue := &memQueue{}
	cfg := &config.Config{
		AppName:         "secondchance-test",
		AdminEmail:      "admin@store.test",
		ClientURL:       "http://localhost:3000",
		VerifyTokenTTL:  time.Hour,
		MailSendEnabled: true,
	}
	svc := application.NewAuthService(repo, helpers.NewJWTManager("test-secret", 7*24*time.Hour), queue, nil, cfg)
	return svc, repo, queue
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unverified account with hour-scoped token", func(t *testing.T) {
		svc, _, queue := newAuthFixture(t)

		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)

		assert.False(t, u.IsVerified)
		assert.NotEmpty(t, u.VerificationToken)
		assert.Len(t, u.VerificationToken, 64)
		assert.WithinDuration(t, time.Now().Add(time.Hour), u.VerificationExpires, 5*time.Second)
		assert.Equal(t, entity.RoleUser, u.Role)
		assert.Equal(t, entity.ProviderLocal, u.Provider)
		assert.Equal(t, 1, queue.len())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)

		_, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		_, err = svc.Signup(ctx, "BUYER@example.com", "other", "password456")
		assert.ErrorIs(t, err, application.ErrEmailTaken)
	})

	t.Run("admin bootstrap email gets admin role", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)

		u, err := svc.Signup(ctx, "admin@store.test", "boss", "password123")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleAdmin, u.Role)
	})

	t.Run("queue outage does not fail signup", func(t *testing.T) {
		svc, _, queue := newAuthFixture(t)
		queue.fail = true

		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, u.VerificationToken)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("token is single use", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		token := u.VerificationToken

		verified, err := svc.Verify(ctx, token)
		require.NoError(t, err)
		assert.True(t, verified.IsVerified)
		assert.Empty(t, verified.VerificationToken)

		_, err = svc.Verify(ctx, token)
		assert.ErrorIs(t, err, application.ErrInvalidOrExpiredToken)
	})

	t.Run("unknown token rejected", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Verify(ctx, "deadbeef")
		assert.ErrorIs(t, err, application.ErrInvalidOrExpiredToken)
	})
}

func TestResendVerification(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the token", func(t *testing.T) {
		svc, _, queue := newAuthFixture(t)
		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		old := u.VerificationToken

		require.NoError(t, svc.ResendVerification(ctx, "buyer@example.com"))
		assert.Equal(t, 2, queue.len())

		// the original token no longer verifies
		_, err = svc.Verify(ctx, old)
		assert.ErrorIs(t, err, application.ErrInvalidOrExpiredToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		err := svc.ResendVerification(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, application.ErrUserNotFound)
	})

	t.Run("already verified", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		_, err = svc.Verify(ctx, u.VerificationToken)
		require.NoError(t, err)

		err = svc.ResendVerification(ctx, "buyer@example.com")
		assert.ErrorIs(t, err, application.ErrAlreadyVerified)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	signupAndVerify := func(t *testing.T, svc *application.AuthService, email string) {
		t.Helper()
		u, err := svc.Signup(ctx, email, "buyer", "password123")
		require.NoError(t, err)
		_, err = svc.Verify(ctx, u.VerificationToken)
		require.NoError(t, err)
	}

	t.Run("issues session token", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		signupAndVerify(t, svc, "buyer@example.com")

		res, err := svc.Login(ctx, "buyer@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), res.ExpiresAt, 5*time.Second)
		assert.Equal(t, "buyer@example.com", res.User.Email)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		signupAndVerify(t, svc, "buyer@example.com")

		_, errWrongPwd := svc.Login(ctx, "buyer@example.com", "nope")
		_, errNoUser := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, errWrongPwd, application.ErrInvalidCredentials)
		assert.ErrorIs(t, errNoUser, application.ErrInvalidCredentials)
		assert.Equal(t, errWrongPwd, errNoUser)
	})

	t.Run("unverified account blocked", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)

		_, err = svc.Login(ctx, "buyer@example.com", "password123")
		assert.ErrorIs(t, err, application.ErrNotVerified)
	})

	t.Run("google-only account cannot password-login", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-1", Email: "fed@example.com", Name: "Fed"})
		require.NoError(t, err)

		_, err = svc.Login(ctx, "fed@example.com", "anything")
		assert.ErrorIs(t, err, application.ErrInvalidCredentials)
	})
}

func TestLoginWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates verified account for new email", func(t *testing.T) {
		svc, repo, _ := newAuthFixture(t)

		res, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-1", Email: "fed@example.com", Name: "Fed"})
		require.NoError(t, err)
		assert.True(t, res.User.IsVerified)
		assert.Equal(t, entity.ProviderGoogle, res.User.Provider)
		assert.Equal(t, "g-1", res.User.GoogleID)

		n, _ := repo.Count(ctx)
		assert.EqualValues(t, 1, n)
	})

	t.Run("merges onto existing local account by email", func(t *testing.T) {
		svc, repo, _ := newAuthFixture(t)
		u, err := svc.Signup(ctx, "buyer@example.com", "buyer", "password123")
		require.NoError(t, err)
		_, err = svc.Verify(ctx, u.VerificationToken)
		require.NoError(t, err)

		res, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-9", Email: "buyer@example.com", Name: "Buyer"})
		require.NoError(t, err)
		assert.Equal(t, u.ID, res.User.ID)
		assert.Equal(t, "g-9", res.User.GoogleID)

		n, _ := repo.Count(ctx)
		assert.EqualValues(t, 1, n, "no duplicate account")
	})

	t.Run("linked google id survives later logins", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		first, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-1", Email: "fed@example.com", Name: "Fed"})
		require.NoError(t, err)

		again, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-other", Email: "fed@example.com", Name: "Fed"})
		require.NoError(t, err)
		assert.Equal(t, first.User.ID, again.User.ID)
		assert.Equal(t, "g-1", again.User.GoogleID, "existing link is not overwritten")
	})

	t.Run("profile without email rejected", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t)
		_, err := svc.LoginWithGoogle(ctx, application.GoogleProfile{ID: "g-1"})
		assert.ErrorIs(t, err, application.ErrMissingEmail)
	})
}
