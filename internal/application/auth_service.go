package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/secondchance/marketplace/config"
	"github.com/secondchance/marketplace/internal/domain/entity"
	"github.com/secondchance/marketplace/internal/domain/repository"
	"github.com/secondchance/marketplace/pkg/helpers"
	"github.com/secondchance/marketplace/pkg/mailer"
)

var (
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials deliberately covers both "no such user" and
	// "wrong password"; callers must not learn which.
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrNotVerified           = errors.New("email not verified")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrAlreadyVerified       = errors.New("user already verified")
	ErrUserNotFound          = errors.New("user not found")
	ErrMissingEmail          = errors.New("no email in provider profile")
)

// EmailQueue is the slice of RabbitPublisher the authenticator needs.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// GoogleProfile is what the federated provider hands back after the
// authorization-code exchange.
type GoogleProfile struct {
	ID    string
	Email string
	Name  string
}

// AuthResult is the single outcome type both the local and the federated
// login paths produce; the handler layer sets the cookie from it without
// caring which path ran.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// AuthService implements registration, email verification, and both login
// paths over the credential store.
type AuthService struct {
	Repo   repository.UserRepository
	JWT    *helpers.JWTManager
	Queue  EmailQueue
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, queue EmailQueue, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{Repo: repo, JWT: jwt, Queue: queue, Logger: logger, Cfg: cfg}
}

func (s *AuthService) roleFor(email string) string {
	if s.Cfg.AdminEmail != "" && strings.EqualFold(email, s.Cfg.AdminEmail) {
		return entity.RoleAdmin
	}
	return entity.RoleUser
}

// Signup registers a local account in unverified state and queues the
// verification email. Delivery is asynchronous: a down queue is logged but
// does not fail the signup; the user can always hit resend.
func (s *AuthService) Signup(ctx context.Context, email, username, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	token, err := helpers.GenVerificationToken()
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:               strings.ToLower(email),
		Username:            username,
		PasswordHash:        hash,
		Provider:            entity.ProviderLocal,
		Role:                s.roleFor(email),
		IsVerified:          false,
		VerificationToken:   token,
		VerificationExpires: time.Now().Add(s.Cfg.VerifyTokenTTL),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.enqueueVerificationEmail(ctx, u, false)
	return u, nil
}

// Verify consumes a verification token. Tokens are single-use: the stored
// fields are cleared on success, so a second attempt fails.
func (s *AuthService) Verify(ctx context.Context, token string) (*entity.User, error) {
	u, err := s.Repo.GetByVerificationToken(ctx, token)
	if err != nil || u == nil {
		return nil, ErrInvalidOrExpiredToken
	}
	u.IsVerified = true
	u.VerificationToken = ""
	u.VerificationExpires = time.Time{}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResendVerification rotates the stored token, invalidating any previously
// issued one, and queues a fresh email.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return ErrUserNotFound
	}
	if u.IsVerified {
		return ErrAlreadyVerified
	}
	token, err := helpers.GenVerificationToken()
	if err != nil {
		return err
	}
	u.VerificationToken = token
	u.VerificationExpires = time.Now().Add(s.Cfg.VerifyTokenTTL)
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.enqueueVerificationEmail(ctx, u, true)
	return nil
}

// Login authenticates a local account and issues the session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if u.PasswordHash == "" || !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsVerified {
		return nil, ErrNotVerified
	}
	return s.issue(u)
}

// LoginWithGoogle resolves a provider profile to an account by email, not by
// provider id. An existing account gains the google id (merge-on-email); a
// missing one is created already verified, since the provider asserts email
// ownership.
func (s *AuthService) LoginWithGoogle(ctx context.Context, profile GoogleProfile) (*AuthResult, error) {
	if profile.Email == "" {
		return nil, ErrMissingEmail
	}

	u, err := s.Repo.GetByEmail(ctx, profile.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if u != nil {
		if u.GoogleID == "" {
			u.GoogleID = profile.ID
			if err := s.Repo.Update(ctx, u); err != nil {
				return nil, err
			}
		}
		return s.issue(u)
	}

	u = &entity.User{
		Email:      strings.ToLower(profile.Email),
		Username:   profile.Name,
		GoogleID:   profile.ID,
		Provider:   entity.ProviderGoogle,
		Role:       s.roleFor(profile.Email),
		IsVerified: true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.Issue(u.ID, u.Email, u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("issue session token failed")
		}
		return nil, err
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) enqueueVerificationEmail(ctx context.Context, u *entity.User, resent bool) {
	if s.Queue == nil || !s.Cfg.MailSendEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"Username":   u.Username,
			"AppName":    s.Cfg.AppName,
			"VerifyLink": s.Cfg.VerifyLink(u.VerificationToken),
			"ExpiresIn":  s.Cfg.VerifyTokenTTL.String(),
			"Resent":     resent,
		},
	}
	if err := s.Queue.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue verification email failed")
	}
}
