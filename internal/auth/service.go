// internal/auth/service.go
// Service layer contains all business logic for authentication.

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"github.com/imadgeboyega/dating-insights-backend/internal/common/utils"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many attempts")
	ErrGoogleAuthFailed   = errors.New("google authentication failed")
)

const defaultWeeklyQuota = 1

// Service interface
type Service interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*AuthResponse, error)

	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	Logout(ctx context.Context, token string) error

	GetUserByID(ctx context.Context, userID uuid.UUID) (*User, error)
}

// GoogleVerifier checks a Google ID token and returns the identity it carries
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*GoogleIdentity, error)
}

// Config holds service configuration
type Config struct {
	JWTSecret           string
	TokenExpiry         time.Duration
	BCryptCost          int
	Issuer              string
	LoginAttemptsMax    int
	LoginAttemptsWindow time.Duration
}

type service struct {
	repo   Repository
	redis  *redis.Client
	google GoogleVerifier
	config *Config
	now    func() time.Time
}

// NewService creates a new auth service. redis may be nil, which disables
// login throttling and token revocation.
func NewService(repo Repository, redis *redis.Client, google GoogleVerifier, config *Config) Service {
	return &service{
		repo:   repo,
		redis:  redis,
		google: google,
		config: config,
		now:    time.Now,
	}
}

// Register creates a new account with an email and password
func (s *service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.DisplayName)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	quota := defaultWeeklyQuota
	if req.WeeklyQuota != nil {
		quota = *req.WeeklyQuota
	}

	user := &User{
		ID:            uuid.New(),
		DisplayName:   name,
		Email:         email,
		PasswordHash:  &hashed,
		Avatar:        AvatarURL(name),
		WeeklyQuota:   quota,
		PersonalGoals: req.PersonalGoals,
	}
	if user.PersonalGoals == nil {
		user.PersonalGoals = []string{}
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates with email and password
func (s *service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if s.tooManyAttempts(ctx, email) {
		return nil, ErrTooManyAttempts
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordFailedAttempt(ctx, email)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// Google-only accounts have no password to compare against
	if user.PasswordHash == nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	s.clearFailedAttempts(ctx, email)
	return s.issueToken(user)
}

// GoogleLogin signs in with a Google ID token, creating or linking the account
func (s *service) GoogleLogin(ctx context.Context, req *GoogleLoginRequest) (*AuthResponse, error) {
	if s.google == nil {
		return nil, ErrGoogleAuthFailed
	}

	identity, err := s.google.Verify(ctx, req.Credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoogleAuthFailed, err)
	}
	email := strings.ToLower(strings.TrimSpace(identity.Email))
	if email == "" {
		return nil, ErrGoogleAuthFailed
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if user.GoogleID == nil {
			if err := s.repo.LinkGoogleAccount(ctx, user.ID, identity.Subject); err != nil {
				return nil, err
			}
			user.GoogleID = &identity.Subject
		}
	case errors.Is(err, ErrUserNotFound):
		name := identity.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		avatar := identity.Picture
		if avatar == "" {
			avatar = AvatarURL(name)
		}
		user = &User{
			ID:            uuid.New(),
			DisplayName:   name,
			Email:         email,
			GoogleID:      &identity.Subject,
			Avatar:        avatar,
			WeeklyQuota:   defaultWeeklyQuota,
			PersonalGoals: []string{},
		}
		if err := s.repo.CreateUser(ctx, user); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.issueToken(user)
}

// ValidateToken verifies the signature and rejects revoked tokens
func (s *service) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if s.redis != nil && claims.ID != "" {
		revoked, err := s.redis.Exists(ctx, revokedKey(claims.ID)).Result()
		if err == nil && revoked > 0 {
			return nil, ErrInvalidToken
		}
	}

	return claims, nil
}

// Logout revokes the token until it would have expired anyway
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateJWT(token, s.config.JWTSecret)
	if err != nil {
		return ErrInvalidToken
	}
	if s.redis == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, revokedKey(claims.ID), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// GetUserByID returns the account for an authenticated user
func (s *service) GetUserByID(ctx context.Context, userID uuid.UUID) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

// AvatarURL builds a generated initials avatar for a display name
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random&color=fff"
}

// Helper functions

func (s *service) issueToken(user *User) (*AuthResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.config.TokenExpiry)

	token, err := utils.GenerateJWT(&utils.JWTClaims{
		UserID:    user.ID,
		Email:     user.Email,
		ID:        uuid.NewString(),
		ExpiresAt: expiresAt.Unix(),
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		Issuer:    s.config.Issuer,
	}, s.config.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		User:      user,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *service) tooManyAttempts(ctx context.Context, identifier string) bool {
	if s.redis == nil || s.config.LoginAttemptsMax <= 0 {
		return false
	}
	count, err := s.redis.Get(ctx, failedKey(identifier)).Int()
	if err != nil {
		return false
	}
	return count >= s.config.LoginAttemptsMax
}

func (s *service) recordFailedAttempt(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}
	key := failedKey(identifier)
	s.redis.Incr(ctx, key)
	s.redis.Expire(ctx, key, s.config.LoginAttemptsWindow)
}

func (s *service) clearFailedAttempts(ctx context.Context, identifier string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(ctx, failedKey(identifier))
}

func failedKey(identifier string) string {
	return fmt.Sprintf("failed:%s", identifier)
}

func revokedKey(jti string) string {
	return fmt.Sprintf("revoked:%s", jti)
}

// tokenInfoVerifier validates ID tokens against Google's tokeninfo endpoint
type tokenInfoVerifier struct {
	clientID string
	opts     []option.ClientOption
}

// NewGoogleVerifier returns a verifier that accepts tokens issued to clientID
func NewGoogleVerifier(clientID string, opts ...option.ClientOption) GoogleVerifier {
	if len(opts) == 0 {
		opts = []option.ClientOption{option.WithoutAuthentication()}
	}
	return &tokenInfoVerifier{clientID: clientID, opts: opts}
}

func (v *tokenInfoVerifier) Verify(ctx context.Context, credential string) (*GoogleIdentity, error) {
	svc, err := oauth2.NewService(ctx, v.opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth2 service: %w", err)
	}

	info, err := svc.Tokeninfo().IdToken(credential).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("invalid Google token: %w", err)
	}
	if v.clientID != "" && info.Audience != v.clientID {
		return nil, errors.New("token audience mismatch")
	}
	if !info.VerifiedEmail {
		return nil, errors.New("google email not verified")
	}

	return &GoogleIdentity{
		Subject: info.UserId,
		Email:   info.Email,
	}, nil
}
