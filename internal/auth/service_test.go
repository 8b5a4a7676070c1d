package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*User
	err   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]*User)}
}

func (f *fakeRepo) CreateUser(_ context.Context, user *User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrEmailAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeRepo) GetUserByID(_ context.Context, id uuid.UUID) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) LinkGoogleAccount(_ context.Context, userID uuid.UUID, googleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.GoogleID = &googleID
	return nil
}

type fakeGoogle struct {
	identity *GoogleIdentity
	err      error
}

func (f *fakeGoogle) Verify(context.Context, string) (*GoogleIdentity, error) {
	return f.identity, f.err
}

func testConfig() *Config {
	return &Config{
		JWTSecret:           "test-secret",
		TokenExpiry:         time.Hour,
		BCryptCost:          bcrypt.MinCost,
		Issuer:              "test",
		LoginAttemptsMax:    5,
		LoginAttemptsWindow: 15 * time.Minute,
	}
}

func newTestService(repo Repository, google GoogleVerifier) Service {
	return NewService(repo, nil, google, testConfig())
}

func TestRegister(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		DisplayName: "Sam Smith",
		Email:       "  Sam@Example.com ",
		Password:    "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, "sam@example.com", resp.User.Email)
	assert.Equal(t, 1, resp.User.WeeklyQuota)
	assert.Equal(t, "https://ui-avatars.com/api/?name=Sam+Smith&background=random&color=fff", resp.User.Avatar)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User.PasswordHash)
	assert.NotEqual(t, "secret1", *resp.User.PasswordHash)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)

	_, err = svc.Register(ctx, &RegisterRequest{DisplayName: "Other", Email: "sam@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestRegister_ExplicitQuota(t *testing.T) {
	t.Parallel()

	quota := 0
	resp, err := newTestService(newFakeRepo(), nil).Register(context.Background(), &RegisterRequest{
		DisplayName: "Zero",
		Email:       "zero@example.com",
		Password:    "secret1",
		WeeklyQuota: &quota,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.User.WeeklyQuota)
	assert.NotNil(t, resp.User.PersonalGoals)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, &RegisterRequest{DisplayName: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     LoginRequest
		wantErr error
	}{
		{name: "valid", req: LoginRequest{Email: "ADA@example.com", Password: "secret1"}},
		{name: "wrong password", req: LoginRequest{Email: "ada@example.com", Password: "nope"}, wantErr: ErrInvalidCredentials},
		{name: "unknown email", req: LoginRequest{Email: "bob@example.com", Password: "secret1"}, wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Login(ctx, &tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ada@example.com", resp.User.Email)
		})
	}
}

func TestLogin_GoogleOnlyAccount(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo, &fakeGoogle{identity: &GoogleIdentity{Subject: "g-1", Email: "g@example.com"}})
	ctx := context.Background()

	_, err := svc.GoogleLogin(ctx, &GoogleLoginRequest{Credential: "token"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &LoginRequest{Email: "g@example.com", Password: "anything"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGoogleLogin(t *testing.T) {
	t.Parallel()

	t.Run("creates account", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeRepo(), &fakeGoogle{identity: &GoogleIdentity{Subject: "g-1", Email: "New@Example.com"}})

		resp, err := svc.GoogleLogin(context.Background(), &GoogleLoginRequest{Credential: "token"})
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.User.Email)
		assert.Equal(t, "new", resp.User.DisplayName)
		require.NotNil(t, resp.User.GoogleID)
		assert.Equal(t, "g-1", *resp.User.GoogleID)
		assert.Nil(t, resp.User.PasswordHash)
	})

	t.Run("links existing account", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := newTestService(repo, &fakeGoogle{identity: &GoogleIdentity{Subject: "g-2", Email: "ada@example.com"}})
		ctx := context.Background()

		reg, err := svc.Register(ctx, &RegisterRequest{DisplayName: "Ada", Email: "ada@example.com", Password: "secret1"})
		require.NoError(t, err)

		resp, err := svc.GoogleLogin(ctx, &GoogleLoginRequest{Credential: "token"})
		require.NoError(t, err)
		assert.Equal(t, reg.User.ID, resp.User.ID)

		stored, err := repo.GetUserByID(ctx, reg.User.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.GoogleID)
		assert.Equal(t, "g-2", *stored.GoogleID)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeRepo(), &fakeGoogle{err: errors.New("bad token")})

		_, err := svc.GoogleLogin(context.Background(), &GoogleLoginRequest{Credential: "token"})
		assert.ErrorIs(t, err, ErrGoogleAuthFailed)
	})

	t.Run("no verifier configured", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeRepo(), nil)

		_, err := svc.GoogleLogin(context.Background(), &GoogleLoginRequest{Credential: "token"})
		assert.ErrorIs(t, err, ErrGoogleAuthFailed)
	})
}

func TestValidateToken_Rejects(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), nil)
	_, err := svc.ValidateToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewService(newFakeRepo(), nil, nil, &Config{JWTSecret: "other", TokenExpiry: time.Hour, BCryptCost: bcrypt.MinCost})
	resp, err := other.Register(context.Background(), &RegisterRequest{DisplayName: "X", Email: "x@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_WithoutRedis(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{DisplayName: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, resp.Token))
	assert.ErrorIs(t, svc.Logout(ctx, "garbage"), ErrInvalidToken)
}
