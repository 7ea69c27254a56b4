package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"slicesite/internal/domain"
)

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, email, hashedPassword string) (domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (domain.User, error)
	GetByIDFn    func(ctx context.Context, id int64) (domain.User, error)
}

func (f *fakeUserRepo) Create(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	return f.CreateFn(ctx, email, hashedPassword)
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return f.GetByEmailFn(ctx, email)
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return f.GetByIDFn(ctx, id)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegisterHashesPassword(t *testing.T) {
	var storedHash string
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{}, domain.ErrUserNotFound
		},
		CreateFn: func(ctx context.Context, email, hashedPassword string) (domain.User, error) {
			storedHash = hashedPassword
			return domain.User{ID: 1, Email: email, IsActive: true}, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	user, err := svc.Register(context.Background(), "a@b.dev", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEqual(t, "hunter22", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("hunter22")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Register(context.Background(), "a@b.dev", "pw")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginAndAuthenticateRoundTrip(t *testing.T) {
	user := domain.User{ID: 42, Email: "a@b.dev", HashedPassword: hash(t, "pw"), IsActive: true}
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) { return user, nil },
		GetByIDFn: func(ctx context.Context, id int64) (domain.User, error) {
			require.Equal(t, int64(42), id)
			return user, nil
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	token, err := svc.Login(context.Background(), "a@b.dev", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	user := domain.User{ID: 1, Email: "a@b.dev", HashedPassword: hash(t, "right"), IsActive: true}
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) { return user, nil },
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Login(context.Background(), "a@b.dev", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{}, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Login(context.Background(), "ghost@b.dev", "pw")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	user := domain.User{ID: 1, Email: "a@b.dev", HashedPassword: hash(t, "pw"), IsActive: false}
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) { return user, nil },
	}
	svc := NewAuthService(repo, "secret", time.Hour)

	_, err := svc.Login(context.Background(), "a@b.dev", "pw")
	assert.ErrorIs(t, err, domain.ErrInactiveUser)
}

func TestAuthenticateRejectsTamperedToken(t *testing.T) {
	user := domain.User{ID: 1, Email: "a@b.dev", HashedPassword: hash(t, "pw"), IsActive: true}
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) { return user, nil },
		GetByIDFn:    func(ctx context.Context, id int64) (domain.User, error) { return user, nil },
	}

	token, err := NewAuthService(repo, "secret", time.Hour).Login(context.Background(), "a@b.dev", "pw")
	require.NoError(t, err)

	// verified against a different secret
	_, err = NewAuthService(repo, "other-secret", time.Hour).Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = NewAuthService(repo, "secret", time.Hour).Authenticate(context.Background(), token+"x")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	user := domain.User{ID: 1, Email: "a@b.dev", HashedPassword: hash(t, "pw"), IsActive: true}
	repo := &fakeUserRepo{
		GetByEmailFn: func(ctx context.Context, email string) (domain.User, error) { return user, nil },
		GetByIDFn:    func(ctx context.Context, id int64) (domain.User, error) { return user, nil },
	}
	svc := NewAuthService(repo, "secret", -time.Minute)

	token, err := svc.Login(context.Background(), "a@b.dev", "pw")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
