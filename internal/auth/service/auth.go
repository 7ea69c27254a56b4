package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"slicesite/internal/auth/repository"
	"slicesite/internal/domain"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, email, password string) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

type AuthService struct {
	users    repository.UserRepositoryInterface
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepositoryInterface, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: tokenTTL}
}

func (as *AuthService) Register(ctx context.Context, email, password string) (domain.User, error) {
	if email == "" || password == "" {
		return domain.User{}, errors.New("email and password are required")
	}

	if _, err := as.users.GetByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return as.users.Create(ctx, email, string(hash))
}

// Login verifies credentials and issues a signed bearer token.
func (as *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := as.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", domain.ErrInactiveUser
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"email": user.Email,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(as.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves a bearer token to its active user.
func (as *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.User{}, domain.ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return domain.User{}, domain.ErrInvalidToken
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return domain.User{}, domain.ErrInvalidToken
	}

	user, err := as.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrInvalidToken
		}
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, domain.ErrInactiveUser
	}
	return user, nil
}
