package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"slicesite/internal/domain"
)

type UserRepositoryInterface interface {
	Create(ctx context.Context, email, hashedPassword string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (ur *UserRepository) Create(ctx context.Context, email, hashedPassword string) (domain.User, error) {
	u := domain.User{Email: email, HashedPassword: hashedPassword, IsActive: true}
	err := ur.db.QueryRow(ctx, `
		INSERT INTO users (email, hashed_password, is_active)
		VALUES ($1, $2, TRUE)
		RETURNING id, created_at`,
		email, hashedPassword,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func (ur *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return ur.get(ctx, `WHERE email = $1`, email)
}

func (ur *UserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return ur.get(ctx, `WHERE id = $1`, id)
}

func (ur *UserRepository) get(ctx context.Context, where string, arg any) (domain.User, error) {
	var u domain.User
	err := ur.db.QueryRow(ctx, `
		SELECT id, email, hashed_password, is_active, created_at
		FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.HashedPassword, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
