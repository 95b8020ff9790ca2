package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"pantrychef/internal/common"
)

// User is an account row.
type User struct {
	ID             uuid.UUID   `db:"id" json:"id"`
	Username       string      `db:"username" json:"username"`
	Email          string      `db:"email" json:"email"`
	PasswordHash   string      `db:"password_hash" json:"-"`
	CookingMethods StringSlice `db:"cooking_methods" json:"cooking_methods"`
	KitchenTools   StringSlice `db:"kitchen_tools" json:"kitchen_tools"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"`
}

// UserRepository persists accounts and cooking preferences.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Exists(ctx context.Context, username, email string) (bool, error)
	UpdatePreferences(ctx context.Context, id uuid.UUID, cookingMethods, kitchenTools []string) error
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, cooking_methods, kitchen_tools)
		VALUES (:id, :username, :email, :password_hash, :cooking_methods, :kitchen_tools)`, u)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %q", common.ErrNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) Exists(ctx context.Context, username, email string) (bool, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(1) FROM users WHERE username = $1 OR email = $2`, username, email)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return n > 0, nil
}

func (r *userRepo) UpdatePreferences(ctx context.Context, id uuid.UUID, cookingMethods, kitchenTools []string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET cooking_methods = $2, kitchen_tools = $3 WHERE id = $1`,
		id, StringSlice(cookingMethods), StringSlice(kitchenTools))
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: user %s", common.ErrNotFound, id)
	}
	return nil
}
