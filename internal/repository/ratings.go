package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RecipeRating is one like/dislike row.
type RecipeRating struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"-"`
	RecipeName string    `db:"recipe_name" json:"recipe_name"`
	Liked      bool      `db:"liked" json:"liked"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RatingRepository persists recipe likes and dislikes.
type RatingRepository interface {
	Upsert(ctx context.Context, userID uuid.UUID, recipeName string, liked bool) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]RecipeRating, error)
}

type ratingRepo struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepo{db: db}
}

// Upsert records the rating, replacing any prior rating for the same recipe.
func (r *ratingRepo) Upsert(ctx context.Context, userID uuid.UUID, recipeName string, liked bool) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO recipe_ratings (id, user_id, recipe_name, liked)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, recipe_name) DO UPDATE SET liked = EXCLUDED.liked`,
		uuid.New(), userID, recipeName, liked)
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *ratingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]RecipeRating, error) {
	ratings := []RecipeRating{}
	err := r.db.SelectContext(ctx, &ratings, `
		SELECT * FROM recipe_ratings WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return ratings, nil
}
