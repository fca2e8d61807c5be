package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gamehub-dev/gamehub-service/internal/domain"
)

// LikeRepository defines persistence access for likes.
type LikeRepository interface {
	Set(ctx context.Context, userID int, target domain.LikeTarget, targetID int, liked bool) error
	Count(ctx context.Context, target domain.LikeTarget, targetID int) (int, error)
}

type likeRepository struct {
	pool *pgxpool.Pool
}

// NewLikeRepository returns a Postgres-backed implementation.
func NewLikeRepository(pool *pgxpool.Pool) LikeRepository {
	return &likeRepository{pool: pool}
}

// Set is idempotent: liking twice or unliking something never liked both
// succeed without changing state.
func (r *likeRepository) Set(ctx context.Context, userID int, target domain.LikeTarget, targetID int, liked bool) error {
	if liked {
		const query = `
            INSERT INTO likes (user_id, target, target_id)
            VALUES ($1, $2, $3)
            ON CONFLICT (user_id, target, target_id) DO NOTHING`
		_, err := r.pool.Exec(ctx, query, userID, target, targetID)
		return err
	}

	const query = `DELETE FROM likes WHERE user_id=$1 AND target=$2 AND target_id=$3`
	_, err := r.pool.Exec(ctx, query, userID, target, targetID)
	return err
}

func (r *likeRepository) Count(ctx context.Context, target domain.LikeTarget, targetID int) (int, error) {
	const query = `SELECT COUNT(*) FROM likes WHERE target=$1 AND target_id=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, target, targetID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
