package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

type followRepository struct {
	db *sqlx.DB
}

func NewFollowRepository(db *sqlx.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create вставляет ребро подписки. Пара (user_id, author_id) уникальна,
// гонку двух одновременных подписок разрешает constraint БД.
func (r *followRepository) Create(ctx context.Context, userID, authorID string) error {
	query := `
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
	`

	_, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key value") {
			return fmt.Errorf("подписка: %w", ErrAlreadyExists)
		}
		return fmt.Errorf("ошибка при создании подписки: %w", err)
	}

	return nil
}

func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	query := `DELETE FROM follows WHERE user_id = $1 AND author_id = $2`

	result, err := r.db.ExecContext(ctx, query, userID, authorID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении подписки: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("подписка: %w", ErrNotFound)
	}

	return nil
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	query := `
		SELECT COUNT(*) FROM follows
		WHERE user_id = $1 AND author_id = $2
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, userID, authorID)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке подписки: %w", err)
	}

	return count > 0, nil
}

func (r *followRepository) Count(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM follows`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте подписок: %w", err)
	}

	return count, nil
}
