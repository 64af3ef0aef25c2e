package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"miniblog/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts 
        (post_id, author_id, group_id, text, image_url, created_at)
        VALUES 
        (:post_id, :author_id, :group_id, :text, :image_url, :created_at)
    `

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}

	// created_at назначается один раз и больше не меняется
	post.CreatedAt = time.Now()

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE post_id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пост с ID %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении поста: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts 
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountAll(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) ListByGroup(ctx context.Context, groupID string, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts 
        WHERE group_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов группы: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountByGroup(ctx context.Context, groupID string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов группы: %w", err)
	}

	return count, nil
}

func (r *PostRepositoryImpl) ListByAuthor(ctx context.Context, authorID string, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT * FROM posts 
        WHERE author_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3
    `

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов автора: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountByAuthor(ctx context.Context, authorID string) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте постов автора: %w", err)
	}

	return count, nil
}

// ListFeed - посты всех авторов, на которых подписан userID, новые сверху
func (r *PostRepositoryImpl) ListFeed(ctx context.Context, userID string, limit, offset int) ([]models.Post, error) {
	query := `
        SELECT p.* FROM posts p
        JOIN follows f ON f.author_id = p.author_id
        WHERE f.user_id = $1
        ORDER BY p.created_at DESC
        LIMIT $2 OFFSET $3
    `

	posts := []models.Post{}
	err := r.db.SelectContext(ctx, &posts, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении ленты: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountFeed(ctx context.Context, userID string) (int, error) {
	query := `
        SELECT COUNT(*) FROM posts p
        JOIN follows f ON f.author_id = p.author_id
        WHERE f.user_id = $1
    `

	var count int
	err := r.db.GetContext(ctx, &count, query, userID)
	if err != nil {
		return 0, fmt.Errorf("ошибка при подсчёте ленты: %w", err)
	}

	return count, nil
}

// Update обновляет text, group_id и image_url, created_at не трогает.
// Автора сменить нельзя: условие по author_id отсекает чужие посты.
func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			text = :text,
			group_id = :group_id,
			image_url = :image_url
		WHERE post_id = :post_id AND author_id = :author_id
	`

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		return fmt.Errorf("ошибка при обновлении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке обновленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост %s: %w", post.PostID, ErrNotFound)
	}

	return nil
}

// Delete удаляет пост; комментарии удаляются каскадом на уровне БД
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE post_id = $1`

	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка при проверке удаленных строк: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("пост %s: %w", postID, ErrNotFound)
	}

	return nil
}
