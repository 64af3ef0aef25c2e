package service

import (
	"context"
	"errors"

	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type FollowService interface {
	Follow(ctx context.Context, userID, targetUsername string) (*models.User, error)
	Unfollow(ctx context.Context, userID, targetUsername string) (*models.User, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

type followService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) FollowService {
	return &followService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow создаёт ребро подписки на автора targetUsername.
// Подписка на себя и повторная подписка - no-op, не ошибка.
func (s *followService) Follow(ctx context.Context, userID, targetUsername string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if author.UserID == userID {
		return author, nil
	}

	exists, err := s.followRepo.Exists(ctx, userID, author.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return author, nil
	}

	err = s.followRepo.Create(ctx, userID, author.UserID)
	if err != nil {
		// гонка с параллельной подпиской: дубликат считается успехом
		if errors.Is(err, repository.ErrAlreadyExists) {
			return author, nil
		}
		return nil, err
	}

	return author, nil
}

// Unfollow удаляет ребро подписки. Отсутствующее ребро - ErrNotFound.
func (s *followService) Unfollow(ctx context.Context, userID, targetUsername string) (*models.User, error) {
	author, err := s.userRepo.GetUserByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}

	if err := s.followRepo.Delete(ctx, userID, author.UserID); err != nil {
		return nil, err
	}

	return author, nil
}

func (s *followService) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.followRepo.Exists(ctx, userID, authorID)
}
