package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"miniblog/internal/models"
	"miniblog/internal/repository"
)

type mockFollowRepo struct {
	mock.Mock
}

func (m *mockFollowRepo) Create(ctx context.Context, userID, authorID string) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *mockFollowRepo) Delete(ctx context.Context, userID, authorID string) error {
	args := m.Called(ctx, userID, authorID)
	return args.Error(0)
}

func (m *mockFollowRepo) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	args := m.Called(ctx, userID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *mockFollowRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *mockUserRepo) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestFollowServiceFollow(t *testing.T) {
	author := &models.User{UserID: "author1", Username: "leo"}

	t.Run("Первая подписка создаёт ребро", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
		followRepo.On("Exists", mock.Anything, "user1", "author1").Return(false, nil)
		followRepo.On("Create", mock.Anything, "user1", "author1").Return(nil)

		svc := NewFollowService(followRepo, userRepo)

		got, err := svc.Follow(context.Background(), "user1", "leo")

		assert.NoError(t, err)
		assert.Equal(t, "author1", got.UserID)
		followRepo.AssertExpectations(t)
	})

	t.Run("Повторная подписка не создаёт второе ребро", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
		followRepo.On("Exists", mock.Anything, "user1", "author1").Return(true, nil)

		svc := NewFollowService(followRepo, userRepo)

		got, err := svc.Follow(context.Background(), "user1", "leo")

		assert.NoError(t, err)
		assert.Equal(t, "author1", got.UserID)
		followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Подписка на себя - no-op", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)

		svc := NewFollowService(followRepo, userRepo)

		got, err := svc.Follow(context.Background(), "author1", "leo")

		assert.NoError(t, err)
		assert.Equal(t, "author1", got.UserID)
		followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
		followRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Гонка с параллельной подпиской считается успехом", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
		followRepo.On("Exists", mock.Anything, "user1", "author1").Return(false, nil)
		followRepo.On("Create", mock.Anything, "user1", "author1").
			Return(fmt.Errorf("подписка уже есть: %w", repository.ErrAlreadyExists))

		svc := NewFollowService(followRepo, userRepo)

		got, err := svc.Follow(context.Background(), "user1", "leo")

		assert.NoError(t, err)
		assert.Equal(t, "author1", got.UserID)
	})

	t.Run("Несуществующий автор", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, repository.ErrNotFound)

		svc := NewFollowService(followRepo, userRepo)

		_, err := svc.Follow(context.Background(), "user1", "ghost")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestFollowServiceUnfollow(t *testing.T) {
	author := &models.User{UserID: "author1", Username: "leo"}

	t.Run("Отписка удаляет ребро", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
		followRepo.On("Delete", mock.Anything, "user1", "author1").Return(nil)

		svc := NewFollowService(followRepo, userRepo)

		got, err := svc.Unfollow(context.Background(), "user1", "leo")

		assert.NoError(t, err)
		assert.Equal(t, "author1", got.UserID)
		followRepo.AssertExpectations(t)
	})

	t.Run("Отписка без подписки возвращает ErrNotFound", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		userRepo.On("GetUserByUsername", mock.Anything, "leo").Return(author, nil)
		followRepo.On("Delete", mock.Anything, "user1", "author1").
			Return(fmt.Errorf("подписка не найдена: %w", repository.ErrNotFound))

		svc := NewFollowService(followRepo, userRepo)

		_, err := svc.Unfollow(context.Background(), "user1", "leo")

		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestFollowServiceIsFollowing(t *testing.T) {
	t.Run("Анонимный пользователь никогда не подписан", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		svc := NewFollowService(followRepo, userRepo)

		following, err := svc.IsFollowing(context.Background(), "", "author1")

		assert.NoError(t, err)
		assert.False(t, following)
		followRepo.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Подписка найдена", func(t *testing.T) {
		followRepo := new(mockFollowRepo)
		userRepo := new(mockUserRepo)

		followRepo.On("Exists", mock.Anything, "user1", "author1").Return(true, nil)

		svc := NewFollowService(followRepo, userRepo)

		following, err := svc.IsFollowing(context.Background(), "user1", "author1")

		assert.NoError(t, err)
		assert.True(t, following)
	})
}
