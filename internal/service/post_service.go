package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"miniblog/internal/config"
	"miniblog/internal/models"
	"miniblog/internal/repository"
	"miniblog/internal/storage"
)

// ImageUpload - необязательный файл картинки из multipart-формы
type ImageUpload struct {
	FileName string
	File     io.Reader
	Size     int64
}

type CreatePostRequest struct {
	AuthorID string
	Text     string
	GroupID  *string
	Image    *ImageUpload
}

type UpdatePostRequest struct {
	PostID   string
	AuthorID string
	Text     string
	GroupID  *string
	Image    *ImageUpload
}

type PostService interface {
	CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error)
	UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
	storage   storage.Storage
	cfg       *config.Config
}

func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
		storage:   storage,
		cfg:       cfg,
	}
}

func (p *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*models.Post, error) {
	// группа необязательна, но если указана - должна существовать
	if req.GroupID != nil {
		if _, err := p.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	// ID назначается до загрузки картинки, чтобы ключ объекта
	// в MinIO ссылался на настоящий пост
	post := &models.Post{
		PostID:   uuid.New().String(),
		AuthorID: req.AuthorID,
		GroupID:  req.GroupID,
		Text:     req.Text,
	}

	imageURL, objectName, err := p.uploadImage(ctx, post, req.Image)
	if err != nil {
		return nil, err
	}
	post.ImageURL = imageURL

	if err := p.postRepo.Create(ctx, post); err != nil {
		if objectName != "" {
			p.storage.DeleteImage(ctx, objectName)
		}
		return nil, err
	}

	return post, nil
}

// UpdatePost меняет text/group/image поста, created_at остаётся прежним.
// Проверка, что вызывающий - автор поста, выполняется в хендлере.
func (p *postService) UpdatePost(ctx context.Context, req UpdatePostRequest) (*models.Post, error) {
	post, err := p.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if req.GroupID != nil {
		if _, err := p.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	post.Text = req.Text
	post.GroupID = req.GroupID

	var oldImageURL string
	if post.ImageURL != nil {
		oldImageURL = *post.ImageURL
	}

	imageURL, _, err := p.uploadImage(ctx, post, req.Image)
	if err != nil {
		return nil, err
	}
	if imageURL != nil {
		post.ImageURL = imageURL
	}

	if err := p.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	// прежняя картинка после замены ни на что не ссылается
	if imageURL != nil && oldImageURL != "" && oldImageURL != *imageURL {
		if objectName := p.storage.ObjectNameFromURL(oldImageURL); objectName != "" {
			if err := p.storage.DeleteImage(ctx, objectName); err != nil {
				log.Warn().Err(err).Str("object", objectName).Msg("не удалось удалить старую картинку")
			}
		}
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID string) error {
	return p.postRepo.Delete(ctx, postID)
}

func (p *postService) uploadImage(ctx context.Context, post *models.Post, image *ImageUpload) (*string, string, error) {
	if image == nil {
		return nil, "", nil
	}

	objectName, imageURL, err := p.storage.UploadImage(ctx, post.PostID, image.FileName, image.File, image.Size)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка загрузки изображения: %w", err)
	}

	log.Debug().Str("object", objectName).Msg("изображение загружено")

	return &imageURL, objectName, nil
}
