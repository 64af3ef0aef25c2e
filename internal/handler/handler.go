package handlers

import (
	"github.com/go-playground/validator/v10"

	"miniblog/internal/config"
	"miniblog/internal/repository"
	"miniblog/internal/service"
)

type Handlers struct {
	AuthService    service.AuthService
	PostService    service.PostService
	CommentService service.CommentService
	FollowService  service.FollowService
	StatsService   service.StatsService
	UserRepo       repository.UserRepository
	GroupRepo      repository.GroupRepository
	PostRepo       repository.PostRepository
	CommentRepo    repository.CommentRepository
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(repo *repository.Repository, service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		PostService:    service.Post,
		CommentService: service.Comment,
		FollowService:  service.Follow,
		StatsService:   service.Stats,
		UserRepo:       repo.User,
		GroupRepo:      repo.Group,
		PostRepo:       repo.Post,
		CommentRepo:    repo.Comment,
		Cfg:            config,
		Validate:       validator.New(),
	}
}
