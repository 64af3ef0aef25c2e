package service

import (
	"context"

	"miniblog/internal/repository"
)

type Stats struct {
	Users    int `json:"users"`
	Groups   int `json:"groups"`
	Posts    int `json:"posts"`
	Comments int `json:"comments"`
	Follows  int `json:"follows"`
}

type StatsService interface {
	Counts(ctx context.Context) (*Stats, error)
}

type statsService struct {
	repo *repository.Repository
}

func NewStatsService(repo *repository.Repository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Counts(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	var err error

	if stats.Users, err = s.repo.User.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Groups, err = s.repo.Group.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Posts, err = s.repo.Post.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Comments, err = s.repo.Comment.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Follows, err = s.repo.Follow.Count(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
