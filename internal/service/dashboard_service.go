package service

import (
	"context"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
)

const (
	TopPostsLimit    = 10
	RecentPostsLimit = 10
)

type DashboardCounts struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
}

// DashboardService is read-only; admin gating happens in the HTTP layer.
type DashboardService interface {
	Counts(ctx context.Context) (*DashboardCounts, error)
	// TopPosts ranks posts by like count, descending. Posts with zero likes
	// are included.
	TopPosts(ctx context.Context, limit int) ([]repository.TopPost, error)
	RecentPosts(ctx context.Context, limit int) ([]model.Post, error)
}

type dashboardService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewDashboardService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository) DashboardService {
	return &dashboardService{
		users:    users,
		posts:    posts,
		comments: comments,
	}
}

func (s *dashboardService) Counts(ctx context.Context) (*DashboardCounts, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.Count(ctx)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardCounts{
		Users:    users,
		Posts:    posts,
		Comments: comments,
	}, nil
}

func (s *dashboardService) TopPosts(ctx context.Context, limit int) ([]repository.TopPost, error) {
	if limit <= 0 {
		limit = TopPostsLimit
	}
	return s.posts.TopByLikes(ctx, limit)
}

func (s *dashboardService) RecentPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 {
		limit = RecentPostsLimit
	}
	return s.posts.ListRecent(ctx, limit)
}
