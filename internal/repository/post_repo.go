package repository

import (
	"context"
	"strings"

	"anoa.com/communityhub/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FeedLimit   = 50
	SearchLimit = 100
)

// TopPost pairs a post with its like count for dashboard rankings.
type TopPost struct {
	model.Post
	LikeCount int64 `gorm:"column:like_count" json:"like_count"`
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	// Delete removes the post together with its comments and likes in one
	// transaction, leaving no orphan rows.
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	ListRecent(ctx context.Context, limit int) ([]model.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) ([]model.Post, error)
	Search(ctx context.Context, query string) ([]model.Post, error)
	Count(ctx context.Context) (int64, error)
	TopByLikes(ctx context.Context, limit int) ([]TopPost, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Post{}).Error
	})
}

func (r *postRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListRecent(ctx context.Context, limit int) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit int) ([]model.Post, error) {
	posts := []model.Post{}
	if len(authorIDs) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id IN ?", authorIDs).
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Search(ctx context.Context, query string) ([]model.Post, error) {
	posts := []model.Post{}
	query = strings.TrimSpace(query)
	if query == "" {
		return posts, nil
	}

	// lower(... ) LIKE keeps the match case-insensitive on every backend.
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("lower(title) LIKE ? OR lower(body) LIKE ?", pattern, pattern).
		Order("created_at desc").
		Limit(SearchLimit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Count(&count).Error
	return count, err
}

func (r *postRepository) TopByLikes(ctx context.Context, limit int) ([]TopPost, error) {
	var rows []TopPost
	err := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, COUNT(post_likes.id) AS like_count").
		Joins("LEFT JOIN post_likes ON post_likes.post_id = posts.id").
		Group("posts.id").
		Order("like_count DESC, posts.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
