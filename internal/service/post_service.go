package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"anoa.com/communityhub/pkg/apperror"
	"anoa.com/communityhub/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	FeedModeAll       = "all"
	FeedModeFollowing = "following"
)

// sanitizer strips HTML from user-supplied text before it is stored.
var sanitizer = bluemonday.StrictPolicy()

// ImageFile represents an uploaded image file.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

type CreatePostInput struct {
	Title string `form:"title" binding:"required,max=200"`
	Body  string `form:"body" binding:"required,max=10000"`
}

type UpdatePostInput struct {
	Title string `form:"title" binding:"required,max=200"`
	Body  string `form:"body" binding:"required,max=10000"`
}

// PostDetail is a post with everything the detail view needs.
type PostDetail struct {
	Post      model.Post      `json:"post"`
	Comments  []model.Comment `json:"comments"`
	LikeCount int64           `json:"like_count"`
	Liked     bool            `json:"liked"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput, image *ImageFile) (*model.Post, error)
	GetPost(ctx context.Context, postID, viewerID uuid.UUID) (*PostDetail, error)
	// UpdatePost is allowed for the author or an admin; anyone else gets
	// ErrForbidden. updated_at is refreshed on every successful edit.
	UpdatePost(ctx context.Context, postID, requesterID uuid.UUID, input UpdatePostInput, image *ImageFile) (*model.Post, error)
	// DeletePost cascades to the post's comments and likes in one transaction.
	DeletePost(ctx context.Context, postID, requesterID uuid.UUID) error
	AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*model.Comment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error)
	// Feed returns the newest posts, limited to 50. Mode "following"
	// restricts to authors the viewer follows; without a viewer it behaves
	// as "all".
	Feed(ctx context.Context, viewerID uuid.UUID, mode string) ([]model.Post, error)
	Search(ctx context.Context, query string) ([]model.Post, error)
}

type postService struct {
	db           *gorm.DB
	posts        repository.PostRepository
	comments     repository.CommentRepository
	likes        repository.LikeRepository
	follows      repository.FollowRepository
	users        repository.UserRepository
	imageStorage storage.ImageStorage
}

func NewPostService(db *gorm.DB, posts repository.PostRepository, comments repository.CommentRepository, likes repository.LikeRepository, follows repository.FollowRepository, users repository.UserRepository, imageStorage storage.ImageStorage) PostService {
	return &postService{
		db:           db,
		posts:        posts,
		comments:     comments,
		likes:        likes,
		follows:      follows,
		users:        users,
		imageStorage: imageStorage,
	}
}

func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput, image *ImageFile) (*model.Post, error) {
	post := &model.Post{
		UserID: authorID,
		Title:  sanitizer.Sanitize(input.Title),
		Body:   sanitizer.Sanitize(input.Body),
	}

	if ref, err := s.uploadImage(ctx, image); err != nil {
		return nil, err
	} else if ref != nil {
		post.Image = ref
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, postID, viewerID uuid.UUID) (*PostDetail, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.likes.CountForPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked := false
	if viewerID != uuid.Nil {
		liked, err = s.likes.IsLiked(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
	}

	return &PostDetail{
		Post:      *post,
		Comments:  comments,
		LikeCount: likeCount,
		Liked:     liked,
	}, nil
}

func (s *postService) UpdatePost(ctx context.Context, postID, requesterID uuid.UUID, input UpdatePostInput, image *ImageFile) (*model.Post, error) {
	post, err := s.authorizePostChange(ctx, postID, requesterID)
	if err != nil {
		return nil, err
	}

	post.Title = sanitizer.Sanitize(input.Title)
	post.Body = sanitizer.Sanitize(input.Body)

	if ref, err := s.uploadImage(ctx, image); err != nil {
		return nil, err
	} else if ref != nil {
		post.Image = ref
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, postID, requesterID uuid.UUID) error {
	post, err := s.authorizePostChange(ctx, postID, requesterID)
	if err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}

	// Stored image removal is best-effort; the row cascade already committed.
	if post.Image != nil && s.imageStorage != nil {
		if err := s.imageStorage.DeleteImage(ctx, *post.Image); err != nil {
			log.Printf("failed to delete image for post %s: %v", postID, err)
		}
	}
	return nil
}

func (s *postService) AddComment(ctx context.Context, postID, authorID uuid.UUID, body string) (*model.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrUnauthorized
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID: postID,
		UserID: authorID,
		Body:   sanitizer.Sanitize(body),
	}

	// Comment and notification commit together.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repository.NewCommentRepository(tx).Create(ctx, comment); err != nil {
			return err
		}

		return notifyTx(ctx, tx, NotifyInput{
			RecipientID: post.UserID,
			ActorID:     authorID,
			Type:        model.NotificationComment,
			Message:     fmt.Sprintf("%s commented on your post.", author.Username),
			PostID:      &post.ID,
			CommentID:   &comment.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *postService) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

func (s *postService) Feed(ctx context.Context, viewerID uuid.UUID, mode string) ([]model.Post, error) {
	if mode == FeedModeFollowing && viewerID != uuid.Nil {
		followingIDs, err := s.follows.FollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		return s.posts.ListByAuthors(ctx, followingIDs, repository.FeedLimit)
	}
	return s.posts.ListRecent(ctx, repository.FeedLimit)
}

func (s *postService) Search(ctx context.Context, query string) ([]model.Post, error) {
	return s.posts.Search(ctx, query)
}

// authorizePostChange loads the post and verifies the requester may edit or
// delete it (author or admin).
func (s *postService) authorizePostChange(ctx context.Context, postID, requesterID uuid.UUID) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}

	if post.UserID == requesterID {
		return post, nil
	}

	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrForbidden
		}
		return nil, err
	}
	if !requester.IsAdmin {
		return nil, apperror.ErrForbidden
	}
	return post, nil
}

func (s *postService) uploadImage(ctx context.Context, image *ImageFile) (*string, error) {
	if image == nil || image.Reader == nil || s.imageStorage == nil {
		return nil, nil
	}
	ref, err := s.imageStorage.UploadImage(ctx, image.Reader, "posts", image.FileName)
	if err != nil {
		return nil, apperror.New(0, err.Error(), apperror.ErrInvalidInput)
	}
	return &ref, nil
}
