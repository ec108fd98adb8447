package service

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"anoa.com/communityhub/internal/model"
	"anoa.com/communityhub/internal/repository"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type CreatePostInput struct {
	Title   string `json:"title" binding:"required,min=3,max=200"`
	Content string `json:"content" binding:"required"`
	Publish bool   `json:"publish"`
}

type CreateCommentInput struct {
	Content string `json:"content" binding:"required,min=1"`
}

type PostService interface {
	CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error)
	ListPublished(ctx context.Context, limit, offset int) ([]model.Post, error)
	CreateComment(ctx context.Context, postID, authorID uuid.UUID, input CreateCommentInput) (*model.Comment, error)
	ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error)
}

type postService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	gamification GamificationService
	search       SearchService
	sanitizer    *bluemonday.Policy
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	gamification GamificationService,
	search SearchService,
) PostService {
	return &postService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		gamification: gamification,
		search:       search,
		sanitizer:    bluemonday.UGCPolicy(),
	}
}

// CreatePost stores the post and, if published, indexes it and awards points
// in the background. The post write succeeds or fails on its own; a
// gamification or indexing failure never rolls it back.
func (s *postService) CreatePost(ctx context.Context, authorID uuid.UUID, input CreatePostInput) (*model.Post, error) {
	post := &model.Post{
		AuthorID:  authorID,
		Title:     strings.TrimSpace(input.Title),
		Slug:      s.generateSlug(input.Title),
		Content:   s.sanitizer.Sanitize(input.Content),
		Published: input.Publish,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if post.Published {
		if s.search != nil {
			if err := s.search.IndexPost(post); err != nil {
				log.Printf("posts: failed to index post %s: %v", post.ID, err)
			}
		}
		s.gamification.AwardPointsAsync(authorID, SourcePostPublished)
	}

	return post, nil
}

func (s *postService) ListPublished(ctx context.Context, limit, offset int) ([]model.Post, error) {
	return s.postRepo.ListPublished(ctx, limit, offset)
}

func (s *postService) CreateComment(ctx context.Context, postID, authorID uuid.UUID, input CreateCommentInput) (*model.Comment, error) {
	// The post must exist before commenting on it.
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  s.sanitizer.Sanitize(input.Content),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.gamification.AwardPointsAsync(authorID, SourceCommentAdded)

	return comment, nil
}

func (s *postService) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9\s-]`)

func (s *postService) generateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugCleanup.ReplaceAllString(slug, "")
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.Trim(slug, "-")

	// Suffix keeps slugs unique without an extra lookup round trip
	return fmt.Sprintf("%s-%s", slug, uuid.New().String()[:8])
}
