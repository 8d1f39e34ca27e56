package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"legacyestates/internal/domain"
)

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// BlogService manages articles on the public blog
type BlogService struct {
	db *gorm.DB
}

// NewBlogService creates a new blog service
func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{db: db}
}

// BlogPostInput carries the writable fields of a post
type BlogPostInput struct {
	Title     *string
	Excerpt   *string
	Content   *string
	Author    *string
	ImageURL  *string
	Published *bool
}

// Slugify derives a URL slug from a title
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Create adds a new post; the slug is derived from the title
func (s *BlogService) Create(ctx context.Context, in BlogPostInput) (*domain.BlogPost, error) {
	if in.Title == nil || strings.TrimSpace(*in.Title) == "" {
		return nil, NewBadRequestError("title is required")
	}
	if in.Content == nil || strings.TrimSpace(*in.Content) == "" {
		return nil, NewBadRequestError("content is required")
	}
	if in.Author == nil || strings.TrimSpace(*in.Author) == "" {
		return nil, NewBadRequestError("author is required")
	}

	title := strings.TrimSpace(*in.Title)
	slug := Slugify(title)
	log.Printf("[BLOG] Create request: title=%s, slug=%s", title, slug)

	var existing domain.BlogPost
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&existing).Error; err == nil {
		return nil, NewBadRequestError("a post with this title already exists")
	}

	post := domain.BlogPost{
		Title:   title,
		Slug:    slug,
		Content: *in.Content,
		Author:  strings.TrimSpace(*in.Author),
	}
	if in.Excerpt != nil {
		excerpt := strings.TrimSpace(*in.Excerpt)
		post.Excerpt = &excerpt
	}
	if in.ImageURL != nil {
		post.ImageURL = in.ImageURL
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		log.Printf("[BLOG] Create failed: database error: %v", err)
		return nil, fmt.Errorf("failed to create blog post: %w", err)
	}

	log.Printf("[BLOG] Create successful: id=%d, slug=%s", post.ID, post.Slug)
	return &post, nil
}

// List returns posts, newest first; publishedOnly hides drafts for the
// public site.
func (s *BlogService) List(ctx context.Context, skip, limit int, publishedOnly bool) ([]domain.BlogPost, error) {
	log.Printf("[BLOG] List request: skip=%d, limit=%d, publishedOnly=%v", skip, limit, publishedOnly)

	query := s.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	if skip > 0 {
		query = query.Offset(skip)
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query = query.Limit(limit)

	var posts []domain.BlogPost
	if err := query.Find(&posts).Error; err != nil {
		log.Printf("[BLOG] List failed: database error: %v", err)
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}

	log.Printf("[BLOG] List successful: returned %d posts", len(posts))
	return posts, nil
}

// GetBySlug returns one post by its URL slug
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	log.Printf("[BLOG] GetBySlug request: slug=%s", slug)

	var post domain.BlogPost
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("blog post not found")
		}
		log.Printf("[BLOG] GetBySlug failed: database error: %v", err)
		return nil, err
	}
	return &post, nil
}

// Get returns one post by id
func (s *BlogService) Get(ctx context.Context, id uint) (*domain.BlogPost, error) {
	log.Printf("[BLOG] Get request: id=%d", id)

	var post domain.BlogPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("blog post not found")
		}
		log.Printf("[BLOG] Get failed: database error: %v", err)
		return nil, err
	}
	return &post, nil
}

// Update changes the provided fields of a post; a new title re-derives the slug
func (s *BlogService) Update(ctx context.Context, id uint, in BlogPostInput) (*domain.BlogPost, error) {
	log.Printf("[BLOG] Update request: id=%d", id)

	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, NewBadRequestError("title must not be empty")
		}
		slug := Slugify(title)
		var existing domain.BlogPost
		if err := s.db.WithContext(ctx).Where("slug = ? AND id != ?", slug, id).First(&existing).Error; err == nil {
			return nil, NewBadRequestError("a post with this title already exists")
		}
		post.Title = title
		post.Slug = slug
	}
	if in.Excerpt != nil {
		excerpt := strings.TrimSpace(*in.Excerpt)
		post.Excerpt = &excerpt
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, NewBadRequestError("content must not be empty")
		}
		post.Content = *in.Content
	}
	if in.Author != nil {
		post.Author = strings.TrimSpace(*in.Author)
	}
	if in.ImageURL != nil {
		post.ImageURL = in.ImageURL
	}
	if in.Published != nil {
		post.Published = *in.Published
	}

	if err := s.db.WithContext(ctx).Save(post).Error; err != nil {
		log.Printf("[BLOG] Update failed: database error: %v", err)
		return nil, fmt.Errorf("failed to update blog post: %w", err)
	}

	log.Printf("[BLOG] Update successful: id=%d, slug=%s", post.ID, post.Slug)
	return post, nil
}

// Delete removes a post
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	log.Printf("[BLOG] Delete request: id=%d", id)

	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(post).Error; err != nil {
		log.Printf("[BLOG] Delete failed: database error: %v", err)
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	log.Printf("[BLOG] Delete successful: id=%d", id)
	return nil
}
