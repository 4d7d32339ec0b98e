package repository

import (
	"context"
	"fmt"

	"travel-agency/models/blog"

	"github.com/google/uuid"
)

// ListPublishedPosts returns published posts, newest publish date first.
func (r *Repository) ListPublishedPosts(ctx context.Context) ([]blog.BlogPost, error) {
	var posts []blog.BlogPost
	err := r.DB.WithContext(ctx).
		Where("is_published = ?", true).
		Order("publish_date DESC NULLS LAST").
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

func (r *Repository) GetPublishedPostBySlug(ctx context.Context, slug string) (*blog.BlogPost, error) {
	var post blog.BlogPost
	if err := r.DB.WithContext(ctx).Where("slug = ? AND is_published = ?", slug, true).First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *Repository) ListAllPosts(ctx context.Context) ([]blog.BlogPost, error) {
	var posts []blog.BlogPost
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *Repository) GetPost(ctx context.Context, id uuid.UUID) (*blog.BlogPost, error) {
	var post blog.BlogPost
	if err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// BlogSlugsWithPrefix returns existing post slugs starting with prefix.
func (r *Repository) BlogSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	var slugs []string
	err := r.DB.WithContext(ctx).Model(&blog.BlogPost{}).
		Where("slug LIKE ?", escapeLike(prefix)+"%").
		Pluck("slug", &slugs).Error
	if err != nil {
		return nil, fmt.Errorf("lookup blog slugs: %w", err)
	}
	return slugs, nil
}

func (r *Repository) CreateBlogPost(ctx context.Context, post *blog.BlogPost) error {
	if err := r.DB.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("create blog post: %w", err)
	}
	return nil
}

// UpdateBlogPost saves every editable column of post.
func (r *Repository) UpdateBlogPost(ctx context.Context, post *blog.BlogPost) error {
	result := r.DB.WithContext(ctx).Model(&blog.BlogPost{}).Where("id = ?", post.ID).
		Select("*").Omit("id", "created_at", "ai_generated").Updates(post)
	if result.Error != nil {
		return fmt.Errorf("update blog post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetPostPublished(ctx context.Context, id uuid.UUID, published bool) error {
	result := r.DB.WithContext(ctx).Model(&blog.BlogPost{}).Where("id = ?", id).Update("is_published", published)
	if result.Error != nil {
		return fmt.Errorf("update blog post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	result := r.DB.WithContext(ctx).Where("id = ?", id).Delete(&blog.BlogPost{})
	if result.Error != nil {
		return fmt.Errorf("delete blog post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
