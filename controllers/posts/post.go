package posts

import (
	"context"
	"errors"
	"strings"
	"time"

	"travel-agency/logger"
	"travel-agency/models/blog"
	"travel-agency/repository"
	"travel-agency/services/draft"
	"travel-agency/services/slug"
	"travel-agency/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	defaultAuthor   = "Sova Tours"
	defaultCategory = "Travel Tips"
)

type Store interface {
	ListPublishedPosts(ctx context.Context) ([]blog.BlogPost, error)
	GetPublishedPostBySlug(ctx context.Context, slug string) (*blog.BlogPost, error)
	ListAllPosts(ctx context.Context) ([]blog.BlogPost, error)
	GetPost(ctx context.Context, id uuid.UUID) (*blog.BlogPost, error)
	BlogSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	CreateBlogPost(ctx context.Context, post *blog.BlogPost) error
	UpdateBlogPost(ctx context.Context, post *blog.BlogPost) error
	SetPostPublished(ctx context.Context, id uuid.UUID, published bool) error
	DeletePost(ctx context.Context, id uuid.UUID) error
}

// BlogController handles storefront and back office blog requests
type BlogController struct {
	Store Store
	now   func() time.Time
}

func NewBlogController(store Store) *BlogController {
	return &BlogController{Store: store, now: time.Now}
}

// PostInput is the back office form of a post. It shares its fields with
// the AI draft so a generated draft can be posted back unchanged.
type PostInput struct {
	draft.BlogDraft
	IsPublished bool `json:"is_published"`
}

type PublishInput struct {
	IsPublished *bool `json:"is_published"`
}

// List returns published posts, newest first
func (bc *BlogController) List(c *fiber.Ctx) error {
	posts, err := bc.Store.ListPublishedPosts(c.UserContext())
	if err != nil {
		logger.Error("Failed to list blog posts", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load posts", "persistence_failed", true)
	}

	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filtered := posts[:0:0]
		for _, p := range posts {
			if strings.EqualFold(p.Category, category) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	return utils.Respond(c, fiber.StatusOK, "Posts retrieved successfully", posts)
}

func (bc *BlogController) Show(c *fiber.Ctx) error {
	post, err := bc.Store.GetPublishedPostBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Post retrieved successfully", post)
}

// Index returns every post including drafts
func (bc *BlogController) Index(c *fiber.Ctx) error {
	posts, err := bc.Store.ListAllPosts(c.UserContext())
	if err != nil {
		logger.Error("Failed to list blog posts", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load posts", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusOK, "Posts retrieved successfully", posts)
}

func (bc *BlogController) Get(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid post id", "validation_error", false)
	}
	post, err := bc.Store.GetPost(c.UserContext(), id)
	if err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Post retrieved successfully", post)
}

func (bc *BlogController) Create(c *fiber.Ctx) error {
	var input PostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	post, msg := bc.toModel(input)
	if msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}

	ctx := c.UserContext()
	s, err := bc.uniqueSlug(ctx, input, nil)
	if err != nil {
		logger.Error("Failed to look up blog slugs", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save post", "persistence_failed", true)
	}
	post.Slug = s

	if err := bc.Store.CreateBlogPost(ctx, post); err != nil {
		logger.Error("Failed to create blog post", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save post", "persistence_failed", true)
	}
	return utils.Respond(c, fiber.StatusCreated, "Post created successfully", post)
}

func (bc *BlogController) Update(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid post id", "validation_error", false)
	}
	var input PostInput
	if err := c.BodyParser(&input); err != nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid request format", "validation_error", false)
	}
	post, msg := bc.toModel(input)
	if msg != "" {
		return utils.RespondError(c, fiber.StatusBadRequest, msg, "validation_error", false)
	}

	ctx := c.UserContext()
	current, err := bc.Store.GetPost(ctx, id)
	if err != nil {
		return lookupFailed(c, err)
	}
	s, err := bc.uniqueSlug(ctx, input, current)
	if err != nil {
		logger.Error("Failed to look up blog slugs", err)
		return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to save post", "persistence_failed", true)
	}
	post.ID = id
	post.Slug = s
	post.AIGenerated = current.AIGenerated
	post.CreatedAt = current.CreatedAt

	if err := bc.Store.UpdateBlogPost(ctx, post); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Post updated successfully", post)
}

// Publish toggles the public visibility of a post
func (bc *BlogController) Publish(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid post id", "validation_error", false)
	}
	var input PublishInput
	if err := c.BodyParser(&input); err != nil || input.IsPublished == nil {
		return utils.RespondError(c, fiber.StatusBadRequest, "is_published is required", "validation_error", false)
	}
	if err := bc.Store.SetPostPublished(c.UserContext(), id, *input.IsPublished); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Post updated successfully", input)
}

func (bc *BlogController) Delete(c *fiber.Ctx) error {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		return utils.RespondError(c, fiber.StatusBadRequest, "Invalid post id", "validation_error", false)
	}
	if err := bc.Store.DeletePost(c.UserContext(), id); err != nil {
		return lookupFailed(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, "Post deleted successfully", nil)
}

func lookupFailed(c *fiber.Ctx, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.RespondError(c, fiber.StatusNotFound, "Post not found", "not_found", false)
	}
	logger.Error("Blog post lookup failed", err)
	return utils.RespondError(c, fiber.StatusInternalServerError, "Failed to load post", "persistence_failed", true)
}

func (bc *BlogController) uniqueSlug(ctx context.Context, input PostInput, current *blog.BlogPost) (string, error) {
	base := slug.Base(input.Slug)
	if base == "" {
		base = slug.Base(input.Title)
	}
	existing, err := bc.Store.BlogSlugsWithPrefix(ctx, base)
	if err != nil {
		return "", err
	}
	if current != nil {
		kept := existing[:0:0]
		for _, s := range existing {
			if s != current.Slug {
				kept = append(kept, s)
			}
		}
		existing = kept
	}
	return slug.Disambiguate(base, existing), nil
}

// toModel validates input and fills the defaults. The message is empty when
// the input is valid.
func (bc *BlogController) toModel(input PostInput) (*blog.BlogPost, string) {
	d := input.BlogDraft
	switch {
	case strings.TrimSpace(d.Title) == "":
		return nil, "Title is required"
	case slug.Base(d.Title) == "" && slug.Base(d.Slug) == "":
		return nil, "Title must contain letters or digits"
	case strings.TrimSpace(d.Content) == "":
		return nil, "Content is required"
	}

	publishDate := bc.now()
	if s := strings.TrimSpace(d.PublishDate); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			if t, err = time.Parse(time.RFC3339, s); err != nil {
				return nil, "publish_date must be YYYY-MM-DD"
			}
		}
		publishDate = t
	}

	post := &blog.BlogPost{
		Title:            strings.TrimSpace(d.Title),
		Excerpt:          d.Excerpt,
		Content:          d.Content,
		Category:         d.Category,
		Author:           d.Author,
		PublishDate:      &publishDate,
		FeaturedImageURL: d.FeaturedImageURL,
		ImageCredit:      d.ImageCredit,
		MetaTitle:        d.MetaTitle,
		MetaDescription:  d.MetaDescription,
		OGTitle:          d.OGTitle,
		OGDescription:    d.OGDescription,
		OGImage:          d.OGImage,
		FocusKeyword:     d.FocusKeyword,
		IsPublished:      input.IsPublished,
	}
	if strings.TrimSpace(d.ContentBnHTML) != "" {
		bn := d.ContentBnHTML
		post.ContentBnHTML = &bn
	}
	if post.Category == "" {
		post.Category = defaultCategory
	}
	if post.Author == "" {
		post.Author = defaultAuthor
	}
	if post.OGImage == "" {
		post.OGImage = post.FeaturedImageURL
	}
	return post, ""
}
