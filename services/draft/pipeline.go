// Package draft turns an operator prompt into an editable tour or blog draft
// and persists reviewed drafts.
package draft

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"travel-agency/constants"
	"travel-agency/httpServices/unsplash"
	"travel-agency/logger"
	"travel-agency/models/blog"
	"travel-agency/models/generation"
	"travel-agency/models/tour"
	"travel-agency/services/generator"
	"travel-agency/services/slug"
	"travel-agency/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// RoleLookup resolves the role of an authenticated identity. An identity
// without a role row yields "".
type RoleLookup interface {
	RoleOf(ctx context.Context, userID string) (string, error)
}

type TourStore interface {
	TourSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	CreateTour(ctx context.Context, t *tour.Tour) error
	CreateItinerary(ctx context.Context, tourID uuid.UUID, days []tour.ItineraryDay) error
}

type BlogStore interface {
	BlogSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
	CreateBlogPost(ctx context.Context, post *blog.BlogPost) error
}

type ImageSearcher interface {
	Search(ctx context.Context, query string, count int) ([]unsplash.Image, error)
}

// DownloadTracker is implemented by image searchers that want to be told
// which results ended up on a saved record.
type DownloadTracker interface {
	TrackDownload(ctx context.Context, downloadLocation string) error
}

// Attempt describes one finished generation for the audit trail.
type Attempt struct {
	RequestID    string
	Kind         string
	Prompt       string
	UserID       string
	Title        string
	Slug         string
	ErrorCode    string
	ErrorMessage string
	Elapsed      time.Duration
}

// Recorder stores generation attempts. Record must not block.
type Recorder interface {
	Record(a Attempt)
}

type Pipeline struct {
	roles    RoleLookup
	tours    TourStore
	posts    BlogStore
	text     generator.TextGenerator
	images   ImageSearcher
	recorder Recorder

	aiTimeout    time.Duration
	imageTimeout time.Duration
	now          func() time.Time
}

type Options struct {
	Roles        RoleLookup
	Tours        TourStore
	Posts        BlogStore
	Text         generator.TextGenerator
	Images       ImageSearcher
	Recorder     Recorder
	AITimeout    time.Duration
	ImageTimeout time.Duration
}

func NewPipeline(opts Options) *Pipeline {
	p := &Pipeline{
		roles:        opts.Roles,
		tours:        opts.Tours,
		posts:        opts.Posts,
		text:         opts.Text,
		images:       opts.Images,
		recorder:     opts.Recorder,
		aiTimeout:    opts.AITimeout,
		imageTimeout: opts.ImageTimeout,
		now:          time.Now,
	}
	if p.aiTimeout <= 0 {
		p.aiTimeout = 60 * time.Second
	}
	if p.imageTimeout <= 0 {
		p.imageTimeout = 10 * time.Second
	}
	return p
}

func (p *Pipeline) authorize(ctx context.Context, userID, capability string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrForbidden
	}
	role, err := p.roles.RoleOf(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: role lookup: %v", ErrPersistence, err)
	}
	if !constants.RoleHas(role, capability) {
		return ErrForbidden
	}
	return nil
}

func (p *Pipeline) generate(ctx context.Context, system, user string) (string, error) {
	if p.text == nil {
		return "", fmt.Errorf("%w: no ai provider configured", ErrGeneration)
	}
	ctx, cancel := context.WithTimeout(ctx, p.aiTimeout)
	defer cancel()

	text, err := p.text.GenerateText(ctx, system, user)
	if err != nil {
		if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrQuotaExhausted) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return text, nil
}

func (p *Pipeline) record(a Attempt, started time.Time, err error) {
	if p.recorder == nil {
		return
	}
	a.Elapsed = p.now().Sub(started)
	if err != nil {
		a.ErrorCode, _ = Classify(err)
		a.ErrorMessage = err.Error()
	}
	p.recorder.Record(a)
}

// uniqueSlug derives the slug of title (or of the requested slug) and makes
// it unique against lookup.
func uniqueSlug(ctx context.Context, requested, title string, lookup func(context.Context, string) ([]string, error)) (string, error) {
	base := slug.Base(requested)
	if base == "" {
		base = slug.Base(title)
	}
	if base == "" {
		return "", validationf("title must contain letters or digits")
	}
	existing, err := lookup(ctx, base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return slug.Disambiguate(base, existing), nil
}

// draftSlugSource is what the slug of a fresh draft is derived from. A title
// with no ASCII letters or digits falls back to the kind and request id.
func draftSlugSource(title, kind, requestID string) string {
	if slug.Base(title) != "" {
		return title
	}
	return kind + "-" + requestID
}

// GenerateTour drafts a tour package from req. The caller needs the generate
// capability. Image search failures are logged and leave the images empty.
func (p *Pipeline) GenerateTour(ctx context.Context, userID string, req TourRequest) (result *TourResult, err error) {
	if err := p.authorize(ctx, userID, constants.CapGenerate); err != nil {
		return nil, err
	}
	req = req.withDefaults()
	if req.Prompt == "" {
		return nil, validationf("prompt is required")
	}

	started := p.now()
	attempt := Attempt{RequestID: utils.GenerateRequestID(), Kind: generation.KindTour, Prompt: req.Prompt, UserID: userID}
	defer func() {
		if result != nil {
			attempt.Title, attempt.Slug = result.Tour.Title, result.Tour.Slug
		}
		p.record(attempt, started, err)
	}()

	text, err := p.generate(ctx, tourSystemPrompt(req), tourUserPrompt(req))
	if err != nil {
		return nil, err
	}

	var payload tourPayload
	if err := utils.ExtractJSONObject(text, &payload); err != nil {
		logger.Warning(fmt.Sprintf("Tour draft %s: unparseable AI response: %v", attempt.RequestID, err))
		return nil, fmt.Errorf("%w: AI returned invalid JSON: %v", ErrGeneration, err)
	}
	draft, err := tourDraftFrom(payload, req)
	if err != nil {
		return nil, err
	}

	if draft.Slug, err = uniqueSlug(ctx, "", draftSlugSource(draft.Title, generation.KindTour, attempt.RequestID), p.tours.TourSlugsWithPrefix); err != nil {
		return nil, err
	}

	result = &TourResult{RequestID: attempt.RequestID, Tour: draft, Images: TourImages{Gallery: []unsplash.Image{}}}
	if enabled(req.UseImageSearch) && p.images != nil {
		result.Images = p.searchTourImages(ctx, draft.Destination)
		if result.Images.Hero != nil {
			result.Tour.HeroImageURL = result.Images.Hero.URL
			result.Tour.ImageDownloads = append(result.Tour.ImageDownloads, result.Images.Hero.DownloadLocation)
		}
		for _, img := range result.Images.Gallery {
			result.Tour.GalleryImages = append(result.Tour.GalleryImages, img.URL)
			result.Tour.ImageDownloads = append(result.Tour.ImageDownloads, img.DownloadLocation)
		}
	}
	return result, nil
}

func tourDraftFrom(payload tourPayload, req TourRequest) (TourDraft, error) {
	d := TourDraft{
		Title:              strings.TrimSpace(payload.Title),
		Destination:        strings.TrimSpace(payload.Destination),
		Category:           strings.TrimSpace(payload.Category),
		DurationDays:       payload.DurationDays.whole(),
		StartCity:          strings.TrimSpace(payload.StartCity),
		OriginalPriceINR:   payload.OriginalPriceINR.whole(),
		DiscountedPriceINR: payload.DiscountedPriceINR.whole(),
		BestSeason:         payload.BestSeason,
		HotelType:          strings.TrimSpace(payload.HotelType),
		Transport:          payload.Transport,
		Overview:           strings.TrimSpace(payload.Overview),
		Inclusions:         nonEmpty(payload.Inclusions),
		Exclusions:         nonEmpty(payload.Exclusions),
		GalleryImages:      []string{},
	}
	if d.Title == "" || d.Destination == "" || d.Overview == "" {
		return TourDraft{}, fmt.Errorf("%w: AI response missing required fields (title, destination or overview)", ErrGeneration)
	}
	if d.Category == "" {
		d.Category = req.Category
	}
	if d.DurationDays <= 0 {
		d.DurationDays = req.DurationDays
	}
	if d.StartCity == "" {
		d.StartCity = req.StartCity
	}
	if d.HotelType == "" {
		d.HotelType = req.HotelType
	}
	d.Itinerary = make([]ItineraryDraft, 0, len(payload.Itinerary))
	for i, day := range payload.Itinerary {
		n := day.DayNumber.whole()
		if n <= 0 {
			n = i + 1
		}
		d.Itinerary = append(d.Itinerary, ItineraryDraft{DayNumber: n, Title: day.Title, Description: day.Description})
	}
	return d, nil
}

func (p *Pipeline) searchTourImages(ctx context.Context, destination string) TourImages {
	ctx, cancel := context.WithTimeout(ctx, p.imageTimeout)
	defer cancel()

	var hero, gallery []unsplash.Image
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		imgs, err := p.images.Search(gctx, heroQuery(destination), 1)
		if err != nil {
			logger.Warning(fmt.Sprintf("Hero image search for %q failed: %v", destination, err))
			return nil
		}
		hero = imgs
		return nil
	})
	g.Go(func() error {
		imgs, err := p.images.Search(gctx, galleryQuery(destination), 4)
		if err != nil {
			logger.Warning(fmt.Sprintf("Gallery image search for %q failed: %v", destination, err))
			return nil
		}
		gallery = imgs
		return nil
	})
	_ = g.Wait()

	out := TourImages{Gallery: []unsplash.Image{}}
	if len(hero) > 0 {
		out.Hero = &hero[0]
	}
	if len(gallery) > 0 {
		out.Gallery = gallery
	}
	return out
}

// CommitTour saves a reviewed tour draft. The tour row is written before its
// itinerary; when only the itinerary fails a *PartialCommitError carrying the
// new tour id is returned.
func (p *Pipeline) CommitTour(ctx context.Context, userID string, d TourDraft, publish bool) (*tour.Tour, error) {
	if err := p.authorize(ctx, userID, constants.CapEdit); err != nil {
		return nil, err
	}
	if err := validateTourDraft(d); err != nil {
		return nil, err
	}
	s, err := uniqueSlug(ctx, d.Slug, d.Title, p.tours.TourSlugsWithPrefix)
	if err != nil {
		return nil, err
	}

	record := &tour.Tour{
		Slug:               s,
		Title:              strings.TrimSpace(d.Title),
		Destination:        strings.TrimSpace(d.Destination),
		StartCity:          d.StartCity,
		Category:           d.Category,
		Overview:           d.Overview,
		BestSeason:         d.BestSeason,
		Transport:          d.Transport,
		HotelType:          d.HotelType,
		DurationDays:       d.DurationDays,
		OriginalPriceINR:   d.OriginalPriceINR,
		DiscountedPriceINR: d.DiscountedPriceINR,
		HeroImageURL:       d.HeroImageURL,
		GalleryImages:      datatypes.NewJSONSlice(nonEmpty(d.GalleryImages)),
		Inclusions:         datatypes.NewJSONSlice(nonEmpty(d.Inclusions)),
		Exclusions:         datatypes.NewJSONSlice(nonEmpty(d.Exclusions)),
		IsFeatured:         d.IsFeatured,
		IsActive:           publish,
		AIGenerated:        true,
	}
	if record.Category == "" {
		record.Category = defaultTourCategory
	}
	if err := p.tours.CreateTour(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if days := ItineraryDays(d.Itinerary); len(days) > 0 {
		if err := p.tours.CreateItinerary(ctx, record.ID, days); err != nil {
			logger.Error(fmt.Sprintf("Tour %s saved without itinerary", record.ID), err)
			return record, &PartialCommitError{TourID: record.ID, Err: err}
		}
		record.Itinerary = days
	}

	p.trackDownloads(d.ImageDownloads)
	logger.Success(fmt.Sprintf("AI tour %q saved as %s (active=%t)", record.Title, record.Slug, publish))
	return record, nil
}

func validateTourDraft(d TourDraft) error {
	switch {
	case strings.TrimSpace(d.Title) == "":
		return validationf("title is required")
	case strings.TrimSpace(d.Destination) == "":
		return validationf("destination is required")
	case d.DurationDays <= 0:
		return validationf("duration_days must be positive")
	case d.OriginalPriceINR < 0 || d.DiscountedPriceINR < 0:
		return validationf("prices must not be negative")
	}
	for _, day := range d.Itinerary {
		if strings.TrimSpace(day.Title) == "" {
			return validationf("itinerary day %d needs a title", day.DayNumber)
		}
	}
	return nil
}

// ItineraryDays converts draft days to rows, numbering days without a
// positive day number by position.
func ItineraryDays(in []ItineraryDraft) []tour.ItineraryDay {
	days := make([]tour.ItineraryDay, 0, len(in))
	for i, d := range in {
		n := d.DayNumber
		if n <= 0 {
			n = i + 1
		}
		days = append(days, tour.ItineraryDay{
			DayNumber:   n,
			Title:       strings.TrimSpace(d.Title),
			Description: d.Description,
		})
	}
	return days
}

// GenerateBlog drafts a blog post from req. The caller needs the generate
// capability.
func (p *Pipeline) GenerateBlog(ctx context.Context, userID string, req BlogRequest) (result *BlogResult, err error) {
	if err := p.authorize(ctx, userID, constants.CapGenerate); err != nil {
		return nil, err
	}
	req = req.withDefaults()
	if req.Prompt == "" {
		return nil, validationf("prompt is required")
	}

	started := p.now()
	attempt := Attempt{RequestID: utils.GenerateRequestID(), Kind: generation.KindBlog, Prompt: req.Prompt, UserID: userID}
	defer func() {
		if result != nil {
			attempt.Title, attempt.Slug = result.Blog.Title, result.Blog.Slug
		}
		p.record(attempt, started, err)
	}()

	text, err := p.generate(ctx, blogSystemPrompt, blogUserPrompt(req))
	if err != nil {
		return nil, err
	}

	var payload blogPayload
	if err := utils.ExtractJSONObject(text, &payload); err != nil {
		logger.Warning(fmt.Sprintf("Blog draft %s: unparseable AI response: %v", attempt.RequestID, err))
		return nil, fmt.Errorf("%w: AI returned invalid JSON. Please try again", ErrGeneration)
	}
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.HTMLContent) == "" {
		return nil, fmt.Errorf("%w: AI response missing required fields (title or html_content)", ErrGeneration)
	}

	d := BlogDraft{
		Title:           strings.TrimSpace(payload.Title),
		Excerpt:         payload.Excerpt,
		Content:         payload.HTMLContent,
		ContentBnHTML:   payload.HTMLContentBn,
		Category:        strings.TrimSpace(payload.Category),
		Author:          defaultAuthor,
		PublishDate:     p.now().Format("2006-01-02"),
		MetaTitle:       payload.MetaTitle,
		MetaDescription: payload.MetaDescription,
		OGTitle:         payload.OGTitle,
		OGDescription:   payload.OGDescription,
		FocusKeyword:    strings.TrimSpace(payload.FocusKeyword),
	}
	if d.Category == "" {
		d.Category = req.Category
	}
	if d.FocusKeyword == "" {
		d.FocusKeyword = req.FocusKeyword
	}
	if d.Slug, err = uniqueSlug(ctx, "", draftSlugSource(d.Title, generation.KindBlog, attempt.RequestID), p.posts.BlogSlugsWithPrefix); err != nil {
		return nil, err
	}

	result = &BlogResult{RequestID: attempt.RequestID, Blog: d}
	if enabled(req.UseImageSearch) && p.images != nil {
		query := req.FocusKeyword
		if query == "" {
			query = req.Prompt
		}
		if img := p.searchOne(ctx, query); img != nil {
			result.Image = img
			result.Blog.FeaturedImageURL = img.URL
			result.Blog.ImageCredit = credit(img)
			result.Blog.ImageDownloads = []string{img.DownloadLocation}
		}
	}
	return result, nil
}

func (p *Pipeline) searchOne(ctx context.Context, query string) *unsplash.Image {
	ctx, cancel := context.WithTimeout(ctx, p.imageTimeout)
	defer cancel()

	imgs, err := p.images.Search(ctx, query, 1)
	if err != nil {
		logger.Warning(fmt.Sprintf("Image search for %q failed: %v", query, err))
		return nil
	}
	if len(imgs) == 0 {
		return nil
	}
	return &imgs[0]
}

func credit(img *unsplash.Image) string {
	if img.Photographer == "" {
		return "Unsplash"
	}
	return "Photo by " + img.Photographer + " on Unsplash"
}

// CommitBlog saves a reviewed blog draft.
func (p *Pipeline) CommitBlog(ctx context.Context, userID string, d BlogDraft, publish bool) (*blog.BlogPost, error) {
	if err := p.authorize(ctx, userID, constants.CapEdit); err != nil {
		return nil, err
	}
	if strings.TrimSpace(d.Title) == "" {
		return nil, validationf("title is required")
	}
	if strings.TrimSpace(d.Content) == "" {
		return nil, validationf("content is required")
	}
	publishDate, err := p.parsePublishDate(d.PublishDate)
	if err != nil {
		return nil, err
	}
	s, err := uniqueSlug(ctx, d.Slug, d.Title, p.posts.BlogSlugsWithPrefix)
	if err != nil {
		return nil, err
	}

	post := &blog.BlogPost{
		Title:            strings.TrimSpace(d.Title),
		Slug:             s,
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
		IsPublished:      publish,
		AIGenerated:      true,
	}
	if strings.TrimSpace(d.ContentBnHTML) != "" {
		bn := d.ContentBnHTML
		post.ContentBnHTML = &bn
	}
	if post.Category == "" {
		post.Category = defaultBlogCategory
	}
	if post.Author == "" {
		post.Author = defaultAuthor
	}
	if post.OGImage == "" {
		post.OGImage = post.FeaturedImageURL
	}

	if err := p.posts.CreateBlogPost(ctx, post); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	p.trackDownloads(d.ImageDownloads)
	logger.Success(fmt.Sprintf("AI blog post %q saved as %s (published=%t)", post.Title, post.Slug, publish))
	return post, nil
}

func (p *Pipeline) parsePublishDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return p.now(), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, validationf("publish_date must be YYYY-MM-DD")
}

// trackDownloads pings the image download endpoints in the background.
func (p *Pipeline) trackDownloads(locations []string) {
	tracker, ok := p.images.(DownloadTracker)
	if !ok || len(locations) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.imageTimeout)
		defer cancel()
		for _, loc := range locations {
			if loc == "" {
				continue
			}
			if err := tracker.TrackDownload(ctx, loc); err != nil {
				logger.Warning(fmt.Sprintf("Image download tracking failed: %v", err))
			}
		}
	}()
}

func roundPrice(v float64) int {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
