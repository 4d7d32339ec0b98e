// Package sitemap renders the public sitemap.xml of the storefront.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"travel-agency/models/blog"
	"travel-agency/models/tour"
	"travel-agency/repository"
)

const namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// Source lists the publicly visible records.
type Source interface {
	ListActiveTours(ctx context.Context, f repository.TourFilter) ([]tour.Tour, error)
	ListPublishedPosts(ctx context.Context) ([]blog.BlogPost, error)
}

type page struct {
	path       string
	priority   string
	changefreq string
}

var staticPages = []page{
	{"/", "1.0", "weekly"},
	{"/packages", "0.9", "weekly"},
	{"/blog", "0.8", "daily"},
	{"/about", "0.7", "monthly"},
	{"/contact", "0.7", "monthly"},
	{"/packages?category=domestic", "0.8", "weekly"},
	{"/packages?category=international", "0.8", "weekly"},
	{"/packages?category=pilgrimage", "0.8", "weekly"},
	{"/privacy-policy", "0.3", "yearly"},
	{"/refund-policy", "0.3", "yearly"},
	{"/terms-conditions", "0.3", "yearly"},
}

type urlSet struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []entry  `xml:"url"`
}

type entry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Build renders the sitemap of baseURL: static pages, then active tours,
// then published posts.
func Build(ctx context.Context, src Source, baseURL string) ([]byte, error) {
	baseURL = strings.TrimRight(baseURL, "/")

	tours, err := src.ListActiveTours(ctx, repository.TourFilter{})
	if err != nil {
		return nil, fmt.Errorf("sitemap tours: %w", err)
	}
	posts, err := src.ListPublishedPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("sitemap posts: %w", err)
	}

	set := urlSet{Xmlns: namespace}
	for _, p := range staticPages {
		set.URLs = append(set.URLs, entry{Loc: baseURL + p.path, ChangeFreq: p.changefreq, Priority: p.priority})
	}
	for _, t := range tours {
		set.URLs = append(set.URLs, entry{
			Loc:        baseURL + "/tour/" + t.Slug,
			LastMod:    t.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.8",
		})
	}
	for _, p := range posts {
		set.URLs = append(set.URLs, entry{
			Loc:        baseURL + "/blog/" + p.Slug,
			LastMod:    p.UpdatedAt.UTC().Format("2006-01-02"),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
