package unsplash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.unsplash.com"

// ErrDisabled is returned when no access key is configured.
var ErrDisabled = errors.New("unsplash access key not configured")

type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
}

// NewClient builds an Unsplash client. An empty baseURL means the public API.
func NewClient(baseURL, accessKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: strings.TrimSpace(accessKey),
	}
}

// Enabled reports whether searches will reach the API.
func (c *Client) Enabled() bool {
	return c != nil && c.accessKey != ""
}

// Search returns up to count landscape photos for query.
func (c *Client) Search(ctx context.Context, query string, count int) ([]Image, error) {
	if !c.Enabled() {
		return nil, ErrDisabled
	}
	if count <= 0 {
		count = 5
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(count))
	params.Set("orientation", "landscape")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Client-ID "+c.accessKey)
	httpReq.Header.Set("Accept-Version", "v1")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("Unsplash API returned non-OK status: " + resp.Status)
	}

	var apiResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, err
	}

	images := make([]Image, 0, len(apiResp.Results))
	for _, p := range apiResp.Results {
		img := Image{
			URL:              p.URLs.Regular,
			Alt:              p.AltDescription,
			Photographer:     p.User.Name,
			PhotographerURL:  p.User.Links.HTML,
			DownloadLocation: p.Links.DownloadLocation,
		}
		if img.URL == "" {
			img.URL = p.URLs.Small
		}
		if img.URL == "" {
			continue
		}
		if img.Alt == "" {
			img.Alt = query
		}
		images = append(images, img)
	}
	return images, nil
}

// TrackDownload notifies Unsplash that a photo was used, as its API
// guidelines require. Only download locations on the API host are followed.
func (c *Client) TrackDownload(ctx context.Context, downloadLocation string) error {
	if !c.Enabled() {
		return ErrDisabled
	}
	if !strings.HasPrefix(downloadLocation, c.baseURL+"/") {
		return errors.New("download location outside the Unsplash API")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadLocation, nil)
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("Unsplash download tracking returned non-OK status: " + resp.Status)
	}
	return nil
}
