package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a read-only client for the Jikan v4 REST API. Jikan is an
// unofficial MyAnimeList API with strict rate limits, so callers are
// expected to space out requests; CallDelay is the pause inserted between
// the dependent lookups made for a single anime.
type Client struct {
	BaseURL   string
	CallDelay time.Duration

	httpClient *http.Client
}

// NewClient creates a Jikan client against the given base URL
// (e.g. https://api.jikan.moe/v4).
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:   baseURL,
		CallDelay: 500 * time.Millisecond,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// animeResponse is the subset of /anime/{id} the game consumes.
type animeResponse struct {
	Data struct {
		Images struct {
			JPG struct {
				LargeImageURL string `json:"large_image_url"`
			} `json:"jpg"`
		} `json:"images"`
		Trailer struct {
			Images trailerImages `json:"images"`
		} `json:"trailer"`
	} `json:"data"`
}

type trailerImages struct {
	MaximumImageURL string `json:"maximum_image_url"`
	LargeImageURL   string `json:"large_image_url"`
}

type episodeVideo struct {
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
}

type episodeVideosResponse struct {
	Data []episodeVideo `json:"data"`
}

type videosResponse struct {
	Data struct {
		Promo []struct {
			Trailer struct {
				Images trailerImages `json:"images"`
			} `json:"trailer"`
		} `json:"promo"`
		Episodes []episodeVideo `json:"episodes"`
	} `json:"data"`
}

type picturesResponse struct {
	Data []struct {
		JPG struct {
			LargeImageURL string `json:"large_image_url"`
			ImageURL      string `json:"image_url"`
		} `json:"jpg"`
	} `json:"data"`
}

// maxEpisodeThumbs bounds how many episode thumbnails are pulled per lookup.
const maxEpisodeThumbs = 8

// AllImages collects every usable image URL for one anime, ordered so that
// frame-accurate screenshots (trailer and episode thumbnails) come before
// generic promotional art. Any individual lookup that fails contributes
// nothing; the method never returns an error because the pool builder
// degrades to "fewer images" instead.
func (c *Client) AllImages(ctx context.Context, malID int) []string {
	var images []string

	// Main record: cover image plus trailer thumbnail. The trailer
	// thumbnail is always an actual anime frame, so it outranks the cover.
	var anime animeResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d", malID), &anime); err == nil {
		if url := anime.Data.Images.JPG.LargeImageURL; url != "" {
			images = append(images, url)
		}
		if url := bestTrailerImage(anime.Data.Trailer.Images); url != "" {
			images = append(images, url)
		}
	}

	c.pause(ctx)

	var eps episodeVideosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d/videos/episodes", malID), &eps); err == nil {
		images = append(images, episodeThumbs(eps.Data)...)
	}

	c.pause(ctx)

	var vids videosResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d/videos", malID), &vids); err == nil {
		for _, p := range vids.Data.Promo {
			if url := bestTrailerImage(p.Trailer.Images); url != "" {
				images = append(images, url)
			}
		}
		images = append(images, episodeThumbs(vids.Data.Episodes)...)
	}

	c.pause(ctx)

	// Picture gallery last: mostly key visuals, used as low-priority filler.
	var pics picturesResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/anime/%d/pictures", malID), &pics); err == nil {
		for _, p := range pics.Data {
			if p.JPG.LargeImageURL != "" {
				images = append(images, p.JPG.LargeImageURL)
			} else if p.JPG.ImageURL != "" {
				images = append(images, p.JPG.ImageURL)
			}
		}
	}

	return dedupe(images)
}

func bestTrailerImage(t trailerImages) string {
	if t.MaximumImageURL != "" {
		return t.MaximumImageURL
	}
	return t.LargeImageURL
}

func episodeThumbs(eps []episodeVideo) []string {
	if len(eps) > maxEpisodeThumbs {
		eps = eps[:maxEpisodeThumbs]
	}
	var urls []string
	for _, ep := range eps {
		if url := ep.Images.JPG.ImageURL; url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// dedupe removes duplicate URLs while preserving first-seen order.
func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// pause sleeps for the configured inter-call delay, returning early if the
// context is cancelled.
func (c *Client) pause(ctx context.Context) {
	if c.CallDelay <= 0 {
		return
	}
	select {
	case <-time.After(c.CallDelay):
	case <-ctx.Done():
	}
}

// getJSON performs a GET against the Jikan API and decodes the response.
func (c *Client) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}

	return nil
}
