// Package tmdb provides a client for The Movie Database API.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bluetrivia/bluetrivia/internal/logger"
	"github.com/bluetrivia/bluetrivia/internal/models"
)

// Movie is one title from the TMDB catalog
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

// Year returns the four-digit release year, or empty when unknown
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

// Client defines the interface for TMDB operations
type Client interface {
	// RandomPopularMovie draws one movie from the popular charts
	RandomPopularMovie(ctx context.Context) (*Movie, error)
	// MovieBackdrops downloads up to limit backdrop images for a movie
	MovieBackdrops(ctx context.Context, movieID, limit int) ([]models.MediaItem, error)
}

const (
	defaultAPIHost   = "https://api.themoviedb.org"
	defaultImageHost = "https://image.tmdb.org"

	// Popular charts go deep but quality drops off fast; the first
	// pages keep the game recognizable.
	popularPageSpread = 10
	backdropSize      = "w780"
)

// HTTPClient is a real HTTP client for TMDB
type HTTPClient struct {
	apiHost    string
	imageHost  string
	apiKey     string
	httpClient *http.Client
	log        logger.Logger
	rng        *rand.Rand
}

// NewHTTPClient creates a new TMDB client
func NewHTTPClient(apiKey string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		apiHost:   defaultAPIHost,
		imageHost: defaultImageHost,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewHTTPClientWithHosts creates a TMDB client pointed at custom API
// and image hosts. Used by tests.
func NewHTTPClientWithHosts(apiKey, apiHost, imageHost string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		apiHost:    strings.TrimRight(apiHost, "/"),
		imageHost:  strings.TrimRight(imageHost, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		log:        log,
		rng:        rand.New(rand.NewSource(1)),
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, response any) error {
	params.Set("api_key", c.apiKey)
	reqURL := c.apiHost + path + "?" + params.Encode()

	c.log.Debug("TMDB request", "method", "GET", "path", path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to TMDB: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.log.Debug("TMDB response", "path", path, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type popularResponse struct {
	Results []Movie `json:"results"`
}

// RandomPopularMovie draws one movie from a random page of the popular
// charts
func (c *HTTPClient) RandomPopularMovie(ctx context.Context) (*Movie, error) {
	page := c.rng.Intn(popularPageSpread) + 1

	params := url.Values{}
	params.Set("page", fmt.Sprintf("%d", page))

	var popular popularResponse
	if err := c.get(ctx, "/3/movie/popular", params, &popular); err != nil {
		return nil, err
	}
	if len(popular.Results) == 0 {
		return nil, fmt.Errorf("TMDB popular page %d is empty", page)
	}

	movie := popular.Results[c.rng.Intn(len(popular.Results))]
	return &movie, nil
}

type imagesResponse struct {
	Backdrops []struct {
		FilePath string `json:"file_path"`
	} `json:"backdrops"`
}

// MovieBackdrops downloads up to limit backdrop images for a movie
func (c *HTTPClient) MovieBackdrops(ctx context.Context, movieID, limit int) ([]models.MediaItem, error) {
	var images imagesResponse
	path := fmt.Sprintf("/3/movie/%d/images", movieID)
	if err := c.get(ctx, path, url.Values{}, &images); err != nil {
		return nil, err
	}

	var items []models.MediaItem
	for _, backdrop := range images.Backdrops {
		if len(items) >= limit {
			break
		}
		content, err := c.downloadImage(ctx, backdrop.FilePath)
		if err != nil {
			c.log.Warn("Failed to download backdrop, skipping", "path", backdrop.FilePath, "error", err)
			continue
		}
		items = append(items, models.MediaItem{
			Content:  content,
			MimeType: "image/jpeg",
		})
	}
	return items, nil
}

func (c *HTTPClient) downloadImage(ctx context.Context, filePath string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/t/p/%s%s", c.imageHost, backdropSize, filePath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to TMDB image host: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB image host returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
