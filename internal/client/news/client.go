// Package news is the news-feed accessor: a newsapi.org client, a
// storage-backed article cache with a two-hour freshness window, and the
// repeating refresh task that keeps the cache warm.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/credor-app/credor/internal/client/models"
	"github.com/credor-app/credor/internal/common"
)

// DefaultTopic is the fixed query the feed is filtered to.
const DefaultTopic = "cybersecurity"

// Client queries the external news provider's "everything" endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	topic      string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithTopic overrides the fixed feed topic.
func WithTopic(topic string) ClientOption {
	return func(c *Client) { c.topic = topic }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a provider client for endpoint (the full
// ".../v2/everything" URL) authenticated by apiKey.
func NewClient(endpoint, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		topic:      DefaultTopic,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type wireArticle struct {
	Source struct {
		ID   *string `json:"id"`
		Name string  `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

type wireResponse struct {
	Status       string        `json:"status"`
	TotalResults int           `json:"totalResults"`
	Articles     []wireArticle `json:"articles"`
}

// Fetch queries the rolling 7-days-ago..yesterday window sorted by
// popularity and returns the stripped article list in provider ranking
// order.
func (c *Client) Fetch(ctx context.Context, now time.Time) ([]models.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("news api key is not configured")
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid news endpoint: %w", err)
	}

	q := u.Query()
	q.Set("q", c.topic)
	q.Set("from", now.AddDate(0, 0, -7).Format("2006-01-02"))
	q.Set("to", now.AddDate(0, 0, -1).Format("2006-01-02"))
	q.Set("sortBy", "popularity")
	q.Set("apiKey", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news fetch failed: %s", resp.Status)
	}

	var payload wireResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse news response: %w", err)
	}

	articles := make([]models.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		source := a.Source.Name
		if source == "" {
			source = "Unknown"
		}
		articles = append(articles, models.Article{
			Source:      source,
			Author:      a.Author,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			URLToImage:  a.URLToImage,
			PublishedAt: a.PublishedAt,
		})
	}
	return articles, nil
}
