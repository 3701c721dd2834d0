// Package fun wraps the meme and useless-fact lookup APIs. Both are
// single-call, stateless collaborators; their failures never affect
// the exit status of a meal report.
package fun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Default endpoints of the novelty APIs.
const (
	DefaultMemeBaseURL = "https://meme-api.com"
	DefaultFactBaseURL = "https://uselessfacts.jsph.pl"
)

// Meme is a single meme link.
type Meme struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Fact is a single useless fact.
type Fact struct {
	Text string `json:"text"`
}

// Client fetches memes and useless facts.
type Client struct {
	MemeBaseURL string
	FactBaseURL string
	HTTPClient  *http.Client
}

// NewClient creates a client against the public APIs.
func NewClient() *Client {
	return &Client{
		MemeBaseURL: DefaultMemeBaseURL,
		FactBaseURL: DefaultFactBaseURL,
		HTTPClient:  &http.Client{Timeout: 15 * time.Second},
	}
}

// RandomMeme fetches a random meme link.
func (c *Client) RandomMeme(ctx context.Context) (*Meme, error) {
	var meme Meme
	if err := c.getJSON(ctx, c.MemeBaseURL+"/gimme", &meme); err != nil {
		return nil, err
	}
	return &meme, nil
}

// RandomFact fetches a random useless fact in the given language.
func (c *Client) RandomFact(ctx context.Context, language string) (*Fact, error) {
	return c.fact(ctx, "random", language)
}

// DailyFact fetches the fact of the day in the given language.
func (c *Client) DailyFact(ctx context.Context, language string) (*Fact, error) {
	return c.fact(ctx, "today", language)
}

func (c *Client) fact(ctx context.Context, kind, language string) (*Fact, error) {
	u := fmt.Sprintf("%s/api/v2/facts/%s", c.FactBaseURL, kind)
	if language != "" {
		u += "?language=" + url.QueryEscape(language)
	}

	var fact Fact
	if err := c.getJSON(ctx, u, &fact); err != nil {
		return nil, err
	}
	return &fact, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
