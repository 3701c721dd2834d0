package openmensa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public OpenMensa v2 API endpoint.
const DefaultBaseURL = "https://openmensa.org/api/v2"

// Canteen is a single canteen record from the OpenMensa directory.
type Canteen struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Coordinates []float64 `json:"coordinates"`
}

// Prices holds the per-group prices of a meal. A nil entry means the
// group has no price listed.
type Prices struct {
	Students  *float64 `json:"students"`
	Employees *float64 `json:"employees"`
	Pupils    *float64 `json:"pupils"`
	Others    *float64 `json:"others"`
}

// Meal is a single meal offering of a canteen on one day.
type Meal struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Prices   Prices   `json:"prices"`
	Notes    []string `json:"notes"`
}

// errNotFound marks a 404 from the API so callers can map it to an
// absent record instead of a transport failure.
var errNotFound = errors.New("not found")

// Client talks to the OpenMensa API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client against the public OpenMensa API.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CanteenByID fetches a single canteen. A canteen that does not exist
// yields (nil, nil), not an error.
func (c *Client) CanteenByID(ctx context.Context, id int) (*Canteen, error) {
	var canteen Canteen
	_, err := c.getJSON(ctx, fmt.Sprintf("/canteens/%d", id), nil, &canteen)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &canteen, nil
}

// CanteensByLocation returns every canteen whose name, city or address
// contains the query, case-insensitively. The v2 API has no free-text
// search parameter, so this walks the paginated directory and filters
// client-side. An empty result is not an error.
func (c *Client) CanteensByLocation(ctx context.Context, query string) ([]Canteen, error) {
	needle := strings.ToLower(query)
	var matches []Canteen

	totalPages := 1
	for page := 1; page <= totalPages; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("limit", "100")

		var canteens []Canteen
		header, err := c.getJSON(ctx, "/canteens", params, &canteens)
		if err != nil {
			return nil, err
		}
		if n, err := strconv.Atoi(header.Get("X-Total-Pages")); err == nil {
			totalPages = n
		}

		for _, canteen := range canteens {
			if matchesLocation(canteen, needle) {
				matches = append(matches, canteen)
			}
		}
	}

	return matches, nil
}

// CanteensByIDs fetches the given canteens in one batch request. The
// API decides the result order.
func (c *Client) CanteensByIDs(ctx context.Context, ids []int) ([]Canteen, error) {
	joined := make([]string, len(ids))
	for i, id := range ids {
		joined[i] = strconv.Itoa(id)
	}
	params := url.Values{}
	params.Set("ids", strings.Join(joined, ","))

	var canteens []Canteen
	if _, err := c.getJSON(ctx, "/canteens", params, &canteens); err != nil {
		return nil, err
	}
	return canteens, nil
}

// MealsOn fetches the meals a canteen offers on a day. The date is the
// ISO YYYY-MM-DD form.
func (c *Client) MealsOn(ctx context.Context, canteenID int, date string) ([]Meal, error) {
	var meals []Meal
	path := fmt.Sprintf("/canteens/%d/days/%s/meals", canteenID, date)
	if _, err := c.getJSON(ctx, path, nil, &meals); err != nil {
		return nil, err
	}
	return meals, nil
}

func matchesLocation(c Canteen, needle string) bool {
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.City), needle) ||
		strings.Contains(strings.ToLower(c.Address), needle)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) (http.Header, error) {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, errNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openmensa api error: %s: status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.Header, nil
}
