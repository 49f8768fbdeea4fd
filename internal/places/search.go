package places

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// textSearch resolves a place name to a place id via the text search
// endpoint. Returns an empty id when nothing matched.
func (c *Client) textSearch(ctx context.Context, name string) (string, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, "textsearch", "/textsearch/json", params)
	if err != nil {
		return "", err
	}

	var resp textSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("parse text search response: %w", err)
	}

	if resp.Status != "OK" || len(resp.Results) == 0 {
		return "", fmt.Errorf("text search for %q returned status %s", name, resp.Status)
	}

	return resp.Results[0].PlaceID, nil
}

// placeDetails fetches name, address, rating, price level, types, and
// photos for a resolved place id.
func (c *Client) placeDetails(ctx context.Context, placeID string) (*rawDetails, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "place_id,name,formatted_address,rating,price_level,types,photos")
	params.Set("key", c.apiKey)

	body, err := c.doRequest(ctx, "details", "/details/json", params)
	if err != nil {
		return nil, err
	}

	var resp detailsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("parse details response: %w", err)
	}

	if resp.Status != "OK" {
		return nil, fmt.Errorf("details for %s returned status %s", placeID, resp.Status)
	}

	return &resp.Result, nil
}

// photoURL builds a fetchable URL from a photo reference.
func (c *Client) photoURL(photoReference string) string {
	params := url.Values{}
	params.Set("photoreference", photoReference)
	params.Set("maxwidth", "800")
	params.Set("key", c.apiKey)

	return c.baseURL + "/photo?" + params.Encode()
}

// doRequest executes a GET against the Places API with rate limiting.
func (c *Client) doRequest(ctx context.Context, limitKey, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx, limitKey); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("places request", "endpoint", limitKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return body, nil
}
