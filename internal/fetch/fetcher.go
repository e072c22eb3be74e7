package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"craigsbot/internal/config"
)

// Fetcher issues the single blocking search GET for one source. The
// client timeout bounds how long a scan's fetch can stay in flight.
type Fetcher struct {
	client *http.Client
	src    config.SourceConfig
}

// NewFetcher creates a fetcher for the given source
func NewFetcher(src config.SourceConfig, timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		src:    src,
	}
}

// SearchURL builds the search-results URL from the source's query knobs.
func (f *Fetcher) SearchURL() string {
	query := url.Values{}
	query.Set("max_price", strconv.Itoa(f.src.MaxPrice))
	if f.src.PostedToday {
		query.Set("postedToday", "1")
	}
	if f.src.HasPic {
		query.Set("hasPic", "1")
	}
	if f.src.DogFriendly {
		query.Set("pets_dog", "1")
	}
	if f.src.Bedrooms > 0 {
		query.Set("bedrooms", strconv.Itoa(f.src.Bedrooms))
	}
	query.Set("sale_date", "-")
	return f.src.BaseURL() + f.src.SearchPath + "?" + query.Encode()
}

// Fetch returns the entire response body of the search page as a string.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.SearchURL(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", f.src.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read search response: %w", err)
	}
	return string(body), nil
}
