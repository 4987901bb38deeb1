/* espn.go
 * Contains the client used to poll the ESPN scoreboard for playoff games. Polls are paced with a rate limiter so a
 * refresh of every playoff week doesn't burst the provider
 */

package external

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"
)

// Source is a polling data source that returns the raw events for a season/week query
type Source interface {
	FetchEvents(ctx context.Context, year, seasonType, week int) ([]Event, error)
}

// Ensure ESPNClient implements Source
var _ Source = (*ESPNClient)(nil)

type ESPNClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	headers map[string]string
}

// NewESPNClient creates a client for the scoreboard at baseURL.
// Preconditions: timeout bounds each request; requestsPerSecond must be positive
// Postconditions: Returns a client that allows at most requestsPerSecond polls, with no burst
func NewESPNClient(baseURL string, timeout time.Duration, requestsPerSecond float64) *ESPNClient {
	return &ESPNClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		headers: map[string]string{
			"User-Agent":      "NFLPlayoffPicks/1.0",
			"Accept":          "application/json",
			"Accept-Encoding": "gzip",
		},
	}
}

// FetchEvents fetches the scoreboard for one week of a season.
// Preconditions: Receives the season year, season type (3 for the postseason) and week number
// Postconditions: Returns the events for that week (possibly empty), or an error if the request or decode fails
func (c *ESPNClient) FetchEvents(ctx context.Context, year, seasonType, week int) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	endpoint, err := c.scoreboardURL(year, seasonType, week)
	if err != nil {
		return nil, err
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var scoreboard ScoreboardResponse
	if err := json.Unmarshal(body, &scoreboard); err != nil {
		return nil, fmt.Errorf("error parsing scoreboard JSON: %w", err)
	}
	return scoreboard.Events, nil
}

func (c *ESPNClient) scoreboardURL(year, seasonType, week int) (string, error) {
	parsedURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid scoreboard url: %w", err)
	}

	params := parsedURL.Query()
	params.Set("dates", strconv.Itoa(year))
	params.Set("seasontype", strconv.Itoa(seasonType))
	params.Set("week", strconv.Itoa(week))
	parsedURL.RawQuery = params.Encode()
	return parsedURL.String(), nil
}

// get performs the request and returns the (decompressed) body
func (c *ESPNClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer response.Body.Close()

	// Accept-Encoding is set by hand, so the transport leaves decompression to us
	var reader io.Reader = response.Body
	if response.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(response.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("scoreboard returned status code: %d, response: %s", response.StatusCode, string(body))
	}
	return body, nil
}
