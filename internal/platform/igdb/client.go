package igdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gamerecs/internal/metrics"
)

const defaultBaseURL = "https://api.igdb.com/v4"

// Searcher is the read contract for the IGDB catalog. Both Client and
// SearchCache implement it, so callers can be handed either.
type Searcher interface {
	SearchGames(ctx context.Context, query string) ([]Game, error)
}

// Client issues search queries against the IGDB API. It authenticates with
// a Client-ID header plus a bearer credential, rate limits outgoing calls,
// and retries transient transport failures with exponential backoff.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	clientID    string
	accessToken string
	limiter     *rate.Limiter
	maxRetries  int
	logger      *zap.Logger
}

func NewClient(clientID, accessToken string, rps float64, maxRetries int, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		baseURL:     defaultBaseURL,
		clientID:    clientID,
		accessToken: accessToken,
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// WithBaseURL overrides the API endpoint. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// SearchGames queries the /games endpoint for base games with a known
// release date and returns the post-processed results. Any transport or
// decode failure is surfaced as a single error for the whole call; there
// is no partial-result fallback.
func (c *Client) SearchGames(ctx context.Context, query string) ([]Game, error) {
	body := searchBody(query)

	start := time.Now()
	metrics.IGDBRequestsTotal.Inc()

	raw, err := c.post(ctx, c.baseURL+"/games", body)
	if err != nil {
		metrics.IGDBRequestErrorsTotal.Inc()
		return nil, err
	}
	metrics.IGDBRequestLatency.Observe(time.Since(start).Seconds())

	var games []Game
	if err := json.Unmarshal(raw, &games); err != nil {
		metrics.IGDBRequestErrorsTotal.Inc()
		return nil, fmt.Errorf("decode igdb response: %w", err)
	}

	for i := range games {
		games[i].postProcess()
	}

	c.logger.Debug("igdb search completed",
		zap.String("query", query),
		zap.Int("results", len(games)),
	)
	return games, nil
}

// searchBody builds the Apicalypse query: a fixed field projection,
// filtered to base games with a non-null release date and no parent
// version, capped at 500 results.
func searchBody(query string) string {
	escaped := strings.ReplaceAll(query, `"`, `\"`)
	return fmt.Sprintf(`search "%s";
fields name,cover.url,first_release_date,summary,platforms.name,genres.name,involved_companies.company.name,involved_companies.developer,involved_companies.publisher,updated_at;
where first_release_date != null & version_parent = null & game_type = 0;
limit 500;`, escaped)
}

func (c *Client) post(ctx context.Context, url, body string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Client-ID", c.clientID)
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		raw, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("igdb: unexpected status code: %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("igdb: unexpected status code: %d", resp.StatusCode)
		}

		return raw, nil
	}
	return nil, fmt.Errorf("igdb: after %d retries: %w", c.maxRetries, lastErr)
}
