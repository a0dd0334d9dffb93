// Package api fetches rosters from the Pokédex REST API.
package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-dex/internal/pokemon"
	"github.com/vovakirdan/tui-dex/internal/registry"
)

// ErrUpstream marks a non-2xx answer from the API.
var ErrUpstream = errors.New("api: upstream error")

// maxErrorBody caps how much of an error response ends up in the error text.
const maxErrorBody = 512

// Client talks to the roster endpoints.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxPages   int
	logger     *log.Logger
}

// NewClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:8000/api"). maxPages bounds how many "next"
// links a single fetch follows; <= 0 means 1.
func NewClient(httpClient *http.Client, baseURL string, maxPages int, logger *log.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if maxPages <= 0 {
		maxPages = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxPages:   maxPages,
		logger:     logger,
	}
}

// URL returns the endpoint URL for a region.
func (c *Client) URL(region registry.Region) string {
	return c.baseURL + "/" + strings.TrimLeft(region.Path, "/")
}

// FetchRoster downloads the full roster of a region, following "next"
// links of paged responses.
func (c *Client) FetchRoster(ctx context.Context, region registry.Region) ([]pokemon.Record, error) {
	url := c.URL(region)
	seen := make(map[string]bool)

	var roster []pokemon.Record
	for page := 0; url != "" && page < c.maxPages; page++ {
		if seen[url] {
			c.logger.Warn("pagination loop, stopping", "region", region.ID, "url", url)
			break
		}
		seen[url] = true

		records, next, err := c.getPage(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("api: fetch %s: %w", region.ID, err)
		}
		roster = append(roster, records...)
		c.logger.Debug("fetched page", "region", region.ID, "page", page+1, "records", len(records))
		url = next
	}

	return roster, nil
}

func (c *Client) getPage(ctx context.Context, url string) ([]pokemon.Record, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, "", fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return decodePage(body)
}

// FetchAll downloads several regions concurrently. The first failure
// cancels the remaining requests.
func (c *Client) FetchAll(ctx context.Context, regions []registry.Region) (map[string][]pokemon.Record, error) {
	var (
		mu     sync.Mutex
		result = make(map[string][]pokemon.Record, len(regions))
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, region := range regions {
		g.Go(func() error {
			roster, err := c.FetchRoster(ctx, region)
			if err != nil {
				return err
			}
			mu.Lock()
			result[region.ID] = roster
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
