// Package wiki reads hero names from the wiki mirror, used when the
// statistics API roster is unavailable.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/config"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/jsontree"
	"github.com/draftcoach/internal/logging"
	"github.com/draftcoach/internal/services/fetch"
)

// ErrNoHeroes is returned when a wiki source yields no names.
var ErrNoHeroes = errors.New("wiki returned no hero names")

// Resolver retrieves a JSON payload for a URL.
type Resolver interface {
	Resolve(ctx context.Context, target string) (*fetch.Result, error)
}

// Result is a list of names with the place it came from.
type Result struct {
	Names []string
	URL   string // endpoint requested
	Via   string // "direct" or the relay URL that answered
}

// Client is the wiki client.
type Client struct {
	resolver   Resolver
	jsonURL    string
	htmlURL    string
	selector   string
	httpClient *http.Client
	catalog    *hero.Catalog
	logger     *zap.Logger
}

// NewClient creates a new wiki client.
func NewClient(cfg *config.Config, resolver Resolver, catalog *hero.Catalog, logger *zap.Logger) *Client {
	if catalog == nil {
		catalog = hero.Default()
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		resolver:   resolver,
		jsonURL:    cfg.WikiURL,
		htmlURL:    cfg.WikiHTMLURL,
		selector:   cfg.WikiHTMLSelector,
		httpClient: &http.Client{Timeout: timeout},
		catalog:    catalog,
		logger:     logging.OrNop(logger),
	}
}

// URL is the JSON endpoint.
func (c *Client) URL() string {
	return c.jsonURL
}

// Heroes returns hero names from the JSON endpoint, or from the HTML page
// when one is configured and the endpoint gave nothing.
func (c *Client) Heroes(ctx context.Context) (*Result, error) {
	res, err := c.fromJSON(ctx)
	if err == nil || c.htmlURL == "" {
		return res, err
	}

	c.logger.Warn("Wiki JSON unavailable, scraping HTML page",
		zap.String("url", c.htmlURL),
		zap.Error(err),
	)
	page, htmlErr := c.fromHTML(ctx)
	if htmlErr != nil {
		return nil, errors.Join(err, htmlErr)
	}
	return page, nil
}

func (c *Client) fromJSON(ctx context.Context) (*Result, error) {
	res, err := c.resolver.Resolve(ctx, c.jsonURL)
	if err != nil {
		return nil, fmt.Errorf("wiki: %w", err)
	}

	list, ok := res.Payload.([]any)
	if !ok {
		data, _ := jsontree.Lookup(res.Payload, "data")
		list, _ = data.([]any)
	}

	names := make([]string, 0, len(list))
	for _, item := range list {
		raw, _ := jsontree.Lookup(item, "name")
		if nm := c.catalog.Normalize(jsontree.Text(raw)); nm != "" {
			names = append(names, nm)
		}
	}
	c.logger.Debug("Wiki roster fetched", zap.Int("names", len(names)), zap.String("via", res.Via))

	if len(names) == 0 {
		return nil, fmt.Errorf("wiki via %s: %w", res.Via, ErrNoHeroes)
	}
	return &Result{Names: names, URL: c.jsonURL, Via: res.Via}, nil
}

// fromHTML scrapes hero names from a wiki list page.
func (c *Client) fromHTML(ctx context.Context) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.htmlURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wiki page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wiki page: status code error: %d %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wiki page: %w", err)
	}

	var names []string
	doc.Find(c.selector).Each(func(_ int, s *goquery.Selection) {
		// Links usually carry the clean name in title; the text may include
		// footnote markers.
		text := strings.TrimSpace(s.AttrOr("title", ""))
		if text == "" {
			text = strings.TrimSpace(s.Text())
		}
		if nm := c.catalog.Normalize(text); nm != "" {
			names = append(names, nm)
		}
	})

	if len(names) == 0 {
		return nil, fmt.Errorf("wiki page %s: %w", c.htmlURL, ErrNoHeroes)
	}
	return &Result{Names: names, URL: c.htmlURL, Via: fetch.ViaDirect}, nil
}
