// Package mlbb provides the statistics API client for DraftCoach.
package mlbb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/draftcoach/internal/config"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/jsontree"
	"github.com/draftcoach/internal/logging"
	"github.com/draftcoach/internal/services/fetch"
)

// ErrEmptyRoster is returned when the hero list holds no usable record.
var ErrEmptyRoster = errors.New("hero list has no named heroes")

const relationLimit = 5

// Resolver retrieves a JSON payload for a URL.
type Resolver interface {
	Resolve(ctx context.Context, target string) (*fetch.Result, error)
}

// Client is a client for the hero statistics API.
type Client struct {
	resolver Resolver
	baseURL  string
	origin   string
	rankDays int
	rankTier string
	catalog  *hero.Catalog
	logger   *zap.Logger
}

// NewClient creates a statistics API client.
func NewClient(cfg *config.Config, resolver Resolver, catalog *hero.Catalog, logger *zap.Logger) *Client {
	base := strings.TrimRight(cfg.StatsBaseURL, "/")
	origin := ""
	if u, err := url.Parse(base); err == nil && u.Scheme != "" {
		origin = u.Scheme + "://" + u.Host
	}
	if catalog == nil {
		catalog = hero.Default()
	}
	return &Client{
		resolver: resolver,
		baseURL:  base,
		origin:   origin,
		rankDays: cfg.RankDays,
		rankTier: cfg.RankTier,
		catalog:  catalog,
		logger:   logging.OrNop(logger),
	}
}

// HeroListURL is the roster endpoint.
func (c *Client) HeroListURL() string {
	return c.baseURL + "/hero-list-new/"
}

// HeroList fetches the roster. Records without a name or a numeric id are
// skipped.
func (c *Client) HeroList(ctx context.Context) (*HeroList, error) {
	listURL := c.HeroListURL()
	res, err := c.resolver.Resolve(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("hero list: %w", err)
	}

	records, _ := jsontree.Lookup(res.Payload, "data", "records")
	recs, _ := records.([]any)

	list := &HeroList{URL: listURL, Via: res.Via}
	for _, rec := range recs {
		rawName, _ := jsontree.Lookup(rec, "data", "hero", "data", "name")
		name := c.catalog.Normalize(jsontree.Text(rawName))
		rawID, _ := jsontree.LookupFirst(rec, []string{"data", "hero_id"}, []string{"data", "heroid"})
		id, ok := jsontree.Number(rawID)
		if name == "" || !ok {
			continue
		}
		list.Heroes = append(list.Heroes, HeroRef{Name: name, ID: int(id)})
	}

	c.logger.Debug("Hero list fetched",
		zap.Int("records", len(recs)),
		zap.Int("heroes", len(list.Heroes)),
		zap.String("via", res.Via),
	)
	if len(list.Heroes) == 0 {
		return nil, fmt.Errorf("hero list via %s: %w", res.Via, ErrEmptyRoster)
	}
	return list, nil
}

// HeroDetail fetches class, lane, speciality and portrait for a hero.
func (c *Client) HeroDetail(ctx context.Context, id int) (*Detail, error) {
	res, err := c.resolver.Resolve(ctx, fmt.Sprintf("%s/hero-detail/%d/", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("hero detail %d: %w", id, err)
	}

	subject := res.Payload
	if d, ok := jsontree.Lookup(res.Payload, "data"); ok && d != nil {
		subject = d
	}

	d := &Detail{
		Class:      displayValue(jsontree.FirstByKeys(subject, "sort", "class", "classe", "role", "type")),
		Lane:       displayValue(jsontree.FirstByKeys(subject, "road", "lane", "rota", "position")),
		Speciality: displayValue(jsontree.FirstByKeys(subject, "speciality", "specialty", "especialidade")),
	}
	if img, ok := jsontree.FirstByKeys(subject, "head", "image_head", "avatar", "icon"); ok {
		d.Image = c.absoluteImage(img)
	}
	return d, nil
}

func (c *Client) absoluteImage(v any) string {
	img, ok := v.(string)
	if !ok || img == "" {
		return ""
	}
	if strings.HasPrefix(img, "http:") || strings.HasPrefix(img, "https:") {
		return img
	}
	if c.origin == "" {
		return img
	}
	if !strings.HasPrefix(img, "/") {
		img = "/" + img
	}
	return c.origin + img
}

// HeroRates fetches pick, ban and win rates from the rank table. A hero
// missing from the table gets Missing for every rate.
func (c *Client) HeroRates(ctx context.Context, id int) (*Rates, error) {
	rankURL := fmt.Sprintf("%s/hero-rank/?days=%d&tier=%s&per_page=300&page=1",
		c.baseURL, c.rankDays, url.QueryEscape(c.rankTier))
	res, err := c.resolver.Resolve(ctx, rankURL)
	if err != nil {
		return nil, fmt.Errorf("hero rank: %w", err)
	}

	recs := jsontree.ExtractArray(res.Payload)
	var match any
	for _, rec := range recs {
		rid, _ := jsontree.LookupFirst(rec,
			[]string{"data", "hero_id"},
			[]string{"hero_id"},
			[]string{"data", "id"},
			[]string{"id"},
		)
		if n, ok := jsontree.Number(rid); ok && n == float64(id) {
			match = rec
			break
		}
	}
	c.logger.Debug("Hero rank fetched", zap.Int("records", len(recs)), zap.Bool("found", match != nil))

	rate := func(key string) string {
		v, _ := jsontree.LookupFirst(match, []string{"data", key}, []string{key})
		return FormatRate(v)
	}
	return &Rates{
		Pick: rate("pick_rate"),
		Ban:  rate("ban_rate"),
		Win:  rate("win_rate"),
	}, nil
}

// HeroRelations fetches the counter list, then the compatibility list. Both
// must succeed.
func (c *Client) HeroRelations(ctx context.Context, id int) (*Relations, error) {
	counters, err := c.resolver.Resolve(ctx, fmt.Sprintf("%s/hero-counter/%d/", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("hero counters %d: %w", id, err)
	}
	compat, err := c.resolver.Resolve(ctx, fmt.Sprintf("%s/hero-compatibility/%d/", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("hero compatibility %d: %w", id, err)
	}

	return &Relations{
		Counters:   c.pickNames(jsontree.ExtractArray(counters.Payload)),
		Compatible: c.pickNames(jsontree.ExtractArray(compat.Payload)),
	}, nil
}

var relationNamePaths = [][]string{
	{"name"},
	{"hero", "data", "name"},
	{"data", "hero", "data", "name"},
	{"hero"},
	{"hero_name"},
}

// pickNames takes the first textual name of each item, normalized and
// unique, up to relationLimit.
func (c *Client) pickNames(items []any) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, relationLimit)
	for _, it := range items {
		var name string
		for _, p := range relationNamePaths {
			v, _ := jsontree.Lookup(it, p...)
			if s, ok := v.(string); ok && s != "" {
				name = c.catalog.Normalize(s)
				break
			}
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
		if len(out) == relationLimit {
			break
		}
	}
	return out
}

// HeroMeta builds the hero card. It starts from FallbackMeta and, when the
// hero has an id, overlays the detail, the rates and the relations, fetched
// concurrently. Each part keeps its fallback value when its lookup fails.
func (c *Client) HeroMeta(ctx context.Context, h hero.Hero, role string) Meta {
	meta := FallbackMeta(c.catalog, h, role)
	if h.ID == 0 {
		return meta
	}

	var (
		detail    *Detail
		rates     *Rates
		relations *Relations
	)
	p := pool.New().WithMaxGoroutines(3)
	p.Go(func() {
		d, err := c.HeroDetail(ctx, h.ID)
		if err != nil {
			c.logger.Warn("Hero detail unavailable", zap.String("hero", h.Name), zap.Error(err))
			return
		}
		detail = d
	})
	p.Go(func() {
		r, err := c.HeroRates(ctx, h.ID)
		if err != nil {
			c.logger.Warn("Hero rates unavailable", zap.String("hero", h.Name), zap.Error(err))
			return
		}
		rates = r
	})
	p.Go(func() {
		r, err := c.HeroRelations(ctx, h.ID)
		if err != nil {
			c.logger.Warn("Hero relations unavailable", zap.String("hero", h.Name), zap.Error(err))
			return
		}
		relations = r
	})
	p.Wait()

	if detail != nil {
		meta.Detail = *detail
		meta.Live = true
	}
	if rates != nil {
		meta.Rates = *rates
		meta.Live = true
	}
	if relations != nil {
		meta.Relations = *relations
		meta.Live = true
	}
	return meta
}
