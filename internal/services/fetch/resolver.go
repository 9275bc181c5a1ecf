// Package fetch retrieves JSON documents through an ordered chain of
// strategies: a direct request first, then each configured relay.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/draftcoach/internal/jsontree"
	"github.com/draftcoach/internal/logging"
)

// ViaDirect labels a payload that came from the target URL itself.
const ViaDirect = "direct"

const defaultMaxBody = 8 << 20

// ErrExhausted matches every error returned when the whole chain failed.
var ErrExhausted = errors.New("all retrieval strategies failed")

// ErrBodyTooLarge is returned for a response body over the resolver limit.
var ErrBodyTooLarge = errors.New("response body exceeds limit")

// ExhaustedError is the single failure reported after the last strategy.
type ExhaustedError struct {
	URL      string
	Attempts int
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch %s: %v after %d attempts", e.URL, ErrExhausted, e.Attempts)
}

// Is makes errors.Is(err, ErrExhausted) hold.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrExhausted
}

// Attempt is one (strategy, URL) pair of a resolution plan.
type Attempt struct {
	Strategy string
	URL      string
}

// Result is a successfully retrieved payload.
type Result struct {
	Payload  any
	Raw      []byte
	Via      string // "direct" or the relay URL that answered
	Strategy string
	Attempts int
}

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Resolver walks the strategy chain. It keeps no state between calls and is
// safe for concurrent use.
type Resolver struct {
	client     Doer
	strategies []Strategy
	logger     *zap.Logger
	maxBody    int64
	userAgent  string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(d Doer) Option {
	return func(r *Resolver) { r.client = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) { r.logger = logging.OrNop(l) }
}

// WithUserAgent sets the User-Agent header sent on every attempt.
func WithUserAgent(ua string) Option {
	return func(r *Resolver) { r.userAgent = ua }
}

// WithMaxBody caps the response body size accepted from any attempt.
func WithMaxBody(n int64) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxBody = n
		}
	}
}

// NewHTTPClient returns a client with connection reuse and the given timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// New builds a resolver that tries the target directly, then strategies in
// the given order.
func New(strategies []Strategy, opts ...Option) *Resolver {
	r := &Resolver{
		client:     NewHTTPClient(15 * time.Second),
		strategies: append([]Strategy(nil), strategies...),
		logger:     zap.NewNop(),
		maxBody:    defaultMaxBody,
		userAgent:  "DraftCoach/1.0",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Plan lists the attempts Resolve makes for target, in order.
func (r *Resolver) Plan(target string) []Attempt {
	plan := make([]Attempt, 0, len(r.strategies)+1)
	plan = append(plan, Attempt{Strategy: ViaDirect, URL: target})
	for _, s := range r.strategies {
		plan = append(plan, Attempt{Strategy: s.Name, URL: s.Rewrite(target)})
	}
	return plan
}

// Resolve returns the first attempt whose response is 2xx with a valid JSON
// body. Failed attempts are logged and skipped. When every attempt fails the
// error is an *ExhaustedError. A cancelled ctx stops the chain early.
func (r *Resolver) Resolve(ctx context.Context, target string) (*Result, error) {
	attempts := 0
	for _, a := range r.Plan(target) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", target, err)
		}
		attempts++

		payload, raw, err := r.get(ctx, a.URL)
		if err != nil {
			r.logger.Warn("Retrieval attempt failed",
				zap.String("strategy", a.Strategy),
				zap.String("url", a.URL),
				zap.Error(err),
			)
			continue
		}

		via := a.URL
		if a.Strategy == ViaDirect {
			via = ViaDirect
		}
		r.logger.Debug("Retrieved payload",
			zap.String("target", target),
			zap.String("strategy", a.Strategy),
			zap.Int("bytes", len(raw)),
			zap.Int("attempts", attempts),
		)
		return &Result{
			Payload:  payload,
			Raw:      raw,
			Via:      via,
			Strategy: a.Strategy,
			Attempts: attempts,
		}, nil
	}

	// The last attempt may have failed because of the context.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	r.logger.Warn("All retrieval strategies failed",
		zap.String("target", target),
		zap.Int("attempts", attempts),
	)
	return nil, &ExhaustedError{URL: target, Attempts: attempts}
}

func (r *Resolver) get(ctx context.Context, reqURL string) (any, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, nil, fmt.Errorf("API error %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBody+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(raw)) > r.maxBody {
		return nil, nil, fmt.Errorf("%w (%d bytes)", ErrBodyTooLarge, r.maxBody)
	}
	payload, err := jsontree.Parse(raw)
	if err != nil {
		return nil, nil, fmt.Errorf("%d byte body: %w", len(raw), err)
	}
	return payload, raw, nil
}
