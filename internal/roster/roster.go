// Package roster loads the list of selectable heroes, falling back from the
// statistics API to the wiki and finally to the bundled list.
package roster

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/logging"
	"github.com/draftcoach/internal/services/fetch"
	"github.com/draftcoach/internal/services/mlbb"
	"github.com/draftcoach/internal/services/wiki"
)

// Advisory tells users how far the roster fell back.
type Advisory string

const (
	AdvisoryNone    Advisory = "none"
	AdvisoryWiki    Advisory = "wiki"
	AdvisoryOffline Advisory = "offline"
)

const (
	LocalSource    = "local"
	wikiMessage    = "Using wiki fallback roster"
	offlineMessage = "Could not fetch a remote roster (API + Wiki). Using the local roster (offline)"
)

// Roster is a loaded hero list.
type Roster struct {
	Names    []string
	IDs      map[string]int
	Source   string
	Advisory Advisory
	Message  string
	LoadedAt time.Time
}

// ID returns the statistics id of a hero, if the roster came from the API.
func (r Roster) ID(name string) (int, bool) {
	id, ok := r.IDs[name]
	return id, ok
}

// Contains reports whether name is on the roster.
func (r Roster) Contains(name string) bool {
	i := sort.SearchStrings(r.Names, name)
	return i < len(r.Names) && r.Names[i] == name
}

// Suggest returns up to limit names containing query, case-insensitively.
func (r Roster) Suggest(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, limit)
	for _, n := range r.Names {
		if len(out) == limit {
			break
		}
		if q == "" || strings.Contains(strings.ToLower(n), q) {
			out = append(out, n)
		}
	}
	return out
}

// HeroLister is the statistics API roster source.
type HeroLister interface {
	HeroList(ctx context.Context) (*mlbb.HeroList, error)
	HeroListURL() string
}

// WikiSource is the wiki roster source.
type WikiSource interface {
	Heroes(ctx context.Context) (*wiki.Result, error)
	URL() string
}

// Loader resolves a roster through the three tiers.
type Loader struct {
	stats   HeroLister
	wiki    WikiSource
	catalog *hero.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewLoader creates a loader. wiki may be nil.
func NewLoader(stats HeroLister, wiki WikiSource, catalog *hero.Catalog, logger *zap.Logger) *Loader {
	if catalog == nil {
		catalog = hero.Default()
	}
	return &Loader{
		stats:   stats,
		wiki:    wiki,
		catalog: catalog,
		logger:  logging.OrNop(logger),
		now:     time.Now,
	}
}

// Load never fails; the bundled list is the last resort.
func (l *Loader) Load(ctx context.Context) Roster {
	start := l.now()

	if l.stats != nil {
		list, err := l.stats.HeroList(ctx)
		if err == nil {
			ids := make(map[string]int, len(list.Heroes))
			names := make([]string, 0, len(list.Heroes))
			for _, h := range list.Heroes {
				if _, dup := ids[h.Name]; !dup {
					ids[h.Name] = h.ID
				}
				names = append(names, h.Name)
			}
			r := Roster{
				Names:    l.catalog.Unique(names),
				IDs:      ids,
				Source:   viaHost(list.Via, list.URL),
				Advisory: AdvisoryNone,
				LoadedAt: start,
			}
			l.logLoaded(r, start)
			return r
		}
		l.logger.Warn("Statistics roster unavailable", zap.Error(err))
	}

	if l.wiki != nil {
		res, err := l.wiki.Heroes(ctx)
		if err == nil {
			r := Roster{
				Names:    l.catalog.Unique(res.Names),
				IDs:      map[string]int{},
				Source:   viaHost(res.Via, res.URL) + " (Wiki)",
				Advisory: AdvisoryWiki,
				Message:  wikiMessage,
				LoadedAt: start,
			}
			l.logLoaded(r, start)
			return r
		}
		l.logger.Warn("Wiki roster unavailable", zap.Error(err))
	}

	r := Roster{
		Names:    l.catalog.LocalRoster(),
		IDs:      map[string]int{},
		Source:   LocalSource,
		Advisory: AdvisoryOffline,
		Message:  offlineMessage,
		LoadedAt: start,
	}
	l.logLoaded(r, start)
	return r
}

func (l *Loader) logLoaded(r Roster, start time.Time) {
	l.logger.Info("Roster loaded",
		zap.String("source", r.Source),
		zap.String("advisory", string(r.Advisory)),
		zap.Int("heroes", len(r.Names)),
		zap.Duration("took", l.now().Sub(start)),
	)
}

// viaHost is the hostname of the relay that answered, or of the requested
// URL when the direct attempt did.
func viaHost(via, requested string) string {
	raw := via
	if via == fetch.ViaDirect || via == "" {
		raw = requested
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}

// Store holds the current roster for concurrent readers. Concurrent loads
// share one resolution chain, and a load never replaces a roster from a load
// that started after it.
type Store struct {
	loader *Loader
	group  singleflight.Group

	mu        sync.RWMutex
	current   Roster
	loaded    bool
	started   uint64 // sequence of the newest load begun
	storedSeq uint64 // sequence of the load that produced current
}

const loadKey = "roster"

// NewStore creates an empty store backed by loader.
func NewStore(loader *Loader) *Store {
	return &Store{loader: loader}
}

// Current returns the last loaded roster, loading one on first use. Callers
// arriving while that load runs wait for it.
func (s *Store) Current(ctx context.Context) Roster {
	if r, ok := s.Peek(); ok {
		return r
	}
	return s.load(ctx)
}

// Peek returns the current roster without loading one.
func (s *Store) Peek() (Roster, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.loaded
}

// Refresh starts a new load, which later Current and Refresh callers join
// while it runs. A load already in flight is not reused since it began
// before the request.
func (s *Store) Refresh(ctx context.Context) Roster {
	s.group.Forget(loadKey)
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) Roster {
	v, _, _ := s.group.Do(loadKey, func() (any, error) {
		s.mu.Lock()
		s.started++
		seq := s.started
		s.mu.Unlock()

		r := s.loader.Load(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if seq < s.storedSeq {
			s.loader.logger.Debug("Discarding superseded roster load",
				zap.Uint64("load", seq),
				zap.Uint64("current", s.storedSeq),
			)
			return s.current, nil
		}
		s.current, s.loaded, s.storedSeq = r, true, seq
		return r, nil
	})
	return v.(Roster)
}

// Status reports the source label and advisory of the current roster
// without triggering a load.
func (s *Store) Status() (source, advisory string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return "", ""
	}
	return s.current.Source, string(s.current.Advisory)
}
