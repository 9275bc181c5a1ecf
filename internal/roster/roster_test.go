package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/draftcoach/internal/config"
	"github.com/draftcoach/internal/hero"
	"github.com/draftcoach/internal/services/fetch"
	"github.com/draftcoach/internal/services/mlbb"
	"github.com/draftcoach/internal/services/wiki"
)

type fakeStats struct {
	list  *mlbb.HeroList
	err   error
	calls int
}

func (f *fakeStats) HeroList(context.Context) (*mlbb.HeroList, error) {
	f.calls++
	return f.list, f.err
}

func (f *fakeStats) HeroListURL() string { return "https://stats.example.com/api/hero-list-new/" }

type fakeWiki struct {
	res *wiki.Result
	err error
}

func (f *fakeWiki) Heroes(context.Context) (*wiki.Result, error) { return f.res, f.err }

func (f *fakeWiki) URL() string { return "https://wiki.example.com/heroes" }

var errDown = errors.New("down")

func TestLoadStatsTier(t *testing.T) {
	stats := &fakeStats{list: &mlbb.HeroList{
		URL: "https://stats.example.com/api/hero-list-new/",
		Via: fetch.ViaDirect,
		Heroes: []mlbb.HeroRef{
			{Name: "Tigreal", ID: 6},
			{Name: "Layla", ID: 1},
			{Name: "Tigreal", ID: 99},
		},
	}}
	r := NewLoader(stats, &fakeWiki{err: errDown}, nil, zap.NewNop()).Load(context.Background())

	if !reflect.DeepEqual(r.Names, []string{"Layla", "Tigreal"}) {
		t.Errorf("Names = %v", r.Names)
	}
	if id, ok := r.ID("Tigreal"); !ok || id != 6 {
		t.Errorf("ID(Tigreal) = %d, %v", id, ok)
	}
	if r.Source != "stats.example.com" || r.Advisory != AdvisoryNone || r.Message != "" {
		t.Errorf("roster = %+v", r)
	}
}

func TestLoadStatsTierViaRelay(t *testing.T) {
	stats := &fakeStats{list: &mlbb.HeroList{
		URL:    "https://stats.example.com/api/hero-list-new/",
		Via:    "https://r.jina.ai/https://stats.example.com/api/hero-list-new/",
		Heroes: []mlbb.HeroRef{{Name: "Layla", ID: 1}},
	}}
	r := NewLoader(stats, nil, nil, zap.NewNop()).Load(context.Background())
	if r.Source != "r.jina.ai" {
		t.Errorf("Source = %q, want r.jina.ai", r.Source)
	}
}

func TestLoadWikiTier(t *testing.T) {
	w := &fakeWiki{res: &wiki.Result{
		Names: []string{"Zilong", "Alucard", "Zilong"},
		URL:   "https://wiki.example.com/heroes",
		Via:   fetch.ViaDirect,
	}}
	r := NewLoader(&fakeStats{err: errDown}, w, nil, zap.NewNop()).Load(context.Background())

	if !reflect.DeepEqual(r.Names, []string{"Alucard", "Zilong"}) {
		t.Errorf("Names = %v", r.Names)
	}
	if r.Source != "wiki.example.com (Wiki)" {
		t.Errorf("Source = %q", r.Source)
	}
	if r.Advisory != AdvisoryWiki || r.Message != "Using wiki fallback roster" {
		t.Errorf("advisory = %q, message = %q", r.Advisory, r.Message)
	}
	if len(r.IDs) != 0 {
		t.Errorf("IDs = %v, want empty", r.IDs)
	}
}

func TestLoadLocalTier(t *testing.T) {
	r := NewLoader(&fakeStats{err: errDown}, &fakeWiki{err: errDown}, nil, zap.NewNop()).Load(context.Background())

	if r.Source != LocalSource || r.Advisory != AdvisoryOffline {
		t.Errorf("roster = %+v", r)
	}
	if !strings.HasPrefix(r.Message, "Could not fetch a remote roster") {
		t.Errorf("Message = %q", r.Message)
	}
	if !reflect.DeepEqual(r.Names, hero.Default().LocalRoster()) {
		t.Error("local tier should serve the bundled roster")
	}
	if len(r.Names) == 0 {
		t.Fatal("bundled roster is empty")
	}
	for i := 1; i < len(r.Names); i++ {
		if r.Names[i-1] >= r.Names[i] {
			t.Fatalf("names not sorted and unique at %d: %q, %q", i, r.Names[i-1], r.Names[i])
		}
	}
}

func TestSuggest(t *testing.T) {
	r := Roster{Names: []string{"Alucard", "Lancelot", "Layla", "Lylia", "Zilong"}}

	if got := r.Suggest("LA", 25); !reflect.DeepEqual(got, []string{"Lancelot", "Layla"}) {
		t.Errorf("Suggest(LA) = %v", got)
	}
	if got := r.Suggest("", 2); !reflect.DeepEqual(got, []string{"Alucard", "Lancelot"}) {
		t.Errorf("Suggest(\"\", 2) = %v", got)
	}
	if got := r.Suggest("xyz", 25); len(got) != 0 {
		t.Errorf("Suggest(xyz) = %v", got)
	}
	if !r.Contains("Layla") || r.Contains("layla") {
		t.Error("Contains should match exact names")
	}
}

func TestStore(t *testing.T) {
	stats := &fakeStats{list: &mlbb.HeroList{
		Via:    fetch.ViaDirect,
		URL:    "https://stats.example.com/api/hero-list-new/",
		Heroes: []mlbb.HeroRef{{Name: "Layla", ID: 1}},
	}}
	s := NewStore(NewLoader(stats, nil, nil, zap.NewNop()))

	if src, adv := s.Status(); src != "" || adv != "" {
		t.Errorf("Status() before load = %q, %q", src, adv)
	}

	if _, ok := s.Peek(); ok {
		t.Error("Peek() reported a roster before any load")
	}

	ctx := context.Background()
	s.Current(ctx)
	s.Current(ctx)
	if stats.calls != 1 {
		t.Errorf("HeroList calls = %d, want 1", stats.calls)
	}
	if r, ok := s.Peek(); !ok || r.Source != "stats.example.com" {
		t.Errorf("Peek() = %+v, %v", r, ok)
	}

	stats.list, stats.err = nil, errDown
	r := s.Refresh(ctx)
	if r.Advisory != AdvisoryOffline {
		t.Errorf("Refresh advisory = %q", r.Advisory)
	}
	if src, adv := s.Status(); src != LocalSource || adv != string(AdvisoryOffline) {
		t.Errorf("Status() = %q, %q", src, adv)
	}
}

// gatedStats answers each HeroList call with the next scripted step. A step
// with a gate blocks until the gate is closed.
type gatedStats struct {
	mu      sync.Mutex
	steps   []gatedStep
	calls   atomic.Int32
	entered chan struct{}
}

type gatedStep struct {
	gate chan struct{}
	list *mlbb.HeroList
	err  error
}

func (g *gatedStats) HeroList(context.Context) (*mlbb.HeroList, error) {
	n := int(g.calls.Add(1)) - 1
	g.mu.Lock()
	step := g.steps[min(n, len(g.steps)-1)]
	g.mu.Unlock()
	if g.entered != nil {
		g.entered <- struct{}{}
	}
	if step.gate != nil {
		<-step.gate
	}
	return step.list, step.err
}

func (g *gatedStats) HeroListURL() string { return "https://stats.example.com/api/hero-list-new/" }

func liveList() *mlbb.HeroList {
	return &mlbb.HeroList{
		URL:    "https://stats.example.com/api/hero-list-new/",
		Via:    fetch.ViaDirect,
		Heroes: []mlbb.HeroRef{{Name: "Layla", ID: 1}},
	}
}

func TestStoreKeepsNewestLoad(t *testing.T) {
	slow := make(chan struct{})
	stats := &gatedStats{
		entered: make(chan struct{}, 2),
		steps: []gatedStep{
			{gate: slow, err: errDown},
			{list: liveList()},
		},
	}
	s := NewStore(NewLoader(stats, &fakeWiki{err: errDown}, nil, zap.NewNop()))
	ctx := context.Background()

	warmup := make(chan Roster, 1)
	go func() { warmup <- s.Refresh(ctx) }()
	<-stats.entered

	fresh := s.Refresh(ctx)
	<-stats.entered
	if fresh.Advisory != AdvisoryNone {
		t.Fatalf("newer refresh advisory = %q, want none", fresh.Advisory)
	}

	close(slow)
	late := <-warmup

	if _, adv := s.Status(); adv != string(AdvisoryNone) {
		t.Errorf("stored advisory after both loads = %q, want none", adv)
	}
	if late.Advisory != AdvisoryNone {
		t.Errorf("superseded load returned advisory %q, want the newer roster", late.Advisory)
	}
	if got := stats.calls.Load(); got != 2 {
		t.Errorf("HeroList calls = %d, want 2", got)
	}
}

func TestStoreSharesConcurrentFirstLoad(t *testing.T) {
	gate := make(chan struct{})
	stats := &gatedStats{steps: []gatedStep{{gate: gate, list: liveList()}}}
	s := NewStore(NewLoader(stats, nil, nil, zap.NewNop()))

	var wg sync.WaitGroup
	results := make([]Roster, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Current(context.Background())
		}(i)
	}

	// Let every caller reach the in-flight load before it completes.
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	if got := stats.calls.Load(); got != 1 {
		t.Errorf("resolution chains started = %d, want 1", got)
	}
	for i, r := range results {
		if r.Advisory != AdvisoryNone || len(r.Names) != 1 {
			t.Errorf("caller %d got %+v", i, r)
		}
	}
}

// Stats API down everywhere, wiki reachable only through the relay.
func TestLoadEndToEndWikiThroughRelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/relay/") && strings.HasSuffix(r.URL.Path, "/wiki/heroes") {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[{"name":"yu zhong"},{"name":"Tigreal"}]}`))
			return
		}
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	resolver := fetch.New([]fetch.Strategy{
		{Name: "relay", Template: srv.URL + "/relay/{url_noscheme}"},
	}, fetch.WithHTTPClient(srv.Client()))
	cfg := &config.Config{
		StatsBaseURL: srv.URL + "/api",
		RankDays:     7,
		RankTier:     "Mythic",
		WikiURL:      srv.URL + "/wiki/heroes",
	}
	loader := NewLoader(
		mlbb.NewClient(cfg, resolver, nil, zap.NewNop()),
		wiki.NewClient(cfg, resolver, nil, zap.NewNop()),
		nil, zap.NewNop(),
	)

	r := loader.Load(context.Background())
	if !reflect.DeepEqual(r.Names, []string{"Tigreal", "Yu Zhong"}) {
		t.Errorf("Names = %v", r.Names)
	}
	if r.Source != "127.0.0.1 (Wiki)" || r.Advisory != AdvisoryWiki {
		t.Errorf("roster = %+v", r)
	}
}

func TestLoadEndToEndOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	resolver := fetch.New(nil, fetch.WithHTTPClient(srv.Client()))
	cfg := &config.Config{StatsBaseURL: srv.URL, WikiURL: srv.URL + "/wiki"}
	loader := NewLoader(
		mlbb.NewClient(cfg, resolver, nil, zap.NewNop()),
		wiki.NewClient(cfg, resolver, nil, zap.NewNop()),
		nil, zap.NewNop(),
	)

	r := loader.Load(context.Background())
	if r.Source != LocalSource || r.Advisory != AdvisoryOffline {
		t.Errorf("roster = %+v", r)
	}
}
