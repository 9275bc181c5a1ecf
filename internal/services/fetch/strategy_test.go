package fetch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRewrites(t *testing.T) {
	target := "https://mlbb-proxy.tonycelestino.workers.dev/stats/hero-list-new/"
	want := map[string]string{
		"isomorphic-git": "https://cors.isomorphic-git.org/https://mlbb-proxy.tonycelestino.workers.dev/stats/hero-list-new/",
		"jina-http":      "https://r.jina.ai/http://mlbb-proxy.tonycelestino.workers.dev/stats/hero-list-new/",
		"jina-https":     "https://r.jina.ai/https://mlbb-proxy.tonycelestino.workers.dev/stats/hero-list-new/",
		"allorigins":     "https://api.allorigins.win/raw?url=https%3A%2F%2Fmlbb-proxy.tonycelestino.workers.dev%2Fstats%2Fhero-list-new%2F",
	}

	strategies := DefaultStrategies()
	if len(strategies) != len(want) {
		t.Fatalf("got %d default strategies, want %d", len(strategies), len(want))
	}
	for _, s := range strategies {
		if got := s.Rewrite(target); got != want[s.Name] {
			t.Errorf("%s.Rewrite() = %s, want %s", s.Name, got, want[s.Name])
		}
	}
}

func TestStripSchemeHTTP(t *testing.T) {
	s := Strategy{Name: "x", Template: "https://relay/{url_noscheme}"}
	if got := s.Rewrite("http://host/a?b=1"); got != "https://relay/host/a?b=1" {
		t.Errorf("Rewrite() = %s", got)
	}
}

func TestParseStrategiesErrors(t *testing.T) {
	cases := map[string]string{
		"no name":        "proxies:\n  - template: \"https://x/{url}\"\n",
		"no placeholder": "proxies:\n  - name: a\n    template: \"https://x/\"\n",
		"reserved":       "proxies:\n  - name: direct\n    template: \"https://x/{url}\"\n",
		"duplicate":      "proxies:\n  - name: a\n    template: \"https://x/{url}\"\n  - name: a\n    template: \"https://y/{url}\"\n",
		"bad yaml":       "proxies: [",
	}
	for name, doc := range cases {
		if _, err := ParseStrategies([]byte(doc)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoadStrategiesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxies.yaml")
	doc := "proxies:\n  - name: only\n    template: \"https://relay.example/{url_query}\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadStrategies(path)
	if err != nil {
		t.Fatalf("LoadStrategies() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "only" {
		t.Errorf("got %+v", got)
	}

	if _, err := LoadStrategies(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file did not fail")
	}
	if def, err := LoadStrategies(""); err != nil || len(def) != 4 {
		t.Errorf("LoadStrategies(\"\") = %d strategies, %v", len(def), err)
	}
}
