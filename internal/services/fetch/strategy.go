package fetch

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed proxies.yaml
var defaultProxies []byte

// Strategy is a named, pure rewrite from a target URL to the URL fetched.
type Strategy struct {
	Name     string `yaml:"name"`
	Template string `yaml:"template"`
}

type proxyFile struct {
	Proxies []Strategy `yaml:"proxies"`
}

var placeholders = []string{"{url}", "{url_noscheme}", "{url_query}"}

// Rewrite expands the template placeholders for target.
func (s Strategy) Rewrite(target string) string {
	return strings.NewReplacer(
		"{url}", target,
		"{url_noscheme}", stripScheme(target),
		"{url_query}", url.QueryEscape(target),
	).Replace(s.Template)
}

func (s Strategy) validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("proxy without a name")
	}
	if strings.EqualFold(s.Name, ViaDirect) {
		return fmt.Errorf("proxy name %q is reserved", s.Name)
	}
	for _, p := range placeholders {
		if strings.Contains(s.Template, p) {
			return nil
		}
	}
	return fmt.Errorf("proxy %s: template %q has no placeholder", s.Name, s.Template)
}

func stripScheme(target string) string {
	if rest, ok := strings.CutPrefix(target, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(target, "http://"); ok {
		return rest
	}
	return target
}

// DefaultStrategies returns the built-in relay list.
func DefaultStrategies() []Strategy {
	s, err := ParseStrategies(defaultProxies)
	if err != nil {
		panic(fmt.Sprintf("embedded proxies.yaml: %v", err))
	}
	return s
}

// LoadStrategies reads a relay list from path. An empty path selects the
// built-in list.
func LoadStrategies(path string) ([]Strategy, error) {
	if path == "" {
		return DefaultStrategies(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("proxies file: %w", err)
	}
	s, err := ParseStrategies(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseStrategies decodes and validates a YAML relay list.
func ParseStrategies(data []byte) ([]Strategy, error) {
	var f proxyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(f.Proxies))
	for _, s := range f.Proxies {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("duplicate proxy name %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return f.Proxies, nil
}
