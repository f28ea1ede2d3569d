package scraper

import (
	"fmt"
	"sort"
	"strings"
)

// Factory builds a ready-to-use Scraper from options.
type Factory func(opts Options) (Scraper, error)

var registry = map[string]Factory{}

func Register(name string, f Factory) {
	registry[strings.ToLower(name)] = f
}

// New builds the scraper registered under name.
func New(name string, opts Options) (Scraper, error) {
	f, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown site: %s (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f(opts)
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
