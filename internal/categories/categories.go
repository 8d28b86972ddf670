// Package categories serves the static category list resource. It is a
// read-only collaborator of the gateway and never touches the
// transactional store.
package categories

import (
	"encoding/json"
	"log/slog"
	"os"
	"sync"
)

// fallback is served whenever the configured file is absent or
// unreadable.
var fallback = []string{
	"Food",
	"Transport",
	"Housing",
	"Utilities",
	"Health",
	"Entertainment",
	"Travel",
	"Other",
}

// Source reads a JSON array of category names from a file once and
// caches the result for the process lifetime.
type Source struct {
	path string
	once sync.Once
	list []string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

// Names returns the category list. The first call loads the file; later
// calls return the cached copy.
func (s *Source) Names() []string {
	s.once.Do(func() {
		s.list = load(s.path)
	})
	out := make([]string, len(s.list))
	copy(out, s.list)
	return out
}

func load(path string) []string {
	if path == "" {
		return fallback
	}
	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Categories file unavailable, using fallback list", "path", path, "error", err)
		return fallback
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		slog.Warn("Categories file malformed, using fallback list", "path", path, "error", err)
		return fallback
	}
	if len(names) == 0 {
		return fallback
	}
	return names
}
