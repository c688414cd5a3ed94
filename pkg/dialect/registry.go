package dialect

import (
	"sort"
	"strings"
	"sync"

	"github.com/sqlgate-io/sqlgate/pkg/token"
)

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]*Dialect)
)

// Get returns a dialect by name.
func Get(name string) (*Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[strings.ToLower(name)]
	return d, ok
}

// Register registers a dialect in the global registry and its extension
// keywords with the token package.
// Called from init(); dialects are immutable after registration.
func Register(d *Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[strings.ToLower(d.Name)] = d
	for _, kw := range d.Keywords {
		if _, ok := token.LookupDynamicKeyword(kw); !ok {
			token.Register(kw)
		}
	}
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustGet returns a dialect by name, falling back to ANSI for unknown names.
func MustGet(name string) *Dialect {
	if d, ok := Get(name); ok {
		return d
	}
	return ANSI
}
