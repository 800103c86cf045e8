// Package registry holds the static provider catalogs: which providers exist
// for each generation kind, their default and alternative models, and the
// environment variable carrying each provider's credential. A Registry is
// built once at startup and is read-only afterwards, so it needs no locking.
package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// ErrUnknownProvider is returned by Lookup when the key is not in the catalog.
var ErrUnknownProvider = errors.New("unknown provider")

// Kind distinguishes the two generation catalogs.
type Kind string

const (
	KindText  Kind = "text"
	KindImage Kind = "image"
)

// Entry describes one provider: its key, default model, the alternative
// models the catalog advertises, and the name of the environment variable
// holding its credential. The model list is advisory — adapters pass model
// ids through verbatim, so providers may accept models not listed here.
type Entry struct {
	Key           string   `yaml:"key"`
	DefaultModel  string   `yaml:"default_model"`
	AltModels     []string `yaml:"alt_models"`
	CredentialEnv string   `yaml:"credential_env"`
}

// Models returns the full advertised model set for the entry: the default
// model followed by the alternatives, deduplicated, default first.
func (e Entry) Models() []string {
	return lo.Uniq(append([]string{e.DefaultModel}, e.AltModels...))
}

// Registry is an ordered, immutable provider catalog for a single Kind.
type Registry struct {
	kind    Kind
	entries []Entry
	index   map[string]int
}

// New builds a Registry from entries, validating that every entry has a key,
// a default model, and a credential name, and that keys are unique. Entry
// order is preserved: it defines dispatch fan-out order.
func New(kind Kind, entries ...Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("registry for kind %q has no entries", kind)
	}

	index := make(map[string]int, len(entries))
	for i, e := range entries {
		key := Normalize(e.Key)
		if key == "" {
			return nil, fmt.Errorf("entry %d: provider key is empty", i)
		}
		if e.DefaultModel == "" {
			return nil, fmt.Errorf("provider %q: default model is empty", key)
		}
		if e.CredentialEnv == "" {
			return nil, fmt.Errorf("provider %q: credential env name is empty", key)
		}
		if _, exists := index[key]; exists {
			return nil, fmt.Errorf("provider %q declared twice", key)
		}
		entries[i].Key = key
		index[key] = i
	}

	return &Registry{kind: kind, entries: entries, index: index}, nil
}

// MustNew is New for the built-in catalogs, panicking on invalid entries.
func MustNew(kind Kind, entries ...Entry) *Registry {
	r, err := New(kind, entries...)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the generation kind this catalog serves.
func (r *Registry) Kind() Kind {
	return r.kind
}

// Lookup resolves a provider key (case-insensitive, trimmed) to its Entry.
// It wraps ErrUnknownProvider so callers can test with errors.Is.
func (r *Registry) Lookup(key string) (Entry, error) {
	i, ok := r.index[Normalize(key)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownProvider, key, strings.Join(r.Keys(), ", "))
	}
	return r.entries[i], nil
}

// Entries returns the catalog in declaration order. The returned slice is a
// copy; the Registry itself stays immutable.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Keys returns the provider keys in declaration order.
func (r *Registry) Keys() []string {
	return lo.Map(r.entries, func(e Entry, _ int) string { return e.Key })
}

// Normalize canonicalizes a provider key for lookups.
func Normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
