// Package credentials resolves provider credentials from an immutable
// configuration snapshot. Capturing the environment once at startup keeps
// concurrent dispatches (and parallel tests) from racing on process-wide
// mutable state.
package credentials

import (
	"os"
	"strings"

	"github.com/promptcast/promptcast/registry"
)

// Snapshot is a read-only view of named credentials. The zero value is a
// valid snapshot with no credentials.
type Snapshot map[string]string

// FromEnv captures the current process environment into a Snapshot.
func FromEnv() Snapshot {
	snap := make(Snapshot)
	for _, kv := range os.Environ() {
		if key, value, ok := strings.Cut(kv, "="); ok {
			snap[key] = value
		}
	}
	return snap
}

// Has reports whether the credential required by entry is present and
// non-empty. Absence is a normal outcome, never an error.
func (s Snapshot) Has(entry registry.Entry) bool {
	return strings.TrimSpace(s[entry.CredentialEnv]) != ""
}

// Get returns the named credential, or the empty string when absent.
func (s Snapshot) Get(name string) string {
	return s[name]
}
