// ABOUTME: Opaque content identity for a registry's current declarations, for logs and cache keys
// ABOUTME: Not a wire-format version tag — schema evolution/versioning is explicitly out of scope
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the registry's current struct and enum names (sorted,
// so the result does not depend on Go map iteration order) into a short
// hex digest. Two registries with the same declared names at fingerprinting
// time hash identically regardless of declaration order; it says nothing
// about field-level compatibility, so it is useful as a log/debug identity,
// not a substitute for schema versioning.
func (r *Registry) Fingerprint() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.structs)+len(r.enums))
	for name := range r.structs {
		names = append(names, "struct:"+name)
	}
	for name := range r.enums {
		names = append(names, "enum:"+name)
	}
	sort.Strings(names)

	h := xxhash.New()
	_, _ = h.Write([]byte(strings.Join(names, "\n")))
	return fmt.Sprintf("%016x", h.Sum64())
}
