// Package analyzer implements the heuristic metric extractors and the
// rule evaluation logic behind quality analysis.
//
// Extraction is a best-effort lexical scan over raw file text. Function
// spans are tracked by indentation deltas rather than a syntactic parse,
// so the produced facts are approximate by design and tolerate invalid
// input by degrading instead of failing.
package analyzer

import (
	"fmt"
	"strings"

	"github.com/atena-tools/atena/domain"
)

// Registry maps file extensions to language analyzers. Lookup is by
// extension, case-normalized. At most one analyzer per extension.
type Registry struct {
	byExt map[string]domain.Analyzer
}

// NewRegistry creates an empty analyzer registry
func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]domain.Analyzer),
	}
}

// DefaultRegistry returns a registry with all built-in analyzers registered
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Only error path is a duplicate extension, impossible for built-ins
	_ = r.Register(NewPythonAnalyzer())
	return r
}

// Register adds an analyzer for every extension it claims.
// Registering a second analyzer for an already claimed extension fails.
func (r *Registry) Register(a domain.Analyzer) error {
	for _, ext := range a.Extensions() {
		ext = normalizeExt(ext)
		if existing, ok := r.byExt[ext]; ok {
			return fmt.Errorf("extension %s already registered to %s analyzer", ext, existing.Language())
		}
		r.byExt[ext] = a
	}
	return nil
}

// Lookup returns the analyzer registered for the given extension, or
// false if the extension is unsupported
func (r *Registry) Lookup(ext string) (domain.Analyzer, bool) {
	a, ok := r.byExt[normalizeExt(ext)]
	return a, ok
}

// Extensions returns all registered extensions
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
