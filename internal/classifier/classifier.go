// Package classifier maps free-text error messages to error categories
// with fixed suggestions and documentation pointers.
package classifier

import (
	"strings"

	"github.com/atena-tools/atena/domain"
)

// Entry describes one error category: the keywords that select it, the
// suggestion to return, and the documentation to point at. Suggest, when
// set, derives a message-specific suggestion from the error text.
type Entry struct {
	Category   string
	Keywords   []string
	Suggestion string
	Suggest    func(errorText string) string
	Doc        *domain.DocumentationEntry
}

// Classifier classifies error text against an ordered entry table.
// The table is fixed at construction; classification is a pure function
// of the input text and the table.
type Classifier struct {
	entries  []Entry
	fallback domain.Classification
}

// New creates a classifier over the given ordered table. Matching
// iterates entries in order and the first keyword hit wins.
func New(entries []Entry) *Classifier {
	return &Classifier{
		entries: entries,
		fallback: domain.Classification{
			Category:   CategoryUnknown,
			Suggestion: "Read the full error message and traceback carefully; the last line usually names the failing operation.",
		},
	}
}

// NewDefault creates a classifier with the built-in category table
func NewDefault() *Classifier {
	return New(DefaultEntries())
}

// Classify returns the first matching category for the error text, or
// the generic fallback when nothing matches. It never fails.
func (c *Classifier) Classify(errorText string) domain.Classification {
	lowered := strings.ToLower(errorText)

	for _, entry := range c.entries {
		for _, keyword := range entry.Keywords {
			if !strings.Contains(lowered, strings.ToLower(keyword)) {
				continue
			}
			suggestion := entry.Suggestion
			if entry.Suggest != nil {
				if s := entry.Suggest(errorText); s != "" {
					suggestion = s
				}
			}
			return domain.Classification{
				Category:      entry.Category,
				Suggestion:    suggestion,
				Documentation: entry.Doc,
			}
		}
	}

	return c.fallback
}
