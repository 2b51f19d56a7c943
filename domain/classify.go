package domain

// DocumentationEntry points at reference documentation for an error category
type DocumentationEntry struct {
	Title       string   `json:"title" yaml:"title"`
	URL         string   `json:"url" yaml:"url"`
	Description string   `json:"description" yaml:"description"`
	Related     []string `json:"related,omitempty" yaml:"related,omitempty"`
}

// Classification is the result of classifying one error message.
// Documentation is nil for the generic fallback category.
type Classification struct {
	Category      string              `json:"category" yaml:"category"`
	Suggestion    string              `json:"suggestion" yaml:"suggestion"`
	Documentation *DocumentationEntry `json:"documentation,omitempty" yaml:"documentation,omitempty"`
}

// ErrorClassifier classifies a free-text error message into a category
// with a fixed suggestion and a documentation pointer. Classification is
// total: unmatched input resolves to a generic category, never an error.
type ErrorClassifier interface {
	Classify(errorText string) Classification
}
