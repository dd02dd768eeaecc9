package keyword

import (
	"errors"
	"strings"
)

// Keyword is a categorization tag for offers. Value is the unique key,
// Label the display form shown to users.
type Keyword struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// New builds a keyword from a user-entered label. The value is the
// lowercased, trimmed label.
func New(label string) (Keyword, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return Keyword{}, errors.New("keyword label cannot be empty")
	}
	return Keyword{
		Value: strings.ToLower(trimmed),
		Label: trimmed,
	}, nil
}

// Dedupe returns the keywords with duplicate values removed, keeping the
// first occurrence of each value.
func Dedupe(keywords []Keyword) []Keyword {
	seen := make(map[string]bool, len(keywords))
	result := make([]Keyword, 0, len(keywords))
	for _, k := range keywords {
		if seen[k.Value] {
			continue
		}
		seen[k.Value] = true
		result = append(result, k)
	}
	return result
}

// Values returns the unique keys of the given keywords, in order.
func Values(keywords []Keyword) []string {
	values := make([]string, 0, len(keywords))
	for _, k := range keywords {
		values = append(values, k.Value)
	}
	return values
}
