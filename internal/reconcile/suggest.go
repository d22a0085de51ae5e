package reconcile

import "strings"

// SuggestionLimit caps the number of debtor suggestions.
const SuggestionLimit = 5

// Suggest returns up to SuggestionLimit summaries whose name contains partial,
// ignoring case. An empty partial suggests nothing.
func Suggest(summaries []*Summary, partial string) []*Summary {
	needle := strings.ToLower(strings.TrimSpace(partial))
	if needle == "" {
		return nil
	}

	var matches []*Summary

	for _, s := range summaries {
		if s == nil || !strings.Contains(strings.ToLower(s.Name), needle) {
			continue
		}

		matches = append(matches, s)
		if len(matches) == SuggestionLimit {
			break
		}
	}

	return matches
}
