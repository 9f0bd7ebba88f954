package features

import (
	"strings"
	"unicode"

	"movierec/internal/features/pyliteral"
)

const directorJob = "Director"

// Convert returns the name of every element in an encoded list of objects.
// Empty input, parse failures and elements without a string name all yield an
// empty list.
func Convert(encoded string) []string {
	items, ok := parseList(encoded)
	if !ok {
		return []string{}
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		name, ok := nameOf(item)
		if !ok {
			return []string{}
		}
		names = append(names, name)
	}
	return names
}

// FetchDirector returns the names of crew entries whose job is Director.
// Elements that are not objects are skipped.
func FetchDirector(encoded string) []string {
	items, ok := parseList(encoded)
	if !ok {
		return []string{}
	}
	names := []string{}
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if job, _ := obj["job"].(string); job != directorJob {
			continue
		}
		name, ok := obj["name"].(string)
		if !ok {
			return []string{}
		}
		names = append(names, name)
	}
	return names
}

// Collapse strips all whitespace from each name so multi-word names survive
// tokenization as a single term.
func Collapse(names []string) []string {
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, name)
	}
	return out
}

// TokenizeOverview splits free text on whitespace.
func TokenizeOverview(text string) []string {
	return strings.Fields(text)
}

func parseList(encoded string) ([]any, bool) {
	trimmed := strings.TrimSpace(encoded)
	if trimmed == "" || trimmed == "[]" {
		return nil, false
	}
	value, err := pyliteral.Parse(trimmed)
	if err != nil {
		return nil, false
	}
	items, ok := value.([]any)
	return items, ok
}

func nameOf(item any) (string, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := obj["name"].(string)
	return name, ok
}
