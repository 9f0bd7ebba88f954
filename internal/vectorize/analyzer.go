package vectorize

import (
	_ "embed"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed stop_words_en.txt
var stopWordsText string

var englishStopWords = loadStopWords(stopWordsText)

func loadStopWords(text string) map[string]struct{} {
	words := strings.Fields(text)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether word is in the English stop list.
func IsStopWord(word string) bool {
	_, ok := englishStopWords[word]
	return ok
}

// Analyze lowercases text and returns its terms: maximal runs of at least two
// word characters (letters, numbers or underscore) that are not stop words.
func Analyze(text string) []string {
	lower := cases.Lower(language.Und).String(text)
	var (
		terms []string
		start = -1
		runes int
	)
	flush := func(end int) {
		if start >= 0 && runes >= 2 {
			term := lower[start:end]
			if !IsStopWord(term) {
				terms = append(terms, term)
			}
		}
		start, runes = -1, 0
	}
	for i, r := range lower {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(lower))
	return terms
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.No, r)
}
