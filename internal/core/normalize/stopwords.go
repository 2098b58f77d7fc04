package normalize

import (
	_ "embed"
	"sort"
	"strings"
)

//go:embed stopwords_en.txt
var stopwordsEN string

var stopSet = func() map[string]struct{} {
	m := make(map[string]struct{}, 200)
	for _, w := range strings.Fields(stopwordsEN) {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopword reports whether w is in the English stopword list. w must already be lowercase
func IsStopword(w string) bool {
	_, ok := stopSet[w]
	return ok
}

// Stopwords returns the English stopword list sorted
func Stopwords() []string {
	out := make([]string, 0, len(stopSet))
	for w := range stopSet {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
