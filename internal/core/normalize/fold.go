package normalize

import (
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var foldPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,                          // split base letters from their accents
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			norm.NFC,
		)
	},
}

// foldMarks maps "café" to "cafe" and compatibility forms such as ligatures to plain letters
func foldMarks(s string) string {
	tr := foldPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	foldPool.Put(tr)
	if err != nil {
		return s
	}
	return out
}
