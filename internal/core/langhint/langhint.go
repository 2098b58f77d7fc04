// Package langhint gives a best effort language guess for request diagnostics.
// The classifiers are trained on English text, so a confident non-English hint is worth logging
package langhint

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// minLetters below this the guess is too noisy to report a language
const minLetters = 20

// Hint is the detection result. Lang is an ISO 639-1 code or empty
type Hint struct {
	Script     string  `json:"script,omitempty"`
	Lang       string  `json:"lang,omitempty"`
	Confidence float64 `json:"confidence"`
	Reliable   bool    `json:"reliable"`
}

// Foreign reports whether the hint confidently names a language other than English
func (h Hint) Foreign() bool { return h.Lang != "" && h.Lang != "en" && h.Reliable }

// Detect guesses the script always and the language when there are enough letters
func Detect(s string) Hint {
	letters := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters == 0 {
		return Hint{}
	}

	info := whatlanggo.Detect(s)
	h := Hint{Script: whatlanggo.Scripts[info.Script]}
	if letters < minLetters {
		return h
	}
	h.Lang = info.Lang.Iso6391()
	h.Confidence = info.Confidence
	h.Reliable = info.IsReliable()
	return h
}
