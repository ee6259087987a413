package taxonomy

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// tokens folds case, normalizes compatibility forms and splits s into
// alphanumeric tokens.
func tokens(s string) []string {
	folded := cases.Fold().String(norm.NFKC.String(s))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// phrase is a keyword pre-split into tokens.
type phrase []string

func newPhrase(keyword string) phrase {
	return phrase(tokens(keyword))
}

// in reports whether the phrase occurs as a contiguous token run.
func (p phrase) in(words []string) bool {
	if len(p) == 0 || len(p) > len(words) {
		return false
	}
	for i := 0; i+len(p) <= len(words); i++ {
		if p.at(words, i) {
			return true
		}
	}
	return false
}

// prefixOf reports whether words start with the phrase.
func (p phrase) prefixOf(words []string) bool {
	return len(p) > 0 && len(p) <= len(words) && p.at(words, 0)
}

func (p phrase) at(words []string, i int) bool {
	for j, w := range p {
		if words[i+j] != w {
			return false
		}
	}
	return true
}

type phrases []phrase

func newPhrases(keywords []string) phrases {
	out := make(phrases, 0, len(keywords))
	for _, k := range keywords {
		if p := newPhrase(k); len(p) > 0 {
			out = append(out, p)
		}
	}
	return out
}

func (ps phrases) anyIn(words []string) bool {
	for _, p := range ps {
		if p.in(words) {
			return true
		}
	}
	return false
}

func (ps phrases) anyPrefixOf(words []string) bool {
	for _, p := range ps {
		if p.prefixOf(words) {
			return true
		}
	}
	return false
}

const (
	minYear = 1990
	maxYear = 2100
)

// inferYear returns the first plausible four-digit year token, or 0.
func inferYear(words []string) int {
	for _, w := range words {
		if len(w) != 4 {
			continue
		}
		y, err := strconv.Atoi(w)
		if err == nil && y >= minYear && y <= maxYear {
			return y
		}
	}
	return 0
}

var quarterNumbers = map[string]int{
	"1": 1, "2": 2, "3": 3, "4": 4,
	"i": 1, "ii": 2, "iii": 3, "iv": 4,
	"pertama": 1, "kedua": 2, "ketiga": 3, "keempat": 4,
	"first": 1, "second": 2, "third": 3, "fourth": 4,
}

var quarterWords = map[string]bool{
	"kuartal":  true,
	"triwulan": true,
	"quarter":  true,
}

// inferQuarter recognises "Q3", "TW3", "Kuartal III", "Triwulan 2" and
// "third quarter". It returns 0 when no quarter is mentioned.
func inferQuarter(words []string) int {
	for i, w := range words {
		for _, prefix := range []string{"q", "tw"} {
			if strings.HasPrefix(w, prefix) && len(w) == len(prefix)+1 {
				if d := w[len(prefix)]; d >= '1' && d <= '4' {
					return int(d - '0')
				}
			}
		}
		if !quarterWords[w] {
			continue
		}
		if i+1 < len(words) {
			if n, ok := quarterNumbers[words[i+1]]; ok {
				return n
			}
		}
		if i > 0 {
			if n, ok := quarterNumbers[words[i-1]]; ok {
				return n
			}
		}
	}
	return 0
}

// collapseSpaces trims and squeezes internal whitespace runs.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
