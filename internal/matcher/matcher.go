// Package matcher scans free text for occurrences of glossary terms.
//
// Matching is greedy longest-match, left to right: at every position the
// longest term that matches wins, the cursor jumps past it, and shorter
// terms never split a longer one. Matches are case-insensitive and
// boundary-aware, so a term only matches when it is not embedded in a
// larger alphanumeric run and multi-word terms match only as complete
// phrases.
package matcher

import (
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/termweave/termweave/internal/glossary"
)

// Span marks one glossary term occurrence as a half-open byte range
// [Start, End) into the scanned text.
type Span struct {
	Start int
	End   int
	Entry glossary.Entry
}

// Find returns the non-overlapping glossary term occurrences in text,
// sorted by start offset. Entries need not be pre-sorted; Find orders them
// longest-first itself (stable, so earlier entries win ties). Empty text or
// an empty entry set yields nil.
func Find(text string, entries []glossary.Entry) []Span {
	if text == "" || len(entries) == 0 {
		return nil
	}

	sorted := make([]glossary.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i].Term) > utf8.RuneCountInString(sorted[j].Term)
	})

	var spans []Span
	for i := 0; i < len(text); {
		_, size := utf8.DecodeRuneInString(text[i:])

		if !boundaryBefore(text, i) {
			i += size
			continue
		}

		matched := false
		for _, e := range sorted {
			end, ok := matchAt(text, i, e.Term)
			if !ok {
				continue
			}
			spans = append(spans, Span{Start: i, End: end, Entry: e})
			i = end
			matched = true
			break
		}
		if !matched {
			i += size
		}
	}
	return spans
}

// matchAt reports whether term matches case-insensitively at byte offset
// start, returning the end offset of the matched text. The character after
// the match must not continue an alphanumeric run.
func matchAt(text string, start int, term string) (int, bool) {
	if term == "" {
		return 0, false
	}
	end := start
	for _, tr := range term {
		if end >= len(text) {
			return 0, false
		}
		cr, size := utf8.DecodeRuneInString(text[end:])
		if !equalFoldRune(cr, tr) {
			return 0, false
		}
		end += size
	}
	if end < len(text) {
		next, _ := utf8.DecodeRuneInString(text[end:])
		if isWordRune(next) {
			return 0, false
		}
	}
	return end, true
}

// boundaryBefore reports whether byte offset i sits at a word boundary,
// i.e. at the start of text or preceded by a non-alphanumeric rune.
func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	prev, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(prev)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}
