// Package placeholder shields matched glossary terms during translation by
// replacing them with numbered markers (⟦0⟧, ⟦1⟧, …) that carry no
// natural-language characters, so an external translator passes them through
// untouched. After translation, Decode substitutes each marker with the
// term's glossary translation.
package placeholder

import (
	"fmt"
	"strings"

	"github.com/termweave/termweave/internal/matcher"
)

// Pair records one issued marker and the matched glossary occurrence it
// stands for.
type Pair struct {
	Token string
	Span  matcher.Span
}

// Mapping is the ordered marker→term table for one translation call. The
// pair order is the order the markers appear in the encoded text. A Mapping
// is call-scoped: build it in Encode, consume it in Decode, discard it.
type Mapping []Pair

// Token returns the marker for sequence number n. The mathematical white
// brackets never occur in ordinary prose and contain nothing a translator
// would transliterate or reorder.
func Token(n int) string {
	return fmt.Sprintf("⟦%d⟧", n)
}

// Encode replaces each matched span with a sequentially numbered marker and
// returns the rewritten text together with the mapping needed to decode it.
// Spans must be sorted by start offset and non-overlapping, which is what
// matcher.Find produces. Text without matches is returned unchanged with a
// nil mapping.
func Encode(text string, spans []matcher.Span) (string, Mapping) {
	if len(spans) == 0 {
		return text, nil
	}

	var b strings.Builder
	var m Mapping
	last := 0
	for i, sp := range spans {
		tok := Token(i)
		b.WriteString(text[last:sp.Start])
		b.WriteString(tok)
		m = append(m, Pair{Token: tok, Span: sp})
		last = sp.End
	}
	b.WriteString(text[last:])
	return b.String(), m
}

// Decode substitutes every marker from the mapping that survived translation
// with its glossary translation and returns the final text plus the distinct
// source terms that were restored, in order of first restoration.
//
// The external translator is allowed to drop, duplicate, or reorder markers:
// a dropped marker means its term is simply absent from the result and from
// the returned terms; duplicated markers are all replaced. Markers with
// indices the mapping never issued are left as-is. Decoding an
// already-decoded text is a no-op.
func Decode(translated string, m Mapping) (string, []string) {
	var used []string
	seen := make(map[string]bool)

	for _, p := range m {
		if !strings.Contains(translated, p.Token) {
			continue
		}
		translated = strings.ReplaceAll(translated, p.Token, p.Span.Entry.Translation)
		term := p.Span.Entry.Term
		if !seen[term] {
			seen[term] = true
			used = append(used, term)
		}
	}
	return translated, used
}

// Missing returns the indices of mapping entries whose markers do not appear
// in text. Useful for diagnosing a translator that mangles markers.
func Missing(text string, m Mapping) []int {
	var missing []int
	for i, p := range m {
		if !strings.Contains(text, p.Token) {
			missing = append(missing, i)
		}
	}
	return missing
}
