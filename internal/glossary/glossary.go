// Package glossary holds the in-memory terminology index used to pin
// domain-specific terms to known-correct translations. Entries are loaded
// once (see LoadDir), after which the index is read-only and safe for
// concurrent use by any number of translation calls.
package glossary

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Entry is a single glossary row: a source term with its fixed translation,
// scoped to a target language and a topical domain.
type Entry struct {
	ID          string
	Term        string
	Translation string
	Language    string
	Domain      string
}

// Index maps (language, domain) to ordered glossary entries. Ordering is
// longest-term-first with load order as the tie break, which is the order
// the matcher needs for greedy longest-match scanning.
type Index struct {
	languages []string
	domains   map[string][]string
	entries   map[string]map[string][]Entry

	mu    sync.RWMutex
	cache map[string][]Entry
}

// NewIndex returns an empty index. Tests and callers that do not load from
// CSV files can populate it directly with Add.
func NewIndex() *Index {
	return &Index{
		domains: make(map[string][]string),
		entries: make(map[string]map[string][]Entry),
		cache:   make(map[string][]Entry),
	}
}

// Add registers an entry under its language and domain. Entries with an empty
// term or translation are ignored. Load order is preserved; if the same term
// is added twice within a scope, the first one wins during matching because
// it is tried first among equal-length terms.
func (x *Index) Add(e Entry) {
	if e.Term == "" || e.Translation == "" {
		return
	}
	e.Term = norm.NFC.String(strings.TrimSpace(e.Term))
	e.Translation = norm.NFC.String(strings.TrimSpace(e.Translation))
	e.Language = strings.ToLower(strings.TrimSpace(e.Language))
	e.Domain = strings.ToLower(strings.TrimSpace(e.Domain))
	if e.Term == "" || e.Translation == "" || e.Language == "" {
		return
	}

	byDomain, ok := x.entries[e.Language]
	if !ok {
		byDomain = make(map[string][]Entry)
		x.entries[e.Language] = byDomain
		x.languages = append(x.languages, e.Language)
	}
	if _, ok := byDomain[e.Domain]; !ok {
		x.domains[e.Language] = append(x.domains[e.Language], e.Domain)
	}
	byDomain[e.Domain] = append(byDomain[e.Domain], e)

	x.mu.Lock()
	x.cache = make(map[string][]Entry)
	x.mu.Unlock()
}

// EntriesFor returns the glossary entries for a language, ordered
// longest-term-first. An empty domain returns the union across all domains
// registered for the language, concatenated in domain registration order
// before the ordering is re-applied. Unknown language or domain yields an
// empty slice — translation then degrades to pass-through.
//
// The returned slice is shared and must not be modified.
func (x *Index) EntriesFor(language, domain string) []Entry {
	language = strings.ToLower(language)
	domain = strings.ToLower(domain)
	key := language + "\x00" + domain

	x.mu.RLock()
	cached, ok := x.cache[key]
	x.mu.RUnlock()
	if ok {
		return cached
	}

	byDomain := x.entries[language]
	var result []Entry
	if domain != "" {
		result = append(result, byDomain[domain]...)
	} else {
		for _, d := range x.domains[language] {
			result = append(result, byDomain[d]...)
		}
	}
	sortLongestFirst(result)

	x.mu.Lock()
	x.cache[key] = result
	x.mu.Unlock()
	return result
}

// Languages returns all languages in registration order.
func (x *Index) Languages() []string {
	out := make([]string, len(x.languages))
	copy(out, x.languages)
	return out
}

// Domains returns the domains registered for a language, in registration
// order. An empty language returns the union of domains across all
// languages, deduplicated.
func (x *Index) Domains(language string) []string {
	if language != "" {
		ds := x.domains[strings.ToLower(language)]
		out := make([]string, len(ds))
		copy(out, ds)
		return out
	}

	seen := make(map[string]bool)
	var out []string
	for _, lang := range x.languages {
		for _, d := range x.domains[lang] {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// Len reports the total number of entries across all languages and domains.
func (x *Index) Len() int {
	n := 0
	for _, byDomain := range x.entries {
		for _, es := range byDomain {
			n += len(es)
		}
	}
	return n
}

// sortLongestFirst orders entries by descending term length in runes.
// The sort is stable so load order breaks ties.
func sortLongestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return utf8.RuneCountInString(entries[i].Term) > utf8.RuneCountInString(entries[j].Term)
	})
}
