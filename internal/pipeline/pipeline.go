// Package pipeline orchestrates a glossary-preserving translation call:
// glossary lookup → term matching → placeholder encoding → external
// translation → placeholder decoding.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/termweave/termweave/internal/glossary"
	"github.com/termweave/termweave/internal/matcher"
	"github.com/termweave/termweave/internal/placeholder"
	"github.com/termweave/termweave/internal/translator"
)

// LanguageDetector resolves the source language of a text. The lingua-go
// backed detector in internal/detector satisfies it.
type LanguageDetector interface {
	DetectISO(text string) (string, bool)
}

// Options selects the languages and glossary scope for one call.
// TargetLang is required. An empty or "auto" SourceLang is resolved by the
// detector when one is configured, otherwise by the service. An empty
// Domain uses every domain registered for the target language.
type Options struct {
	SourceLang string
	TargetLang string
	Domain     string
}

// Result is the outcome of one translation call. Text is the translated
// text with glossary translations restored; TermsUsed lists the distinct
// source terms whose placeholders survived the external translation, in
// order of appearance.
type Result struct {
	Text         string   `json:"text"`
	OriginalText string   `json:"original_text"`
	SourceLang   string   `json:"source_lang"`
	TargetLang   string   `json:"target_lang"`
	TermsUsed    []string `json:"terms_used"`
}

// Translator runs the pipeline against one glossary index and one external
// service. It holds no per-call state, so a single Translator is safe for
// concurrent use.
type Translator struct {
	index *glossary.Index
	svc   translator.Service
	det   LanguageDetector
}

// Option configures a Translator.
type Option func(*Translator)

// WithDetector sets a local language detector, consulted before the service
// when the source language is omitted.
func WithDetector(d LanguageDetector) Option {
	return func(t *Translator) {
		t.det = d
	}
}

func New(index *glossary.Index, svc translator.Service, opts ...Option) *Translator {
	t := &Translator{index: index, svc: svc}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate runs one glossary-preserving translation. An unknown target
// language or domain is not an error: the call degrades to a plain
// pass-through translation with no terms used. A service failure is
// returned as an error and never yields a half-encoded result.
func (t *Translator) Translate(ctx context.Context, text string, opts Options) (*Result, error) {
	if opts.TargetLang == "" {
		return nil, fmt.Errorf("target language is required")
	}

	src := opts.SourceLang
	if (src == "" || src == "auto") && t.det != nil {
		if code, ok := t.det.DetectISO(text); ok {
			src = code
		}
	}

	// Glossary terms are NFC-normalized on load; match against the same form.
	normalized := norm.NFC.String(text)
	entries := t.index.EntriesFor(opts.TargetLang, opts.Domain)
	spans := matcher.Find(normalized, entries)
	encoded, mapping := placeholder.Encode(normalized, spans)

	res, err := t.svc.Translate(ctx, translator.Request{
		Text:       encoded,
		SourceLang: src,
		TargetLang: opts.TargetLang,
	})
	if err != nil {
		return nil, fmt.Errorf("translation service %s: %w", t.svc.Name(), err)
	}

	final, used := placeholder.Decode(res.Text, mapping)

	if (src == "" || src == "auto") && res.DetectedSourceLang != "" {
		src = res.DetectedSourceLang
	}

	return &Result{
		Text:         final,
		OriginalText: text,
		SourceLang:   src,
		TargetLang:   opts.TargetLang,
		TermsUsed:    used,
	}, nil
}

// TranslateBatch translates texts independently and returns results in the
// same order. Placeholder numbering restarts for every item. The first
// failing item aborts the batch.
func (t *Translator) TranslateBatch(ctx context.Context, texts []string, opts Options) ([]*Result, error) {
	results := make([]*Result, 0, len(texts))
	for i, text := range texts {
		r, err := t.Translate(ctx, text, opts)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		results = append(results, r)
	}
	return results, nil
}
