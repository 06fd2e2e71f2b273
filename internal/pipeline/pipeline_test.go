package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/termweave/termweave/internal/glossary"
	"github.com/termweave/termweave/internal/pipeline"
	"github.com/termweave/termweave/internal/placeholder"
	"github.com/termweave/termweave/internal/translator"
)

// echoService returns the request text unchanged, optionally rewritten by
// transform, and records every request it receives.
type echoService struct {
	transform func(string) string
	detected  string
	err       error
	requests  []translator.Request
}

func (s *echoService) Name() string { return "echo" }

func (s *echoService) Translate(ctx context.Context, req translator.Request) (*translator.Result, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	text := req.Text
	if s.transform != nil {
		text = s.transform(text)
	}
	return &translator.Result{Text: text, DetectedSourceLang: s.detected}, nil
}

type fixedDetector struct {
	code string
}

func (d fixedDetector) DetectISO(text string) (string, bool) {
	return d.code, d.code != ""
}

func twiIndex() *glossary.Index {
	idx := glossary.NewIndex()
	idx.Add(glossary.Entry{ID: "1", Term: "abattoir", Translation: "aboa kum fie", Language: "twi", Domain: "agric"})
	idx.Add(glossary.Entry{ID: "2", Term: "acaricide", Translation: "nkramamoadi kum aduro", Language: "twi", Domain: "agric"})
	return idx
}

func TestTranslate_RoundTrip(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "The abattoir is closed", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}

	// The text sent to the service must contain exactly one placeholder and
	// no trace of the source term.
	if len(svc.requests) != 1 {
		t.Fatalf("expected 1 service call, got %d", len(svc.requests))
	}
	sent := svc.requests[0].Text
	if strings.Contains(sent, "abattoir") {
		t.Errorf("term leaked to the service: %q", sent)
	}
	if n := strings.Count(sent, placeholder.Token(0)); n != 1 {
		t.Errorf("expected exactly one placeholder in %q, found %d", sent, n)
	}

	if !strings.Contains(result.Text, "aboa kum fie") {
		t.Errorf("glossary translation not restored: %q", result.Text)
	}
	if len(result.TermsUsed) != 1 || result.TermsUsed[0] != "abattoir" {
		t.Errorf("terms used = %v, want [abattoir]", result.TermsUsed)
	}
	if result.OriginalText != "The abattoir is closed" {
		t.Errorf("original text = %q", result.OriginalText)
	}
	if result.SourceLang != "en" || result.TargetLang != "twi" {
		t.Errorf("languages = %s→%s, want en→twi", result.SourceLang, result.TargetLang)
	}
}

func TestTranslate_SurroundingWordsTranslated(t *testing.T) {
	svc := &echoService{transform: func(text string) string {
		// A service that translates everything around the token.
		return strings.ReplaceAll(text, "The", "Le") + "!"
	}}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "The abattoir", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != "Le aboa kum fie!" {
		t.Errorf("result text = %q", result.Text)
	}
}

func TestTranslate_CaseInsensitiveTerms(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "The ABATTOIR uses Acaricide", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(result.TermsUsed) != 2 {
		t.Errorf("terms used = %v, want both terms", result.TermsUsed)
	}
}

func TestTranslate_UnknownDomainPassThrough(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc)

	text := "The abattoir is closed"
	result, err := tr.Translate(context.Background(), text, pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "nonexistent",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.Text != text {
		t.Errorf("pass-through text = %q, want %q", result.Text, text)
	}
	if len(result.TermsUsed) != 0 {
		t.Errorf("terms used = %v, want none", result.TermsUsed)
	}
	if svc.requests[0].Text != text {
		t.Errorf("service should receive the untouched text, got %q", svc.requests[0].Text)
	}
}

func TestTranslate_UnknownLanguagePassThrough(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "The abattoir is closed", pipeline.Options{
		SourceLang: "en",
		TargetLang: "fr",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(result.TermsUsed) != 0 {
		t.Errorf("terms used = %v, want none", result.TermsUsed)
	}
}

func TestTranslate_MissingTarget(t *testing.T) {
	tr := pipeline.New(twiIndex(), &echoService{})

	if _, err := tr.Translate(context.Background(), "text", pipeline.Options{}); err == nil {
		t.Error("expected error for missing target language")
	}
}

func TestTranslate_ServiceFailure(t *testing.T) {
	svcErr := errors.New("quota exceeded")
	tr := pipeline.New(twiIndex(), &echoService{err: svcErr})

	result, err := tr.Translate(context.Background(), "The abattoir", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
	})
	if err == nil {
		t.Fatal("expected error from failing service")
	}
	if !errors.Is(err, svcErr) {
		t.Errorf("expected wrapped service error, got %v", err)
	}
	if result != nil {
		t.Errorf("failed call must not return a partial result, got %+v", result)
	}
}

func TestTranslate_DroppedPlaceholder(t *testing.T) {
	svc := &echoService{transform: func(text string) string {
		return strings.ReplaceAll(text, placeholder.Token(1), "")
	}}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "abattoir then acaricide", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(result.TermsUsed) != 1 || result.TermsUsed[0] != "abattoir" {
		t.Errorf("terms used = %v, want [abattoir]", result.TermsUsed)
	}
	if !strings.Contains(result.Text, "aboa kum fie") {
		t.Errorf("surviving placeholder not restored: %q", result.Text)
	}
}

func TestTranslate_DetectorResolvesSource(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc, pipeline.WithDetector(fixedDetector{code: "en"}))

	result, err := tr.Translate(context.Background(), "The abattoir", pipeline.Options{
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.SourceLang != "en" {
		t.Errorf("source lang = %q, want detected en", result.SourceLang)
	}
	if svc.requests[0].SourceLang != "en" {
		t.Errorf("service should receive the detected source, got %q", svc.requests[0].SourceLang)
	}
}

func TestTranslate_ServiceDetectionFallback(t *testing.T) {
	svc := &echoService{detected: "fr"}
	tr := pipeline.New(twiIndex(), svc)

	result, err := tr.Translate(context.Background(), "Le texte", pipeline.Options{
		TargetLang: "twi",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if result.SourceLang != "fr" {
		t.Errorf("source lang = %q, want service-detected fr", result.SourceLang)
	}
}

func TestTranslateBatch(t *testing.T) {
	svc := &echoService{}
	tr := pipeline.New(twiIndex(), svc)

	texts := []string{"The abattoir is new", "Use acaricide carefully"}
	results, err := tr.TranslateBatch(context.Background(), texts, pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
		Domain:     "agric",
	})
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].OriginalText != texts[0] || results[1].OriginalText != texts[1] {
		t.Errorf("results out of order")
	}

	// Placeholder numbering restarts per item: both encoded texts carry ⟦0⟧.
	for i, req := range svc.requests {
		if !strings.Contains(req.Text, placeholder.Token(0)) {
			t.Errorf("item %d: expected numbering to restart, sent %q", i, req.Text)
		}
	}

	if results[0].TermsUsed[0] != "abattoir" || results[1].TermsUsed[0] != "acaricide" {
		t.Errorf("terms used = %v / %v", results[0].TermsUsed, results[1].TermsUsed)
	}
}

func TestTranslateBatch_FailureAborts(t *testing.T) {
	svc := &echoService{err: errors.New("down")}
	tr := pipeline.New(twiIndex(), svc)

	if _, err := tr.TranslateBatch(context.Background(), []string{"a", "b"}, pipeline.Options{
		TargetLang: "twi",
	}); err == nil {
		t.Error("expected batch error when the service fails")
	}
}

func TestTranslate_AllDomainsWhenDomainOmitted(t *testing.T) {
	idx := twiIndex()
	idx.Add(glossary.Entry{ID: "10", Term: "molecule", Translation: "molecule-twi", Language: "twi", Domain: "science"})
	svc := &echoService{}
	tr := pipeline.New(idx, svc)

	result, err := tr.Translate(context.Background(), "The abattoir holds a molecule", pipeline.Options{
		SourceLang: "en",
		TargetLang: "twi",
	})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if len(result.TermsUsed) != 2 {
		t.Errorf("expected terms from both domains, got %v", result.TermsUsed)
	}
}
