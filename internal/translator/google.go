package translator

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService translates via the Google Cloud Translation API.
type GoogleService struct {
	credentials string
}

// NewGoogleService returns a Google adapter. credentials is an optional path
// to a service-account JSON file; when empty, application default
// credentials are used.
func NewGoogleService(credentials string) *GoogleService {
	return &GoogleService{credentials: credentials}
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, req Request) (*Result, error) {
	targetTag, err := language.Parse(req.TargetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", req.TargetLang, err)
	}

	var opts []option.ClientOption
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	var translations []translate.Translation
	if req.SourceLang == "" || req.SourceLang == "auto" {
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, nil)
	} else {
		sourceTag, parseErr := language.Parse(req.SourceLang)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid source language %q: %w", req.SourceLang, parseErr)
		}
		translations, err = client.Translate(ctx, []string{req.Text}, targetTag, &translate.Options{
			Source: sourceTag,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return nil, fmt.Errorf("no translation returned")
	}

	result := &Result{Text: translations[0].Text}
	if translations[0].Source != language.Und {
		result.DetectedSourceLang = translations[0].Source.String()
	}
	return result, nil
}
