// Package translator defines the narrow interface the pipeline needs from an
// external machine-translation provider, plus adapters for a few concrete
// services. Any provider that can translate a string between two language
// codes can be plugged in.
package translator

import (
	"context"
)

// Request is one synchronous translation call. SourceLang may be empty or
// "auto" to let the service detect the language itself.
type Request struct {
	Text       string `json:"text"`
	SourceLang string `json:"source_lang"`
	TargetLang string `json:"target_lang"`
}

// Result is the raw service output. DetectedSourceLang is set when the
// service resolved the source language itself; it may be empty.
type Result struct {
	Text               string `json:"text"`
	DetectedSourceLang string `json:"detected_source_lang,omitempty"`
}

// Service is the single capability the pipeline depends on. Adapters own
// their transport concerns (timeouts, credentials); the pipeline treats any
// returned error as a failed call and performs no retries of its own.
type Service interface {
	Name() string
	Translate(ctx context.Context, req Request) (*Result, error)
}
