package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// LibreTranslateService translates via a LibreTranslate server (self-hosted
// or the public instance). It supports source-language auto-detection.
type LibreTranslateService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewLibreTranslateService returns a LibreTranslate adapter for the server
// at baseURL, e.g. "http://localhost:5000". apiKey is optional.
func NewLibreTranslateService(baseURL, apiKey string) *LibreTranslateService {
	return &LibreTranslateService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *LibreTranslateService) Name() string {
	return "libretranslate"
}

func (s *LibreTranslateService) Translate(ctx context.Context, req Request) (*Result, error) {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = "auto"
	}

	payload := map[string]interface{}{
		"q":      req.Text,
		"source": sourceLang,
		"target": req.TargetLang,
		"format": "text",
	}
	if s.apiKey != "" {
		payload["api_key"] = s.apiKey
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(b))
	}

	var libreResp struct {
		TranslatedText   string `json:"translatedText"`
		DetectedLanguage struct {
			Language string `json:"language"`
		} `json:"detectedLanguage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&libreResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if libreResp.TranslatedText == "" {
		return nil, fmt.Errorf("empty translation response")
	}

	result := &Result{Text: libreResp.TranslatedText}
	if libreResp.DetectedLanguage.Language != "" {
		result.DetectedSourceLang = libreResp.DetectedLanguage.Language
	} else if sourceLang != "auto" {
		result.DetectedSourceLang = sourceLang
	}
	return result, nil
}
