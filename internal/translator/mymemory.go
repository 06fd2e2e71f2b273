package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const myMemoryBaseURL = "https://api.mymemory.translated.net"

// MyMemoryService translates via the free MyMemory API. MyMemory cannot
// detect the source language, so an empty or "auto" source falls back to
// English.
type MyMemoryService struct {
	email   string
	baseURL string
	client  *http.Client
}

// NewMyMemoryService returns a MyMemory adapter. email is optional; setting
// it raises the daily character quota.
func NewMyMemoryService(email string) *MyMemoryService {
	return &MyMemoryService{
		email:   email,
		baseURL: myMemoryBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *MyMemoryService) Name() string {
	return "mymemory"
}

func (s *MyMemoryService) Translate(ctx context.Context, req Request) (*Result, error) {
	sourceLang := req.SourceLang
	if sourceLang == "" || sourceLang == "auto" {
		sourceLang = "en"
	}

	q := url.Values{}
	q.Set("q", req.Text)
	q.Set("langpair", fmt.Sprintf("%s|%s", sourceLang, req.TargetLang))
	if s.email != "" {
		q.Set("de", s.email)
	}
	apiURL := s.baseURL + "/get?" + q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var mymemResp struct {
		ResponseData struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
		ResponseStatus  int    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&mymemResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if mymemResp.ResponseStatus != 200 {
		return nil, fmt.Errorf("API error: %s (%d)", mymemResp.ResponseDetails, mymemResp.ResponseStatus)
	}

	return &Result{
		Text:               mymemResp.ResponseData.TranslatedText,
		DetectedSourceLang: sourceLang,
	}, nil
}
