package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const (
	assistEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"
	assistModel    = "gemini-2.0-flash"
)

var ErrAssistUnavailable = errors.New("assist api unavailable")

// AssistClient calls the hosted generate-content API. Callers are
// expected to treat every error as recoverable and fall back to a
// local default.
type AssistClient struct {
	apiKey string
	http   *http.Client
}

func NewAssistClient(apiKey string) *AssistClient {
	return &AssistClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

type assistRequest struct {
	Contents []assistContent `json:"contents"`
}

type assistContent struct {
	Parts []assistPart `json:"parts"`
}

type assistPart struct {
	Text string `json:"text"`
}

type assistResponse struct {
	Candidates []struct {
		Content assistContent `json:"content"`
	} `json:"candidates"`
}

func (c *AssistClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrAssistUnavailable
	}

	body, err := json.Marshal(assistRequest{
		Contents: []assistContent{{Parts: []assistPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf(assistEndpoint, assistModel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assist api status %d", resp.StatusCode)
	}

	var out assistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", ErrAssistUnavailable
	}
	text := out.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", ErrAssistUnavailable
	}
	return text, nil
}
