package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGeminiClient(apiKey string, model string, httpClient *http.Client) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if model == "" {
		return nil, errors.New("missing GEMINI_MODEL")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		http:    httpClient,
	}, nil
}

func (g *GeminiClient) Model() string {
	return g.model
}

func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf(
		"%s/models/%s:generateContent?key=%s",
		g.baseURL,
		url.PathEscape(g.model),
		url.QueryEscape(g.apiKey),
	)

	payload := map[string]any{
		"contents": []map[string]any{
			{
				"role": "user",
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"temperature":     0.4,
			"maxOutputTokens": 1024,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		endpoint,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "gemini", Code: resp.StatusCode, Body: string(raw)}
	}

	// Gemini response shape
	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(raw, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 ||
		len(result.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var out string
	for _, p := range result.Candidates[0].Content.Parts {
		out += p.Text
	}
	if out == "" {
		return "", ErrEmptyResponse
	}

	return out, nil
}
