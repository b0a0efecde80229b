package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

type LLaMAClient struct {
	apiKey string
	model  string
	apiURL string
	http   *http.Client
}

func NewLLaMAClient(apiKey string, model string, apiURL string, httpClient *http.Client) (*LLaMAClient, error) {
	if apiKey == "" {
		return nil, errors.New("missing LLAMA_API_KEY")
	}
	if apiURL == "" {
		return nil, errors.New("missing LLAMA_API_URL")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &LLaMAClient{
		apiKey: apiKey,
		model:  model,
		apiURL: apiURL,
		http:   httpClient,
	}, nil
}

func (l *LLaMAClient) Model() string {
	return l.model
}

func (l *LLaMAClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model":       l.model,
		"input":       prompt,
		"temperature": 0.4,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		l.apiURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+l.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := l.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: "llama", Code: resp.StatusCode, Body: string(raw)}
	}

	return extractText(raw)
}

// extractText accepts the response shapes Llama hosts are known to use.
func extractText(raw []byte) (string, error) {
	text := string(raw)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", errors.New("llama did not return valid JSON")
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return "", err
	}

	// Variant A
	if v, ok := parsed["output_text"].(string); ok && v != "" {
		return v, nil
	}

	// Variant B
	if v, ok := parsed["generated_text"].(string); ok && v != "" {
		return v, nil
	}

	// Variant C
	if gen, ok := parsed["generation"].(map[string]any); ok {
		if txt, ok := gen["text"].(string); ok && txt != "" {
			return txt, nil
		}
	}

	// OpenAI compatible
	if choices, ok := parsed["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if msg, ok := choice["message"].(map[string]any); ok {
				if txt, ok := msg["content"].(string); ok && txt != "" {
					return txt, nil
				}
			}
		}
	}

	return "", ErrEmptyResponse
}
