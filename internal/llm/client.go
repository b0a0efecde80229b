package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var ErrEmptyResponse = errors.New("empty llm response")

type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

// StatusError is a non-200 answer from a provider.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s api error: %d %s", e.Provider, e.Code, strings.TrimSpace(e.Body))
}

// IsTransient reports whether a failed call is worth repeating:
// network failures, rate limiting and 5xx answers.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var status *StatusError
	if errors.As(err, &status) {
		return status.Code == http.StatusTooManyRequests || status.Code >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

type Config struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	LlamaAPIKey string
	LlamaModel  string
	LlamaAPIURL string
}

// New returns the client for cfg.Provider.
func New(cfg Config, httpClient *http.Client) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		c, err := NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "llama":
		c, err := NewLLaMAClient(cfg.LlamaAPIKey, cfg.LlamaModel, cfg.LlamaAPIURL, httpClient)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
