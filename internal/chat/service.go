package chat

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"cardapio/internal/llm"
	"cardapio/internal/menu"

	"go.uber.org/zap"
)

var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrNoRestaurant   = errors.New("restaurantData or restaurant is required")
	ErrAssistantFails = errors.New("assistant is unavailable, try again in a moment")
)

type Turn struct {
	Role    string `json:"role"` // user | assistant
	Content string `json:"content"`
}

func (t Turn) speaker() string {
	if t.Role == "assistant" || t.Role == "model" {
		return "Assistente"
	}
	return "Cliente"
}

type Request struct {
	Message        string          `json:"message"`
	RestaurantData json.RawMessage `json:"restaurantData,omitempty"`
	ChatHistory    []Turn          `json:"chatHistory,omitempty"`

	// slug used when RestaurantData is omitted
	Restaurant string `json:"restaurant,omitempty"`
}

type Reply struct {
	Message string `json:"message"`
	Model   string `json:"model,omitempty"`
	Error   string `json:"error,omitempty"`
}

// MenuLoader provides restaurant data when the client does not send it.
type MenuLoader interface {
	ListMenu(ctx context.Context, slug string) (*menu.Menu, error)
}

type Service struct {
	client  llm.Client
	menus   MenuLoader
	timeout time.Duration
	backoff time.Duration
	logger  *zap.Logger
}

func NewService(
	client llm.Client,
	menus MenuLoader,
	timeout time.Duration,
	logger *zap.Logger,
) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		menus:   menus,
		timeout: timeout,
		backoff: 500 * time.Millisecond,
		logger:  logger,
	}
}

func (s *Service) restaurantJSON(ctx context.Context, req Request) (string, error) {
	if len(req.RestaurantData) > 0 && string(req.RestaurantData) != "null" {
		return string(req.RestaurantData), nil
	}
	if req.Restaurant == "" || s.menus == nil {
		return "", ErrNoRestaurant
	}

	m, err := s.menus.ListMenu(ctx, req.Restaurant)
	if err != nil {
		return "", err
	}

	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Ask answers a customer's question about the menu.
func (s *Service) Ask(ctx context.Context, req Request) (*Reply, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	if s.client == nil {
		return nil, ErrAssistantFails
	}

	restaurant, err := s.restaurantJSON(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(restaurant, req.ChatHistory, req.Message)

	answer, err := s.generate(ctx, prompt)
	if err != nil {
		s.logger.Warn("assistant failed",
			zap.String("model", s.client.Model()),
			zap.Error(err),
		)
		return nil, err
	}

	return &Reply{
		Message: strings.TrimSpace(answer),
		Model:   s.client.Model(),
	}, nil
}

// generate calls the model with a per attempt timeout and repeats once
// on a transient failure.
func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.backoff):
			}
		}

		out, err := s.attempt(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if !llm.IsTransient(err) && !errors.Is(err, context.DeadlineExceeded) {
			break
		}

		s.logger.Info("retrying assistant", zap.Int("attempt", attempt+1), zap.Error(err))
	}

	return "", lastErr
}

func (s *Service) attempt(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return s.client.Generate(ctx, prompt)
}
