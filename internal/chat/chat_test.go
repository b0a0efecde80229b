package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"cardapio/internal/core"
	"cardapio/internal/llm"
	"cardapio/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	mu      sync.Mutex
	errs    []error
	answer  string
	prompts []string
	block   bool
}

func (c *scriptedClient) Model() string { return "fake-1" }

func (c *scriptedClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.Lock()
	c.prompts = append(c.prompts, prompt)
	var err error
	if len(c.errs) > 0 {
		err, c.errs = c.errs[0], c.errs[1:]
	}
	c.mu.Unlock()

	if c.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if err != nil {
		return "", err
	}
	return c.answer, nil
}

func (c *scriptedClient) calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.prompts)
}

type fakeMenus struct{}

func (fakeMenus) ListMenu(ctx context.Context, slug string) (*menu.Menu, error) {
	if slug != "casa-do-burger" {
		return nil, core.ErrRestaurantNotFound
	}
	return &menu.Menu{
		Restaurant: &core.RestaurantInfo{ID: "r1", Slug: slug, Name: "Casa do Burger"},
		Categories: []string{"Lanches"},
		Items:      []*menu.MenuItem{{ID: "i1", Name: "Burger", Price: "20,00", Category: "Lanches"}},
	}, nil
}

func newTestService(client llm.Client) *Service {
	svc := NewService(client, fakeMenus{}, time.Second, nil)
	svc.backoff = time.Millisecond
	return svc
}

func TestBuildPrompt_KeepsLastTenTurns(t *testing.T) {
	var history []Turn
	for i := 0; i < 14; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, Turn{Role: role, Content: fmt.Sprintf("turn-%02d", i)})
	}

	p := BuildPrompt(`{"name":"Casa"}`, history, "Tem batata?")

	assert.Contains(t, p, `{"name":"Casa"}`)
	assert.NotContains(t, p, "turn-03")
	assert.Contains(t, p, "Cliente: turn-04")
	assert.Contains(t, p, "Assistente: turn-13")
	assert.True(t, strings.HasSuffix(p, "Cliente: Tem batata?\nAssistente:"))
}

func TestAsk_LoadsMenuBySlug(t *testing.T) {
	client := &scriptedClient{answer: "  Temos o Burger por R$ 20,00.  "}
	svc := newTestService(client)

	reply, err := svc.Ask(context.Background(), Request{Message: "o que tem?", Restaurant: "casa-do-burger"})
	require.NoError(t, err)
	assert.Equal(t, "Temos o Burger por R$ 20,00.", reply.Message)
	assert.Equal(t, "fake-1", reply.Model)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], `"name":"Burger"`)
}

func TestAsk_Validation(t *testing.T) {
	svc := newTestService(&scriptedClient{answer: "ok"})
	ctx := context.Background()

	_, err := svc.Ask(ctx, Request{Message: "  ", Restaurant: "casa-do-burger"})
	assert.ErrorIs(t, err, ErrEmptyMessage)

	_, err = svc.Ask(ctx, Request{Message: "oi"})
	assert.ErrorIs(t, err, ErrNoRestaurant)

	_, err = svc.Ask(ctx, Request{Message: "oi", Restaurant: "nowhere"})
	assert.ErrorIs(t, err, core.ErrRestaurantNotFound)

	reply, err := svc.Ask(ctx, Request{Message: "oi", RestaurantData: json.RawMessage(`{"name":"X"}`)})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Message)
}

func TestAsk_WithoutClient(t *testing.T) {
	svc := NewService(nil, fakeMenus{}, time.Second, nil)

	_, err := svc.Ask(context.Background(), Request{Message: "oi", Restaurant: "casa-do-burger"})
	assert.ErrorIs(t, err, ErrAssistantFails)
}

func TestAsk_RetriesOnceOnTransientError(t *testing.T) {
	client := &scriptedClient{
		answer: "ok",
		errs:   []error{&llm.StatusError{Provider: "fake", Code: http.StatusServiceUnavailable}},
	}
	svc := newTestService(client)

	reply, err := svc.Ask(context.Background(), Request{Message: "oi", Restaurant: "casa-do-burger"})
	require.NoError(t, err)
	assert.Equal(t, "ok", reply.Message)
	assert.Equal(t, 2, client.calls())
}

func TestAsk_GivesUpAfterSecondFailure(t *testing.T) {
	busy := &llm.StatusError{Provider: "fake", Code: http.StatusTooManyRequests}
	client := &scriptedClient{errs: []error{busy, busy, busy}}
	svc := newTestService(client)

	_, err := svc.Ask(context.Background(), Request{Message: "oi", Restaurant: "casa-do-burger"})
	assert.ErrorAs(t, err, new(*llm.StatusError))
	assert.Equal(t, 2, client.calls())
}

func TestAsk_NoRetryOnPermanentError(t *testing.T) {
	client := &scriptedClient{errs: []error{errors.New("bad request")}}
	svc := newTestService(client)

	_, err := svc.Ask(context.Background(), Request{Message: "oi", Restaurant: "casa-do-burger"})
	assert.Error(t, err)
	assert.Equal(t, 1, client.calls())
}

func TestAsk_Timeout(t *testing.T) {
	client := &scriptedClient{block: true}
	svc := NewService(client, fakeMenus{}, 20*time.Millisecond, nil)
	svc.backoff = time.Millisecond

	_, err := svc.Ask(context.Background(), Request{Message: "oi", Restaurant: "casa-do-burger"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, client.calls())
}

func TestAsk_Cancelled(t *testing.T) {
	client := &scriptedClient{block: true}
	svc := newTestService(client)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Ask(ctx, Request{Message: "oi", Restaurant: "casa-do-burger"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, client.calls())
}

func TestHandler_Chat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	failing := &scriptedClient{errs: []error{errors.New("boom")}}
	cases := []struct {
		name   string
		client *scriptedClient
		body   string
		status int
		check  func(t *testing.T, r Reply)
	}{
		{
			name:   "ok",
			client: &scriptedClient{answer: "Olá!"},
			body:   `{"message":"oi","restaurant":"casa-do-burger","chatHistory":[{"role":"user","content":"a"}]}`,
			status: http.StatusOK,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, "Olá!", r.Message)
				assert.Equal(t, "fake-1", r.Model)
				assert.Empty(t, r.Error)
			},
		},
		{
			name:   "upstream failure",
			client: failing,
			body:   `{"message":"oi","restaurantData":{"name":"X"}}`,
			status: http.StatusBadGateway,
			check: func(t *testing.T, r Reply) {
				assert.Equal(t, ErrAssistantFails.Error(), r.Error)
			},
		},
		{
			name:   "missing message",
			client: &scriptedClient{},
			body:   `{"restaurant":"casa-do-burger"}`,
			status: http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.POST("/chat", NewHandler(newTestService(tc.client)).Chat)

			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tc.status, w.Code)
			if tc.check != nil {
				var reply Reply
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
				tc.check(t, reply)
			}
		})
	}
}
