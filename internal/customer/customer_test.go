package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardapio/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenKV struct{}

func (brokenKV) Get(context.Context, string, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func (brokenKV) Put(context.Context, string, string, []byte) error {
	return errors.New("connection refused")
}

func TestService_SaveAndGet(t *testing.T) {
	svc := NewService(storage.NewMemoryKV(), nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "s1", Data{Name: " Ana ", Address: "Rua A", WhatsApp: "+55 (11) 99999-8888"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", saved.Name)
	assert.Equal(t, "5511999998888", saved.WhatsApp)

	assert.Equal(t, saved, svc.Get(ctx, "s1"))
	assert.Equal(t, Data{}, svc.Get(ctx, "other"))
}

func TestService_KeepsUnparseableWhatsApp(t *testing.T) {
	svc := NewService(storage.NewMemoryKV(), nil)

	saved, err := svc.Save(context.Background(), "s1", Data{WhatsApp: "ramal 12"})
	require.NoError(t, err)
	assert.Equal(t, "ramal 12", saved.WhatsApp)
}

func TestService_StorageErrors(t *testing.T) {
	svc := NewService(brokenKV{}, nil)

	assert.Equal(t, Data{}, svc.Get(context.Background(), "s1"))

	_, err := svc.Save(context.Background(), "s1", Data{Name: "Ana"})
	assert.Error(t, err)
}

func TestService_CorruptDocument(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Put(context.Background(), "s1", StorageKey, []byte(`[1,2`)))

	assert.Equal(t, Data{}, NewService(kv, nil).Get(context.Background(), "s1"))
}

func TestHandler_PutThenGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(NewService(storage.NewMemoryKV(), nil))
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sessionID", "s1")
		c.Next()
	})
	r.GET("/customer", h.Get)
	r.PUT("/customer", h.Put)

	body, _ := json.Marshal(Data{Name: "Ana", Address: "Rua A", Number: "10"})
	req := httptest.NewRequest(http.MethodPut, "/customer", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/customer", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got Data
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Rua A", got.Address)
	assert.Equal(t, "10", got.Number)
}
