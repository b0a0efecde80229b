package restaurant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cardapio/internal/core"

	"github.com/gin-gonic/gin"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Cantina São João":    "cantina-sao-joao",
		"  Burger & Co. ":     "burger-co",
		"Açaí--da   Praia!!!": "acai-da-praia",
		"!!!":                 "",
	}

	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCreateRestaurant_UniqueSlugs(t *testing.T) {
	service := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	in := Input{Name: "Casa do Burger", WhatsApp: "+55 (11) 99999-8888", TableCount: 12}

	first, err := service.CreateRestaurant(ctx, "owner-1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.CreateRestaurant(ctx, "owner-2", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Slug != "casa-do-burger" {
		t.Fatalf("expected slug casa-do-burger, got %s", first.Slug)
	}
	if second.Slug != "casa-do-burger-2" {
		t.Fatalf("expected slug casa-do-burger-2, got %s", second.Slug)
	}
	if first.WhatsApp != "5511999998888" {
		t.Fatalf("whatsapp not normalized: %s", first.WhatsApp)
	}
}

func TestCreateRestaurant_Invalid(t *testing.T) {
	service := NewService(NewInMemoryRepository(), nil)

	_, err := service.CreateRestaurant(context.Background(), "owner-1", Input{Name: "X", WhatsApp: "123"})
	if !errors.Is(err, ErrInvalidRestaurant) {
		t.Fatalf("expected ErrInvalidRestaurant, got %v", err)
	}

	_, err = service.CreateRestaurant(context.Background(), "owner-1", Input{WhatsApp: "5511999998888"})
	if !errors.Is(err, ErrInvalidRestaurant) {
		t.Fatalf("expected ErrInvalidRestaurant, got %v", err)
	}
}

func TestRestaurantReader(t *testing.T) {
	service := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	created, _ := service.CreateRestaurant(ctx, "owner-1", Input{Name: "Pizzaria", WhatsApp: "5511999998888"})

	var reader core.RestaurantReader = service

	info, err := reader.GetBySlug(ctx, "pizzaria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.ID != created.ID {
		t.Fatalf("expected id %s, got %s", created.ID, info.ID)
	}

	if ok, _ := reader.IsOwner(ctx, created.ID, "owner-1"); !ok {
		t.Fatal("expected owner")
	}
	if ok, _ := reader.IsOwner(ctx, created.ID, "someone"); ok {
		t.Fatal("expected not owner")
	}

	if _, err := reader.GetBySlug(ctx, "missing"); !errors.Is(err, core.ErrRestaurantNotFound) {
		t.Fatalf("expected ErrRestaurantNotFound, got %v", err)
	}
}

func TestUpdateRestaurant_OwnerOnly(t *testing.T) {
	service := NewService(NewInMemoryRepository(), nil)
	ctx := context.Background()

	_, _ = service.CreateRestaurant(ctx, "owner-1", Input{Name: "Pizzaria", WhatsApp: "5511999998888"})

	in := Input{Name: "Pizzaria Nova", WhatsApp: "5511988887777", TableCount: 20}

	if _, err := service.UpdateRestaurant(ctx, "pizzaria", "intruder", in); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := service.UpdateRestaurant(ctx, "pizzaria", "owner-1", in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.TableCount != 20 || updated.Slug != "pizzaria" {
		t.Fatalf("unexpected restaurant: %+v", updated)
	}
}

func TestHandler_CreateAndGet(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(NewService(NewInMemoryRepository(), nil))

	r := gin.New()
	r.GET("/restaurants/:slug", h.GetRestaurant)
	r.POST("/restaurants", func(c *gin.Context) {
		c.Set("userID", "owner-1")
		c.Next()
	}, h.CreateRestaurant)

	body, _ := json.Marshal(Input{Name: "Bar do Zé", WhatsApp: "5511999998888"})
	req := httptest.NewRequest(http.MethodPost, "/restaurants", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/restaurants/bar-do-ze", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/restaurants/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
