package router

import (
	"net/http"
	"time"

	"cardapio/internal/auth"
	"cardapio/internal/cart"
	"cardapio/internal/chat"
	"cardapio/internal/customer"
	"cardapio/internal/menu"
	"cardapio/internal/middleware"
	"cardapio/internal/restaurant"
	"cardapio/internal/waiter"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth       *auth.Handler
	Restaurant *restaurant.Handler
	Menu       *menu.Handler
	Cart       *cart.Handler
	Customer   *customer.Handler
	Waiter     *waiter.Handler
	Chat       *chat.Handler
}

type Options struct {
	CORSOrigins []string
	Tokens      *auth.TokenIssuer
	Logger      *zap.Logger
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(logger),
		cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.SessionHeader},
			ExposeHeaders:    []string{middleware.SessionHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
	}

	staff := []gin.HandlerFunc{
		middleware.AuthMiddleware(opts.Tokens, logger),
		middleware.RequireRole(auth.RoleRestaurant, auth.RoleAdmin),
	}

	// ───────────────────────── PUBLIC CATALOG ─────────────────────────
	r.GET("/restaurants/:slug", h.Restaurant.GetRestaurant)
	r.GET("/restaurants/:slug/menu", h.Menu.GetMenu)
	r.GET("/restaurants/:slug/menu/search", h.Menu.Search)
	r.GET("/restaurants/:slug/menu/items/:item_id", h.Menu.GetItem)

	// ───────────────────────── CUSTOMER SESSION ─────────────────────────
	session := r.Group("")
	session.Use(middleware.Session())
	{
		session.GET("/cart", h.Cart.GetCart)
		session.DELETE("/cart", h.Cart.ClearCart)
		session.GET("/carts", h.Cart.ListCarts)
		session.GET("/cart/guard", h.Cart.Guard)
		session.PUT("/cart/restaurant", h.Cart.SetRestaurant)
		session.POST("/cart/items", h.Cart.AddItem)
		session.POST("/cart/items/validate", h.Cart.ValidateItem)
		session.PATCH("/cart/items/:id", h.Cart.UpdateQuantity)
		session.DELETE("/cart/items/:id", h.Cart.RemoveItem)
		session.POST("/cart/checkout/whatsapp", h.Cart.CheckoutWhatsApp)

		session.GET("/customer", h.Customer.Get)
		session.PUT("/customer", h.Customer.Put)

		session.POST("/restaurants/:slug/waiter-calls", h.Waiter.CallWaiter)
		session.POST("/chat", h.Chat.Chat)
	}

	// ───────────────────────── STAFF ─────────────────────────
	restaurants := r.Group("/restaurants")
	restaurants.Use(staff...)
	{
		restaurants.POST("", h.Restaurant.CreateRestaurant)
		restaurants.GET("/me", h.Restaurant.ListMyRestaurants)
		restaurants.PUT("/:slug", h.Restaurant.UpdateRestaurant)
		restaurants.POST("/:slug/menu/items", h.Menu.CreateItem)
		restaurants.POST("/:slug/menu/items/:item_id/image", h.Menu.UploadImage)
		restaurants.GET("/:slug/waiter-calls", h.Waiter.ListCalls)
	}

	waiterCalls := r.Group("/waiter-calls")
	waiterCalls.Use(staff...)
	{
		waiterCalls.POST("/:id/ack", h.Waiter.Acknowledge)
	}

	return r
}
