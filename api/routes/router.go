package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shubhangam-Singh/food-delivery-app/api/controllers"
	"github.com/Shubhangam-Singh/food-delivery-app/api/middleware"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/address"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/auth"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/cart"
	"github.com/Shubhangam-Singh/food-delivery-app/internal/orders"
	restaurant "github.com/Shubhangam-Singh/food-delivery-app/internal/restaurants"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/config"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/db"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/enums"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/logger"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/metrics"
	"github.com/Shubhangam-Singh/food-delivery-app/pkg/redis"
)

// RouterParams carries everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	Metrics     *metrics.HTTPMetrics
	Auth        auth.Service
	Register    auth.RegisterService
	Addresses   address.Service
	Restaurants restaurant.Service
	Cart        cart.Service
	Orders      orders.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(p.Metrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, p.DB, p.Redis))
	})
	if p.Metrics != nil {
		r.Handle("/metrics", p.Metrics.Handler())
	}

	r.With(
		middleware.AuthRateLimit(registerPolicy, p.Redis, logg),
		middleware.Idempotency(p.Redis, logg, cfg.Orders.IdempotencyTTL),
	).Post("/api/auth/register", controllers.AuthRegister(p.Register, logg))
	r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
		Post("/api/auth/login", controllers.AuthLogin(p.Auth, logg))

	// Catalog browse stays public.
	r.Get("/api/restaurants", controllers.RestaurantList(p.Restaurants, logg))
	r.Get("/api/restaurants/suggestions", controllers.RestaurantSuggestions(p.Restaurants, logg))
	r.Get("/api/restaurants/{restaurantId}", controllers.RestaurantGet(p.Restaurants, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/api/auth/me", controllers.AuthMe(p.Auth, logg))

		r.Get("/api/addresses", controllers.AddressList(p.Addresses, logg))
		r.With(middleware.Idempotency(p.Redis, logg, cfg.Orders.IdempotencyTTL)).
			Post("/api/addresses", controllers.AddressCreate(p.Addresses, logg))
		r.Put("/api/addresses/{addressId}", controllers.AddressUpdate(p.Addresses, logg))
		r.Delete("/api/addresses/{addressId}", controllers.AddressDelete(p.Addresses, logg))

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(p.Cart, logg))
			r.Delete("/", controllers.CartClear(p.Cart, logg))
			r.Post("/items", controllers.CartAddItem(p.Cart, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateQuantity(p.Cart, logg))
			r.Patch("/items/{itemId}/instructions", controllers.CartUpdateInstructions(p.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(p.Cart, logg))
			r.Post("/replace", controllers.CartReplace(p.Cart, logg))
			r.Post("/cancel-change", controllers.CartCancelChange(p.Cart, logg))
			r.Put("/delivery-info", controllers.CartDeliveryDetails(p.Cart, logg))
		})

		r.With(middleware.Idempotency(p.Redis, logg, cfg.Orders.IdempotencyTTL)).
			Post("/api/orders", controllers.OrderCreate(p.Orders, logg))
		r.Get("/api/orders", controllers.OrderList(p.Orders, logg))
		r.Get("/api/orders/{orderId}", controllers.OrderGet(p.Orders, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(logg,
				string(enums.UserRoleRestaurantOwner),
				string(enums.UserRoleAdmin),
			))

			r.Post("/api/restaurants", controllers.RestaurantCreate(p.Restaurants, logg))
			r.Put("/api/restaurants/{restaurantId}", controllers.RestaurantUpdate(p.Restaurants, logg))
			r.Delete("/api/restaurants/{restaurantId}", controllers.RestaurantDelete(p.Restaurants, logg))
			r.Post("/api/restaurants/{restaurantId}/menu", controllers.MenuItemCreate(p.Restaurants, logg))
			r.Put("/api/menu-items/{itemId}", controllers.MenuItemUpdate(p.Restaurants, logg))
			r.Delete("/api/menu-items/{itemId}", controllers.MenuItemDelete(p.Restaurants, logg))

			r.With(middleware.Idempotency(p.Redis, logg, cfg.Orders.IdempotencyTTL)).
				Patch("/api/orders/{orderId}/status", controllers.OrderUpdateStatus(p.Orders, logg))
		})
	})

	return r
}
