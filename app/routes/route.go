package routes

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/riiqx/storefront/app/configs"
	"github.com/riiqx/storefront/app/handlers"
	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/services"
	"github.com/riiqx/storefront/app/utils/renderer"
	"github.com/riiqx/storefront/app/utils/sessions"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB) *mux.Router {
	env := configs.LoadENV

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Printf("Warning: session keys not configured, falling back to SESSION_KEY: %v", err)
		keys = &configs.SessionKeys{AuthKey: []byte(env.SESSION_KEY)}
	}

	sessionStore := sessions.NewCookieSessionStore(keys.AuthKey, keys.EncKey)
	render := renderer.New()

	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	promoRepo := repositories.NewPromoRepository(db)
	userRepo := repositories.NewUserRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	wishlistRepo := repositories.NewWishlistRepository(db)
	referralRepo := repositories.NewReferralRepository(db)
	snapshotRepo := repositories.NewCartSnapshotRepository(db)

	mailer := services.NewMailer(services.MailConfig{
		Host:     env.EmailHost,
		Port:     env.EmailPort,
		Username: env.EmailUsername,
		Password: env.EmailPassword,
		From:     env.EmailFrom,
	})

	cashbackPercent, err := decimal.NewFromString(env.CASHBACK_PERCENT)
	if err != nil || cashbackPercent.IsNegative() {
		cashbackPercent = decimal.NewFromInt(5)
	}

	cartSvc := services.NewCartService(snapshotRepo, productRepo, promoRepo)
	paymentSvc := services.NewPaymentService(configs.MidtransClient)
	checkoutSvc := services.NewCheckoutService(db, cartSvc, productRepo, userRepo, orderRepo, orderItemRepo, paymentSvc, mailer)
	wishlistSvc := services.NewWishlistService(wishlistRepo, cartSvc)
	referralSvc := services.NewReferralService(referralRepo, orderRepo, userRepo, mailer, cashbackPercent)

	cartHandler := handlers.NewCartHandler(cartSvc, render)
	productHandler := handlers.NewProductHandler(productRepo, categoryRepo, render)
	authHandler := handlers.NewAuthHandler(userRepo, orderRepo, sessionStore, render)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, render)
	wishlistHandler := handlers.NewWishlistHandler(wishlistSvc, render)
	referralHandler := handlers.NewReferralHandler(referralSvc, userRepo, render)
	orderHandler := handlers.NewOrderHandler(orderRepo, userRepo, render)

	router := mux.NewRouter()
	router.Use(middlewares.CartSessionMiddleware(sessionStore))
	router.Use(middlewares.UserSessionMiddleware(sessionStore))

	// Browser clients echo the token back in X-CSRF-Token; enabled
	// outside local development only.
	if env.APP_ENV == "production" {
		router.Use(middlewares.CSRFMiddleware(keys.AuthKey, true))
	}

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/products", productHandler.ListProducts).Methods("GET")
	api.HandleFunc("/products/featured", productHandler.ListFeatured).Methods("GET")
	api.HandleFunc("/products/{slug}", productHandler.GetProduct).Methods("GET")
	api.HandleFunc("/categories", productHandler.ListCategories).Methods("GET")

	api.HandleFunc("/cart", cartHandler.GetCart).Methods("GET")
	api.HandleFunc("/cart/items", cartHandler.AddItem).Methods("POST")
	api.HandleFunc("/cart/items", cartHandler.UpdateQuantity).Methods("PATCH")
	api.HandleFunc("/cart/items", cartHandler.RemoveItem).Methods("DELETE")
	api.HandleFunc("/cart/clear", cartHandler.ClearCart).Methods("POST")
	api.HandleFunc("/cart/promo", cartHandler.ApplyPromo).Methods("POST")
	api.HandleFunc("/cart/promo", cartHandler.RemovePromo).Methods("DELETE")

	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	api.HandleFunc("/payments/notification", checkoutHandler.PaymentNotification).Methods("POST")

	authed := api.NewRoute().Subrouter()
	authed.Use(middlewares.RequireAuth)
	authed.HandleFunc("/me", authHandler.Profile).Methods("GET")
	authed.HandleFunc("/checkout", checkoutHandler.Checkout).Methods("POST")
	authed.HandleFunc("/wishlist", wishlistHandler.List).Methods("GET")
	authed.HandleFunc("/wishlist", wishlistHandler.Add).Methods("POST")
	authed.HandleFunc("/wishlist", wishlistHandler.Remove).Methods("DELETE")
	authed.HandleFunc("/wishlist/move-to-cart", wishlistHandler.MoveToCart).Methods("POST")
	authed.HandleFunc("/orders/{id}/status", orderHandler.UpdateStatus).Methods("PATCH")
	authed.HandleFunc("/referrals", referralHandler.SubmitClaim).Methods("POST")
	authed.HandleFunc("/referrals", referralHandler.ListClaims).Methods("GET")
	authed.HandleFunc("/referrals/{id}/review", referralHandler.ReviewClaim).Methods("POST")

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	return router
}
