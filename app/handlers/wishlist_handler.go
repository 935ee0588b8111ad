package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/services"
	"github.com/unrolled/render"
)

type WishlistHandler struct {
	wishlistSvc *services.WishlistService
	render      *render.Render
}

func NewWishlistHandler(wishlistSvc *services.WishlistService, render *render.Render) *WishlistHandler {
	return &WishlistHandler{
		wishlistSvc: wishlistSvc,
		render:      render,
	}
}

type wishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middlewares.UserIDFromContext(r.Context())

	items, err := h.wishlistSvc.List(r.Context(), userID)
	if err != nil {
		log.Printf("WishlistHandler.List: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load wishlist"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req wishlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	userID := middlewares.UserIDFromContext(r.Context())
	if err := h.wishlistSvc.Add(r.Context(), userID, req.ProductID, req.VariantID); err != nil {
		log.Printf("WishlistHandler.Add: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add to wishlist"})
		return
	}
	_ = h.render.JSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	variantID := r.URL.Query().Get("variantId")
	if productID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "productId is required"})
		return
	}

	userID := middlewares.UserIDFromContext(r.Context())
	if err := h.wishlistSvc.Remove(r.Context(), userID, productID, variantID); err != nil {
		log.Printf("WishlistHandler.Remove: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to remove from wishlist"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// MoveToCart empties the wishlist into the cart and returns the
// updated cart payload.
func (h *WishlistHandler) MoveToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.UserIDFromContext(ctx)
	namespace := middlewares.CartIDFromContext(ctx)

	cart, err := h.wishlistSvc.MoveToCart(ctx, userID, namespace)
	if err != nil {
		log.Printf("WishlistHandler.MoveToCart: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to move wishlist to cart"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}
