package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/services"
	"github.com/riiqx/storefront/app/store"
	"github.com/unrolled/render"
)

type CartHandler struct {
	cartSvc *services.CartService
	render  *render.Render
}

func NewCartHandler(cartSvc *services.CartService, render *render.Render) *CartHandler {
	return &CartHandler{
		cartSvc: cartSvc,
		render:  render,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateQuantityRequest struct {
	ProductID string `json:"productId" validate:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type promoRequest struct {
	Code string `json:"code" validate:"required"`
}

// cartPayload is the JSON view of a cart store the frontend renders.
type cartPayload struct {
	Items          []store.CartItem `json:"items"`
	ItemCount      int              `json:"itemCount"`
	Subtotal       string           `json:"subtotal"`
	DiscountAmount string           `json:"discountAmount"`
	FinalTotal     string           `json:"finalTotal"`
	Discount       interface{}      `json:"discount"`
	IsOpen         bool             `json:"isOpen"`
}

func newCartPayload(cart *store.CartStore) cartPayload {
	payload := cartPayload{
		Items:          cart.Items(),
		ItemCount:      cart.ItemCount(),
		Subtotal:       cart.CartTotal().StringFixed(2),
		DiscountAmount: cart.DiscountAmount().StringFixed(2),
		FinalTotal:     cart.FinalTotal().StringFixed(2),
		IsOpen:         cart.IsOpen(),
	}
	if promo := cart.Discount(); promo != nil {
		payload.Discount = promo
	}
	return payload
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	namespace := middlewares.CartIDFromContext(r.Context())
	cart := h.cartSvc.LoadStore(namespace)
	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	namespace := middlewares.CartIDFromContext(r.Context())
	cart, err := h.cartSvc.AddProduct(r.Context(), namespace, req.ProductID, req.VariantID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrVariantNotFound):
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		default:
			log.Printf("CartHandler.AddItem: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to add item"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	namespace := middlewares.CartIDFromContext(r.Context())
	cart := h.cartSvc.UpdateQuantity(namespace, req.ProductID, req.VariantID, req.Quantity)
	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	variantID := r.URL.Query().Get("variantId")
	if productID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "productId is required"})
		return
	}

	namespace := middlewares.CartIDFromContext(r.Context())
	cart := h.cartSvc.RemoveItem(namespace, productID, variantID)
	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	namespace := middlewares.CartIDFromContext(r.Context())
	cart := h.cartSvc.ClearCart(namespace)
	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	var req promoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	namespace := middlewares.CartIDFromContext(r.Context())
	cart, err := h.cartSvc.ApplyPromo(r.Context(), namespace, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromoNotFound), errors.Is(err, services.ErrPromoNotUsable):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		default:
			log.Printf("CartHandler.ApplyPromo: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to apply promo"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}

func (h *CartHandler) RemovePromo(w http.ResponseWriter, r *http.Request) {
	namespace := middlewares.CartIDFromContext(r.Context())
	cart := h.cartSvc.RemovePromo(namespace)
	_ = h.render.JSON(w, http.StatusOK, newCartPayload(cart))
}
