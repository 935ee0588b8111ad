package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/services"
	"github.com/unrolled/render"
)

type CheckoutHandler struct {
	checkoutSvc *services.CheckoutService
	render      *render.Render
}

func NewCheckoutHandler(checkoutSvc *services.CheckoutService, render *render.Render) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutSvc: checkoutSvc,
		render:      render,
	}
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.UserIDFromContext(ctx)
	namespace := middlewares.CartIDFromContext(ctx)

	order, paymentURL, err := h.checkoutSvc.ProcessCheckout(ctx, userID, namespace)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "cart is empty"})
		case errors.Is(err, services.ErrInsufficientStock):
			_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("CheckoutHandler.Checkout: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "checkout failed"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]interface{}{
		"orderCode":  order.OrderCode,
		"grandTotal": order.GrandTotal.StringFixed(2),
		"paymentUrl": paymentURL,
	})
}

// paymentNotification is the subset of the gateway webhook payload the
// order update needs.
type paymentNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

func (h *CheckoutHandler) PaymentNotification(w http.ResponseWriter, r *http.Request) {
	var notif paymentNotification
	if err := json.NewDecoder(r.Body).Decode(&notif); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid notification payload"})
		return
	}

	if err := h.checkoutSvc.HandlePaymentNotification(r.Context(), notif.OrderID, notif.TransactionID, notif.TransactionStatus, notif.FraudStatus); err != nil {
		log.Printf("CheckoutHandler.PaymentNotification: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to process notification"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
