package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/unrolled/render"
	"gorm.io/gorm"
)

type OrderHandler struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepositoryImpl
	render    *render.Render
}

func NewOrderHandler(
	orderRepo repositories.OrderRepository,
	userRepo repositories.UserRepositoryImpl,
	render *render.Render,
) *OrderHandler {
	return &OrderHandler{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		render:    render,
	}
}

type updateOrderStatusRequest struct {
	Status int `json:"status" validate:"required,min=1,max=7"`
}

// UpdateStatus moves an order through its fulfillment lifecycle
// (processing, shipped, completed). Admin only; marking an order
// completed is what unlocks referral cashback claims on it.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.UserIDFromContext(ctx)

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil || user.Role != models.RoleAdmin {
		_ = h.render.JSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	orderID := mux.Vars(r)["id"]
	if err := h.orderRepo.UpdateStatus(ctx, orderID, req.Status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": "order not found"})
			return
		}
		log.Printf("OrderHandler.UpdateStatus: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update order status"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"id": orderID, "status": req.Status})
}
