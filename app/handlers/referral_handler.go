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
	"github.com/riiqx/storefront/app/services"
	"github.com/unrolled/render"
)

type ReferralHandler struct {
	referralSvc *services.ReferralService
	userRepo    repositories.UserRepositoryImpl
	render      *render.Render
}

func NewReferralHandler(
	referralSvc *services.ReferralService,
	userRepo repositories.UserRepositoryImpl,
	render *render.Render,
) *ReferralHandler {
	return &ReferralHandler{
		referralSvc: referralSvc,
		userRepo:    userRepo,
		render:      render,
	}
}

type submitClaimRequest struct {
	OrderID         string `json:"orderId" validate:"required"`
	InstagramHandle string `json:"instagramHandle" validate:"required"`
	PostURL         string `json:"postUrl" validate:"omitempty,url"`
}

func (h *ReferralHandler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	var req submitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	userID := middlewares.UserIDFromContext(r.Context())
	claim, err := h.referralSvc.SubmitClaim(r.Context(), userID, req.OrderID, req.InstagramHandle, req.PostURL)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotEligible):
			_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		case errors.Is(err, services.ErrClaimExists):
			_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ReferralHandler.SubmitClaim: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to submit claim"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusCreated, claim)
}

func (h *ReferralHandler) ListClaims(w http.ResponseWriter, r *http.Request) {
	userID := middlewares.UserIDFromContext(r.Context())

	claims, err := h.referralSvc.ListClaims(r.Context(), userID)
	if err != nil {
		log.Printf("ReferralHandler.ListClaims: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load claims"})
		return
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"claims": claims})
}

// ReviewClaim approves or rejects a pending claim. Admin only.
func (h *ReferralHandler) ReviewClaim(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middlewares.UserIDFromContext(ctx)

	user, err := h.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil || user.Role != models.RoleAdmin {
		_ = h.render.JSON(w, http.StatusForbidden, map[string]string{"error": "admin access required"})
		return
	}

	claimID := mux.Vars(r)["id"]
	action := r.URL.Query().Get("action")

	var claim *models.ReferralClaim
	switch action {
	case "approve":
		claim, err = h.referralSvc.ApproveClaim(ctx, claimID)
	case "reject":
		claim, err = h.referralSvc.RejectClaim(ctx, claimID)
	default:
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "action must be approve or reject"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, services.ErrClaimNotFound):
			_ = h.render.JSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		case errors.Is(err, services.ErrClaimNotPending):
			_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		default:
			log.Printf("ReferralHandler.ReviewClaim: %v", err)
			_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to review claim"})
		}
		return
	}

	_ = h.render.JSON(w, http.StatusOK, claim)
}
