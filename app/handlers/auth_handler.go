package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/middlewares"
	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	userRepo     repositories.UserRepositoryImpl
	orderRepo    repositories.OrderRepository
	sessionStore sessions.SessionStore
	render       *render.Render
}

func NewAuthHandler(
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
	sessionStore sessions.SessionStore,
	render *render.Render,
) *AuthHandler {
	return &AuthHandler{
		userRepo:     userRepo,
		orderRepo:    orderRepo,
		sessionStore: sessionStore,
		render:       render,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	existing, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("AuthHandler.Register: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}
	if existing != nil {
		_ = h.render.JSON(w, http.StatusConflict, map[string]string{"error": "email is already registered"})
		return
	}

	hashed, err := helpers.HashPassword(req.Password)
	if err != nil {
		log.Printf("AuthHandler.Register: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  hashed,
		Role:      models.RoleCustomer,
	}
	if err := h.userRepo.Create(r.Context(), user); err != nil {
		log.Printf("AuthHandler.Register: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "registration failed"})
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.Register: failed to save session: %v", err)
	}

	_ = h.render.JSON(w, http.StatusCreated, map[string]string{"id": user.ID, "email": user.Email})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if err := helpers.Validate.Struct(req); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"errors": helpers.ValidationMessages(err)})
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), req.Email)
	if err != nil {
		log.Printf("AuthHandler.Login: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}
	if user == nil || !helpers.CheckPassword(user.Password, req.Password) {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("AuthHandler.Login: failed to save session: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "login failed"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]string{"id": user.ID, "email": user.Email})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearUserID(w, r); err != nil {
		log.Printf("AuthHandler.Logout: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Profile returns the account plus its order history.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID := middlewares.UserIDFromContext(r.Context())

	user, err := h.userRepo.FindByID(r.Context(), userID)
	if err != nil || user == nil {
		log.Printf("AuthHandler.Profile: failed to load user %s: %v", userID, err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load profile"})
		return
	}

	orders, err := h.orderRepo.GetByUserID(r.Context(), userID)
	if err != nil {
		log.Printf("AuthHandler.Profile: failed to load orders for %s: %v", userID, err)
		orders = nil
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"id":        user.ID,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"phone":     user.Phone,
		"orders":    orders,
	})
}
