package handlers_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/riiqx/storefront/app/handlers"
	"github.com/riiqx/storefront/app/helpers"
	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/utils/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

type stubOrderRepo struct {
	orders map[string]*models.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, tx *gorm.DB, order *models.Order) error {
	s.orders[order.ID] = order
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orders[id], nil
}

func (s *stubOrderRepo) GetByCode(ctx context.Context, code string) (*models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) GetByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdatePaymentStatus(ctx context.Context, orderID, transactionID, paymentStatus string, status int) error {
	return nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, orderID string, status int) error {
	order, ok := s.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	return nil
}

func newOrderHandlerFixture() (*handlers.OrderHandler, *stubOrderRepo) {
	orderRepo := &stubOrderRepo{orders: map[string]*models.Order{
		"o1": {ID: "o1", UserID: "u1", Status: models.OrderStatusProcessing},
	}}
	userRepo := &stubUserRepo{users: map[string]*models.User{
		"admin":   {ID: "admin", Role: models.RoleAdmin},
		"shopper": {ID: "shopper", Role: models.RoleCustomer},
	}}
	return handlers.NewOrderHandler(orderRepo, userRepo, renderer.New()), orderRepo
}

func newUpdateStatusRequest(userID, orderID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID+"/status", bytes.NewBufferString(body))
	req = mux.SetURLVars(req, map[string]string{"id": orderID})
	ctx := context.WithValue(req.Context(), helpers.ContextKeyUserID, userID)
	return req.WithContext(ctx)
}

func TestUpdateStatusMarksOrderCompleted(t *testing.T) {
	handler, orderRepo := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, newUpdateStatusRequest("admin", "o1", `{"status":4}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderStatusCompleted, orderRepo.orders["o1"].Status)
	assert.True(t, orderRepo.orders["o1"].IsCompleted())
}

func TestUpdateStatusRequiresAdmin(t *testing.T) {
	handler, orderRepo := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, newUpdateStatusRequest("shopper", "o1", `{"status":4}`))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, models.OrderStatusProcessing, orderRepo.orders["o1"].Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	handler, _ := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, newUpdateStatusRequest("admin", "missing", `{"status":4}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateStatusRejectsInvalidStatus(t *testing.T) {
	handler, orderRepo := newOrderHandlerFixture()

	rec := httptest.NewRecorder()
	handler.UpdateStatus(rec, newUpdateStatusRequest("admin", "o1", `{"status":99}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, models.OrderStatusProcessing, orderRepo.orders["o1"].Status)
}
