package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInsufficientStock is the repository sentinel re-exported so
	// handlers can match it without importing the repository package.
	ErrInsufficientStock = repositories.ErrInsufficientStock
)

// TxManager runs a function inside a single database transaction,
// rolling back when it returns an error. *gorm.DB satisfies it.
type TxManager interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}

// PaymentGateway registers an order with the payment provider and
// returns the transaction token and redirect URL. *PaymentService is
// the Midtrans-backed implementation.
type PaymentGateway interface {
	CreateTransaction(orderCode string, grandTotal decimal.Decimal, customerName, customerEmail string) (string, string, error)
}

// CheckoutService freezes a cart into an order: it re-validates the
// applied promo against the subtotal, verifies stock, writes the order
// and its items in one transaction, registers the payment with the
// gateway and clears the cart.
type CheckoutService struct {
	db          TxManager
	cartSvc     *CartService
	productRepo repositories.ProductRepositoryImpl
	userRepo    repositories.UserRepositoryImpl
	orderRepo   repositories.OrderRepository
	orderItems  repositories.OrderItemRepository
	paymentSvc  PaymentGateway
	mailer      *Mailer
}

func NewCheckoutService(
	db TxManager,
	cartSvc *CartService,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItems repositories.OrderItemRepository,
	paymentSvc PaymentGateway,
	mailer *Mailer,
) *CheckoutService {
	return &CheckoutService{
		db:          db,
		cartSvc:     cartSvc,
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		orderItems:  orderItems,
		paymentSvc:  paymentSvc,
		mailer:      mailer,
	}
}

// ProcessCheckout turns the namespace's cart into a pending order and
// returns it together with the payment redirect URL.
func (s *CheckoutService) ProcessCheckout(ctx context.Context, userID, namespace string) (*models.Order, string, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, "", errors.New("user not found")
	}

	cart := s.cartSvc.LoadStore(namespace)
	items := cart.Items()
	if len(items) == 0 {
		return nil, "", ErrEmptyCart
	}

	subtotal := cart.CartTotal()

	// Promo eligibility is re-checked here, not trusted from apply
	// time: the cart may have shrunk below the spend threshold or the
	// code may have expired since.
	promo := cart.Discount()
	if promo != nil && !promo.Usable(time.Now()) {
		promo = nil
	}
	discountAmount := calc.CalculateDiscount(subtotal, promo)
	grandTotal := calc.CalculateFinalTotal(subtotal, discountAmount)

	for _, item := range items {
		if err := s.verifyStock(ctx, item.ProductID, item.VariantID, item.Quantity); err != nil {
			return nil, "", err
		}
	}

	order := &models.Order{
		ID:             uuid.New().String(),
		UserID:         userID,
		OrderCode:      generateOrderCode(),
		OrderDate:      time.Now(),
		BaseTotalPrice: subtotal,
		DiscountAmount: discountAmount,
		GrandTotal:     grandTotal,
		Status:         models.OrderStatusPending,
		PaymentStatus:  "pending",
	}
	if promo != nil && discountAmount.IsPositive() {
		order.PromoCode = promo.Code
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range items {
			orderItem := &models.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     order.ID,
				ProductID:   item.ProductID,
				VariantID:   item.VariantID,
				ProductName: item.Title,
				Color:       item.Color,
				Size:        item.Size,
				Qty:         item.Quantity,
				Price:       item.Price,
				BaseTotal:   item.Subtotal(),
			}
			if err := s.orderItems.Add(ctx, tx, orderItem); err != nil {
				return fmt.Errorf("failed to create order item for product %s: %w", item.ProductID, err)
			}

			// The guarded update inside the transaction is the
			// authoritative stock check; verifyStock above is only a
			// fast pre-check.
			if err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.VariantID, item.Quantity); err != nil {
				return fmt.Errorf("failed to decrement stock for product %s: %w", item.ProductID, err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, "", txErr
	}

	customerName := strings.TrimSpace(user.FirstName + " " + user.LastName)
	_, paymentURL, err := s.paymentSvc.CreateTransaction(order.OrderCode, order.GrandTotal, customerName, user.Email)
	if err != nil {
		// The order stays pending; payment can be retried from the
		// order page.
		log.Printf("ProcessCheckout: payment registration failed for order %s: %v", order.OrderCode, err)
		return order, "", fmt.Errorf("failed to register payment: %w", err)
	}

	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, "", "pending", models.OrderStatusPending); err != nil {
		log.Printf("ProcessCheckout: failed to record payment status for order %s: %v", order.OrderCode, err)
	}
	order.PaymentURL = paymentURL

	cart.ClearCart()

	if s.mailer != nil {
		body := BuildOrderConfirmationBody(order.OrderCode, order.GrandTotal)
		if err := s.mailer.SendHTMLEmail(user.Email, "Your RIIQX order "+order.OrderCode, body); err != nil {
			log.Printf("ProcessCheckout: failed to send confirmation email for order %s: %v", order.OrderCode, err)
		}
	}

	return order, paymentURL, nil
}

// HandlePaymentNotification applies a gateway webhook to the order it
// references.
func (s *CheckoutService) HandlePaymentNotification(ctx context.Context, orderCode, transactionID, transactionStatus, fraudStatus string) error {
	order, err := s.orderRepo.GetByCode(ctx, orderCode)
	if err != nil {
		return fmt.Errorf("failed to load order %s: %w", orderCode, err)
	}
	if order == nil {
		return fmt.Errorf("order %s not found", orderCode)
	}

	paymentStatus, status := OrderStatusForNotification(transactionStatus, fraudStatus)
	if err := s.orderRepo.UpdatePaymentStatus(ctx, order.ID, transactionID, paymentStatus, status); err != nil {
		return fmt.Errorf("failed to update payment status for order %s: %w", orderCode, err)
	}
	return nil
}

func (s *CheckoutService) verifyStock(ctx context.Context, productID, variantID string, qty int) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	available := product.Stock
	if variantID != "" {
		variant := product.FindVariant(variantID)
		if variant == nil {
			return ErrVariantNotFound
		}
		available = variant.Stock
	}

	if available < qty {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, product.Name)
	}
	return nil
}

func generateOrderCode() string {
	return fmt.Sprintf("RIIQX-%s-%s", time.Now().Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}
