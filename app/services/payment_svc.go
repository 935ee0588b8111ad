package services

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/riiqx/storefront/app/models"
	"github.com/shopspring/decimal"
)

// PaymentService wraps the Midtrans Snap client: it turns an order
// into a hosted payment page and maps gateway notifications back onto
// order statuses.
type PaymentService struct {
	snapClient snap.Client
}

func NewPaymentService(snapClient snap.Client) *PaymentService {
	return &PaymentService{snapClient: snapClient}
}

// CreateTransaction registers the order with the gateway and returns
// the transaction token and redirect URL the shopper pays through.
func (s *PaymentService) CreateTransaction(orderCode string, grandTotal decimal.Decimal, customerName, customerEmail string) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderCode,
			GrossAmt: grandTotal.IntPart(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
	}

	resp, err := s.snapClient.CreateTransaction(req)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment transaction for order %s: %w", orderCode, err)
	}

	return resp.Token, resp.RedirectURL, nil
}

// OrderStatusForNotification maps a gateway transaction status to the
// order status scheme. Unknown statuses leave the order pending.
func OrderStatusForNotification(transactionStatus, fraudStatus string) (string, int) {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return "paid", models.OrderStatusProcessing
		}
		return "challenge", models.OrderStatusPending
	case "settlement":
		return "paid", models.OrderStatusProcessing
	case "deny":
		return "denied", models.OrderStatusFailed
	case "cancel", "expire":
		return "cancelled", models.OrderStatusCancelled
	case "pending":
		return "pending", models.OrderStatusPending
	default:
		return transactionStatus, models.OrderStatusPending
	}
}
