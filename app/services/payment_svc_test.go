package services_test

import (
	"testing"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/services"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatusForNotification(t *testing.T) {
	tests := []struct {
		transactionStatus string
		fraudStatus       string
		wantPayment       string
		wantStatus        int
	}{
		{"settlement", "", "paid", models.OrderStatusProcessing},
		{"capture", "accept", "paid", models.OrderStatusProcessing},
		{"capture", "challenge", "challenge", models.OrderStatusPending},
		{"deny", "", "denied", models.OrderStatusFailed},
		{"cancel", "", "cancelled", models.OrderStatusCancelled},
		{"expire", "", "cancelled", models.OrderStatusCancelled},
		{"pending", "", "pending", models.OrderStatusPending},
		{"something-new", "", "something-new", models.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.transactionStatus+"/"+tt.fraudStatus, func(t *testing.T) {
			payment, status := services.OrderStatusForNotification(tt.transactionStatus, tt.fraudStatus)
			assert.Equal(t, tt.wantPayment, payment)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}
