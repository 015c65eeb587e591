package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/freshmart/storefront/internal/models"
)

func TestEmailServiceSendOTP(t *testing.T) {
	mailer := &recordingMailer{}
	svc, err := NewEmailService(mailer, "noreply@freshmart.test", 5*time.Minute)
	require.NoError(t, err)

	require.NoError(t, svc.SendOTPEmail(context.Background(), "alice@example.com", "482913"))

	sent := mailer.sent()
	require.Len(t, sent, 1)

	msg := sent[0]
	require.Equal(t, "noreply@freshmart.test", msg.From)
	require.Equal(t, []string{"alice@example.com"}, msg.To)
	require.Equal(t, "Your OTP for Email Verification", msg.Subject)
	require.True(t, msg.HTML)
	require.Contains(t, msg.Body, "482913")
	require.Contains(t, msg.Body, "valid for 5 minutes")
}

func TestEmailServiceSendOrderConfirmation(t *testing.T) {
	mailer := &recordingMailer{}
	svc, err := NewEmailService(mailer, "noreply@freshmart.test", 5*time.Minute)
	require.NoError(t, err)

	order := &models.Order{
		BaseModel:       models.BaseModel{ID: "order-123"},
		TotalAmount:     300.50,
		ShippingAddress: "42 Market Street",
		ShippingCity:    "Pune",
		ShippingZipCode: "411001",
		Items: []models.OrderItem{
			{
				ProductID: "prod-1",
				Product:   &models.Product{Name: "Fresh Apples"},
				Quantity:  2,
				Price:     120,
			},
			{
				ProductID: "prod-2",
				Product:   &models.Product{Name: "Organic Milk"},
				Quantity:  1,
				Price:     60.50,
			},
		},
	}

	require.NoError(t, svc.SendOrderConfirmation(context.Background(), "buyer@example.com", order))

	sent := mailer.sent()
	require.Len(t, sent, 1)

	msg := sent[0]
	require.Equal(t, "Order Confirmation - Order #order-123", msg.Subject)
	require.True(t, msg.HTML)
	require.Contains(t, msg.Body, "order-123")
	require.Contains(t, msg.Body, "Fresh Apples")
	require.Contains(t, msg.Body, "Organic Milk")
	require.Contains(t, msg.Body, "&#8377;240.00")
	require.Contains(t, msg.Body, "&#8377;300.50")
	require.Contains(t, msg.Body, "42 Market Street")
	require.Contains(t, msg.Body, "Pune, 411001")
}

func TestEmailServiceRequiresCollaborators(t *testing.T) {
	_, err := NewEmailService(nil, "noreply@freshmart.test", time.Minute)
	require.Error(t, err)

	mailer := &recordingMailer{}
	svc, err := NewEmailService(mailer, "noreply@freshmart.test", time.Minute)
	require.NoError(t, err)

	require.Error(t, svc.SendOrderConfirmation(context.Background(), "buyer@example.com", nil))
}
