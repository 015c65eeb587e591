package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/freshmart/storefront/internal/models"
	"github.com/freshmart/storefront/pkg/mail"
)

const otpSubject = "Your OTP for Email Verification"

// EmailService renders storefront email templates and hands them to the
// mail transport. The transport is injected once at startup; nothing here
// holds ambient global state.
type EmailService struct {
	mailer mail.Mailer
	from   string
	otpTTL time.Duration
}

// NewEmailService constructs the service around an injected mail transport.
func NewEmailService(mailer mail.Mailer, from string, otpTTL time.Duration) (*EmailService, error) {
	if mailer == nil {
		return nil, errors.New("email service: mailer is required")
	}
	if otpTTL <= 0 {
		otpTTL = 5 * time.Minute
	}
	return &EmailService{
		mailer: mailer,
		from:   strings.TrimSpace(from),
		otpTTL: otpTTL,
	}, nil
}

// SendOTPEmail dispatches a verification code to the recipient.
func (s *EmailService) SendOTPEmail(ctx context.Context, email, otp string) error {
	body, err := renderTemplate(otpTemplate, otpTemplateData{
		OTP:     otp,
		Minutes: int(s.otpTTL.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("email service: render otp template: %w", err)
	}

	return s.mailer.Send(ctx, mail.Message{
		From:    s.from,
		To:      []string{email},
		Subject: otpSubject,
		Body:    body,
		HTML:    true,
	})
}

// SendOrderConfirmation dispatches an order summary to the recipient.
func (s *EmailService) SendOrderConfirmation(ctx context.Context, email string, order *models.Order) error {
	if order == nil {
		return errors.New("email service: order is required")
	}

	data := orderTemplateData{
		OrderID:         order.ID,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		ShippingCity:    order.ShippingCity,
		ShippingZipCode: order.ShippingZipCode,
	}
	for _, item := range order.Items {
		name := item.ProductID
		if item.Product != nil {
			name = item.Product.Name
		}
		data.Items = append(data.Items, orderTemplateItem{
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Total:    item.Price * float64(item.Quantity),
		})
	}

	body, err := renderTemplate(orderTemplate, data)
	if err != nil {
		return fmt.Errorf("email service: render order template: %w", err)
	}

	return s.mailer.Send(ctx, mail.Message{
		From:    s.from,
		To:      []string{email},
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", order.ID),
		Body:    body,
		HTML:    true,
	})
}

type otpTemplateData struct {
	OTP     string
	Minutes int
}

type orderTemplateItem struct {
	Name     string
	Quantity int
	Price    float64
	Total    float64
}

type orderTemplateData struct {
	OrderID         string
	Items           []orderTemplateItem
	TotalAmount     float64
	ShippingAddress string
	ShippingCity    string
	ShippingZipCode string
}

func renderTemplate(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      .otp-box { background-color: #fff; padding: 20px; text-align: center; margin: 20px 0; border: 2px solid #4CAF50; }
      .otp { font-size: 32px; font-weight: bold; color: #4CAF50; letter-spacing: 5px; }
      .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Email Verification</h1>
      </div>
      <div class="content">
        <p>Hello,</p>
        <p>Thank you for registering. Please use the OTP below to verify your email:</p>
        <div class="otp-box">
          <div class="otp">{{.OTP}}</div>
        </div>
        <p>This OTP is valid for {{.Minutes}} minutes.</p>
        <p>If you didn't request this, please ignore this email.</p>
      </div>
      <div class="footer">
        <p>&copy; 2025 Freshmart. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`))

var orderTemplate = template.Must(template.New("order").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; }
      .container { max-width: 600px; margin: 0 auto; padding: 20px; }
      .header { background-color: #2196F3; color: white; padding: 20px; text-align: center; }
      .content { padding: 20px; background-color: #f9f9f9; }
      table { width: 100%; border-collapse: collapse; margin: 20px 0; }
      th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
      th { background-color: #2196F3; color: white; }
      .total { font-size: 18px; font-weight: bold; margin: 20px 0; }
      .footer { text-align: center; padding: 20px; color: #666; font-size: 12px; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header">
        <h1>Order Confirmation</h1>
      </div>
      <div class="content">
        <p>Hello,</p>
        <p>Thank you for your order! Here are your order details:</p>
        <p><strong>Order ID:</strong> {{.OrderID}}</p>
        <table>
          <thead>
            <tr>
              <th>Product</th>
              <th>Quantity</th>
              <th>Price</th>
              <th>Total</th>
            </tr>
          </thead>
          <tbody>
            {{range .Items}}<tr>
              <td>{{.Name}}</td>
              <td>{{.Quantity}}</td>
              <td>&#8377;{{printf "%.2f" .Price}}</td>
              <td>&#8377;{{printf "%.2f" .Total}}</td>
            </tr>
            {{end}}
          </tbody>
        </table>
        <div class="total">
          Total Amount: &#8377;{{printf "%.2f" .TotalAmount}}
        </div>
        <p><strong>Shipping Address:</strong><br>
        {{.ShippingAddress}}<br>
        {{.ShippingCity}}, {{.ShippingZipCode}}</p>
        <p>We will notify you once your order is shipped.</p>
      </div>
      <div class="footer">
        <p>&copy; 2025 Freshmart. All rights reserved.</p>
      </div>
    </div>
  </body>
</html>
`))
