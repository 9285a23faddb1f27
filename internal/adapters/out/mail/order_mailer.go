// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"
)

// EmailClient abstracts the concrete mail transport (SendGrid here,
// could be SMTP / SES).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// OrderMailer forwards the checkout order message to the shop inbox so
// orders survive even when the customer never opens the WhatsApp link.
// Satisfies usecase.OrderMailer.
type OrderMailer struct {
	client      EmailClient
	fromAddress string
	toAddress   string
}

func NewOrderMailer(client EmailClient, fromAddress, toAddress string) *OrderMailer {
	return &OrderMailer{
		client:      client,
		fromAddress: strings.TrimSpace(fromAddress),
		toAddress:   strings.TrimSpace(toAddress),
	}
}

func (m *OrderMailer) SendOrderMessage(ctx context.Context, message string) error {
	if m == nil || m.client == nil {
		return fmt.Errorf("order mailer not configured")
	}
	if m.fromAddress == "" || m.toAddress == "" {
		return fmt.Errorf("order mailer addresses not configured")
	}

	subject := "New storefront order"
	return m.client.Send(ctx, m.fromAddress, m.toAddress, subject, message)
}
