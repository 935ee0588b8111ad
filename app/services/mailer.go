package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/riiqx/storefront/app/utils/format"
	"github.com/shopspring/decimal"
)

type MailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailConfig
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg))
	if err != nil {
		log.Printf("Failed to send HTML email to %s: %v", to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

func BuildOrderConfirmationBody(orderCode string, grandTotal decimal.Decimal) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <body style="font-family: Arial, sans-serif; color: #111;">
            <h2>Thanks for your order</h2>
            <p>Your order <strong>%s</strong> has been received.</p>
            <p>Total: <strong>%s</strong></p>
            <p>We will let you know as soon as it ships.</p>
            <p>— RIIQX</p>
        </body>
        </html>`, orderCode, format.FormatPrice(grandTotal))
}

func BuildCashbackApprovedBody(instagramHandle string, amount decimal.Decimal) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <body style="font-family: Arial, sans-serif; color: #111;">
            <h2>Cashback approved</h2>
            <p>Hey @%s, your Instagram cashback claim was approved.</p>
            <p>Credit: <strong>%s</strong></p>
            <p>It will land with your next statement.</p>
            <p>— RIIQX</p>
        </body>
        </html>`, instagramHandle, format.FormatPrice(amount))
}
