package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"github.com/footloft/footloft-api/initializers"
	"github.com/footloft/footloft-api/models"
)

type OrderEmailData struct {
	OrderID       uint
	CustomerName  string
	Items         []models.OrderItem
	Amount        float64
	PaymentMethod string
	Address       models.Address
	Date          string
}

func SendEmail(emailTo string, emailSubject string, data OrderEmailData, templatePath string) error {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	err = smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func orderEmailData(orderID uint) (OrderEmailData, error) {
	var order models.Order
	if err := initializers.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		return OrderEmailData{}, fmt.Errorf("order %d not found: %w", orderID, err)
	}

	return OrderEmailData{
		OrderID:       order.ID,
		CustomerName:  order.Address.FirstName + " " + order.Address.LastName,
		Items:         order.Items,
		Amount:        order.Amount,
		PaymentMethod: order.PaymentMethod,
		Address:       order.Address,
		Date:          order.CreatedAt.Format("2 January 2006"),
	}, nil
}

// SendOrderReceipt mails a receipt to the address on the order. When
// SMTP is not configured the send is skipped with a log line; a missed
// receipt never affects the order itself.
func SendOrderReceipt(orderID uint) error {
	if os.Getenv("SMTP_ADDRESS") == "" {
		log.Println("SMTP_ADDRESS not set; skipping receipt email for order", orderID)
		return nil
	}

	data, err := orderEmailData(orderID)
	if err != nil {
		return err
	}

	templatePath := filepath.Join("templates", "order_receipt.html")
	subject := fmt.Sprintf("Your Footloft order #%d", data.OrderID)
	return SendEmail(data.Address.Email, subject, data, templatePath)
}

// SendAdminAlert notifies the ADMIN_EMAILS distribution list about a
// finalized order.
func SendAdminAlert(orderID uint) error {
	if os.Getenv("SMTP_ADDRESS") == "" {
		log.Println("SMTP_ADDRESS not set; skipping admin alert for order", orderID)
		return nil
	}

	data, err := orderEmailData(orderID)
	if err != nil {
		return err
	}

	templatePath := filepath.Join("templates", "admin_alert.html")
	subject := fmt.Sprintf("New order #%d (%s)", data.OrderID, data.PaymentMethod)

	for _, admin := range strings.Split(os.Getenv("ADMIN_EMAILS"), ",") {
		admin = strings.TrimSpace(admin)
		if admin == "" {
			continue
		}
		if err := SendEmail(admin, subject, data, templatePath); err != nil {
			return err
		}
	}
	return nil
}
