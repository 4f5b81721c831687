package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendPayoutNotification emails a vendor after a payout completes.
// Failures are logged, never fatal - the payout has already committed.
func SendPayoutNotification(to, storeName string, amount float64, reference string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		LogDebug("SMTP not configured or vendor has no email, skipping payout notification")
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your payout has been processed")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>A payout of <b>%.2f</b> has been sent to your account.</p><p>Reference: %s</p>",
		storeName, amount, reference,
	))

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send payout notification: %v", err)
	}

	return nil
}
