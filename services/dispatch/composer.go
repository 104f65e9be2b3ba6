package dispatch

import (
	// Go Internal Packages
	"fmt"
)

// FormatPaymentMessage renders the human-readable payment message sent
// alongside the link. Rendering is deterministic: the same inputs always
// produce the same text, which the QR/copy fallback relies on.
func FormatPaymentMessage(businessName string, amount float64, currency, paymentURL, description string) string {
	forLine := ""
	if description != "" {
		forLine = fmt.Sprintf("\nFor: %s", description)
	}
	return fmt.Sprintf(
		"Hi! Here is your payment link from %s.\n\nAmount: %s %.2f%s\n\nPay securely here:\n%s\n\nThank you! 🙏",
		businessName, currency, amount, forLine, paymentURL,
	)
}
