package dispatch

import (
	// Go Internal Packages
	"fmt"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"
	utils "quick-sale/utils"
)

// BuildLink turns a contact and message into a channel deep link. For
// the QR channel no link is built; the raw payment URL comes back for
// on-screen display and clipboard copy.
func BuildLink(method models.SendMethod, contact, subject, message, paymentURL string) (string, error) {
	switch method {
	case models.SendWhatsApp:
		number := utils.DigitsOnly(contact)
		if number == "" {
			return "", errors.E(errors.Dispatch, "whatsapp contact has no digits")
		}
		return fmt.Sprintf("https://wa.me/%s?text=%s", number, utils.URLEncode(message)), nil

	case models.SendSMS:
		number := utils.DigitsOnly(contact)
		if number == "" {
			return "", errors.E(errors.Dispatch, "sms contact has no digits")
		}
		return fmt.Sprintf("sms:%s?body=%s", number, utils.URLEncode(message)), nil

	case models.SendEmail:
		if contact == "" {
			return "", errors.E(errors.Dispatch, "email contact is empty")
		}
		return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
			contact, utils.URLEncode(subject), utils.URLEncode(message)), nil

	case models.SendQR:
		return paymentURL, nil
	}
	return "", errors.E(errors.Dispatch, fmt.Sprintf("unknown send method %q", method))
}

// EmailSubject synthesizes the mail subject from the formatted amount.
func EmailSubject(currency string, amount float64) string {
	return fmt.Sprintf("Payment Request — %s", utils.FormatAmount(currency, amount))
}
