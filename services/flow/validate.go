package flow

import (
	// Go Internal Packages
	"strings"

	// Local Packages
	errors "quick-sale/errors"
	models "quick-sale/models"
	utils "quick-sale/utils"
)

// minPhoneDigits is the shortest digit-only contact accepted for the
// phone-based channels.
const minPhoneDigits = 9

func validateAmount(draft *models.FlowDraft) error {
	_, cents, err := models.ParseAmount(draft.Amount)
	if err != nil {
		return err
	}
	if cents <= 0 {
		return errors.E(errors.Invalid, "amount must be greater than zero")
	}
	return nil
}

func validateChannel(draft *models.FlowDraft, enabled []models.Gateway) error {
	ve := errors.ValidationErrs()

	found := false
	for _, g := range enabled {
		if g == draft.Gateway {
			found = true
			break
		}
	}
	if !found {
		ve.Add("gateway", "must be one of the enabled gateways")
	}

	if !draft.SendMethod.Valid() {
		ve.Add("sendMethod", "unknown delivery channel")
	} else if draft.SendMethod.RequiresContact() {
		contact := strings.TrimSpace(draft.Contact)
		switch {
		case contact == "":
			ve.Add("contact", "cannot be empty")
		case draft.SendMethod == models.SendEmail && !strings.Contains(contact, "@"):
			ve.Add("contact", "must be an email address")
		case draft.SendMethod != models.SendEmail && len(utils.DigitsOnly(contact)) < minPhoneDigits:
			ve.Add("contact", "phone number needs at least 9 digits")
		}
	}

	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}

func validateConsent(draft *models.FlowDraft) error {
	ve := errors.ValidationErrs()
	if !draft.Consent.IsAccepted() {
		ve.Add("tcAccepted", "terms must be accepted")
	}
	if draft.Consent.IsSignatureEmpty() {
		ve.Add("signature", "signature cannot be empty")
	}
	if err := ve.Err(); err != nil {
		return errors.ValidationFailedErr(err)
	}
	return nil
}
