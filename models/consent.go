package models

import (
	// Go Internal Packages
	"encoding/base64"
	"strings"

	// Local Packages
	errors "quick-sale/errors"
)

// Consent holds the terms-acceptance flag and the raw signature image
// for one flow session. The signature is captured exactly once, when
// dispatching begins; after that it cannot be cleared and a fresh
// session is needed for a new capture.
type Consent struct {
	Accepted  bool
	signature []byte
	captured  bool
}

// SetSignatureFromDataURL decodes a base64 data URL (as produced by a
// signature canvas) into the raw image bytes. An empty payload leaves
// the signature empty rather than erroring.
func (c *Consent) SetSignatureFromDataURL(dataURL string) error {
	if c.captured {
		return errors.E(errors.Conflict, "signature already captured, start a new session")
	}
	payload := dataURL
	if _, after, found := strings.Cut(dataURL, ";base64,"); found {
		payload = after
	}
	if strings.TrimSpace(payload) == "" {
		c.signature = nil
		return nil
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return errors.E(errors.Invalid, "signature image is not valid base64", err)
	}
	c.signature = raw
	return nil
}

func (c *Consent) IsAccepted() bool {
	return c.Accepted
}

func (c *Consent) IsSignatureEmpty() bool {
	return len(c.signature) == 0
}

// ClearSignature discards an uncaptured signature. Once captured the
// signature is part of the immutable record and clearing is a no-op.
func (c *Consent) ClearSignature() {
	if c.captured {
		return
	}
	c.signature = nil
}

// CaptureSignatureImage freezes and returns the signature bytes, or nil
// when no signature was drawn.
func (c *Consent) CaptureSignatureImage() []byte {
	if len(c.signature) == 0 {
		return nil
	}
	c.captured = true
	return c.signature
}
