package models_test

import (
	// Go Internal Packages
	"bytes"
	"encoding/base64"
	"testing"

	// Local Packages
	models "quick-sale/models"
)

func signatureDataURL(raw []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)
}

func TestConsentSignatureLifecycle(t *testing.T) {
	var c models.Consent

	if !c.IsSignatureEmpty() {
		t.Fatal("fresh consent must have an empty signature")
	}
	if c.CaptureSignatureImage() != nil {
		t.Fatal("capturing an empty signature must return nil")
	}

	raw := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	if err := c.SetSignatureFromDataURL(signatureDataURL(raw)); err != nil {
		t.Fatalf("SetSignatureFromDataURL: %v", err)
	}
	if c.IsSignatureEmpty() {
		t.Fatal("signature must be non-empty after set")
	}

	captured := c.CaptureSignatureImage()
	if !bytes.Equal(captured, raw) {
		t.Fatalf("captured %v, want %v", captured, raw)
	}

	// After capture the image is immutable: neither clearing nor
	// replacing it may take effect.
	c.ClearSignature()
	if c.IsSignatureEmpty() {
		t.Error("clear after capture must be a no-op")
	}
	if err := c.SetSignatureFromDataURL(signatureDataURL([]byte{9})); err == nil {
		t.Error("replacing a captured signature must error")
	}
}

func TestConsentSetSignature(t *testing.T) {
	tests := []struct {
		name      string
		dataURL   string
		wantEmpty bool
		wantErr   bool
	}{
		{"empty payload stays empty", "data:image/png;base64,", true, false},
		{"blank string stays empty", "", true, false},
		{"bare base64 accepted", base64.StdEncoding.EncodeToString([]byte("sig")), false, false},
		{"invalid base64 rejected", "data:image/png;base64,!!!not-base64!!!", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c models.Consent
			err := c.SetSignatureFromDataURL(tt.dataURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if c.IsSignatureEmpty() != tt.wantEmpty {
				t.Errorf("IsSignatureEmpty = %v, want %v", c.IsSignatureEmpty(), tt.wantEmpty)
			}
		})
	}
}

func TestConsentClearBeforeCapture(t *testing.T) {
	var c models.Consent
	_ = c.SetSignatureFromDataURL(signatureDataURL([]byte{1, 2}))
	c.ClearSignature()
	if !c.IsSignatureEmpty() {
		t.Error("clear before capture must empty the signature")
	}
}
