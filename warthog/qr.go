package warthog

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"
)

// AddressQRCode generates QR code of address as base64 PNG
func AddressQRCode(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	// Get PNG image
	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
