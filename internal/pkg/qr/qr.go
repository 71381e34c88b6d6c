package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// Generator builds the public portal URL for an equipment unit and renders it
// as a QR PNG. The base URL comes from runtime config, not the environment.
type Generator struct {
	baseURL string
}

func NewGenerator(baseURL string) *Generator {
	return &Generator{baseURL: baseURL}
}

func (g *Generator) TargetURL(equipmentID string) string {
	return fmt.Sprintf("%s/qr/%s", g.baseURL, equipmentID)
}

// GeneratePNG renders the portal link for the equipment as a QR PNG.
func (g *Generator) GeneratePNG(equipmentID string) (string, []byte, error) {
	if equipmentID == "" {
		return "", nil, errors.New("equipment id is required for QR generation")
	}

	target := g.TargetURL(equipmentID)
	png, err := qrcode.Encode(target, qrcode.Medium, 256)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode QR: %w", err)
	}

	return target, png, nil
}
