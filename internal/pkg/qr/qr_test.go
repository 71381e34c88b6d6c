package qr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetURL(t *testing.T) {
	g := NewGenerator("https://app.dieselx.dev")
	assert.Equal(t, "https://app.dieselx.dev/qr/eq-1", g.TargetURL("eq-1"))
}

func TestGeneratePNG(t *testing.T) {
	g := NewGenerator("https://app.dieselx.dev")

	target, png, err := g.GeneratePNG("eq-1")
	assert.NoError(t, err)
	assert.Equal(t, "https://app.dieselx.dev/qr/eq-1", target)
	assert.True(t, len(png) > 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestGeneratePNGRequiresID(t *testing.T) {
	g := NewGenerator("https://app.dieselx.dev")

	_, _, err := g.GeneratePNG("")
	assert.Error(t, err)
}
