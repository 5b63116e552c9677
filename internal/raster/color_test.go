package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_IsDark(t *testing.T) {
	tests := []struct {
		name      string
		c         Color
		threshold uint8
		want      bool
	}{
		{"all channels below threshold", Color{R: 10, G: 20, B: 30}, 110, true},
		{"one channel at threshold", Color{R: 10, G: 110, B: 30}, 110, false},
		{"all channels above threshold", Color{R: 200, G: 200, B: 200}, 110, false},
		{"black is always dark", Color{R: 0, G: 0, B: 0}, 1, true},
		{"white is never dark", Color{R: 255, G: 255, B: 255}, 255, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.IsDark(tt.threshold))
		})
	}
}

func TestMagenta(t *testing.T) {
	assert.Equal(t, Color{R: 0xff, G: 0x00, B: 0xff}, Magenta)
}
