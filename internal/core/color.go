package core

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a normalized "#rrggbb" colour. The empty Color means "use the
// terminal default".
type Color string

// Palette used by the simulation and the renderer.
const (
	ColorDefault  Color = ""
	ColorWhite    Color = "#ffffff"
	ColorObstacle Color = "#ff6b6b" // fallback for obstacles without a colour
	ColorGround   Color = "#07283e"
	ColorSky      Color = "#0b2a4a"
	ColorHorizon  Color = "#1b3d5c"
	ColorHUD      Color = "#e6f1ff"
	ColorGapEdge  Color = "#061626"
)

// ParseColor accepts "#rgb", "#rrggbb" and CSS-style "hsl(h s% l%)" strings
// and returns the colour in normalized hex form.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ColorDefault, false
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return ColorDefault, false
		}
		return Color(c.Clamped().Hex()), true
	}

	if strings.HasPrefix(s, "hsl(") {
		var h, sat, l float64
		if _, err := fmt.Sscanf(s, "hsl(%f %f%% %f%%)", &h, &sat, &l); err != nil {
			if _, err := fmt.Sscanf(s, "hsl(%f, %f%%, %f%%)", &h, &sat, &l); err != nil {
				return ColorDefault, false
			}
		}
		c := colorful.Hsl(h, sat/100, l/100)
		return Color(c.Clamped().Hex()), true
	}

	return ColorDefault, false
}

// ColorOr parses s and returns fallback when it is empty or malformed.
func ColorOr(s string, fallback Color) Color {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}

// Lighten adds amt (0-255 scale) to every channel, clamping each one.
func (c Color) Lighten(amt int) Color {
	cc, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	r, g, b := cc.RGB255()
	return Color(fmt.Sprintf("#%02x%02x%02x",
		Clamp(int(r)+amt, 0, 255),
		Clamp(int(g)+amt, 0, 255),
		Clamp(int(b)+amt, 0, 255),
	))
}

// RandomColor returns a saturated pastel colour with a random hue.
func RandomColor(rng *rand.Rand) Color {
	hue := float64(rng.Intn(360))
	return Color(colorful.Hsl(hue, 0.8, 0.65).Clamped().Hex())
}

// String returns the hex form of the colour.
func (c Color) String() string {
	return string(c)
}
