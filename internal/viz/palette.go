package viz

import "github.com/charmbracelet/lipgloss"

// Palette is a sequence of color stops interpolated linearly.
type Palette []string

var palettes = map[string]Palette{
	"fire": {"#000000", "#9f0d21", "#ec4f0e", "#f9c932", "#ffffff"},
	"bgy":  {"#00008f", "#0e5fa3", "#00a383", "#67bf1f", "#fcf534"},
	"kgy":  {"#000000", "#0b4217", "#1e7c1e", "#62b517", "#fdf105"},
	"gray": {"#000000", "#ffffff"},
}

// Lookup returns the named palette, falling back to "fire".
func Lookup(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["fire"]
}

// At maps t in [0,1] to a terminal color along the ramp. Values outside
// [0,1] clamp to the endpoints.
func (p Palette) At(t float64) lipgloss.Color {
	if len(p) == 0 {
		return lipgloss.Color("#ffffff")
	}
	if t <= 0 {
		return lipgloss.Color(p[0])
	}
	if t >= 1 {
		return lipgloss.Color(p[len(p)-1])
	}
	span := t * float64(len(p)-1)
	i := int(span)
	frac := span - float64(i)

	r0, g0, b0 := parseHex(p[i])
	r1, g1, b1 := parseHex(p[i+1])
	r := int(float64(r0) + frac*float64(r1-r0))
	g := int(float64(g0) + frac*float64(g1-g0))
	b := int(float64(b0) + frac*float64(b1-b0))
	return lipgloss.Color(hexColor(r, g, b))
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
