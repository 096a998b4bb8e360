package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
)

const DefaultColor = "blue"

// Palette lists the project colours in display order.
var Palette = []dto.PaletteColor{
	{Name: "red", Hex: "#ef4444"},
	{Name: "pink", Hex: "#ec4899"},
	{Name: "orange", Hex: "#f97316"},
	{Name: "yellow", Hex: "#eab308"},
	{Name: "lime", Hex: "#84cc16"},
	{Name: "green", Hex: "#22c55e"},
	{Name: "emerald", Hex: "#10b981"},
	{Name: "teal", Hex: "#14b8a6"},
	{Name: "cyan", Hex: "#06b6d4"},
	{Name: "blue", Hex: "#3b82f6"},
	{Name: "indigo", Hex: "#6366f1"},
	{Name: "purple", Hex: "#a855f7"},
	{Name: "violet", Hex: "#7c3aed"},
	{Name: "fuchsia", Hex: "#d946ef"},
}

var paletteHex = func() map[string]string {
	m := make(map[string]string, len(Palette))
	for _, c := range Palette {
		m[c.Name] = c.Hex
	}
	return m
}()

// NormalizeColor returns name if it is a palette colour, DefaultColor otherwise.
func NormalizeColor(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, ok := paletteHex[name]; ok {
		return name
	}
	return DefaultColor
}

// ColorValue returns the hex value of a palette colour. A non-nil opacity in
// [0,1] appends a two-digit alpha channel.
func ColorValue(name string, opacity *float64) string {
	hex := paletteHex[NormalizeColor(name)]
	if opacity == nil {
		return hex
	}
	o := math.Min(math.Max(*opacity, 0), 1)
	return hex + fmt.Sprintf("%02x", int(math.Round(o*255)))
}
