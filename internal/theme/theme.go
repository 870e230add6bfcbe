// Package theme provides the Lip Gloss color palette and reusable styles
// for the streaming screen. It is a leaf package with no internal imports
// to avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Stream state colors.
var (
	ColorIdle        = lipgloss.Color("#4b5563")
	ColorConnecting  = lipgloss.Color("#7c3aed")
	ColorRunning     = lipgloss.Color("#16a34a")
	ColorPinRequest  = lipgloss.Color("#d97706")
	ColorQuit        = lipgloss.Color("#dc2626")
	ColorCreateError = lipgloss.Color("#dc2626")
)

// Rumble meter thresholds.
var (
	ColorRumbleLow  = lipgloss.Color("#22c55e") // <50%
	ColorRumbleMid  = lipgloss.Color("#d97706") // 50-80%
	ColorRumbleHigh = lipgloss.Color("#dc2626") // >80%
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorBg      = lipgloss.Color("#111827")
	ColorAccent  = lipgloss.Color("#3b82f6")
	ColorSurface = lipgloss.Color("#1f2937")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
)

// fadeRamp runs from fully transparent (the background) to fully opaque.
var fadeRamp = []lipgloss.Color{
	"#111827",
	"#374151",
	"#6b7280",
	"#9ca3af",
	"#f9fafb",
}

// FadeColor approximates a foreground at the given opacity. Terminals have no
// alpha channel, so opacity picks a step on a gray ramp.
func FadeColor(alpha float64) lipgloss.Color {
	switch {
	case alpha <= 0:
		return fadeRamp[0]
	case alpha >= 1:
		return fadeRamp[len(fadeRamp)-1]
	}
	return fadeRamp[int(alpha*float64(len(fadeRamp)-1)+0.5)]
}

// RumbleColor returns the meter color for an amplitude fraction.
func RumbleColor(pct float64) lipgloss.Color {
	switch {
	case pct > 0.8:
		return ColorRumbleHigh
	case pct > 0.5:
		return ColorRumbleMid
	default:
		return ColorRumbleLow
	}
}

// StateColor returns the color for a stream state label.
func StateColor(state string) lipgloss.Color {
	switch {
	case state == "idle":
		return ColorIdle
	case state == "connecting":
		return ColorConnecting
	case state == "running":
		return ColorRunning
	case hasPrefix(state, "login pin"):
		return ColorPinRequest
	case hasPrefix(state, "quit"):
		return ColorQuit
	case hasPrefix(state, "create error"):
		return ColorCreateError
	default:
		return ColorDimmed
	}
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)
)

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
