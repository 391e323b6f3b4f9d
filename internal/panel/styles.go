package panel

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the panel
const (
	colorAccent    = "220" // Warm yellow - titles, the lit-bulb accent
	colorHighlight = "205" // Magenta - selected items
	colorDanger    = "196" // Red - errors, the unpair action
	colorMuted     = "241" // Gray - dimmed text, hints
	colorText      = "252" // Light gray - normal text
	colorOn        = "114" // Green - lights that are on
)

// styles contains shared style definitions used across views.
var styles = struct {
	Title    lipgloss.Style // Bold accent - the panel header
	Section  lipgloss.Style // Section headers (Lights / Groups / Scenes)
	Selected lipgloss.Style // Row under the cursor
	Normal   lipgloss.Style // Normal rows
	Muted    lipgloss.Style // Hints, empty states
	On       lipgloss.Style // On-state marker
	Off      lipgloss.Style // Off-state marker
	Error    lipgloss.Style // Status line errors
	Box      lipgloss.Style // The more-menu overlay
	Danger   lipgloss.Style // Destructive actions in the more menu
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)),
	Section: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorHighlight)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
	On: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorOn)),
	Off: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorAccent)).
		Padding(1, 2),
	Danger: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorDanger)),
}

// swatch renders a small color block for a light's current color.
func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
