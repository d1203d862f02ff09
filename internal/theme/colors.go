package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - titles
	ColorSecondary Color = "86" // Cyan - branch names
)

// Publish status colors
const (
	ColorFailed    Color = "1" // Red
	ColorNoChanges Color = "3" // Yellow
	ColorPublished Color = "2" // Green
	ColorRunning   Color = "8" // Gray - run never finished
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorWarning   Color = "214" // Orange
)

// Change-set colors
const (
	ColorAdded    Color = "2" // Green
	ColorDeleted  Color = "1" // Red
	ColorModified Color = "3" // Yellow
)
