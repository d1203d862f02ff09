package theme

import (
	"github.com/charmbracelet/lipgloss"

	"taxsync/internal/domain"
)

// Main text styles
var (
	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Change-set styles
var (
	AddedStyle = lipgloss.NewStyle().
			Foreground(ColorAdded)

	DeletedStyle = lipgloss.NewStyle().
			Foreground(ColorDeleted)

	ModifiedStyle = lipgloss.NewStyle().
			Foreground(ColorModified)
)

// Publish status styles
var (
	FailedStyle = lipgloss.NewStyle().
			Foreground(ColorFailed).
			Bold(true)

	NoChangesStyle = lipgloss.NewStyle().
			Foreground(ColorNoChanges)

	PublishedStyle = lipgloss.NewStyle().
			Foreground(ColorPublished).
			Bold(true)

	RunningStyle = lipgloss.NewStyle().
			Foreground(ColorRunning)
)

// ChangeStyle returns the style used to render a change-set entry
func ChangeStyle(status domain.ChangeStatus) lipgloss.Style {
	switch status {
	case domain.ChangeAdded:
		return AddedStyle
	case domain.ChangeDeleted:
		return DeletedStyle
	case domain.ChangeModified:
		return ModifiedStyle
	default:
		return NormalStyle
	}
}

// ChangeMarker returns the one-letter marker of a change status
func ChangeMarker(status domain.ChangeStatus) string {
	switch status {
	case domain.ChangeAdded:
		return "A"
	case domain.ChangeDeleted:
		return "D"
	case domain.ChangeModified:
		return "M"
	default:
		return "?"
	}
}

// StatusStyle returns the style used to render a publish status.
// The empty status is a run that never finished.
func StatusStyle(status domain.PublishStatus) lipgloss.Style {
	switch status {
	case domain.PublishStatusFailed:
		return FailedStyle
	case domain.PublishStatusNoChanges:
		return NoChangesStyle
	case domain.PublishStatusPublished:
		return PublishedStyle
	default:
		return RunningStyle
	}
}
