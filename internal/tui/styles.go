package tui

import "github.com/charmbracelet/lipgloss"

var (
	// YapeColor is the Yape brand purple.
	YapeColor = lipgloss.Color("#742284")
	// PlinColor is the Plin brand cyan.
	PlinColor = lipgloss.Color("#00BFD8")
	// OtherColor marks amounts from unrecognized sources.
	OtherColor = lipgloss.Color("#888888")
	// SuccessColor indicates healthy state.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates degraded state.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates failures.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(YapeColor)

	// SubtitleStyle is used for secondary headings.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ErrorStyle formats the fetch-failure banner.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// SuccessStyle formats healthy status text.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats degraded status text.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// CardStyle is used for bordered metric cards.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(0, 1)

	// YapeStyle colors Yape amounts.
	YapeStyle = lipgloss.NewStyle().Foreground(YapeColor)
	// PlinStyle colors Plin amounts.
	PlinStyle = lipgloss.NewStyle().Foreground(PlinColor)
	// OtherStyle colors unattributed amounts.
	OtherStyle = lipgloss.NewStyle().Foreground(OtherColor)
)
