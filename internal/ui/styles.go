package ui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.Color("39")  // bright blue
	dim    = lipgloss.Color("240") // dim gray
	muted  = lipgloss.Color("245")
	text   = lipgloss.Color("252")

	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(0, 1)

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(dim).
				Padding(0, 1)

	brandStyle = lipgloss.NewStyle().
			Bold(true).
			Italic(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	brandAccentStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accent)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(muted)

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(text).
			Background(lipgloss.Color("236"))

	hintStyle = lipgloss.NewStyle().
			Foreground(dim).
			Italic(true)

	fileNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(text)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("25"))

	disabledButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 2).
				Foreground(muted).
				Background(lipgloss.Color("17"))

	secondaryButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 2).
				Foreground(text).
				Background(lipgloss.Color("237"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	scoreLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	quoteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(muted)

	strengthHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("42"))

	gapsHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	chipStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(muted).
			Background(lipgloss.Color("236"))

	ideaStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	phaseTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent)

	phaseRailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("25"))

	skeletonTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("238"))

	skeletonBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("236"))

	standbyStyle = lipgloss.NewStyle().
			Foreground(dim).
			Bold(true)

	alertBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 3)

	alertTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)
