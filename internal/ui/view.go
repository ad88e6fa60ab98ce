package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/amishk599/careerforge/internal/forge"
)

const (
	skeletonCount = 3
	skeletonBar   = "▓▓▓▓▓▓▓▓▓▓"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if msg, ok := m.session.Alert(); ok {
		return m.renderAlert(msg)
	}

	header := brandStyle.Render("CAREERFORGE") + brandAccentStyle.Render("AI")

	var left string
	if m.picking {
		left = m.renderPicker()
	} else {
		left = lipgloss.JoinVertical(lipgloss.Left, m.renderUpload(), m.renderJobDescription())
	}
	right := m.paneStyle(focusResults).Width(m.rightWidth - 2).Render(m.results.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatusBar())
}

func (m Model) paneStyle(f focus) lipgloss.Style {
	if m.focus == f && !m.picking {
		return activeBorderStyle
	}
	return inactiveBorderStyle
}

func (m Model) renderUpload() string {
	upload := m.session.Upload()

	var b strings.Builder
	b.WriteString(sectionStyle.Render("RESUME"))
	b.WriteString("\n\n")

	file, ok := upload.File()
	if ok {
		b.WriteString(fileNameStyle.Render(file.Name))
		meta := humanize.Bytes(uint64(file.Size))
		if file.Pages > 0 {
			meta += fmt.Sprintf(" · %d pages", file.Pages)
		}
		b.WriteString("  " + hintStyle.Render(meta))
	} else {
		b.WriteString(hintStyle.Render("Press ctrl+o to select your Resume (PDF)"))
	}
	if m.pickErr != "" {
		b.WriteString("\n" + gapsHeaderStyle.Render(m.pickErr))
	}
	b.WriteString("\n\n")

	switch upload.Status() {
	case forge.UploadSucceeded:
		b.WriteString(successStyle.Render("✓ Resume Processed & Forged"))
	case forge.Uploading:
		b.WriteString(disabledButtonStyle.Render(m.spinner.View() + " Processing..."))
	default:
		if ok {
			b.WriteString(buttonStyle.Render("Confirm Upload") + " " + hintStyle.Render("ctrl+s"))
		}
	}

	return m.paneStyle(focusUpload).Width(m.leftWidth - 2).Render(b.String())
}

func (m Model) renderJobDescription() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("JOB DESCRIPTION"))
	b.WriteString("\n\n")
	b.WriteString(m.jd.View())
	b.WriteString("\n\n")

	if m.session.AnalysisLoading() {
		b.WriteString(disabledButtonStyle.Render(m.spinner.View() + " FORGING..."))
	} else {
		b.WriteString(buttonStyle.Render("RUN ENGINE ➤"))
	}
	b.WriteString(" ")
	b.WriteString(secondaryButtonStyle.Render("↻ RESET"))

	return m.paneStyle(focusJobDescription).Width(m.leftWidth - 2).Render(b.String())
}

func (m Model) renderPicker() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("SELECT RESUME (PDF)"))
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.picker.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.picker.View())
	return activeBorderStyle.Width(m.leftWidth - 2).Render(b.String())
}

// renderResults draws the analysis pane content at the given width.
func (m Model) renderResults(width int) string {
	result := m.session.Analysis()
	if result == nil {
		return lipgloss.Place(width, max(m.results.Height, 3), lipgloss.Center, lipgloss.Center,
			standbyStyle.Render("System Standby. Awaiting Data Input for Neural Analysis."))
	}

	var b strings.Builder

	score := scoreStyle.Render(fmt.Sprintf("%3d", result.MatchScore)) + " " + scoreLabelStyle.Render("MATCH %")
	b.WriteString(score + "  " + m.score.ViewAs(float64(result.MatchScore)/100))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("AI INSIGHTS"))
	b.WriteString("\n")
	b.WriteString(quoteStyle.Width(width).Render("\""+result.ProfessionalAssessment+"\""))
	b.WriteString("\n\n")

	b.WriteString(strengthHeaderStyle.Render("⚡ CORE STRENGTH"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(result.KeyStrength))
	b.WriteString("\n\n")

	b.WriteString(gapsHeaderStyle.Render("TARGETED GAPS"))
	b.WriteString("\n")
	chips := make([]string, 0, len(result.TechnicalGaps))
	for _, gap := range result.TechnicalGaps {
		chips = append(chips, chipStyle.Render(strings.ToUpper(gap)))
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("STRATEGIC GAP CLOSER"))
	b.WriteString("\n")
	b.WriteString(ideaStyle.Width(width).Render(result.StrategicProjectIdea))
	b.WriteString("\n\n")
	b.WriteString(m.roadmapButton())

	if roadmap := m.renderRoadmap(width); roadmap != "" {
		b.WriteString("\n\n")
		b.WriteString(roadmap)
	}
	return b.String()
}

func (m Model) roadmapButton() string {
	switch {
	case m.session.RoadmapLoading():
		return disabledButtonStyle.Render(m.spinner.View() + " ANALYZING ARCHITECTURE...")
	case m.session.Roadmap() != nil:
		return disabledButtonStyle.Render("ROADMAP GENERATED")
	default:
		return buttonStyle.Render("View Roadmap") + " " + hintStyle.Render("ctrl+g")
	}
}

func (m Model) renderRoadmap(width int) string {
	if m.session.RoadmapLoading() {
		blocks := make([]string, 0, skeletonCount)
		for i := 0; i < skeletonCount; i++ {
			blocks = append(blocks,
				skeletonTitleStyle.Render(skeletonBar)+"\n"+
					skeletonBodyStyle.Render(strings.Repeat("░", max(width/2, 10))))
		}
		return strings.Join(blocks, "\n\n")
	}

	phases := m.session.Roadmap()
	if phases == nil {
		return ""
	}
	rail := phaseRailStyle.Render("│")
	blocks := make([]string, 0, len(phases))
	for _, p := range phases {
		task := lipgloss.NewStyle().Width(max(width-2, 10)).Render(p.Task)
		lines := strings.Split(task, "\n")
		for i, line := range lines {
			lines[i] = rail + " " + line
		}
		blocks = append(blocks, phaseTitleStyle.Render("● "+p.Title)+"\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderStatusBar() string {
	var hints string
	if m.picking {
		hints = "↑/↓ navigate  enter select  ← back  esc cancel"
	} else {
		hints = "tab focus  ctrl+o select  ctrl+s upload  ctrl+r run  ctrl+g roadmap  ctrl+x reset  ctrl+c quit"
	}
	return statusBarStyle.Width(m.width).Render(hints)
}

func (m Model) renderAlert(msg string) string {
	box := alertBoxStyle.Width(min(60, max(m.width-4, 20))).Render(
		alertTitleStyle.Render("ALERT") + "\n\n" + msg + "\n\n" + hintStyle.Render("enter to dismiss"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
