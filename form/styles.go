package form

import "github.com/charmbracelet/lipgloss"

type styleSet struct {
	title        lipgloss.Style
	label        lipgloss.Style
	labelFocused lipgloss.Style
	required     lipgloss.Style
	err          lipgloss.Style
	help         lipgloss.Style
	status       lipgloss.Style
}

func newStyles() styleSet {
	base := lipgloss.NewStyle().Padding(0).Margin(0)

	return styleSet{
		title:        base.Foreground(lipgloss.Color("213")).Bold(true),
		label:        base.Foreground(lipgloss.Color("111")),
		labelFocused: base.Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true),
		required:     base.Foreground(lipgloss.Color("210")),
		err:          base.Foreground(lipgloss.Color("205")),
		help:         base.Foreground(lipgloss.Color("244")),
		status:       base.Foreground(lipgloss.Color("248")),
	}
}
