package combo

import "github.com/charmbracelet/lipgloss"

// Styles controls the look of the widget.
type Styles struct {
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	Toggle         lipgloss.Style
	ToggleOpen     lipgloss.Style
	List           lipgloss.Style
	Option         lipgloss.Style
	OptionCursor   lipgloss.Style
	OptionSelected lipgloss.Style
	Description    lipgloss.Style
	Empty          lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle().Padding(0).Margin(0)

	return Styles{
		Input:          base.Foreground(lipgloss.Color("252")),
		InputFocused:   base.Foreground(lipgloss.Color("230")).Bold(true),
		Toggle:         base.Foreground(lipgloss.Color("244")),
		ToggleOpen:     base.Foreground(lipgloss.Color("213")).Bold(true),
		List:           base.Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("57")),
		Option:         base.Padding(0, 1).Foreground(lipgloss.Color("252")),
		OptionCursor:   base.Padding(0, 1).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("57")).Bold(true),
		OptionSelected: base.Padding(0, 1).Foreground(lipgloss.Color("51")).Bold(true),
		Description:    base.Foreground(lipgloss.Color("244")),
		Empty:          base.Padding(0, 1).Foreground(lipgloss.Color("244")).Italic(true),
	}
}
