package combo

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// View renders the input line and, when open, the option list above or
// below it.
func (m *Model) View() string {
	m.sync()

	in := m.input
	in.SetValue(m.DisplayValue())

	inputStyle := m.styles.Input
	if m.focused {
		inputStyle = m.styles.InputFocused
	}
	icon, iconStyle := "▾", m.styles.Toggle
	if m.open {
		icon, iconStyle = "▴", m.styles.ToggleOpen
	}

	line := lipgloss.JoinHorizontal(lipgloss.Top,
		inputStyle.Render(in.View()),
		" ",
		m.locator.Mark(m.toggleZone(), iconStyle.Render(icon)),
	)
	line = m.locator.Mark(m.inputZone(), line)

	if !m.open {
		return line
	}
	list := m.locator.Mark(m.listZone(), m.listView())
	if m.placement.Upward {
		return lipgloss.JoinVertical(lipgloss.Left, list, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, list)
}

func (m *Model) listView() string {
	if len(m.options) == 0 {
		return m.styles.List.Render(m.styles.Empty.Render(padRight("no options", m.width)))
	}

	selected := IndexOf(m.value.Get(), m.options)
	start, end := visibleRange(m.highlight, len(m.options), m.listRows())
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		style := m.styles.Option
		switch i {
		case m.highlight:
			style = m.styles.OptionCursor
		case selected:
			style = m.styles.OptionSelected
		}
		lines = append(lines, m.locator.Mark(m.optionZone(i), m.optionLine(m.options[i], style)))
	}
	return m.styles.List.Render(strings.Join(lines, "\n"))
}

// optionLine renders one row of the list, width cells plus the row padding.
// The description keeps its own colour on the row background.
func (m *Model) optionLine(opt Option, style lipgloss.Style) string {
	label, desc := optionParts(opt, m.width)
	row := style.UnsetPadding()
	left, right := style.GetPaddingLeft(), style.GetPaddingRight()

	out := row.Render(strings.Repeat(" ", left) + label)
	fill := m.width - runewidth.StringWidth(label)
	if desc != "" {
		out += row.Render(" · ") + m.styles.Description.Inherit(row).Render(desc)
		fill -= 3 + runewidth.StringWidth(desc)
	}
	if fill < 0 {
		fill = 0
	}
	return out + row.Render(strings.Repeat(" ", fill+right))
}

// listRows is the number of options that fit in the placement height once
// the list frame is taken off.
func (m *Model) listRows() int {
	rows := m.placement.MaxHeight - m.styles.List.GetVerticalFrameSize()
	if rows < 1 {
		rows = 1
	}
	return rows
}

func optionParts(opt Option, width int) (label, desc string) {
	label = runewidth.Truncate(opt.Label, width, "…")
	if opt.Description == "" {
		return label, ""
	}
	room := width - runewidth.StringWidth(label) - 3
	if room < 4 {
		return label, ""
	}
	return label, runewidth.Truncate(opt.Description, room, "…")
}

// visibleRange returns the window of at most rows options that keeps the
// highlighted one in view.
func visibleRange(highlight, n, rows int) (int, int) {
	if rows <= 0 || rows >= n {
		return 0, n
	}
	start := 0
	if highlight >= rows {
		start = highlight - rows + 1
	}
	return start, start + rows
}

func padRight(text string, width int) string {
	return runewidth.FillRight(text, width)
}
