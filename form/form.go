// Package form hosts combo inputs in a keyboard and mouse driven form.
package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"expoadmin/applog"
	"expoadmin/combo"
)

// ErrCancelled is returned by Err when the user left without submitting.
var ErrCancelled = errors.New("form cancelled")

const (
	labelWidth = 14
	fieldWidth = 32
)

// KeyMap holds the form level bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the standard set of bindings.
var DefaultKeyMap = KeyMap{
	Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Config configures a form.
type Config struct {
	Sources Sources
	Logger  *applog.Logger
	// Values prefills the form.
	Values map[string]string
	// Locator replaces the bubblezone manager the form creates otherwise.
	Locator combo.Locator
}

type field struct {
	def    Field
	widget *combo.Model
	err    string
}

// Model is a form. It implements tea.Model.
type Model struct {
	def     Definition
	fields  []*field
	values  map[string]string
	focus   int
	sources Sources
	log     *applog.Logger

	zones   *zone.Manager
	locator combo.Locator
	clicks  *combo.ClickAway

	keys      KeyMap
	styles    styleSet
	status    string
	submitted bool
	cancelled bool
}

// New builds a form for def with the first field focused.
func New(def Definition, cfg Config) *Model {
	m := &Model{
		def:     def,
		values:  make(map[string]string, len(def.Fields)),
		sources: cfg.Sources,
		log:     cfg.Logger,
		locator: cfg.Locator,
		clicks:  combo.NewClickAway(),
		keys:    DefaultKeyMap,
		styles:  newStyles(),
	}
	if m.locator == nil {
		m.zones = zone.New()
		m.locator = combo.NewZoneLocator(m.zones)
	}
	for k, v := range cfg.Values {
		m.values[k] = v
	}

	for _, fd := range def.Fields {
		f := &field{def: fd}
		name := fd.Key
		f.widget = combo.New(combo.Config{
			ID:              def.Kind + "-" + fd.Key,
			Placeholder:     fd.Placeholder,
			Width:           fieldWidth,
			ForcedSelection: fd.Forced,
			Secret:          fd.Secret,
			Value: combo.Bind(
				func() string { return m.values[name] },
				func(v string) {
					m.values[name] = v
					f.err = ""
				},
			),
			OnBlur:    func() { m.check(f) },
			Locator:   m.locator,
			ClickAway: m.clicks,
		})
		m.fields = append(m.fields, f)
	}
	if len(m.fields) > 0 {
		m.fields[0].widget.Focus()
	}
	return m
}

// Init starts loading the option sources of every field.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	seen := make(map[string]bool)
	for _, f := range m.fields {
		src := f.def.Source
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		cmds = append(cmds, m.sources.Load(src))
	}
	return tea.Batch(cmds...)
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for _, f := range m.fields {
			f.widget.Update(msg)
		}
		return m, nil
	case OptionsMsg:
		m.applyOptions(msg)
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	}

	if cur := m.current(); cur != nil {
		return m, cur.widget.Update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.cancel()
		return tea.Quit
	}
	cur := m.current()
	if cur == nil {
		return nil
	}
	open := cur.widget.DropdownOpen()

	switch {
	case key.Matches(msg, m.keys.Next):
		cur.widget.Update(msg)
		return m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Prev):
		cur.widget.Update(msg)
		return m.setFocus(m.focus - 1)
	case key.Matches(msg, m.keys.Submit) && !open:
		return m.submit()
	case key.Matches(msg, m.keys.Cancel) && !open:
		m.cancel()
		return tea.Quit
	}
	return cur.widget.Update(msg)
}

// handleMouse runs the outside-click listeners first, so a dropdown closed
// by this press is closed before focus moves.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	m.clicks.Dispatch(msg)

	ev := tea.MouseEvent(msg)
	for i, f := range m.fields {
		if !f.widget.Contains(msg.X, msg.Y) {
			continue
		}
		var cmds []tea.Cmd
		if ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft {
			cmds = append(cmds, m.setFocus(i))
		}
		cmds = append(cmds, f.widget.Update(msg))
		return tea.Batch(cmds...)
	}
	return nil
}

func (m *Model) applyOptions(msg OptionsMsg) {
	if msg.Err != nil {
		m.log.Logf("load options %s: %v", msg.Source, msg.Err)
		m.status = fmt.Sprintf("Could not load %s options", strings.TrimPrefix(msg.Source, dictPrefix))
		return
	}
	for _, f := range m.fields {
		if f.def.Source == msg.Source {
			f.widget.SetOptions(msg.Options)
		}
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	n := len(m.fields)
	if n == 0 {
		return nil
	}
	i = (i%n + n) % n
	if i == m.focus {
		return nil
	}
	m.fields[m.focus].widget.Blur()
	m.focus = i
	return m.fields[i].widget.Focus()
}

// check validates f and records the message shown under it.
func (m *Model) check(f *field) bool {
	value := m.values[f.def.Key]
	err := f.def.Check(value)
	if err == nil && f.def.Forced && value != "" && !combo.IsAllowedValue(value, f.widget.Options()) {
		err = fieldError(f.def, "forced")
	}
	if err != nil {
		f.err = err.Error()
		return false
	}
	f.err = ""
	return true
}

func (m *Model) submit() tea.Cmd {
	valid := true
	for _, f := range m.fields {
		if !m.check(f) {
			valid = false
		}
	}
	if !valid {
		m.status = "Please correct the marked fields"
		return nil
	}
	m.submitted = true
	m.status = ""
	m.log.Logf("form %s submitted", m.def.Kind)
	return tea.Quit
}

func (m *Model) cancel() {
	m.cancelled = true
	m.log.Logf("form %s cancelled", m.def.Kind)
}

func (m *Model) current() *field {
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[m.focus]
}

// Focused returns the key of the focused field.
func (m *Model) Focused() string {
	if cur := m.current(); cur != nil {
		return cur.def.Key
	}
	return ""
}

// Widget returns the input of the field called name, or nil.
func (m *Model) Widget(name string) *combo.Model {
	for _, f := range m.fields {
		if f.def.Key == name {
			return f.widget
		}
	}
	return nil
}

// FieldError returns the validation message of the field called name.
func (m *Model) FieldError(name string) string {
	for _, f := range m.fields {
		if f.def.Key == name {
			return f.err
		}
	}
	return ""
}

// Values returns a copy of the form values keyed by field.
func (m *Model) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.def.Key] = strings.TrimSpace(m.values[f.def.Key])
	}
	return out
}

// Submitted reports whether the form was saved.
func (m *Model) Submitted() bool { return m.submitted }

// Cancelled reports whether the user left the form.
func (m *Model) Cancelled() bool { return m.cancelled }

// Err returns ErrCancelled unless the form was submitted.
func (m *Model) Err() error {
	if m.submitted {
		return nil
	}
	return ErrCancelled
}

// Close releases every widget and the zone manager.
func (m *Model) Close() {
	for _, f := range m.fields {
		f.widget.Unmount()
	}
	if m.zones != nil {
		m.zones.Close()
	}
}

// View renders the form.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.def.Title))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		label := runewidth.FillRight(runewidth.Truncate(f.def.Label, labelWidth-2, "…"), labelWidth-2)
		style := m.styles.label
		if i == m.focus {
			style = m.styles.labelFocused
		}
		mark := "  "
		if f.def.Required {
			mark = m.styles.required.Render(" *")
		}
		head := style.Render(label) + mark

		align := lipgloss.Top
		if f.widget.DropdownOpen() && f.widget.Placement().Upward {
			align = lipgloss.Bottom
		}
		b.WriteString(lipgloss.JoinHorizontal(align, head, " ", f.widget.View()))
		b.WriteString("\n")
		if f.err != "" {
			b.WriteString(strings.Repeat(" ", labelWidth+1))
			b.WriteString(m.styles.err.Render(f.err))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	help := "Tab/Shift+Tab: Move  ↑/↓: Options  Enter: Select/Save  Esc: Close/Cancel"
	if m.hasSecret() {
		help += "  Ctrl+R: Show password"
	}
	b.WriteString(m.styles.help.Render(help))

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.status.Render(m.status))
	}

	if m.zones != nil {
		return m.zones.Scan(b.String())
	}
	return b.String()
}

func (m *Model) hasSecret() bool {
	for _, f := range m.fields {
		if f.def.Secret {
			return true
		}
	}
	return false
}
