package combo

import (
	"fmt"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const defaultWidth = 30

var idSeq atomic.Int64

// Config is the construction contract of a widget.
type Config struct {
	// ID prefixes the zone marks of the widget. It must be unique per page;
	// a sequential one is generated when empty.
	ID          string
	Placeholder string
	Width       int

	Options         []Option
	ForcedSelection bool
	Secret          bool

	// Value is the owner's value. Set is called for every change. When nil
	// the widget keeps the value itself.
	Value Accessor[string]
	// Visibility, when set, puts the owner in charge of whether the
	// dropdown is shown.
	Visibility Accessor[bool]

	OnFocus func()
	OnBlur  func()

	Locator   Locator
	ClickAway *ClickAway
	Placer    Placer
	KeyMap    *KeyMap
	Styles    *Styles
}

// Model is a combo input. Use New to create one.
type Model struct {
	id     string
	input  textinput.Model
	width  int
	forced bool
	secret bool

	options   []Option
	focused   bool
	open      bool
	highlight int
	hovering  bool
	reveal    bool

	placement      Placement
	viewportHeight int

	value      Accessor[string]
	visibility Accessor[bool]
	external   bool
	onFocus    func()
	onBlur     func()

	locator Locator
	clicks  *ClickAway
	sub     *Subscription
	placer  Placer
	keys    KeyMap
	styles  Styles
}

// New builds a closed, unfocused widget from cfg.
func New(cfg Config) *Model {
	m := &Model{
		id:        cfg.ID,
		width:     cfg.Width,
		forced:    cfg.ForcedSelection,
		secret:    cfg.Secret,
		options:   cfg.Options,
		highlight: -1,
		value:     cfg.Value,
		onFocus:   cfg.OnFocus,
		onBlur:    cfg.OnBlur,
		locator:   cfg.Locator,
		clicks:    cfg.ClickAway,
		placer:    cfg.Placer,
		keys:      DefaultKeyMap,
		styles:    DefaultStyles(),
	}
	if m.id == "" {
		m.id = fmt.Sprintf("combo%d", idSeq.Add(1))
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.value == nil {
		m.value = NewRef("")
	}
	if cfg.Visibility != nil {
		m.visibility = cfg.Visibility
		m.external = true
	} else {
		m.visibility = NewRef(false)
	}
	if m.locator == nil {
		m.locator = nopLocator{}
	}
	if m.placer.DropdownHeight <= 0 {
		m.placer = TerminalPlacer
	}
	if cfg.KeyMap != nil {
		m.keys = *cfg.KeyMap
	}
	if cfg.Styles != nil {
		m.styles = *cfg.Styles
	}

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = cfg.Placeholder
	m.input.Width = m.width
	if m.secret {
		m.input.EchoMode = textinput.EchoPassword
		m.input.EchoCharacter = '•'
	}

	m.open = m.visibility.Get()
	if m.open {
		m.opened()
	}
	return m
}

// ID returns the zone prefix of the widget.
func (m *Model) ID() string { return m.id }

// Value returns the owner's current value.
func (m *Model) Value() string { return m.value.Get() }

// DisplayValue is the text rendered in the input.
func (m *Model) DisplayValue() string {
	return DisplayValue(m.value.Get(), m.options, m.forced)
}

// Options returns the current option list.
func (m *Model) Options() []Option { return m.options }

// Focused reports whether the input has focus.
func (m *Model) Focused() bool { return m.focused }

// ExternallyControlled reports whether the owner drives dropdown visibility.
func (m *Model) ExternallyControlled() bool { return m.external }

// Highlighted returns the highlighted option index, -1 for none.
func (m *Model) Highlighted() int {
	m.sync()
	return m.highlight
}

// DropdownOpen reports whether the option list is shown.
func (m *Model) DropdownOpen() bool {
	m.sync()
	return m.open
}

// Placement returns the result of the last placement decision.
func (m *Model) Placement() Placement { return m.placement }

// Revealed reports whether a secret value is shown in clear text.
func (m *Model) Revealed() bool { return m.reveal }

// Listening reports whether the widget holds an outside-click registration.
func (m *Model) Listening() bool { return m.sub.Active() }

// SetOptions replaces the option list. A different list clears the
// highlight; visibility and focus are left alone.
func (m *Model) SetOptions(options []Option) {
	m.sync()
	if !sameOptions(m.options, options) {
		m.highlight = -1
		m.hovering = false
	}
	m.options = options
	if m.highlight >= len(m.options) {
		m.highlight = -1
	}
}

// Focus gives the input focus.
func (m *Model) Focus() tea.Cmd {
	if m.focused {
		return nil
	}
	m.focused = true
	cmd := m.input.Focus()
	if m.onFocus != nil {
		m.onFocus()
	}
	return cmd
}

// Blur removes focus. With forced selection a value that is not one of the
// options is cleared.
func (m *Model) Blur() {
	if !m.focused {
		return
	}
	m.focused = false
	m.input.Blur()
	if m.forced && len(m.options) > 0 {
		if v := m.value.Get(); v != "" && !IsAllowedValue(v, m.options) {
			m.value.Set("")
		}
	}
	if m.onBlur != nil {
		m.onBlur()
	}
}

// Open shows the option list.
func (m *Model) Open() { m.setOpen(true) }

// Close hides the option list.
func (m *Model) Close() { m.setOpen(false) }

// Toggle flips the option list, as the toggle icon does.
func (m *Model) Toggle() {
	m.sync()
	m.setOpen(!m.open)
}

// ToggleReveal flips masking of a secret value.
func (m *Model) ToggleReveal() {
	if !m.secret {
		return
	}
	m.reveal = !m.reveal
	if m.reveal {
		m.input.EchoMode = textinput.EchoNormal
	} else {
		m.input.EchoMode = textinput.EchoPassword
	}
}

// Commit selects option i: the owner receives its value, the list closes
// and the input takes focus.
func (m *Model) Commit(i int) tea.Cmd {
	if i < 0 || i >= len(m.options) {
		return nil
	}
	m.value.Set(m.options[i].Key())
	m.Close()
	return m.Focus()
}

// Unmount releases the outside-click registration.
func (m *Model) Unmount() {
	m.sub.Release()
	m.sub = nil
}

// Update handles key, mouse and window size messages.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	m.sync()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportHeight = msg.Height
		return nil
	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.options)
	switch {
	case key.Matches(msg, m.keys.Next) && n > 0:
		m.step(1)
		return nil
	case key.Matches(msg, m.keys.Prev) && n > 0:
		m.step(-1)
		return nil
	case key.Matches(msg, m.keys.Select) && m.open && m.highlight >= 0:
		return m.Commit(m.highlight)
	case key.Matches(msg, m.keys.Close) && m.open:
		m.Close()
		return nil
	case key.Matches(msg, m.keys.Leave):
		// Not consumed: the owner moves focus.
		if m.open {
			m.Close()
		}
		return nil
	case key.Matches(msg, m.keys.Reveal) && m.secret:
		m.ToggleReveal()
		return nil
	}
	return m.typeKey(msg)
}

// step moves the highlight, opening the list first when needed. Without a
// highlight the first key lands on the first option, or the last for Up.
func (m *Model) step(delta int) {
	seed := !m.open || m.highlight < 0
	if !m.open {
		m.setOpen(true)
		if !m.open {
			return
		}
	}
	n := len(m.options)
	m.hovering = false
	if seed {
		if delta > 0 {
			m.highlight = 0
		} else {
			m.highlight = n - 1
		}
		return
	}
	m.highlight = ((m.highlight+delta)%n + n) % n
}

// typeKey applies msg to the rendered text and forwards the result.
func (m *Model) typeKey(msg tea.KeyMsg) tea.Cmd {
	display := m.DisplayValue()
	in := m.input
	in.SetValue(display)

	next, cmd := in.Update(msg)
	text := next.Value()
	if text != display {
		if m.forced && len(m.options) > 0 && !MatchesPrefix(text, m.options) {
			return nil
		}
		m.value.Set(text)
	}
	m.input = next
	return cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev := tea.MouseEvent(msg)
	switch {
	case ev.Action == tea.MouseActionMotion:
		m.hover(msg.X, msg.Y)
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		if m.open {
			if i := m.optionAt(msg.X, msg.Y); i >= 0 {
				return m.Commit(i)
			}
		}
		if m.hit(m.toggleZone(), msg.X, msg.Y) {
			m.Toggle()
		}
	}
	return nil
}

// handleOutside is the outside-click listener held while the list is open.
func (m *Model) handleOutside(msg tea.MouseMsg) {
	ev := tea.MouseEvent(msg)
	switch {
	case ev.Action == tea.MouseActionPress && !ev.IsWheel():
		if !m.Contains(msg.X, msg.Y) {
			m.Close()
		}
	case ev.Action == tea.MouseActionMotion:
		if m.hovering && m.optionAt(msg.X, msg.Y) < 0 {
			m.highlight = -1
			m.hovering = false
		}
	}
}

func (m *Model) hover(x, y int) {
	if !m.open {
		return
	}
	if i := m.optionAt(x, y); i >= 0 {
		m.highlight = i
		m.hovering = true
		return
	}
	if m.hovering {
		m.highlight = -1
		m.hovering = false
	}
}

// Contains reports whether a screen point falls on the input or the list.
func (m *Model) Contains(x, y int) bool {
	if m.hit(m.inputZone(), x, y) {
		return true
	}
	return m.open && m.hit(m.listZone(), x, y)
}

func (m *Model) optionAt(x, y int) int {
	start, end := visibleRange(m.highlight, len(m.options), m.listRows())
	for i := start; i < end; i++ {
		if m.hit(m.optionZone(i), x, y) {
			return i
		}
	}
	return -1
}

func (m *Model) hit(id string, x, y int) bool {
	r, ok := m.locator.Bounds(id)
	return ok && r.Contains(x, y)
}

func (m *Model) setOpen(open bool) {
	m.visibility.Set(open)
	m.sync()
}

// sync reconciles the cached visibility with the accessor, which an owner
// in external mode may have changed since the last message.
func (m *Model) sync() {
	open := m.visibility.Get()
	if open == m.open {
		return
	}
	m.open = open
	if open {
		m.opened()
		return
	}
	m.highlight = -1
	m.hovering = false
	m.sub.Release()
	m.sub = nil
}

func (m *Model) opened() {
	rect, ok := m.locator.Bounds(m.inputZone())
	if !ok {
		rect = Rect{}
	}
	m.placement = m.placer.Place(rect, m.viewportHeight)
	if m.highlight < 0 && len(m.options) > 0 {
		m.highlight = 0
	}
	if m.clicks != nil && !m.sub.Active() {
		m.sub = m.clicks.Listen(m.handleOutside)
	}
}

func (m *Model) inputZone() string  { return m.id + ":input" }
func (m *Model) toggleZone() string { return m.id + ":toggle" }
func (m *Model) listZone() string   { return m.id + ":list" }
func (m *Model) optionZone(i int) string {
	return fmt.Sprintf("%s:opt:%d", m.id, i)
}

// sameOptions reports whether a and b are the same slice.
func sameOptions(a, b []Option) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}
