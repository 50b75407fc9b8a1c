package combo

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the widget reacts to. Everything else goes to
// the text input.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Select key.Binding
	Close  key.Binding
	Leave  key.Binding
	Reveal key.Binding
}

// DefaultKeyMap is the standard set of bindings.
var DefaultKeyMap = KeyMap{
	Next:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next option")),
	Prev:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous option")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close list")),
	Leave:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
	Reveal: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "show/hide")),
}

// ShortHelp lists the bindings shown in a one-line help bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Select, k.Close}
}
