package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"expoadmin/combo"
	"expoadmin/dict"
)

const (
	dictPrefix      = "dict:"
	calendarsSource = "calendars"
	loadTimeout     = 30 * time.Second
)

// OptionsMsg carries the options of a source once they are loaded.
type OptionsMsg struct {
	Source  string
	Options []combo.Option
	Err     error
}

// Sources resolves option source names.
type Sources struct {
	Dict      *dict.Set
	Calendars func(ctx context.Context) ([]combo.Option, error)
}

// Load fetches the options of source in the background.
func (s Sources) Load(source string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		options, err := s.fetch(ctx, source)
		return OptionsMsg{Source: source, Options: options, Err: err}
	}
}

func (s Sources) fetch(ctx context.Context, source string) ([]combo.Option, error) {
	switch {
	case strings.HasPrefix(source, dictPrefix):
		name := strings.TrimPrefix(source, dictPrefix)
		if s.Dict == nil {
			return nil, fmt.Errorf("no dictionaries loaded")
		}
		d, ok := s.Dict.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown dictionary %q", name)
		}
		return d.Options, nil
	case source == calendarsSource:
		if s.Calendars == nil {
			return nil, fmt.Errorf("calendar service not initialized")
		}
		return s.Calendars(ctx)
	}
	return nil, fmt.Errorf("unknown option source %q", source)
}
