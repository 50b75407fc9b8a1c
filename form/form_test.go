package form

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expoadmin/applog"
	"expoadmin/combo"
	"expoadmin/dict"
)

type fakeLocator map[string]combo.Rect

func (f fakeLocator) Mark(_, s string) string { return s }

func (f fakeLocator) Bounds(id string) (combo.Rect, bool) {
	r, ok := f[id]
	return r, ok
}

// layout puts the input of widget id on row y and its options below it.
func (f fakeLocator) layout(id string, y, options int) {
	f[id+":input"] = combo.Rect{Left: 16, Top: y, Right: 50, Bottom: y + 1}
	f[id+":toggle"] = combo.Rect{Left: 48, Top: y, Right: 49, Bottom: y + 1}
	f[id+":list"] = combo.Rect{Left: 16, Top: y + 1, Right: 50, Bottom: y + 3 + options}
	for i := 0; i < options; i++ {
		f[fmt.Sprintf("%s:opt:%d", id, i)] = combo.Rect{Left: 17, Top: y + 2 + i, Right: 49, Bottom: y + 3 + i}
	}
}

func keyMsg(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func newUserForm(t *testing.T, values map[string]string) (*Model, fakeLocator, *dict.Set) {
	t.Helper()
	set, err := dict.Default()
	require.NoError(t, err)

	def, ok := Lookup("user")
	require.True(t, ok)

	loc := fakeLocator{}
	loc.layout("user-email", 2, 0)
	loc.layout("user-role", 4, len(set.Options("roles")))
	loc.layout("user-password", 12, 0)

	m := New(def, Config{
		Sources: Sources{Dict: set},
		Logger:  applog.Discard(),
		Values:  values,
		Locator: loc,
	})
	t.Cleanup(m.Close)
	return m, loc, set
}

func loadRoles(m *Model, set *dict.Set) {
	m.Update(OptionsMsg{Source: "dict:roles", Options: set.Options("roles")})
}

func TestFocusCycle(t *testing.T) {
	m, _, _ := newUserForm(t, nil)
	assert.Equal(t, "email", m.Focused())
	assert.True(t, m.Widget("email").Focused())

	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, "role", m.Focused())
	assert.False(t, m.Widget("email").Focused())

	m.Update(keyMsg(tea.KeyTab))
	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, "email", m.Focused(), "tab wraps around")

	m.Update(keyMsg(tea.KeyShiftTab))
	assert.Equal(t, "password", m.Focused())
}

func TestTabClosesDropdownAndMovesOn(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))

	role := m.Widget("role")
	m.Update(keyMsg(tea.KeyDown))
	require.True(t, role.DropdownOpen())
	require.Equal(t, 1, m.clicks.Len())

	m.Update(keyMsg(tea.KeyTab))
	assert.False(t, role.DropdownOpen())
	assert.Equal(t, 0, m.clicks.Len())
	assert.Equal(t, "password", m.Focused())
}

func TestEnterSelectsWhileOpen(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))

	m.Update(keyMsg(tea.KeyDown))
	m.Update(keyMsg(tea.KeyDown))
	require.Equal(t, 1, m.Widget("role").Highlighted())

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.False(t, isQuit(t, cmd))
	assert.False(t, m.Submitted())
	assert.Equal(t, "editor", m.Values()["role"])
	assert.False(t, m.Widget("role").DropdownOpen())

	_, cmd = m.Update(keyMsg(tea.KeyEnter))
	assert.False(t, isQuit(t, cmd), "missing e-mail and password block the submit")
	assert.False(t, m.Submitted())
	assert.Equal(t, "E-mail is required", m.FieldError("email"))
	assert.Equal(t, "Password is required", m.FieldError("password"))
	assert.Empty(t, m.FieldError("role"))
}

func TestSubmit(t *testing.T) {
	m, _, set := newUserForm(t, map[string]string{
		"email":    "anna@example.com",
		"role":     "admin",
		"password": "s3cret",
	})
	loadRoles(m, set)

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.Submitted())
	assert.NoError(t, m.Err())
	assert.Equal(t, map[string]string{
		"email":    "anna@example.com",
		"role":     "admin",
		"password": "s3cret",
	}, m.Values())
}

func TestSubmitRejectsUnlistedForcedValue(t *testing.T) {
	m, _, set := newUserForm(t, map[string]string{
		"email":    "anna@example.com",
		"role":     "owner",
		"password": "x",
	})
	loadRoles(m, set)

	_, cmd := m.Update(keyMsg(tea.KeyEnter))
	assert.False(t, isQuit(t, cmd))
	assert.Equal(t, "Role must be one of the listed options", m.FieldError("role"))
}

func TestEscClosesThenCancels(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))
	m.Update(keyMsg(tea.KeyDown))

	_, cmd := m.Update(keyMsg(tea.KeyEsc))
	assert.False(t, isQuit(t, cmd))
	assert.False(t, m.Widget("role").DropdownOpen())
	assert.False(t, m.Cancelled())

	_, cmd = m.Update(keyMsg(tea.KeyEsc))
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.Cancelled())
	assert.True(t, errors.Is(m.Err(), ErrCancelled))
}

func TestCtrlCQuits(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))
	m.Update(keyMsg(tea.KeyDown))

	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))
	assert.True(t, isQuit(t, cmd))
	assert.True(t, m.Cancelled())
}

func TestBlurValidates(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)

	m.Update(runes("x"))
	m.Update(keyMsg(tea.KeyTab))
	assert.Equal(t, "E-mail must be an e-mail address", m.FieldError("email"))

	m.Update(keyMsg(tea.KeyShiftTab))
	m.Update(keyMsg(tea.KeyBackspace))
	assert.Empty(t, m.FieldError("email"), "editing clears the message")
}

func TestBlurClearsPartialForcedValue(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))

	m.Update(runes("A"))
	assert.Equal(t, "A", m.Values()["role"])

	m.Update(runes("z"))
	assert.Equal(t, "A", m.Values()["role"], "no role label starts with z")

	m.Update(keyMsg(tea.KeyTab))
	assert.Empty(t, m.Values()["role"])
	assert.Equal(t, "Role is required", m.FieldError("role"))
}

func TestSecretReveal(t *testing.T) {
	m, _, _ := newUserForm(t, nil)
	m.Update(keyMsg(tea.KeyShiftTab))
	require.Equal(t, "password", m.Focused())

	pw := m.Widget("password")
	m.Update(runes("abc"))
	assert.Equal(t, "abc", pw.Value())
	assert.NotContains(t, m.View(), "abc")

	m.Update(keyMsg(tea.KeyCtrlR))
	assert.True(t, pw.Revealed())
	assert.Contains(t, m.View(), "abc")
}

func TestMouseFocusAndCommit(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	role := m.Widget("role")

	m.Update(press(48, 4))
	assert.Equal(t, "role", m.Focused())
	require.True(t, role.DropdownOpen())
	require.Equal(t, 1, m.clicks.Len())

	m.Update(press(20, 8))
	assert.Equal(t, "viewer", m.Values()["role"])
	assert.False(t, role.DropdownOpen())
	assert.Equal(t, 0, m.clicks.Len())
	assert.Equal(t, "role", m.Focused())
}

func TestClickOutsideClosesBeforeFocusMoves(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))
	m.Update(keyMsg(tea.KeyDown))
	role := m.Widget("role")
	require.True(t, role.DropdownOpen())

	m.Update(press(20, 2))
	assert.False(t, role.DropdownOpen())
	assert.Equal(t, 0, m.clicks.Len())
	assert.Equal(t, "email", m.Focused())

	m.Update(press(0, 30))
	assert.Equal(t, "email", m.Focused(), "a click on nothing keeps focus")
}

func TestOptionsError(t *testing.T) {
	m, _, _ := newUserForm(t, nil)
	m.Update(OptionsMsg{Source: "dict:roles", Err: errors.New("boom")})

	assert.Empty(t, m.Widget("role").Options())
	assert.Contains(t, m.View(), "Could not load roles options")
}

func TestOptionsSharedBySource(t *testing.T) {
	set, err := dict.Default()
	require.NoError(t, err)
	def, ok := Lookup("hall")
	require.True(t, ok)

	m := New(def, Config{Sources: Sources{Dict: set}, Logger: applog.Discard(), Locator: fakeLocator{}})
	defer m.Close()

	halls := set.Options("halls")
	m.Update(OptionsMsg{Source: "dict:halls", Options: halls})
	assert.Len(t, m.Widget("parent").Options(), len(halls))
	assert.Empty(t, m.Widget("name").Options())
}

func TestCloseReleasesListeners(t *testing.T) {
	m, _, set := newUserForm(t, nil)
	loadRoles(m, set)
	m.Update(keyMsg(tea.KeyTab))
	m.Update(keyMsg(tea.KeyDown))
	require.Equal(t, 1, m.clicks.Len())

	m.Close()
	assert.Equal(t, 0, m.clicks.Len())
}

func TestView(t *testing.T) {
	m, _, _ := newUserForm(t, nil)
	out := m.View()
	assert.Contains(t, out, "New user")
	assert.Contains(t, out, "E-mail")
	assert.Contains(t, out, "Ctrl+R")
}

func TestInitLoadsSources(t *testing.T) {
	m, _, _ := newUserForm(t, nil)
	assert.NotNil(t, m.Init())
}

func TestSourcesLoad(t *testing.T) {
	set, err := dict.Default()
	require.NoError(t, err)

	s := Sources{Dict: set}
	msg := s.Load("dict:roles")().(OptionsMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "dict:roles", msg.Source)
	assert.Len(t, msg.Options, 3)

	msg = s.Load("dict:nope")().(OptionsMsg)
	assert.Error(t, msg.Err)

	msg = s.Load("calendars")().(OptionsMsg)
	assert.Error(t, msg.Err)

	msg = s.Load("ftp")().(OptionsMsg)
	assert.Error(t, msg.Err)

	s.Calendars = func(ctx context.Context) ([]combo.Option, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return []combo.Option{{Value: "primary", Label: "Expo"}}, nil
	}
	msg = s.Load("calendars")().(OptionsMsg)
	require.NoError(t, msg.Err)
	assert.Equal(t, "primary", msg.Options[0].Key())
}

func TestDefinitionsResolve(t *testing.T) {
	set, err := dict.Default()
	require.NoError(t, err)

	for _, kind := range Kinds() {
		def, ok := Lookup(kind)
		require.True(t, ok, kind)
		assert.Equal(t, kind, def.Kind)
		assert.NotEmpty(t, def.Fields)
		for _, f := range def.Fields {
			if f.Source == "" || f.Source == "calendars" {
				continue
			}
			msg := Sources{Dict: set}.Load(f.Source)().(OptionsMsg)
			assert.NoError(t, msg.Err, "%s.%s", kind, f.Key)
		}
	}
	_, ok := Lookup("invoice")
	assert.False(t, ok)
}
