package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T) (Model, *grid.Session) {
	t.Helper()
	s, err := grid.NewSession(layout.Dimension{Lines: 3, Columns: 3})
	require.NoError(t, err)
	return New(s), s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		updated, _ := m.Update(msg)
		next, ok := updated.(Model)
		require.True(t, ok)
		m = next
	}
	return m
}

func TestMove(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "j", "l", "right")
	assert.Equal(t, layout.Position{Line: 2, Column: 3}, m.Cursor())

	m = press(t, m, "l", "j", "j")
	assert.Equal(t, layout.Position{Line: 3, Column: 3}, m.Cursor())

	m = press(t, m, "k", "h", "h", "h")
	assert.Equal(t, layout.Position{Line: 2, Column: 1}, m.Cursor())
}

func TestEditAndCommit(t *testing.T) {
	m, s := newModel(t)
	m = press(t, m, "enter", "4", "2", "enter")
	assert.Equal(t, layout.Position{Line: 2, Column: 1}, m.Cursor())

	m = press(t, m, "enter", "=", "A", "1", "*", "2", "enter")
	assert.Empty(t, m.Message())

	got, err := s.Value(layout.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "42", got)

	got, err = s.Value(layout.Position{Line: 2, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "84", got)
}

func TestEditFailure(t *testing.T) {
	m, s := newModel(t)
	m = press(t, m, "enter", "=", "1", "/", "0", "enter")
	assert.Contains(t, m.Message(), "A1")

	got, err := s.Value(layout.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "#ERROR", got)

	text, err := s.EditText(layout.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "=1/0", text)
}

func TestEditCancel(t *testing.T) {
	m, s := newModel(t)
	m = press(t, m, "enter", "9", "esc")
	assert.Equal(t, layout.Position{Line: 1, Column: 1}, m.Cursor())

	got, err := s.Value(layout.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCopyPaste(t *testing.T) {
	m, s := newModel(t)
	_, err := s.CommitAddr("A1", "1")
	require.NoError(t, err)
	_, err = s.CommitAddr("B1", "=A1+1")
	require.NoError(t, err)

	m = press(t, m, "v", "l", "y", "h", "j", "p")
	assert.Empty(t, m.Message())

	got, err := s.Value(layout.Position{Line: 2, Column: 1})
	require.NoError(t, err)
	assert.Equal(t, "1", got)

	text, err := s.EditText(layout.Position{Line: 2, Column: 2})
	require.NoError(t, err)
	assert.Equal(t, "=A2+1", text)

	got, err = s.Value(layout.Position{Line: 2, Column: 2})
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestPasteEmptyClipboard(t *testing.T) {
	m, _ := newModel(t)
	m = press(t, m, "p")
	assert.Equal(t, "nothing to paste", m.Message())
}

func TestDelete(t *testing.T) {
	m, s := newModel(t)
	_, err := s.CommitAddr("A1", "foo")
	require.NoError(t, err)

	press(t, m, "d")
	got, err := s.Value(layout.Position{Line: 1, Column: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
}

func TestView(t *testing.T) {
	m, s := newModel(t)
	_, err := s.CommitAddr("B2", "12")
	require.NoError(t, err)

	view := m.View()
	assert.Contains(t, view, "A")
	assert.Contains(t, view, "C")
	assert.Contains(t, view, "12")
	assert.Contains(t, view, "NORMAL")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("hello", 0))
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "hel…", truncate("hello", 4))
}
