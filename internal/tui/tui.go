package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/midbel/gridcalc/format"
	"github.com/midbel/gridcalc/grid"
	"github.com/midbel/gridcalc/layout"
)

type mode int8

const (
	modeNormal mode = iota
	modeEdit
	modeSelect
)

func (m mode) String() string {
	switch m {
	case modeEdit:
		return "EDIT"
	case modeSelect:
		return "SELECT"
	default:
		return "NORMAL"
	}
}

const DefaultWidth = 10

type styles struct {
	header   lipgloss.Style
	cell     lipgloss.Style
	cursor   lipgloss.Style
	selected lipgloss.Style
	failed   lipgloss.Style
	status   lipgloss.Style
	message  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Bold(true).
			Align(lipgloss.Center),
		cell: lipgloss.NewStyle(),
		cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true),
		selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("14")),
		failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),
	}
}

type Option func(*Model)

func WithWidth(width int) Option {
	return func(m *Model) {
		if width > 0 {
			m.width = width
		}
	}
}

func WithFormatter(vf format.Formatter) Option {
	return func(m *Model) {
		m.formatter = vf
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// Model is the editor of a session. The cursor is the cell that receives
// the text typed in edit mode. In select mode, the selection spans from the
// anchor to the cursor.
type Model struct {
	session *grid.Session
	cursor  layout.Position
	anchor  layout.Position
	mode    mode

	input     textinput.Model
	width     int
	formatter format.Formatter
	message   string
	quitting  bool

	styles styles
	logger *log.Logger
}

func New(session *grid.Session, options ...Option) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "value or =formula"

	m := Model{
		session: session,
		cursor:  layout.Position{Line: 1, Column: 1},
		input:   input,
		width:   DefaultWidth,
		styles:  defaultStyles(),
		logger:  log.New(io.Discard),
	}
	m.anchor = m.cursor
	for _, o := range options {
		o(&m)
	}
	return m
}

// Run starts the editor on the alternate screen until the user quits.
func Run(session *grid.Session, options ...Option) error {
	program := tea.NewProgram(New(session, options...), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Cursor() layout.Position {
	return m.cursor
}

func (m Model) Message() string {
	return m.message
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.mode == modeEdit {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		res, err := m.session.Commit(m.cursor, m.input.Value())
		m.endEdit()
		if err != nil {
			m.message = err.Error()
			return m, nil
		}
		if res.Failed() {
			m.message = fmt.Sprintf("%s: %s", m.cursor.Addr(), res.Err)
		}
		m.move(1, 0)
		return m, nil
	case tea.KeyEsc:
		m.endEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endEdit() {
	m.mode = modeNormal
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left", "h":
		m.move(0, -1)
	case "right", "l":
		m.move(0, 1)
	case "esc":
		m.mode = modeNormal
		m.anchor = m.cursor
	case "v":
		if m.mode == modeSelect {
			m.mode = modeNormal
		} else {
			m.mode = modeSelect
		}
		m.anchor = m.cursor
	case "enter", "i":
		text, err := m.session.EditText(m.cursor)
		if err != nil {
			m.message = err.Error()
			break
		}
		m.mode = modeEdit
		m.input.SetValue(text)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "y":
		m.run("copy", m.session.Copy)
	case "x":
		m.run("cut", m.session.Cut)
	case "d":
		m.run("delete", m.session.Delete)
	case "f":
		m.run("fill", m.session.Fill)
	case "p":
		m.paste(grid.CopyAll)
	case "P":
		m.paste(grid.CopyValue)
	}
	return m, nil
}

// run selects the cells under the cursor, or the ones from the anchor when
// selecting, before calling fn.
func (m *Model) run(what string, fn func() error) {
	if err := m.session.Select(m.anchor, m.cursor); err != nil {
		m.message = err.Error()
		return
	}
	if err := fn(); err != nil {
		m.message = fmt.Sprintf("%s: %s", what, err)
		m.logger.Warn("operation failed", "op", what, "err", err)
		return
	}
	m.mode = modeNormal
	m.anchor = m.cursor
}

func (m *Model) paste(mode grid.CopyMode) {
	err := m.session.Paste(m.cursor, mode)
	if err == nil {
		return
	}
	if errors.Is(err, grid.ErrEmptyClipboard) {
		m.message = "nothing to paste"
	} else {
		m.message = fmt.Sprintf("paste: %s", err)
	}
	m.logger.Warn("paste failed", "at", m.cursor, "err", err)
}

func (m *Model) move(lines, columns int) {
	next := m.cursor.Offset(lines, columns)
	if m.session.Bounds().Check(next) != nil {
		return
	}
	m.cursor = next
	if m.mode != modeSelect {
		m.anchor = m.cursor
	}
}

func (m Model) selected(pos layout.Position) bool {
	if m.mode != modeSelect {
		return false
	}
	return layout.NewRange(m.anchor, m.cursor).Normalize().Contains(pos)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var (
		buf  strings.Builder
		size = m.session.Bounds()
	)
	buf.WriteString(m.styles.header.Width(4).Render(""))
	for col := 1; col <= size.Columns; col++ {
		buf.WriteString(m.styles.header.Width(m.width).Render(layout.ColumnName(col)))
	}
	buf.WriteString("\n")

	var line int
	for row := range m.session.Grid().Rows() {
		line++
		label := fmt.Sprintf("%3d ", line)
		buf.WriteString(m.styles.header.Width(4).Align(lipgloss.Right).Render(label))
		for _, c := range row {
			buf.WriteString(m.renderCell(c))
		}
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
	buf.WriteString(m.statusLine())
	buf.WriteString("\n")
	if m.mode == modeEdit {
		buf.WriteString(m.input.View())
		buf.WriteString("\n")
	}
	if m.message != "" {
		buf.WriteString(m.styles.message.Render(m.message))
		buf.WriteString("\n")
	}
	return buf.String()
}

func (m Model) renderCell(c *grid.Cell) string {
	str := c.Value
	if m.formatter != nil {
		if f, err := m.formatter.Format(str); err == nil {
			str = f
		}
	}
	str = truncate(str, m.width-1)

	style := m.styles.cell
	switch {
	case c.Position.Equal(m.cursor):
		style = m.styles.cursor
	case m.selected(c.Position):
		style = m.styles.selected
	case c.Failed():
		style = m.styles.failed
	}
	style = style.Width(m.width)
	if format.Kind(c.Value) == format.KindNumber {
		style = style.Align(lipgloss.Right).PaddingRight(1)
	}
	return style.Render(str)
}

func (m Model) statusLine() string {
	text, _ := m.session.EditText(m.cursor)
	status := fmt.Sprintf("%s | %s | %s", m.mode, m.cursor.Addr(), text)
	if m.mode == modeSelect {
		rg := layout.NewRange(m.anchor, m.cursor).Normalize()
		status = fmt.Sprintf("%s | %s | %s", m.mode, rg, text)
	}
	return m.styles.status.Render(status)
}

func truncate(str string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(str) <= width {
		return str
	}
	const ellipsis = "…"
	var (
		res  []rune
		curr int
	)
	for _, r := range str {
		w := lipgloss.Width(string(r))
		if curr+w > width-1 {
			break
		}
		res = append(res, r)
		curr += w
	}
	return string(res) + ellipsis
}
