package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/types"
)

type screen int

const (
	screenList screen = iota
	screenDetail
	screenForm
	screenConfirm
)

// loadedMsg is sent when a Load finished.
type loadedMsg struct{ err error }

// savedMsg is sent when an add or edit finished.
type savedMsg struct {
	student types.Student
	err     error
}

// removedMsg is sent when a confirmed delete finished.
type removedMsg struct {
	id  string
	err error
}

// Model is the root bubbletea model. Storage I/O runs in commands; the
// roster.View is safe to call from them.
type Model struct {
	view   *roster.View
	screen screen

	search    textinput.Model
	searching bool
	cursor    int

	pager     *roster.Pager
	form      *Form
	editingID string
	confirmID string

	status string
}

// Ensure Model implements tea.Model.
var _ tea.Model = (*Model)(nil)

// New creates the UI over view. Init triggers the first Load.
func New(view *roster.View) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search by ID or Major"
	ti.Width = 40
	return &Model{view: view, search: ti}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.focusList()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.status = "could not load students: " + msg.err.Error()
		}
		m.clampCursor()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			if m.form != nil {
				m.form.SetError("There was an error saving the student: " + msg.err.Error())
			}
			return m, nil
		}
		m.form = nil
		m.status = fmt.Sprintf("saved %s", msg.student.ID)
		return m, m.focusList()

	case removedMsg:
		if msg.err != nil {
			m.status = "could not delete " + msg.id + ": " + msg.err.Error()
		} else {
			m.status = "deleted " + msg.id
		}
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenList:
			return m, m.updateList(msg)
		case screenDetail:
			return m, m.updateDetail(msg)
		case screenForm:
			return m, m.updateForm(msg)
		case screenConfirm:
			return m, m.updateConfirm(msg)
		}
	}

	if m.screen == screenForm && m.form != nil {
		return m, m.form.Update(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateList(msg tea.KeyMsg) tea.Cmd {
	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		m.view.SetQuery(m.search.Value())
		m.cursor = 0
		return cmd
	}

	switch msg.String() {
	case "q":
		return tea.Quit
	case "/":
		m.searching = true
		return m.search.Focus()
	case "j", "down":
		m.cursor++
		m.clampCursor()
	case "k", "up":
		m.cursor--
		m.clampCursor()
	case "s":
		m.view.ToggleLastNameSort()
		m.cursor = 0
	case "g":
		m.view.ToggleGPASort()
		m.cursor = 0
	case "r":
		m.view.ResetSort()
		m.cursor = 0
	case "a":
		return m.openForm(nil)
	case "e":
		if s, ok := m.selected(); ok {
			return m.openForm(&s)
		}
	case "d":
		if s, ok := m.selected(); ok {
			m.confirmID = s.ID
			m.screen = screenConfirm
		}
	case "enter":
		if s, ok := m.selected(); ok {
			m.pager = roster.NewPager(m.view.Full(), s.ID)
			m.screen = screenDetail
		}
	}
	return nil
}

func (m *Model) updateDetail(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "f":
		m.pager.First()
	case "p", "left":
		m.pager.Prev()
	case "n", "right":
		m.pager.Next()
	case "l":
		m.pager.Last()
	case "e":
		if s, ok := m.pager.Current(); ok {
			return m.openForm(&s)
		}
	case "esc", "backspace":
		return m.focusList()
	}
	return nil
}

func (m *Model) updateForm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form = nil
		return m.focusList()
	case "enter":
		if !m.form.Validate() {
			return nil
		}
		return saveCmd(m.view, m.editingID, m.form.Input())
	}
	return m.form.Update(msg)
}

func (m *Model) updateConfirm(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.confirmID = ""
		m.screen = screenList
		return removeCmd(m.view, id)
	case "esc", "n":
		m.confirmID = ""
		m.screen = screenList
	}
	return nil
}

// focusList returns to the list and reloads it, as the list screen did
// every time it became visible again.
func (m *Model) focusList() tea.Cmd {
	m.screen = screenList
	m.pager = nil
	return loadCmd(m.view)
}

func (m *Model) openForm(s *types.Student) tea.Cmd {
	m.form = NewForm(s)
	m.editingID = ""
	if s != nil {
		m.editingID = s.ID
	}
	m.screen = screenForm
	return m.form.Init()
}

func (m *Model) selected() (types.Student, bool) {
	display := m.view.Display()
	if m.cursor < 0 || m.cursor >= len(display) {
		return types.Student{}, false
	}
	return display[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.view.Display())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func loadCmd(view *roster.View) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: view.Load(context.Background())}
	}
}

func saveCmd(view *roster.View, editingID string, in types.StudentInput) tea.Cmd {
	return func() tea.Msg {
		var (
			s   types.Student
			err error
		)
		if editingID == "" {
			s, err = view.Add(context.Background(), in)
		} else {
			s, err = view.Update(context.Background(), editingID, in)
		}
		return savedMsg{student: s, err: err}
	}
}

func removeCmd(view *roster.View, id string) tea.Cmd {
	return func() tea.Msg {
		return removedMsg{id: id, err: view.Remove(context.Background(), id)}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenDetail:
		return m.detailView()
	case screenForm:
		return m.form.View()
	case screenConfirm:
		return m.confirmView()
	default:
		return m.listView()
	}
}

func (m *Model) listView() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Students") + "\n")
	b.WriteString(m.search.View() + "\n")
	b.WriteString(m.sortBar() + "\n\n")

	display := m.view.Display()
	if len(display) == 0 {
		b.WriteString(Styles.Empty.Render("No students") + "\n")
	}
	for i, s := range display {
		style := Styles.Card
		if i == m.cursor {
			style = Styles.CardSelected
		}
		b.WriteString(style.Render(card(s)) + "\n")
	}

	if m.status != "" {
		b.WriteString(Styles.Hint.Render(m.status) + "\n")
	}
	b.WriteString(Styles.Hint.Render("/: search  s: last name  g: GPA  r: reset  a: add  e: edit  d: delete  enter: details  q: quit"))
	return b.String()
}

func (m *Model) sortBar() string {
	mode := m.view.SortMode()

	lastName := "[s] Last Name (A-Z)"
	gpa := "[g] GPA"
	lastNameStyle, gpaStyle := Styles.SortIdle, Styles.SortIdle
	switch mode {
	case roster.SortLastNameAsc, roster.SortLastNameDesc:
		lastName += " " + mode.Indicator()
		lastNameStyle = Styles.SortActive
	case roster.SortGPAAsc, roster.SortGPADesc:
		gpa += " " + mode.Indicator()
		gpaStyle = Styles.SortActive
	}
	return lastNameStyle.Render(lastName) + "  " + gpaStyle.Render(gpa) + "  " + Styles.SortIdle.Render("[r] Reset Sort")
}

func card(s types.Student) string {
	return fmt.Sprintf("%s %s\nID: %s\nMajor: %s\nGPA: %s",
		s.FirstName, s.LastName, s.ID, s.Major, types.FormatGPA(s.GPA))
}

func (m *Model) detailView() string {
	s, ok := m.pager.Current()
	if !ok {
		return Styles.Box.Render(Styles.Empty.Render("Student not found") + "\n\n" +
			Styles.Hint.Render("f: first  l: last  esc: back"))
	}
	pos, total := m.pager.Position()

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Student Detail") + "\n\n")
	for _, row := range [][2]string{
		{"ID", s.ID},
		{"First Name", s.FirstName},
		{"Last Name", s.LastName},
		{"Major", s.Major},
		{"GPA", types.FormatGPA(s.GPA)},
	} {
		b.WriteString(Styles.Label.Render(row[0]) + Styles.Normal.Render(row[1]) + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%d / %d\n", pos, total))
	b.WriteString(Styles.Hint.Render("f: first  p: prev  n: next  l: last  e: edit  esc: back"))
	return Styles.Box.Render(b.String())
}

func (m *Model) confirmView() string {
	content := Styles.TitleWarning.Render("Confirmation") + "\n\n"
	content += Styles.Normal.Render("Are you sure you want to delete this Student?") + "\n"
	content += Styles.Label.Render("Student") + m.confirmID
	content += "\n\n" + Styles.Hint.Render("y/Enter: delete  Esc: cancel")
	return Styles.BoxDanger.Render(content)
}

// Status returns the last status line.
func (m *Model) Status() string { return m.status }
