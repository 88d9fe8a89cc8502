package tui

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-roster/internal/types"
	"github.com/aanand-mishra/student-roster/internal/utils/response"
	"github.com/aanand-mishra/student-roster/internal/validation"
)

const (
	fieldID = iota
	fieldFirstName
	fieldLastName
	fieldMajor
	fieldGPA
	fieldCount
)

var fieldLabels = [fieldCount]string{"Student ID", "First Name", "Last Name", "Major", "GPA"}

// Form is the add/edit screen. When editing, the id field is read-only.
// Tab and Shift-Tab move between fields; Enter validates and submits.
type Form struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	editing bool
	err     string
}

// NewForm builds an empty add form, or an edit form pre-filled from s.
func NewForm(s *types.Student) *Form {
	f := &Form{}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = fieldLabels[i]
		ti.Width = 30
		f.inputs[i] = ti
	}
	f.inputs[fieldGPA].CharLimit = 8

	if s != nil {
		in := types.InputFrom(*s)
		f.editing = true
		f.inputs[fieldID].SetValue(in.ID)
		f.inputs[fieldFirstName].SetValue(in.FirstName)
		f.inputs[fieldLastName].SetValue(in.LastName)
		f.inputs[fieldMajor].SetValue(in.Major)
		f.inputs[fieldGPA].SetValue(in.GPA.String())
		f.focus = fieldFirstName
	}
	f.inputs[f.focus].Focus()
	return f
}

// Init starts the cursor blinking.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Editing reports whether the form edits an existing record.
func (f *Form) Editing() bool { return f.editing }

// Input returns what the user typed.
func (f *Form) Input() types.StudentInput {
	return types.StudentInput{
		ID:        strings.TrimSpace(f.inputs[fieldID].Value()),
		FirstName: f.inputs[fieldFirstName].Value(),
		LastName:  f.inputs[fieldLastName].Value(),
		Major:     strings.TrimSpace(f.inputs[fieldMajor].Value()),
		GPA:       json.Number(strings.TrimSpace(f.inputs[fieldGPA].Value())),
	}
}

// SetValue fills a field directly.
func (f *Form) SetValue(field int, value string) {
	f.inputs[field].SetValue(value)
}

// Validate checks the input and stores the messages to show; nothing is
// submitted while it fails.
func (f *Form) Validate() bool {
	err := validation.Struct(f.Input())
	if err == nil {
		f.err = ""
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		f.err = strings.Join(response.Messages(verrs), "\n")
	} else {
		f.err = err.Error()
	}
	return false
}

// SetError shows a save failure under the form.
func (f *Form) SetError(msg string) { f.err = msg }

// Err returns the message currently shown.
func (f *Form) Err() string { return f.err }

// Update handles field navigation and forwards typing to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "tab", "down":
			return f.moveFocus(1)
		case "shift+tab", "up":
			return f.moveFocus(-1)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *Form) moveFocus(delta int) tea.Cmd {
	f.inputs[f.focus].Blur()
	for {
		f.focus = (f.focus + delta + fieldCount) % fieldCount
		if !(f.editing && f.focus == fieldID) {
			break
		}
	}
	return f.inputs[f.focus].Focus()
}

// View renders the form.
func (f *Form) View() string {
	title := "Add Student"
	if f.editing {
		title = "Edit Student"
	}
	var b strings.Builder
	b.WriteString(Styles.Title.Render(title) + "\n\n")
	for i, in := range f.inputs {
		value := in.View()
		if f.editing && i == fieldID {
			value = Styles.Hint.Render(in.Value() + " (read-only)")
		}
		b.WriteString(Styles.Label.Render(fieldLabels[i]) + value + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + Styles.Error.Render(f.err) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("Tab: next field  Enter: save  Esc: cancel"))
	return Styles.Box.Render(b.String())
}
