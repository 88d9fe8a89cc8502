package tui

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-roster/internal/roster"
	"github.com/aanand-mishra/student-roster/internal/storage"
	"github.com/aanand-mishra/student-roster/internal/storage/memory"
	"github.com/aanand-mishra/student-roster/internal/types"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// run feeds msg to the model and, when the model answers with one of its
// own storage commands, executes it and feeds the result back.
func run(t *testing.T, m *Model, msg tea.Msg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	switch reply := cmd().(type) {
	case loadedMsg, savedMsg, removedMsg:
		_, next := m.Update(reply)
		if next != nil {
			if loaded, ok := next().(loadedMsg); ok {
				m.Update(loaded)
			}
		}
	}
}

// press sends keys without running the returned commands (cursor blinks).
func press(m *Model, keys ...string) {
	for _, k := range keys {
		m.Update(keyMsg(k))
	}
}

func newTestModel(t *testing.T) (*Model, *memory.Store) {
	t.Helper()
	store := memory.New()
	raw, err := json.Marshal([]types.Student{
		{ID: "S1", FirstName: "Ann", LastName: "Lee", Major: "C101", GPA: 3.5},
		{ID: "S2", FirstName: "Bob", LastName: "Adams", Major: "M205", GPA: 3.9},
		{ID: "S3", FirstName: "Cal", LastName: "Baker", Major: "C300", GPA: 2.8},
	})
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), storage.DefaultKey, string(raw)))

	m := New(roster.New(store))
	m.Update(m.Init()())
	return m, store
}

func displayIDs(m *Model) []string {
	var out []string
	for _, s := range m.view.Display() {
		out = append(out, s.ID)
	}
	return out
}

func storedIDs(t *testing.T, store *memory.Store) []string {
	t.Helper()
	raw, _, err := store.Get(context.Background(), storage.DefaultKey)
	require.NoError(t, err)
	var students []types.Student
	require.NoError(t, json.Unmarshal([]byte(raw), &students))
	var out []string
	for _, s := range students {
		out = append(out, s.ID)
	}
	return out
}

func TestModel_InitLoads(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, []string{"S1", "S2", "S3"}, displayIDs(m))
	assert.Contains(t, m.View(), "Ann Lee")
	assert.Contains(t, m.View(), "GPA: 3.50")
}

func TestModel_Search(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "/")
	require.True(t, m.searching)
	press(m, "c")
	assert.Equal(t, []string{"S1", "S3"}, displayIDs(m))
	press(m, "1")
	assert.Equal(t, []string{"S1"}, displayIDs(m))

	run(t, m, keyMsg("enter"))
	assert.False(t, m.searching)
	assert.Equal(t, "c1", m.view.Query())

	t.Run("keys act on the list again after leaving search", func(t *testing.T) {
		run(t, m, keyMsg("s"))
		assert.Equal(t, roster.SortLastNameAsc, m.view.SortMode())
	})
}

func TestModel_SortKeys(t *testing.T) {
	m, _ := newTestModel(t)

	run(t, m, keyMsg("s"))
	assert.Equal(t, []string{"S2", "S3", "S1"}, displayIDs(m))
	assert.Contains(t, m.View(), "Last Name (A-Z) ▲")

	run(t, m, keyMsg("s"))
	assert.Equal(t, []string{"S1", "S3", "S2"}, displayIDs(m))

	run(t, m, keyMsg("g"))
	assert.Equal(t, []string{"S3", "S1", "S2"}, displayIDs(m))
	run(t, m, keyMsg("g"))
	assert.Equal(t, []string{"S2", "S1", "S3"}, displayIDs(m))
	run(t, m, keyMsg("g"))
	assert.Equal(t, roster.SortNone, m.view.SortMode())

	run(t, m, keyMsg("s"))
	run(t, m, keyMsg("r"))
	assert.Equal(t, []string{"S1", "S2", "S3"}, displayIDs(m))
	assert.Equal(t, roster.SortNone, m.view.SortMode())
}

func TestModel_DeleteWithConfirmation(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("j"))
		run(t, m, keyMsg("d"))
		require.Equal(t, screenConfirm, m.screen)
		assert.Contains(t, m.View(), "Are you sure you want to delete this Student?")

		run(t, m, keyMsg("y"))
		assert.Equal(t, screenList, m.screen)
		assert.Equal(t, []string{"S1", "S3"}, storedIDs(t, store))
		assert.Equal(t, []string{"S1", "S3"}, displayIDs(m))
		assert.Equal(t, "deleted S2", m.Status())
	})

	t.Run("cancel", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("d"))
		run(t, m, keyMsg("esc"))
		assert.Equal(t, screenList, m.screen)
		assert.Equal(t, []string{"S1", "S2", "S3"}, storedIDs(t, store))
	})

	t.Run("under a search keeps hidden records", func(t *testing.T) {
		m, store := newTestModel(t)
		press(m, "/")
		press(m, "M")
		run(t, m, keyMsg("enter"))
		require.Equal(t, []string{"S2"}, displayIDs(m))

		run(t, m, keyMsg("d"))
		run(t, m, keyMsg("enter"))
		assert.Equal(t, []string{"S1", "S3"}, storedIDs(t, store))
	})

	t.Run("storage failure is reported", func(t *testing.T) {
		m, store := newTestModel(t)
		store.FailSet = errors.New("read-only")
		run(t, m, keyMsg("d"))
		run(t, m, keyMsg("y"))
		assert.Contains(t, m.Status(), "could not delete S1")
		assert.Equal(t, []string{"S1", "S2", "S3"}, displayIDs(m))
	})
}

func TestModel_Detail(t *testing.T) {
	m, _ := newTestModel(t)
	run(t, m, keyMsg("s")) // Adams, Baker, Lee
	run(t, m, keyMsg("enter"))
	require.Equal(t, screenDetail, m.screen)

	// Paging follows stored order, not the sorted display.
	cur, _ := m.pager.Current()
	assert.Equal(t, "S2", cur.ID)
	assert.Contains(t, m.View(), "2 / 3")

	run(t, m, keyMsg("n"))
	cur, _ = m.pager.Current()
	assert.Equal(t, "S3", cur.ID)
	run(t, m, keyMsg("n"))
	cur, _ = m.pager.Current()
	assert.Equal(t, "S3", cur.ID)

	run(t, m, keyMsg("f"))
	cur, _ = m.pager.Current()
	assert.Equal(t, "S1", cur.ID)

	run(t, m, keyMsg("esc"))
	assert.Equal(t, screenList, m.screen)
}

func TestModel_Add(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("a"))
		require.Equal(t, screenForm, m.screen)

		m.form.SetValue(fieldID, "S4")
		m.form.SetValue(fieldFirstName, "Dee")
		m.form.SetValue(fieldLastName, "Diaz")
		m.form.SetValue(fieldMajor, "B400")
		m.form.SetValue(fieldGPA, "3.75")
		run(t, m, keyMsg("enter"))

		assert.Equal(t, screenList, m.screen)
		assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, storedIDs(t, store))
		assert.Equal(t, []string{"S1", "S2", "S3", "S4"}, displayIDs(m))
	})

	t.Run("major with two digits is rejected", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("a"))
		m.form.SetValue(fieldID, "S4")
		m.form.SetValue(fieldMajor, "CS10")
		m.form.SetValue(fieldGPA, "3")
		run(t, m, keyMsg("enter"))

		assert.Equal(t, screenForm, m.screen)
		assert.Contains(t, m.form.Err(), "letter followed by three numbers")
		assert.Equal(t, []string{"S1", "S2", "S3"}, storedIDs(t, store))
	})

	t.Run("duplicate id stays on the form", func(t *testing.T) {
		m, _ := newTestModel(t)
		run(t, m, keyMsg("a"))
		m.form.SetValue(fieldID, "S1")
		m.form.SetValue(fieldMajor, "C101")
		m.form.SetValue(fieldGPA, "3")
		run(t, m, keyMsg("enter"))

		assert.Equal(t, screenForm, m.screen)
		assert.Contains(t, m.form.Err(), "already exists")
	})

	t.Run("typing into fields", func(t *testing.T) {
		m, _ := newTestModel(t)
		run(t, m, keyMsg("a"))
		press(m, "S9")
		press(m, "tab")
		press(m, "Eve")
		in := m.form.Input()
		assert.Equal(t, "S9", in.ID)
		assert.Equal(t, "Eve", in.FirstName)
	})

	t.Run("esc cancels", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("a"))
		run(t, m, keyMsg("esc"))
		assert.Equal(t, screenList, m.screen)
		assert.Nil(t, m.form)
		assert.Len(t, storedIDs(t, store), 3)
	})
}

func TestModel_Edit(t *testing.T) {
	t.Run("prefilled, id read-only", func(t *testing.T) {
		m, store := newTestModel(t)
		run(t, m, keyMsg("e"))
		require.Equal(t, screenForm, m.screen)
		require.True(t, m.form.Editing())
		assert.Equal(t, "3.50", m.form.Input().GPA.String())

		// Tab cycling never lands on the id field.
		for i := 0; i < fieldCount; i++ {
			press(m, "tab")
			assert.NotEqual(t, fieldID, m.form.focus)
		}

		m.form.SetValue(fieldLastName, "Lee-Park")
		run(t, m, keyMsg("enter"))
		assert.Equal(t, screenList, m.screen)

		raw, _, _ := store.Get(context.Background(), storage.DefaultKey)
		assert.True(t, strings.Contains(raw, `"lastName":"Lee-Park"`))
		assert.Equal(t, []string{"S1", "S2", "S3"}, storedIDs(t, store))
	})

	t.Run("three decimal gpa is rejected", func(t *testing.T) {
		m, _ := newTestModel(t)
		run(t, m, keyMsg("e"))
		m.form.SetValue(fieldGPA, "3.999")
		run(t, m, keyMsg("enter"))
		assert.Equal(t, screenForm, m.screen)
		assert.Contains(t, m.form.Err(), "two decimal places")
	})

	t.Run("from the detail screen", func(t *testing.T) {
		m, _ := newTestModel(t)
		run(t, m, keyMsg("enter"))
		run(t, m, keyMsg("l"))
		run(t, m, keyMsg("e"))
		require.Equal(t, screenForm, m.screen)
		assert.Equal(t, "S3", m.form.Input().ID)
	})
}

func TestModel_EmptyRoster(t *testing.T) {
	m := New(roster.New(memory.New()))
	m.Update(m.Init()())

	assert.Contains(t, m.View(), "No students")
	run(t, m, keyMsg("d"))
	assert.Equal(t, screenList, m.screen)
	run(t, m, keyMsg("enter"))
	assert.Equal(t, screenList, m.screen)
}
