package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suimei/internal/domain"
)

// birthSubmittedMsg carries parsed form data to the root model.
type birthSubmittedMsg struct{ birth domain.BirthData }

const (
	fieldDate = iota
	fieldTime
	fieldGender
	fieldTimezone
	fieldCount
)

var fieldLabels = [fieldCount]string{"Date", "Time", "Gender", "Timezone"}

// BirthModel is the birth data entry form.
type BirthModel struct {
	services Services
	inputs   [fieldCount]textinput.Model
	focus    int
	err      error
	width    int
	height   int
}

func NewBirthModel(svc Services) BirthModel {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{"1990-01-01", "12:00 (blank if unknown)", "male / female", svc.Timezone}
	limits := [fieldCount]int{10, 5, 6, 40}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		ti.Width = 30
		inputs[i] = ti
	}
	inputs[fieldDate].Focus()
	return BirthModel{services: svc, inputs: inputs}
}

func (m BirthModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m BirthModel) Update(msg tea.Msg) (BirthModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DefaultKeyMap.Submit):
			b, err := parseBirthForm(m.values())
			if err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			return m, func() tea.Msg { return birthSubmittedMsg{birth: b} }

		case key.Matches(msg, DefaultKeyMap.NextField):
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case key.Matches(msg, DefaultKeyMap.PrevField):
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m BirthModel) View() string {
	sections := []string{
		HeaderStyle.Render("  Birth Data"),
		SubtextStyle.Render("  ↑/↓ move between fields, enter computes the chart"),
		"",
	}
	for i := range m.inputs {
		label := LabelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = FocusedLabelStyle.Render(fieldLabels[i])
		}
		sections = append(sections, "  "+lipgloss.JoinHorizontal(lipgloss.Top, label, m.inputs[i].View()))
	}
	if m.err != nil {
		sections = append(sections, "", ErrorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	}
	return strings.Join(sections, "\n")
}

func (m *BirthModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Focus gives focus to the active field.
func (m *BirthModel) Focus() {
	m.inputs[m.focus].Focus()
}

// Blur removes focus from every field.
func (m *BirthModel) Blur() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// FocusedField returns the index of the focused field (for testing).
func (m BirthModel) FocusedField() int { return m.focus }

// SetValues fills the form (for testing and for prefilled sessions).
func (m *BirthModel) SetValues(date, clock, gender, tz string) {
	for i, v := range []string{date, clock, gender, tz} {
		m.inputs[i].SetValue(v)
	}
}

func (m *BirthModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m BirthModel) values() [fieldCount]string {
	var out [fieldCount]string
	for i := range m.inputs {
		out[i] = strings.TrimSpace(m.inputs[i].Value())
	}
	if out[fieldTimezone] == "" {
		out[fieldTimezone] = m.services.Timezone
	}
	return out
}

func parseBirthForm(v [fieldCount]string) (domain.BirthData, error) {
	return domain.ParseBirth(v[fieldDate], v[fieldTime], v[fieldGender], v[fieldTimezone])
}
