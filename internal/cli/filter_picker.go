package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tarefalabs/tarefa/internal/core"
	"github.com/tarefalabs/tarefa/pkg/models"
)

// Picker sections, navigated with tab in the order the filter UI has
// always shown them.
const (
	sectionOrder = iota
	sectionTags
	sectionDates
	sectionCount
)

// Style definitions.
var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("62")).
				Padding(0, 1)

	sectionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62"))

	inactiveHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("245"))

	cursorRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// filterPickerModel is the bubbletea model behind 'tarefa filter'. It
// drives a core.FilterState and emits exactly one FilterOptions on apply;
// cancelling emits nothing and leaves the saved filter untouched.
type filterPickerModel struct {
	state *core.FilterState

	section int
	cursor  int

	fromInput   textinput.Model
	toInput     textinput.Model
	editingDate bool

	applied   bool
	cancelled bool
	errMsg    string
}

// orderChoices maps cursor rows of the ordering section to sort orders.
var orderChoices = []models.SortOrder{models.SortLowToHigh, models.SortHighToLow}

var orderLabels = map[models.SortOrder]string{
	models.SortLowToHigh: "Priority (low to high)",
	models.SortHighToLow: "Priority (high to low)",
}

func newFilterPicker(availableTags []string, current *models.FilterOptions) filterPickerModel {
	from := textinput.New()
	from.Placeholder = "YYYY-MM-DD"
	from.CharLimit = 10
	from.Width = 12

	to := textinput.New()
	to.Placeholder = "YYYY-MM-DD"
	to.CharLimit = 10
	to.Width = 12

	m := filterPickerModel{
		state:     core.NewFilterState(availableTags, current),
		fromInput: from,
		toInput:   to,
	}
	if d := m.state.DateFrom(); d != nil {
		m.fromInput.SetValue(d.Format("2006-01-02"))
	}
	if d := m.state.DateTo(); d != nil {
		m.toInput.SetValue(d.Format("2006-01-02"))
	}
	return m
}

func (m filterPickerModel) Init() tea.Cmd {
	return nil
}

func (m filterPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editingDate {
		return m.updateDateEntry(keyMsg)
	}

	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.cancelled = true
		return m, tea.Quit

	case "a":
		m.applied = true
		return m, tea.Quit

	case "c":
		m.state.Clear()
		m.fromInput.SetValue("")
		m.toInput.SetValue("")
		m.errMsg = ""
		return m, nil

	case "tab":
		m.section = (m.section + 1) % sectionCount
		m.cursor = 0
		return m, nil

	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount
		m.cursor = 0
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < m.sectionSize()-1 {
			m.cursor++
		}
		return m, nil

	case " ", "enter":
		return m.activate()

	case "x":
		if m.section == sectionDates {
			if m.cursor == 0 {
				m.state.ClearDateFrom()
				m.fromInput.SetValue("")
			} else {
				m.state.ClearDateTo()
				m.toInput.SetValue("")
			}
		}
		return m, nil
	}

	return m, nil
}

// activate handles space/enter on the current row.
func (m filterPickerModel) activate() (tea.Model, tea.Cmd) {
	switch m.section {
	case sectionOrder:
		if m.cursor < len(orderChoices) {
			m.state.SetPriorityOrder(orderChoices[m.cursor])
		}
	case sectionTags:
		tags := m.state.AvailableTags()
		if m.cursor < len(tags) {
			m.state.ToggleTag(tags[m.cursor])
		}
	case sectionDates:
		m.editingDate = true
		m.errMsg = ""
		if m.cursor == 0 {
			m.fromInput.Focus()
		} else {
			m.toInput.Focus()
		}
	}
	return m, nil
}

// updateDateEntry routes keys to the focused date input. Enter commits
// the value through the state (which normalizes to the day boundary);
// esc abandons the edit.
func (m filterPickerModel) updateDateEntry(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case "esc":
		m.editingDate = false
		m.fromInput.Blur()
		m.toInput.Blur()
		return m, nil

	case "enter":
		input := &m.fromInput
		if m.cursor == 1 {
			input = &m.toInput
		}
		value := strings.TrimSpace(input.Value())
		if value == "" {
			if m.cursor == 0 {
				m.state.ClearDateFrom()
			} else {
				m.state.ClearDateTo()
			}
		} else {
			day, err := parseDate(value)
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			// The picker never emits an inverted range: each bound is
			// checked against the other before it is stored.
			if m.cursor == 0 {
				if to := m.state.DateTo(); to != nil && core.StartOfDay(day).After(*to) {
					m.errMsg = fmt.Sprintf("from date %s is after the to date", value)
					return m, nil
				}
				m.state.SetDateFrom(day)
			} else {
				if from := m.state.DateFrom(); from != nil && core.EndOfDay(day).Before(*from) {
					m.errMsg = fmt.Sprintf("to date %s is before the from date", value)
					return m, nil
				}
				m.state.SetDateTo(day)
			}
		}
		m.editingDate = false
		m.fromInput.Blur()
		m.toInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	if m.cursor == 0 {
		m.fromInput, cmd = m.fromInput.Update(keyMsg)
	} else {
		m.toInput, cmd = m.toInput.Update(keyMsg)
	}
	return m, cmd
}

func (m filterPickerModel) sectionSize() int {
	switch m.section {
	case sectionOrder:
		return len(orderChoices)
	case sectionTags:
		return len(m.state.AvailableTags())
	case sectionDates:
		return 2
	}
	return 0
}

func (m filterPickerModel) View() string {
	var b strings.Builder

	b.WriteString(pickerTitleStyle.Render("Filter"))
	b.WriteString("\n\n")

	b.WriteString(m.renderOrderSection())
	b.WriteString("\n")
	b.WriteString(m.renderTagsSection())
	b.WriteString("\n")
	b.WriteString(m.renderDatesSection())

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab: section  ↑/↓: move  space: toggle  x: clear date  a: apply  c: clear all  q: cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m filterPickerModel) header(section int, label string) string {
	if m.section == section {
		return sectionHeaderStyle.Render("▸ " + label)
	}
	return inactiveHeaderStyle.Render("  " + label)
}

func (m filterPickerModel) renderOrderSection() string {
	var b strings.Builder
	b.WriteString(m.header(sectionOrder, "Order by"))
	b.WriteString("\n")
	for i, choice := range orderChoices {
		marker := "( )"
		if m.state.OrderBy() == choice {
			marker = selectedStyle.Render("(✓)")
		}
		row := fmt.Sprintf("  %s %s", marker, orderLabels[choice])
		if m.section == sectionOrder && m.cursor == i {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m filterPickerModel) renderTagsSection() string {
	var b strings.Builder
	b.WriteString(m.header(sectionTags, "Tags"))
	b.WriteString("\n")

	tags := m.state.AvailableTags()
	if len(tags) == 0 {
		b.WriteString(helpStyle.Render("  no tags available"))
		b.WriteString("\n")
		return b.String()
	}
	for i, tag := range tags {
		marker := "[ ]"
		if m.state.TagSelected(tag) {
			marker = selectedStyle.Render("[✓]")
		}
		row := fmt.Sprintf("  %s %s", marker, tag)
		if m.section == sectionTags && m.cursor == i {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m filterPickerModel) renderDatesSection() string {
	var b strings.Builder
	b.WriteString(m.header(sectionDates, "Date range"))
	b.WriteString("\n")

	rows := []struct {
		label string
		input textinput.Model
	}{
		{"From", m.fromInput},
		{"To  ", m.toInput},
	}
	for i, r := range rows {
		row := fmt.Sprintf("  %s: %s", r.label, r.input.View())
		if m.section == sectionDates && m.cursor == i && !m.editingDate {
			row = cursorRowStyle.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

// runFilterPicker opens the interactive picker and returns the applied
// descriptor, or nil when the user cancelled.
func runFilterPicker(availableTags []string, current *models.FilterOptions) (*models.FilterOptions, error) {
	p := tea.NewProgram(newFilterPicker(availableTags, current))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running filter picker: %w", err)
	}

	m, ok := final.(filterPickerModel)
	if !ok || !m.applied {
		return nil, nil
	}
	opts := m.state.ToFilterOptions()
	return &opts, nil
}
