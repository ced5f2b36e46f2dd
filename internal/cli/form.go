package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Form styles
var (
	formSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	formNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	formDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DimensionFormModel - Interactive dimension entry
// =============================================================================

// FormField is one numeric entry in the dimension form. Value holds
// the text being edited, prefilled with the flag or built-in default.
type FormField struct {
	Label string
	Value string
}

// DimensionFormModel is the bubbletea model for entering box
// dimensions when the flags are missing. All values are millimeters.
type DimensionFormModel struct {
	Title    string
	Fields   []FormField
	Cursor   int
	Err      string
	Done     bool
	Canceled bool
}

// NewDimensionFormModel creates a form over the given fields.
func NewDimensionFormModel(title string, fields ...FormField) DimensionFormModel {
	return DimensionFormModel{Title: title, Fields: fields}
}

func (m DimensionFormModel) Init() tea.Cmd {
	return nil
}

func (m DimensionFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.Canceled = true
		return m, tea.Quit
	case "up", "shift+tab":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "tab":
		if m.Cursor < len(m.Fields)-1 {
			m.Cursor++
		}
	case "enter":
		if m.Cursor < len(m.Fields)-1 {
			m.Cursor++
			return m, nil
		}
		if err := m.validate(); err != nil {
			m.Err = err.Error()
			return m, nil
		}
		m.Done = true
		return m, tea.Quit
	case "backspace":
		v := m.Fields[m.Cursor].Value
		if v != "" {
			m.Fields[m.Cursor].Value = v[:len(v)-1]
			m.Err = ""
		}
	default:
		s := keyMsg.String()
		if len(s) == 1 && strings.ContainsAny(s, "0123456789.") {
			m.Fields[m.Cursor].Value += s
			m.Err = ""
		}
	}
	return m, nil
}

func (m DimensionFormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(formDimStyle.Render("↑/↓ move  ⏎ next/confirm  esc cancel"))
	b.WriteString("\n\n")

	for i, f := range m.Fields {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		line := fmt.Sprintf("%s%-14s %s %s", cursor, f.Label,
			StyleNumber.Render(fmt.Sprintf("%8s", f.Value)), formDimStyle.Render("mm"))
		if i == m.Cursor {
			b.WriteString(formSelectedStyle.Render(line))
		} else {
			b.WriteString(formNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Err != "" {
		b.WriteString("\n")
		b.WriteString(StyleWarning.Render(iconWarning + " " + m.Err))
		b.WriteString("\n")
	}

	return b.String()
}

// validate checks that every field parses as a number.
func (m DimensionFormModel) validate() error {
	for _, f := range m.Fields {
		if _, err := strconv.ParseFloat(f.Value, 64); err != nil {
			return fmt.Errorf("%s is not a number", strings.ToLower(f.Label))
		}
	}
	return nil
}

// Values parses all field values in order.
func (m DimensionFormModel) Values() ([]float64, error) {
	out := make([]float64, len(m.Fields))
	for i, f := range m.Fields {
		v, err := strconv.ParseFloat(f.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("%s is not a number", strings.ToLower(f.Label))
		}
		out[i] = v
	}
	return out, nil
}

// =============================================================================
// Helpers
// =============================================================================

// runDimensionForm shows the form and returns the entered values, or
// ok=false when the user canceled.
func runDimensionForm(title string, fields ...FormField) ([]float64, bool, error) {
	m := NewDimensionFormModel(title, fields...)
	p := tea.NewProgram(m)
	finalModel, err := p.Run()
	if err != nil {
		return nil, false, err
	}

	fm, ok := finalModel.(DimensionFormModel)
	if !ok || !fm.Done {
		return nil, false, nil
	}

	vals, err := fm.Values()
	if err != nil {
		return nil, false, err
	}
	return vals, true, nil
}

// prefillField formats a flag value for the form, falling back to the
// built-in default when the flag was not set.
func prefillField(label string, value, fallback float64) FormField {
	if value <= 0 {
		value = fallback
	}
	return FormField{Label: label, Value: strconv.FormatFloat(value, 'f', -1, 64)}
}

// isInteractive reports whether stdin and stderr are terminals, which
// is when the dimension form can run.
func isInteractive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stderr.Fd())
}
