package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/transceptor/qpack"
	"github.com/transceptor/qpack/codec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewState int

const (
	stateBrowse viewState = iota
	stateFilter
	stateTokens
)

// row is one visible line of the flattened value tree.
type row struct {
	path     string
	label    string
	summary  string
	depth    int
	children bool
	node     qpack.Value
}

type inspectorModel struct {
	err      error
	filename string
	root     qpack.Value
	tokens   []codec.TagInfo
	rows     []row
	expanded map[string]bool
	filter   textinput.Model
	selected int
	offset   int
	height   int
	state    viewState
}

func newInspectorModel(filename string, data []byte, cfg *qpack.Config) *inspectorModel {
	m := &inspectorModel{
		filename: filename,
		expanded: map[string]bool{"$": true},
		height:   24,
		state:    stateBrowse,
	}

	ti := textinput.New()
	ti.Placeholder = "substring of a key or value"
	ti.Prompt = "filter: "
	ti.Width = 40
	m.filter = ti

	v, err := qpack.Decode(data, cfg)
	if err != nil {
		m.err = err
		return m
	}
	m.root = v

	tokens, err := codec.ScanTags(data)
	if err != nil {
		m.err = err
		return m
	}
	m.tokens = tokens
	m.rebuild()
	return m
}

func (m *inspectorModel) Init() tea.Cmd {
	return nil
}

// rebuild flattens the tree into visible rows, honoring the expanded
// set and the active filter.
func (m *inspectorModel) rebuild() {
	m.rows = m.rows[:0]
	m.appendRows("$", "$", m.root, 0)
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *inspectorModel) appendRows(path, label string, v qpack.Value, depth int) {
	r := row{
		path:    path,
		label:   label,
		summary: renderScalar(v),
		depth:   depth,
		node:    v,
	}

	needle := strings.ToLower(m.filter.Value())
	match := needle == "" ||
		strings.Contains(strings.ToLower(label), needle) ||
		strings.Contains(strings.ToLower(r.summary), needle)

	switch val := v.(type) {
	case qpack.List:
		r.children = len(val) > 0
		if match {
			m.rows = append(m.rows, r)
		}
		if m.expanded[path] || needle != "" {
			for i, elem := range val {
				m.appendRows(fmt.Sprintf("%s[%d]", path, i), fmt.Sprintf("[%d]", i), elem, depth+1)
			}
		}
	case *qpack.Map:
		r.children = len(val.Pairs) > 0
		if match {
			m.rows = append(m.rows, r)
		}
		if m.expanded[path] || needle != "" {
			for i, pair := range val.Pairs {
				key := renderScalar(pair.Key)
				m.appendRows(fmt.Sprintf("%s.%d", path, i), key, pair.Value, depth+1)
			}
		}
	default:
		if match {
			m.rows = append(m.rows, r)
		}
	}
}

func (m *inspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height

	case tea.KeyMsg:
		if m.state == stateFilter {
			switch msg.String() {
			case "enter", "esc":
				if msg.String() == "esc" {
					m.filter.SetValue("")
				}
				m.filter.Blur()
				m.state = stateBrowse
				m.rebuild()
				return m, nil
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.rebuild()
				return m, cmd
			}
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter", " ":
			if m.state == stateBrowse && m.selected < len(m.rows) {
				r := m.rows[m.selected]
				if r.children {
					m.expanded[r.path] = !m.expanded[r.path]
					m.rebuild()
				}
			}

		case "/":
			if m.state == stateBrowse {
				m.state = stateFilter
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "t":
			if m.state == stateTokens {
				m.state = stateBrowse
			} else {
				m.state = stateTokens
			}

		case "esc":
			if m.state == stateTokens {
				m.state = stateBrowse
			}
		}
	}
	return m, nil
}

func (m *inspectorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("QPack Inspector"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if m.state == stateTokens {
		m.viewTokens(&b)
		return b.String()
	}

	visible := m.height - 6
	if visible < 1 {
		visible = 1
	}
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}

	end := m.offset + visible
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		r := m.rows[i]
		marker := "  "
		if r.children {
			if m.expanded[r.path] {
				marker = "- "
			} else {
				marker = "+ "
			}
		}
		line := strings.Repeat("  ", r.depth) + marker +
			keyStyle.Render(r.label) + " " + typeStyle.Render(r.summary)
		if i == m.selected {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter expand • / filter • t tokens • q quit"))
	}
	return b.String()
}

func (m *inspectorModel) viewTokens(b *strings.Builder) {
	limit := m.height - 6
	if limit < 1 {
		limit = 1
	}
	for i, info := range m.tokens {
		if i >= limit {
			b.WriteString(helpStyle.Render(fmt.Sprintf("… %d more tokens", len(m.tokens)-limit)))
			b.WriteString("\n")
			break
		}
		line := fmt.Sprintf("%6d  0x%02x  %-12s %s", info.Offset, info.Tag, info.Name, info.Summary)
		b.WriteString(typeStyle.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("t back • q quit"))
}

func runInteractive(filename string, data []byte, cfg *qpack.Config) error {
	p := tea.NewProgram(newInspectorModel(filename, data, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
