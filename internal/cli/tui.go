package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/flowshop/pkg/solver"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// AlgorithmListModel - Interactive algorithm selection
// =============================================================================

// AlgorithmListModel is the bubbletea model for picking an algorithm.
// Algorithms that do not accept the loaded matrix are listed but dimmed and
// cannot be selected.
type AlgorithmListModel struct {
	Algorithms []solver.Info
	Jobs       int
	Machines   int
	Cursor     int
	Selected   *solver.Info
	Height     int
	Offset     int
}

// NewAlgorithmListModel creates a list over every registered algorithm for
// a matrix of the given shape. The cursor starts on the first applicable one.
func NewAlgorithmListModel(jobs, machines int) AlgorithmListModel {
	m := AlgorithmListModel{
		Algorithms: solver.Algorithms(),
		Jobs:       jobs,
		Machines:   machines,
		Height:     15,
	}
	for i, info := range m.Algorithms {
		if m.selectable(info) {
			m.Cursor = i
			break
		}
	}
	return m
}

func (m AlgorithmListModel) selectable(info solver.Info) bool {
	return info.Supports(m.Jobs, m.Machines)
}

func (m AlgorithmListModel) Init() tea.Cmd {
	return nil
}

func (m AlgorithmListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Algorithms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			info := m.Algorithms[m.Cursor]
			if !m.selectable(info) {
				return m, nil
			}
			m.Selected = &info
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m AlgorithmListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Select Algorithm (%d jobs × %d machines)", m.Jobs, m.Machines)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Algorithms))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		info := m.Algorithms[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, info.Name, string(info.Kind), info.Description})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Algorithm", "Kind", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}

			idx := m.Offset + row
			if idx >= len(m.Algorithms) {
				return lipgloss.NewStyle()
			}
			usable := m.selectable(m.Algorithms[idx])
			current := idx == m.Cursor

			switch {
			case !usable:
				return lipgloss.NewStyle().Foreground(colorDim)
			case current:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Algorithms))))

	return b.String()
}
