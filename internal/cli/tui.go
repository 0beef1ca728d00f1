package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/tldrviz/pkg/model"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// =============================================================================
// EntryListModel - Interactive entry point selection
// =============================================================================

// EntryListModel is the bubbletea model for picking a classified entry point.
type EntryListModel struct {
	Entries  []model.EntryPointClassification
	Cursor   int
	Selected *model.EntryPointClassification
	Height   int
	Offset   int
}

// NewEntryListModel creates a picker over entries.
func NewEntryListModel(entries []model.EntryPointClassification) EntryListModel {
	return EntryListModel{Entries: entries, Height: 15}
}

func (m EntryListModel) Init() tea.Cmd {
	return nil
}

func (m EntryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entries) == 0 {
				return m, tea.Quit
			}
			e := m.Entries[m.Cursor]
			m.Selected = &e
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

func (m EntryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entry Point"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Entries))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		facing := ""
		if e.IsUserFacing {
			facing = "✓"
		}
		rows = append(rows, []string{cursor, e.Function, string(e.Type), facing, fmt.Sprintf("%.0f%%", e.Confidence*100), e.File})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Function", "Type", "User", "Conf", "File").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			if col == 5 {
				base = base.Foreground(colorDim)
			}
			if m.Entries[idx].IsUserFacing && col != 5 {
				base = base.Foreground(colorGreen)
			}
			if idx == m.Cursor {
				base = base.Bold(true)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	if len(m.Entries) > 0 {
		if desc := m.Entries[m.Cursor].Description; desc != "" {
			b.WriteString("  " + StyleValue.Render(desc) + "\n")
		}
		if ua := m.Entries[m.Cursor].UserAction; ua != nil {
			b.WriteString("  " + listDimStyle.Render("user action: "+*ua) + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Entries)), len(m.Entries))))

	return b.String()
}
