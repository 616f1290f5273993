package selector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nvinuesa/gguser/internal/model"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#40A967"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FC284")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F2F3F3")).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// menu is the bubbletea model behind the terminal selector.
type menu struct {
	title     string
	items     []model.ListItem
	cursor    int
	chosen    int
	cancelled bool
}

func newMenu(title string, items []model.ListItem) menu {
	return menu{title: title, items: items, chosen: -1}
}

func (m menu) Init() tea.Cmd {
	return nil
}

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.items) - 1
		}
	case "down", "j", "tab":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.items) - 1
	case "enter", " ", "space":
		m.chosen = m.cursor
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.cancelled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m menu) View() string {
	if m.chosen >= 0 || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, item := range m.items {
		who := mutedStyle.Render(fmt.Sprintf("%s <%s>", item.Name, item.Email))
		if i == m.cursor {
			fmt.Fprintf(&b, "%s %s  %s\n", cursorStyle.Render(">"), selectedStyle.Render(item.Key), who)
		} else {
			fmt.Fprintf(&b, "  %s  %s\n", item.Key, who)
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
