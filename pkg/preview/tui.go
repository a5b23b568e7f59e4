package preview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/newsletter-forge/internal/newsletter"
)

// ViewMode represents the current view mode
type ViewMode int

// View modes for the preview TUI
const (
	ListViewMode ViewMode = iota
	DetailViewMode
	HTMLViewMode
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Bold(true)
)

// Model represents the Bubble Tea model for the preview TUI.
// Posts are listed in archive order, oldest first.
type Model struct {
	posts         []*newsletter.Post
	title         string
	cursor        int
	viewMode      ViewMode
	width         int
	height        int
	selectedIndex int // Index of the post currently being viewed in detail
}

// NewModel creates a new preview model
func NewModel(posts []*newsletter.Post, title string) Model {
	return Model{
		posts:         posts,
		title:         title,
		viewMode:      ListViewMode,
		selectedIndex: -1,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.viewMode {
		case ListViewMode:
			return m.updateListView(msg)
		case DetailViewMode, HTMLViewMode:
			return m.updateDetailView(msg)
		}
	}

	return m, nil
}

// updateListView handles key presses in list view mode
func (m Model) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}

	case "enter":
		m.selectedIndex = m.cursor
		m.viewMode = DetailViewMode

	case "h":
		m.selectedIndex = m.cursor
		m.viewMode = HTMLViewMode
	}

	return m, nil
}

// updateDetailView handles key presses in detail/HTML view modes
func (m Model) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.viewMode = ListViewMode

	case "h":
		if m.viewMode == DetailViewMode {
			m.viewMode = HTMLViewMode
		} else {
			m.viewMode = DetailViewMode
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	switch m.viewMode {
	case ListViewMode:
		return m.renderListView()
	case DetailViewMode:
		return m.renderDetailView()
	case HTMLViewMode:
		return m.renderHTMLView()
	}
	return ""
}

// renderListView renders the list view
func (m Model) renderListView() string {
	var b strings.Builder

	header := fmt.Sprintf("Newsletter Preview - %s (%d posts)", m.title, len(m.posts))
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")

	visibleStart, visibleEnd := m.visibleRange()
	for i := visibleStart; i < visibleEnd; i++ {
		line := FormatCompactListItem(i, m.posts[i])
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("→ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ or j/k: navigate • enter: view details • h: HTML view • q: quit"))

	return b.String()
}

// visibleRange keeps the cursor near the middle of the screen when the list is taller than the window
func (m Model) visibleRange() (start, end int) {
	end = len(m.posts)
	if m.height <= 0 {
		return 0, end
	}

	maxVisible := m.height - 6 // header, footer and padding
	if maxVisible >= len(m.posts) {
		return 0, end
	}

	start = max(m.cursor-maxVisible/2, 0)
	end = start + maxVisible
	if end > len(m.posts) {
		end = len(m.posts)
		start = max(end-maxVisible, 0)
	}
	return start, end
}

func (m Model) selected() *newsletter.Post {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.posts) {
		return nil
	}
	return m.posts[m.selectedIndex]
}

// renderDetailView renders the detail view
func (m Model) renderDetailView() string {
	p := m.selected()
	if p == nil {
		return "No post selected"
	}

	var b strings.Builder
	b.WriteString(FormatDetailedItem(p))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc: back to list • h: toggle HTML view • q: quit"))

	return b.String()
}

// renderHTMLView renders the rewritten archive page
func (m Model) renderHTMLView() string {
	p := m.selected()
	if p == nil {
		return "No post selected"
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Archive Page Preview: " + p.Path()))
	b.WriteString("\n\n")
	b.WriteString(FormatHTMLItem(p, m.width))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("esc: back to list • h: toggle detail view • q: quit"))

	return b.String()
}

// Run starts the Bubble Tea program
func Run(posts []*newsletter.Post, title string) error {
	if len(posts) == 0 {
		fmt.Println("No posts to preview")
		return nil
	}

	p := tea.NewProgram(NewModel(posts, title), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
