package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// SearchMsg is emitted on every keystroke for live filtering
type SearchMsg struct {
	Query string
}

// SearchOverlay is the bottom search bar; it filters title and notes live
type SearchOverlay struct {
	input      textinput.Model
	matchCount int
	styles     *Styles
}

// NewSearchOverlay creates a search bar prefilled with query
func NewSearchOverlay(query string) *SearchOverlay {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title or notes..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.SetValue(query)
	ti.Focus()

	return &SearchOverlay{
		input:  ti,
		styles: New(),
	}
}

// SetMatchCount updates the match count display
func (s *SearchOverlay) SetMatchCount(count int) {
	s.matchCount = count
}

// Query returns the current input
func (s *SearchOverlay) Query() string {
	return s.input.Value()
}

// Init implements tea.Model
func (s *SearchOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (s *SearchOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			// keep the filter, close the bar
			return s, closeOverlay
		case tea.KeyEsc:
			s.input.SetValue("")
			return s, tea.Batch(
				func() tea.Msg { return SearchMsg{Query: ""} },
				closeOverlay,
			)
		}
	}

	prev := s.input.Value()
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if s.input.Value() != prev {
		query := s.input.Value()
		return s, tea.Batch(cmd, func() tea.Msg { return SearchMsg{Query: query} })
	}
	return s, cmd
}

// View implements tea.Model
func (s *SearchOverlay) View() string {
	view := s.input.View()
	if s.input.Value() != "" {
		view += s.styles.SearchCount.Render(fmt.Sprintf(" (%d matches)", s.matchCount))
	}
	return s.styles.Search.Render(view)
}

// Title implements Overlay interface (returns empty for search bar)
func (s *SearchOverlay) Title() string {
	return ""
}

// Size implements Overlay interface (full-width single line)
func (s *SearchOverlay) Size() (width, height int) {
	return 0, 1
}
