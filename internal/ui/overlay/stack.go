package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open overlays. Only the top one receives input and is
// drawn; closing it reveals the one underneath (detail panel under an edit
// form, for instance).
type Stack struct {
	overlays []Overlay
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top and returns its Init command.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Replace swaps the top overlay for o, or pushes o onto an empty stack.
func (s *Stack) Replace(o Overlay) tea.Cmd {
	s.Pop()
	return s.Push(o)
}

// Pop closes the top overlay and returns it, or nil when nothing is open.
func (s *Stack) Pop() Overlay {
	top := s.Current()
	if top != nil {
		s.overlays[len(s.overlays)-1] = nil
		s.overlays = s.overlays[:len(s.overlays)-1]
	}
	return top
}

// Current returns the top overlay, or nil.
func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

func (s *Stack) Len() int { return len(s.overlays) }

func (s *Stack) IsEmpty() bool { return len(s.overlays) == 0 }

// Update routes msg to the top overlay and stores the model it returns. A
// CloseOverlayMsg pops instead.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}
	if _, ok := msg.(CloseOverlayMsg); ok {
		s.Pop()
		return nil
	}

	next, cmd := top.Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}
