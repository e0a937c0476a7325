// Package nav holds the selection and popup state of the findings viewer and
// the transitions that input events drive.
package nav

import "github.com/trivytui/trivy-tui/internal/rows"

// Mode is the top-level state of the viewer.
type Mode int

const (
	Browsing Mode = iota
	PopupOpen
)

func (m Mode) String() string {
	if m == PopupOpen {
		return "popup-open"
	}
	return "browsing"
}

// Event is an input the state machine reacts to.
type Event int

const (
	MoveDown Event = iota
	MoveUp
	MoveTop
	MoveBottom
	PageDown
	PageUp
	Activate
	Dismiss
	ScrollDown
	ScrollUp
	Quit
)

const defaultPageSize = 10

// State is the navigation state. The zero value is ready to use: browsing,
// nothing selected, popup scroll at 0.
type State struct {
	selected     int
	hasSelection bool
	mode         Mode
	scroll       int
	pageSize     int
}

// Selected returns the selected row index, if any.
func (s *State) Selected() (int, bool) { return s.selected, s.hasSelection }

// Mode returns the current mode.
func (s *State) Mode() Mode { return s.mode }

// PopupOpen reports whether the detail popup is showing.
func (s *State) PopupOpen() bool { return s.mode == PopupOpen }

// Scroll returns the popup scroll offset.
func (s *State) Scroll() int { return s.scroll }

// SetPageSize sets how many rows PageDown and PageUp move by. Values below 1
// restore the default.
func (s *State) SetPageSize(n int) {
	if n < 1 {
		n = 0
	}
	s.pageSize = n
}

// LimitScroll caps the popup scroll offset at limit. The state machine itself
// never bounds scrolling from above; the renderer knows the content height.
func (s *State) LimitScroll(limit int) {
	if limit < 0 {
		limit = 0
	}
	if s.scroll > limit {
		s.scroll = limit
	}
}

// Clamp keeps the selection valid for a row list of length n. An empty list
// clears the selection and closes the popup.
func (s *State) Clamp(n int) {
	if !s.hasSelection {
		return
	}
	if n <= 0 {
		s.hasSelection = false
		s.selected = 0
		s.close()
		return
	}
	if s.selected >= n {
		s.selected = n - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

// Apply feeds ev into the state machine against the current rows and
// reports whether the session should end. Events that make no sense in the
// current mode are ignored.
func (s *State) Apply(ev Event, rs []rows.Row) (quit bool) {
	s.Clamp(len(rs))
	if ev == Quit {
		return true
	}
	if s.mode == PopupOpen {
		s.applyPopup(ev)
		return false
	}
	return s.applyBrowsing(ev, rs)
}

func (s *State) applyPopup(ev Event) {
	switch ev {
	case Activate, Dismiss:
		s.close()
	case ScrollDown:
		s.scroll++
	case ScrollUp:
		if s.scroll > 0 {
			s.scroll--
		}
	}
}

func (s *State) applyBrowsing(ev Event, rs []rows.Row) bool {
	n := len(rs)
	switch ev {
	case Dismiss:
		return true
	case Activate:
		if s.hasSelection && rs[s.selected].IsFinding() {
			s.mode = PopupOpen
			s.scroll = 0
		}
		return false
	}

	if n == 0 {
		return false
	}
	if !s.hasSelection {
		switch ev {
		case MoveDown, MoveUp, PageDown, PageUp, MoveTop:
			s.selectIndex(start(rs), n)
		case MoveBottom:
			s.selectIndex(n-1, n)
		}
		return false
	}

	switch ev {
	case MoveDown:
		s.selectIndex(s.selected+1, n)
	case MoveUp:
		s.selectIndex(s.selected-1, n)
	case PageDown:
		s.selectIndex(s.selected+s.page(), n)
	case PageUp:
		s.selectIndex(s.selected-s.page(), n)
	case MoveTop:
		s.selectIndex(start(rs), n)
	case MoveBottom:
		s.selectIndex(n-1, n)
	}
	return false
}

func (s *State) selectIndex(i, n int) {
	if i > n-1 {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	s.selected = i
	s.hasSelection = true
}

func (s *State) close() {
	s.mode = Browsing
	s.scroll = 0
}

func (s *State) page() int {
	if s.pageSize < 1 {
		return defaultPageSize
	}
	return s.pageSize
}

// start is where the first move lands when nothing is selected yet: the first
// finding row, or the top of the list if there is none.
func start(rs []rows.Row) int {
	if i, ok := rows.FirstFinding(rs); ok {
		return i
	}
	return 0
}
