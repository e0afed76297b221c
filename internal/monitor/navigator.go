package monitor

import (
	"errors"
	"strings"
)

// ViewMode is the screen shown by the inbox.
type ViewMode string

const (
	ModeList    ViewMode = "list"
	ModeDetail  ViewMode = "detail"
	ModeProfile ViewMode = "profile"
)

var (
	// ErrInvalidTransition is returned when a transition is not allowed
	// from the current mode.
	ErrInvalidTransition = errors.New("invalid view transition")
	// ErrNoConversation is returned when selecting an empty id.
	ErrNoConversation = errors.New("no conversation selected")
)

// Target is an externally supplied conversation to open. Ack is invoked
// once the target has been consumed.
type Target struct {
	ID  string
	Ack func()
}

// Navigator is the list/detail/profile state machine. It never touches the
// collection.
type Navigator struct {
	mode     ViewMode
	selected string
	consumed string
}

// NewNavigator starts in list mode.
func NewNavigator() *Navigator {
	return &Navigator{mode: ModeList}
}

// Mode returns the current view mode.
func (n *Navigator) Mode() ViewMode {
	if n.mode == "" {
		return ModeList
	}
	return n.mode
}

// Selected returns the selected conversation id; empty in list mode.
func (n *Navigator) Selected() string {
	return n.selected
}

// Select opens a conversation from the list.
func (n *Navigator) Select(id string) error {
	if n.Mode() != ModeList {
		return ErrInvalidTransition
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNoConversation
	}
	n.mode = ModeDetail
	n.selected = id
	return nil
}

// ViewProfile moves from detail to the patient profile.
func (n *Navigator) ViewProfile() error {
	if n.Mode() != ModeDetail {
		return ErrInvalidTransition
	}
	n.mode = ModeProfile
	return nil
}

// Back moves profile -> detail and detail -> list.
func (n *Navigator) Back() error {
	switch n.Mode() {
	case ModeProfile:
		n.mode = ModeDetail
		return nil
	case ModeDetail:
		n.mode = ModeList
		n.selected = ""
		return nil
	default:
		return ErrInvalidTransition
	}
}

// Consume opens an external target directly in detail mode from any mode
// and acknowledges it. A target id that was already consumed is ignored
// until a different id arrives.
func (n *Navigator) Consume(target Target) bool {
	id := strings.TrimSpace(target.ID)
	if id == "" || id == n.consumed {
		return false
	}
	n.consumed = id
	n.mode = ModeDetail
	n.selected = id
	if target.Ack != nil {
		target.Ack()
	}
	return true
}

// Forget clears the consumed marker so the same id may be supplied again.
func (n *Navigator) Forget() {
	n.consumed = ""
}
