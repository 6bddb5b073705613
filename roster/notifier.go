package roster

import (
	"sync"
	"time"
)

// StatusKind marks a status message as a success or error notice.
type StatusKind int

const (
	StatusSuccess StatusKind = iota
	StatusError
)

// StatusMessage is the transient notice shown after an action.
type StatusMessage struct {
	Text string
	Kind StatusKind
}

const defaultHideAfter = 5 * time.Second

// StatusNotifier tracks at most one live status message and hides it after
// a fixed delay. A new Show preempts the previous message and restarts the
// clock; there is no queue.
type StatusNotifier struct {
	HideAfter time.Duration

	// OnChange, when set, fires after every visibility change. The
	// rendering layer hooks in here; hiding is advisory only.
	OnChange func(msg StatusMessage, visible bool)

	mu      sync.Mutex
	msg     StatusMessage
	visible bool
	gen     int
	timer   *time.Timer
}

func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{HideAfter: defaultHideAfter}
}

// Show makes msg the current message and schedules its auto-hide.
// Last write wins.
func (n *StatusNotifier) Show(text string, kind StatusKind) {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	n.msg = StatusMessage{Text: text, Kind: kind}
	n.visible = true
	n.timer = time.AfterFunc(n.HideAfter, func() {
		n.expire(gen)
	})
	onChange := n.OnChange
	msg := n.msg
	n.mu.Unlock()

	if onChange != nil {
		onChange(msg, true)
	}
}

// expire hides the message unless a newer Show already replaced it.
func (n *StatusNotifier) expire(gen int) {
	n.mu.Lock()
	if gen != n.gen {
		n.mu.Unlock()
		return
	}
	n.visible = false
	onChange := n.OnChange
	msg := n.msg
	n.mu.Unlock()

	if onChange != nil {
		onChange(msg, false)
	}
}

// Current reports the live message, if any.
func (n *StatusNotifier) Current() (StatusMessage, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.msg, n.visible
}
